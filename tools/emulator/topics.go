package emulator

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/raywall/fast-sns/sns"
)

var topicNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,256}$`)

// topicAttributes lista os atributos aceitos em CreateTopic e SetTopicAttributes.
var topicAttributes = map[string]bool{
	"ArchivePolicy":             true,
	"ContentBasedDeduplication": true,
	"DataProtectionPolicy":      true,
	"DeliveryPolicy":            true,
	"DisplayName":               true,
	"FifoTopic":                 true,
	"KmsMasterKeyId":            true,
	"Policy":                    true,
	"SignatureVersion":          true,
	"TracingConfig":             true,
}

func isNotFound(err error) bool {
	var apiErr *apiError
	return errors.As(err, &apiErr) && apiErr.Code == sns.CodeNotFound
}

// requireArn lê um parâmetro obrigatório que deve ser um ARN válido.
func requireArn(p params, key string) (string, error) {
	v := p.get(key)
	if v == "" {
		return "", invalidParameter("%s", key)
	}
	if _, err := arn.Parse(v); err != nil {
		return "", invalidParameter("%s Reason: An ARN must have 6 elements", key)
	}
	return v, nil
}

type policyDocument struct {
	Version   string           `json:"Version"`
	ID        string           `json:"Id,omitempty"`
	Statement []map[string]any `json:"Statement"`
}

func (s *Server) defaultPolicy(topicArn string) string {
	doc := policyDocument{
		Version: "2008-10-17",
		ID:      "__default_policy_ID",
		Statement: []map[string]any{{
			"Sid":       "__default_statement_ID",
			"Effect":    "Allow",
			"Principal": map[string]any{"AWS": "*"},
			"Action": []string{
				"SNS:GetTopicAttributes", "SNS:SetTopicAttributes", "SNS:AddPermission",
				"SNS:RemovePermission", "SNS:DeleteTopic", "SNS:Subscribe",
				"SNS:ListSubscriptionsByTopic", "SNS:Publish",
			},
			"Resource":  topicArn,
			"Condition": map[string]any{"StringEquals": map[string]string{"AWS:SourceOwner": s.cfg.AccountID}},
		}},
	}
	b, _ := json.Marshal(doc)
	return string(b)
}

func (s *Server) createTopic(ctx context.Context, p params) (any, error) {
	name := p.get("Name")
	attrs := p.attributes("Attributes")

	if !topicNamePattern.MatchString(strings.TrimSuffix(name, ".fifo")) || len(name) > 256 {
		return nil, invalidParameter("Topic Name")
	}
	fifo := attrs["FifoTopic"] == "true"
	if fifo != strings.HasSuffix(name, ".fifo") {
		return nil, invalidParameter("Fifo Topic names must end with .fifo and must be made of only uppercase and lowercase ASCII letters, numbers, underscores, and hyphens, and must be between 1 and 256 characters long.")
	}
	for k, v := range attrs {
		if err := validateTopicAttribute(k, v, fifo); err != nil {
			return nil, err
		}
	}

	topicArn := s.arn(name)
	existing, err := s.state.topic(ctx, topicArn)
	switch {
	case err == nil:
		for k, v := range attrs {
			if existing.Attributes[k] != v {
				return nil, invalidParameter("Attributes Reason: Topic already exists with different attributes")
			}
		}
		return &sns.CreateTopicOutput{TopicArn: topicArn}, nil
	case !isNotFound(err):
		return nil, err
	}

	t := &topicRecord{
		Arn:  topicArn,
		Name: name,
		Attributes: map[string]string{
			"DisplayName": "",
			"Policy":      s.defaultPolicy(topicArn),
		},
		Tags: p.tags(),
	}
	for k, v := range attrs {
		t.Attributes[k] = v
	}
	if err := s.state.save(ctx, kindTopic, topicArn, t); err != nil {
		return nil, err
	}
	s.log.Info().Str("topic_arn", topicArn).Bool("fifo", fifo).Msg("tópico criado")
	return &sns.CreateTopicOutput{TopicArn: topicArn}, nil
}

func validateTopicAttribute(name, value string, fifo bool) error {
	if !topicAttributes[name] {
		return invalidParameter("Attributes Reason: Unknown attribute %s", name)
	}
	switch name {
	case "FifoTopic", "ContentBasedDeduplication":
		if _, err := strconv.ParseBool(value); err != nil {
			return invalidParameter("Attributes Reason: %s must be true or false", name)
		}
		if name == "ContentBasedDeduplication" && value == "true" && !fifo {
			return invalidParameter("Attributes Reason: Content-based deduplication can only be set for FIFO topics")
		}
	case "Policy", "DeliveryPolicy", "DataProtectionPolicy", "ArchivePolicy":
		if value != "" && !json.Valid([]byte(value)) {
			return invalidParameter("Attributes Reason: %s: failed to parse JSON", name)
		}
	case "SignatureVersion":
		if value != "1" && value != "2" {
			return invalidParameter("Attributes Reason: SignatureVersion must be 1 or 2")
		}
	case "TracingConfig":
		if value != "PassThrough" && value != "Active" {
			return invalidParameter("Attributes Reason: TracingConfig must be PassThrough or Active")
		}
	}
	return nil
}

func (s *Server) deleteTopic(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	if _, err := s.state.topic(ctx, topicArn); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	subs, err := s.state.subscriptionsOf(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if err := s.state.remove(ctx, kindSubscription, sub.Arn); err != nil {
			return nil, err
		}
	}
	if err := s.state.remove(ctx, kindTopic, topicArn); err != nil {
		return nil, err
	}
	s.log.Info().Str("topic_arn", topicArn).Int("subscriptions", len(subs)).Msg("tópico removido")
	return nil, nil
}

func (s *Server) getTopicAttributes(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	t, err := s.state.topic(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	subs, err := s.state.subscriptionsOf(ctx, topicArn)
	if err != nil {
		return nil, err
	}

	var confirmed, pending int
	for _, sub := range subs {
		if sub.Pending {
			pending++
		} else {
			confirmed++
		}
	}

	attrs := sns.AttributeMap{
		"TopicArn":                t.Arn,
		"Owner":                   s.cfg.AccountID,
		"SubscriptionsConfirmed":  strconv.Itoa(confirmed),
		"SubscriptionsPending":    strconv.Itoa(pending),
		"SubscriptionsDeleted":    "0",
		"EffectiveDeliveryPolicy": `{"http":{"defaultHealthyRetryPolicy":{"minDelayTarget":20,"maxDelayTarget":20,"numRetries":3,"numMaxDelayRetries":0,"numNoDelayRetries":0,"numMinDelayRetries":0,"backoffFunction":"linear"},"disableSubscriptionOverrides":false}}`,
	}
	for k, v := range t.Attributes {
		attrs[k] = v
	}
	return &sns.GetTopicAttributesOutput{Attributes: attrs}, nil
}

func (s *Server) setTopicAttributes(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	name := p.get("AttributeName")
	value := p.get("AttributeValue")
	if name == "FifoTopic" {
		return nil, invalidParameter("AttributeName Reason: FifoTopic cannot be changed")
	}

	t, err := s.state.topic(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	if err := validateTopicAttribute(name, value, t.fifo()); err != nil {
		return nil, err
	}
	if name == "Policy" && value == "" {
		value = s.defaultPolicy(topicArn)
	}
	t.Attributes[name] = value
	return nil, s.state.save(ctx, kindTopic, topicArn, t)
}

func (s *Server) listTopics(ctx context.Context, p params) (any, error) {
	topics, err := loadAll[topicRecord](ctx, s.state, kindTopic)
	if err != nil {
		return nil, err
	}
	page, next, err := paginate(topics, p.get("NextToken"), pageSize)
	if err != nil {
		return nil, err
	}

	out := &sns.ListTopicsOutput{Topics: make([]sns.Topic, 0, len(page)), NextToken: next}
	for _, t := range page {
		out.Topics = append(out.Topics, sns.Topic{TopicArn: t.Arn})
	}
	return out, nil
}

func (s *Server) addPermission(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	label := p.get("Label")
	accounts := p.list("AWSAccountId")
	actions := p.list("ActionName")
	switch {
	case label == "":
		return nil, invalidParameter("Label")
	case len(accounts) == 0:
		return nil, invalidParameter("AWSAccountId")
	case len(actions) == 0:
		return nil, invalidParameter("ActionName")
	}

	t, err := s.state.topic(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	doc, err := t.policy()
	if err != nil {
		return nil, err
	}
	for _, st := range doc.Statement {
		if st["Sid"] == label {
			return nil, invalidParameter("Statement already exists")
		}
	}

	principals := make([]string, 0, len(accounts))
	for _, a := range accounts {
		principals = append(principals, "arn:aws:iam::"+a+":root")
	}
	snsActions := make([]string, 0, len(actions))
	for _, a := range actions {
		snsActions = append(snsActions, "SNS:"+a)
	}
	doc.Statement = append(doc.Statement, map[string]any{
		"Sid":       label,
		"Effect":    "Allow",
		"Principal": map[string]any{"AWS": principals},
		"Action":    snsActions,
		"Resource":  topicArn,
	})
	return nil, s.savePolicy(ctx, t, doc)
}

func (s *Server) removePermission(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	label := p.get("Label")
	if label == "" {
		return nil, invalidParameter("Label")
	}

	t, err := s.state.topic(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	doc, err := t.policy()
	if err != nil {
		return nil, err
	}
	kept := doc.Statement[:0]
	for _, st := range doc.Statement {
		if st["Sid"] != label {
			kept = append(kept, st)
		}
	}
	doc.Statement = kept
	return nil, s.savePolicy(ctx, t, doc)
}

func (t *topicRecord) policy() (*policyDocument, error) {
	var doc policyDocument
	if err := json.Unmarshal([]byte(t.Attributes["Policy"]), &doc); err != nil {
		return nil, invalidParameter("Policy: failed to parse JSON")
	}
	return &doc, nil
}

func (s *Server) savePolicy(ctx context.Context, t *topicRecord, doc *policyDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	t.Attributes["Policy"] = string(b)
	return s.state.save(ctx, kindTopic, t.Arn, t)
}

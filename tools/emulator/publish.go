package emulator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/google/uuid"
	"github.com/raywall/fast-sns/sns"
	"github.com/raywall/fast-sns/tools/emulator/delivery"
)

const (
	maxMessageBytes = 256 * 1024
	maxBatchEntries = 10
	dedupWindow     = 5 * time.Minute
)

var batchIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,80}$`)

type dedupEntry struct {
	messageID string
	sequence  string
	expires   time.Time
}

// message é uma publicação já lida do formulário, comum a Publish e PublishBatch.
type message struct {
	body      string
	subject   string
	structure string
	attrs     map[string]sns.MessageAttributeValue
	groupID   string
	dedupID   string

	perProtocol map[string]string
}

func (m *message) size() int {
	n := len(m.body)
	for k, v := range m.attrs {
		n += len(k) + len(v.DataType) + len(v.StringValue) + len(v.BinaryValue)
	}
	return n
}

func (m *message) validate() error {
	if m.body == "" {
		return invalidParameter("Empty message")
	}
	if m.size() > maxMessageBytes {
		return invalidParameter("Message too long")
	}
	if len(m.subject) > 100 || strings.IndexFunc(m.subject, unicode.IsControl) >= 0 {
		return invalidParameter("Subject")
	}

	switch m.structure {
	case "":
	case "json":
		if err := json.Unmarshal([]byte(m.body), &m.perProtocol); err != nil {
			return invalidParameter("Message Structure - JSON message body failed to parse")
		}
		if _, ok := m.perProtocol["default"]; !ok {
			return invalidParameter("Message Structure - No default entry in JSON message body")
		}
	default:
		return invalidParameter("MessageStructure")
	}

	for name, attr := range m.attrs {
		if err := validateMessageAttribute(name, attr); err != nil {
			return err
		}
	}
	return nil
}

func validateMessageAttribute(name string, attr sns.MessageAttributeValue) error {
	switch {
	case strings.HasPrefix(attr.DataType, "Binary"):
		if len(attr.BinaryValue) == 0 {
			return &apiError{Status: http.StatusBadRequest, Code: sns.CodeInvalidParameterValue, Message: "The message attribute '" + name + "' must contain non-empty message attribute value for message attribute type 'Binary'."}
		}
	case strings.HasPrefix(attr.DataType, "Number"):
		if _, err := strconv.ParseFloat(attr.StringValue, 64); err != nil {
			return &apiError{Status: http.StatusBadRequest, Code: sns.CodeInvalidParameterValue, Message: "Could not cast message attribute '" + name + "' value to number."}
		}
	case strings.HasPrefix(attr.DataType, "String"):
		if attr.StringValue == "" {
			return &apiError{Status: http.StatusBadRequest, Code: sns.CodeInvalidParameterValue, Message: "The message attribute '" + name + "' must contain non-empty message attribute value for message attribute type 'String'."}
		}
	default:
		return &apiError{Status: http.StatusBadRequest, Code: sns.CodeInvalidParameterValue, Message: "The message attribute '" + name + "' has an invalid message attribute type, the set of supported type prefixes is Binary, Number, and String."}
	}
	return nil
}

// bodyFor devolve o corpo entregue a um protocolo (MessageStructure=json escolhe por chave).
func (m *message) bodyFor(protocol string) string {
	if m.perProtocol == nil {
		return m.body
	}
	if v, ok := m.perProtocol[protocol]; ok {
		return v
	}
	return m.perProtocol["default"]
}

func (s *Server) publish(ctx context.Context, p params) (any, error) {
	topicArn, targetArn, phone := p.get("TopicArn"), p.get("TargetArn"), p.get("PhoneNumber")
	targets := 0
	for _, v := range []string{topicArn, targetArn, phone} {
		if v != "" {
			targets++
		}
	}
	if targets != 1 {
		return nil, invalidParameter("TopicArn or TargetArn Reason: Exactly one of TopicArn, TargetArn or PhoneNumber must be specified")
	}

	attrs, err := p.messageAttributes("MessageAttributes")
	if err != nil {
		return nil, err
	}
	m := &message{
		body:      p.get("Message"),
		subject:   p.get("Subject"),
		structure: p.get("MessageStructure"),
		attrs:     attrs,
		groupID:   p.get("MessageGroupId"),
		dedupID:   p.get("MessageDeduplicationId"),
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	switch {
	case phone != "":
		return s.publishSMS(ctx, phone, m)
	case targetArn != "":
		a, err := arn.Parse(targetArn)
		if err != nil {
			return nil, invalidParameter("TargetArn Reason: An ARN must have 6 elements")
		}
		if strings.HasPrefix(a.Resource, "endpoint/") {
			return s.publishEndpoint(ctx, targetArn, m)
		}
		topicArn = targetArn
	}

	if _, err := arn.Parse(topicArn); err != nil {
		return nil, invalidParameter("TopicArn Reason: An ARN must have 6 elements")
	}
	t, err := s.state.topic(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	id, seq, err := s.publishToTopic(ctx, t, m)
	if err != nil {
		return nil, err
	}
	return &sns.PublishOutput{MessageID: id, SequenceNumber: seq}, nil
}

// publishToTopic aplica as regras FIFO, incrementa a sequência e distribui aos assinantes confirmados.
func (s *Server) publishToTopic(ctx context.Context, t *topicRecord, m *message) (string, string, error) {
	dedupID := m.dedupID
	if t.fifo() {
		if m.groupID == "" {
			return "", "", invalidParameter("The MessageGroupId parameter is required for FIFO topics")
		}
		if dedupID == "" {
			if t.Attributes["ContentBasedDeduplication"] != "true" {
				return "", "", invalidParameter("The topic should either have ContentBasedDeduplication enabled or MessageDeduplicationId provided explicitly")
			}
			sum := sha256.Sum256([]byte(m.body))
			dedupID = hex.EncodeToString(sum[:])
		}

		key := t.Arn + "|" + dedupID
		if e, ok := s.dedup[key]; ok && time.Now().Before(e.expires) {
			s.log.Debug().Str("topic_arn", t.Arn).Str("deduplication_id", dedupID).Msg("mensagem duplicada descartada")
			return e.messageID, e.sequence, nil
		}
	} else if dedupID != "" {
		return "", "", invalidParameter("MessageDeduplicationId Reason: The request includes MessageDeduplicationId parameter that is not valid for this topic type")
	}

	id := uuid.NewString()
	var seq string
	if t.fifo() {
		t.Sequence++
		seq = fmt.Sprintf("%020d", t.Sequence)
		if err := s.state.save(ctx, kindTopic, t.Arn, t); err != nil {
			return "", "", err
		}
		s.pruneDedup()
		s.dedup[t.Arn+"|"+dedupID] = dedupEntry{messageID: id, sequence: seq, expires: time.Now().Add(dedupWindow)}
	}

	subs, err := s.state.subscriptionsOf(ctx, t.Arn)
	if err != nil {
		return "", "", err
	}
	delivered := 0
	for _, sub := range subs {
		if sub.Pending {
			continue
		}
		fp, err := parseFilterPolicy(sub.Attributes["FilterPolicy"])
		if err != nil {
			s.log.Warn().Err(err).Str("subscription_arn", sub.Arn).Msg("filter policy inválida ignorada")
		}
		if !fp.matches(sub.Attributes["FilterPolicyScope"], m.body, m.attrs) {
			continue
		}
		n := s.notification(t.Arn, sub, id, m)
		n.SequenceNumber = seq
		n.DeduplicationID = dedupID
		s.deliver(ctx, s.target(sub), n)
		delivered++
	}

	s.log.Info().Str("topic_arn", t.Arn).Str("message_id", id).Int("subscribers", delivered).Msg("mensagem publicada")
	return id, seq, nil
}

func (s *Server) pruneDedup() {
	now := time.Now()
	for k, e := range s.dedup {
		if now.After(e.expires) {
			delete(s.dedup, k)
		}
	}
}

func (s *Server) notification(topicArn string, sub *subscriptionRecord, id string, m *message) delivery.Notification {
	return delivery.Notification{
		SNSEntity: events.SNSEntity{
			Type:              delivery.TypeNotification,
			MessageID:         id,
			TopicArn:          topicArn,
			Subject:           m.subject,
			Message:           m.bodyFor(sub.Protocol),
			Timestamp:         time.Now().UTC(),
			SignatureVersion:  "1",
			Signature:         "EXAMPLE",
			SigningCertURL:    s.baseURL + "/SimpleNotificationService.pem",
			UnsubscribeURL:    s.baseURL + "/?Action=Unsubscribe&SubscriptionArn=" + url.QueryEscape(sub.Arn),
			MessageAttributes: delivery.JSONAttributes(m.attrs),
		},
		Attributes:     m.attrs,
		MessageGroupID: m.groupID,
	}
}

func (s *Server) publishEndpoint(ctx context.Context, endpointArn string, m *message) (any, error) {
	ep, err := s.state.endpoint(ctx, endpointArn)
	if err != nil {
		return nil, err
	}
	app, err := s.state.application(ctx, ep.ApplicationArn)
	if err != nil {
		return nil, err
	}
	if app.Attributes["Enabled"] == "false" {
		return nil, &apiError{Status: http.StatusBadRequest, Code: sns.CodePlatformApplicationDisabled, Message: "Platform application is disabled"}
	}
	if !ep.enabled() {
		return nil, &apiError{Status: http.StatusBadRequest, Code: sns.CodeEndpointDisabled, Message: "Endpoint is disabled"}
	}

	id := uuid.NewString()
	s.log.Info().
		Str("endpoint_arn", endpointArn).
		Str("platform", app.Platform).
		Str("message_id", id).
		Str("message", m.bodyFor(app.Platform)).
		Msg("push registrado")
	return &sns.PublishOutput{MessageID: id}, nil
}

func (s *Server) publishSMS(ctx context.Context, phone string, m *message) (any, error) {
	if !phonePattern.MatchString(phone) {
		return nil, invalidParameter("PhoneNumber Reason: %s is not valid to publish", phone)
	}
	out, err := s.state.optedOut(ctx, phone)
	if err != nil {
		return nil, err
	}
	if out {
		return nil, invalidParameter("PhoneNumber Reason: %s is opted out", phone)
	}

	id := uuid.NewString()
	s.log.Info().Str("phone_number", phone).Str("message_id", id).Str("message", m.bodyFor("sms")).Msg("SMS registrado")
	return &sns.PublishOutput{MessageID: id}, nil
}

func (s *Server) publishBatch(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	entries, err := p.batchEntries()
	if err != nil {
		return nil, err
	}

	switch {
	case len(entries) == 0:
		return nil, batchError(sns.CodeEmptyBatchRequest, "The batch request doesn't contain any entries")
	case len(entries) > maxBatchEntries:
		return nil, batchError(sns.CodeTooManyEntriesInBatchRequest, "The batch request contains more entries than permissible")
	}

	seen := map[string]bool{}
	total := 0
	for _, e := range entries {
		if !batchIDPattern.MatchString(e.ID) {
			return nil, batchError(sns.CodeInvalidBatchEntryID, "The Id of a batch entry in a batch request must be alphanumeric, hyphen or underscore, up to 80 characters")
		}
		if seen[e.ID] {
			return nil, batchError(sns.CodeBatchEntryIdsNotDistinct, "Two or more batch entries in the request have the same Id")
		}
		seen[e.ID] = true
		total += len(e.Message)
		for k, v := range e.MessageAttributes {
			total += len(k) + len(v.DataType) + len(v.StringValue) + len(v.BinaryValue)
		}
	}
	if total > maxMessageBytes {
		return nil, batchError(sns.CodeBatchRequestTooLong, "The length of all the messages put together is more than the limit")
	}

	t, err := s.state.topic(ctx, topicArn)
	if err != nil {
		return nil, err
	}

	out := &sns.PublishBatchOutput{
		Successful: []sns.PublishBatchResultEntry{},
		Failed:     []sns.BatchResultErrorEntry{},
	}
	for _, e := range entries {
		m := &message{
			body:      e.Message,
			subject:   e.Subject,
			structure: e.MessageStructure,
			attrs:     e.MessageAttributes,
			groupID:   e.MessageGroupID,
			dedupID:   e.MessageDeduplicationID,
		}
		err := m.validate()
		var id, seq string
		if err == nil {
			id, seq, err = s.publishToTopic(ctx, t, m)
		}
		if err != nil {
			var apiErr *apiError
			if !errors.As(err, &apiErr) {
				return nil, err
			}
			out.Failed = append(out.Failed, sns.BatchResultErrorEntry{
				ID:          e.ID,
				Code:        apiErr.Code,
				Message:     apiErr.Message,
				SenderFault: apiErr.Status < 500,
			})
			continue
		}
		out.Successful = append(out.Successful, sns.PublishBatchResultEntry{ID: e.ID, MessageID: id, SequenceNumber: seq})
	}
	return out, nil
}

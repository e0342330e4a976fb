package emulator

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/google/uuid"
	"github.com/raywall/fast-sns/sns"
	"github.com/raywall/fast-sns/tools/emulator/delivery"
)

const pendingConfirmation = "pending confirmation"

var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{1,14}$`)

var subscriptionAttributes = map[string]bool{
	"DeliveryPolicy":      true,
	"FilterPolicy":        true,
	"FilterPolicyScope":   true,
	"RawMessageDelivery":  true,
	"RedrivePolicy":       true,
	"ReplayPolicy":        true,
	"SubscriptionRoleArn": true,
}

// confirmationRequired indica os protocolos que exigem ConfirmSubscription.
func confirmationRequired(protocol string) bool {
	switch protocol {
	case "http", "https", "email", "email-json":
		return true
	}
	return false
}

func validateEndpoint(protocol, endpoint string) error {
	switch protocol {
	case "http", "https":
		u, err := url.Parse(endpoint)
		if err != nil || u.Scheme != protocol || u.Host == "" {
			return invalidParameter("Endpoint must match the specified protocol")
		}
	case "email", "email-json":
		if !strings.Contains(endpoint, "@") {
			return invalidParameter("Email address")
		}
	case "sms":
		if !phonePattern.MatchString(endpoint) {
			return invalidParameter("Invalid SMS endpoint: %s", endpoint)
		}
	case "sqs", "lambda", "firehose", "application":
		a, err := arn.Parse(endpoint)
		service := protocol
		if protocol == "application" {
			service = "sns"
		}
		if err != nil || a.Service != service {
			return invalidParameter("%s endpoint ARN", protocol)
		}
	default:
		return invalidParameter("Invalid protocol type: %s", protocol)
	}
	return nil
}

func validateSubscriptionAttribute(name, value string) error {
	if !subscriptionAttributes[name] {
		return invalidParameter("Attributes Reason: Unknown attribute %s", name)
	}
	switch name {
	case "RawMessageDelivery":
		if _, err := strconv.ParseBool(value); err != nil {
			return invalidParameter("Attributes Reason: RawMessageDelivery: Invalid value [%s]. Must be true or false.", value)
		}
	case "FilterPolicy":
		if _, err := parseFilterPolicy(value); err != nil {
			return err
		}
	case "FilterPolicyScope":
		if value != filterScopeAttributes && value != filterScopeBody {
			return invalidParameter("Attributes Reason: FilterPolicyScope: Invalid value [%s]. Please use either MessageBody or MessageAttributes", value)
		}
	}
	return nil
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func (s *Server) subscribe(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	protocol := p.get("Protocol")
	endpoint := p.get("Endpoint")
	attrs := p.attributes("Attributes")

	if _, err := s.state.topic(ctx, topicArn); err != nil {
		return nil, err
	}
	if err := validateEndpoint(protocol, endpoint); err != nil {
		return nil, err
	}
	for k, v := range attrs {
		if err := validateSubscriptionAttribute(k, v); err != nil {
			return nil, err
		}
	}

	subs, err := s.state.subscriptionsOf(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.Protocol == protocol && sub.Endpoint == endpoint {
			return s.subscribeOutput(sub, p.flag("ReturnSubscriptionArn")), nil
		}
	}

	sub := &subscriptionRecord{
		Arn:        topicArn + ":" + uuid.NewString(),
		TopicArn:   topicArn,
		Protocol:   protocol,
		Endpoint:   endpoint,
		Owner:      s.cfg.AccountID,
		Attributes: attrs,
	}
	if confirmationRequired(protocol) {
		sub.Pending = true
		sub.Token = newToken()
	}
	if err := s.state.save(ctx, kindSubscription, sub.Arn, sub); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("subscription_arn", sub.Arn).
		Str("protocol", protocol).
		Str("endpoint", endpoint).
		Bool("pending", sub.Pending).
		Str("token", sub.Token).
		Msg("assinatura criada")

	if sub.Pending && (protocol == "http" || protocol == "https") {
		s.deliver(ctx, s.target(sub), s.confirmation(sub))
	}
	return s.subscribeOutput(sub, p.flag("ReturnSubscriptionArn")), nil
}

func (s *Server) subscribeOutput(sub *subscriptionRecord, returnArn bool) *sns.SubscribeOutput {
	if sub.Pending && !returnArn {
		return &sns.SubscribeOutput{SubscriptionArn: pendingConfirmation}
	}
	return &sns.SubscribeOutput{SubscriptionArn: sub.Arn}
}

func (s *Server) target(sub *subscriptionRecord) delivery.Target {
	return delivery.Target{
		SubscriptionArn: sub.Arn,
		TopicArn:        sub.TopicArn,
		Protocol:        sub.Protocol,
		Endpoint:        sub.Endpoint,
		Raw:             sub.raw(),
	}
}

func (s *Server) confirmation(sub *subscriptionRecord) delivery.Notification {
	q := url.Values{}
	q.Set("Action", "ConfirmSubscription")
	q.Set("TopicArn", sub.TopicArn)
	q.Set("Token", sub.Token)

	return delivery.Notification{
		SNSEntity: events.SNSEntity{
			Type:             delivery.TypeSubscriptionConfirmation,
			MessageID:        uuid.NewString(),
			TopicArn:         sub.TopicArn,
			Message:          "You have chosen to subscribe to the topic " + sub.TopicArn + ".\nTo confirm the subscription, visit the SubscribeURL included in this message.",
			Timestamp:        time.Now().UTC(),
			SignatureVersion: "1",
			Signature:        "EXAMPLE",
			SigningCertURL:   s.baseURL + "/SimpleNotificationService.pem",
		},
		Token:        sub.Token,
		SubscribeURL: s.baseURL + "/?" + q.Encode(),
	}
}

func (s *Server) confirmSubscription(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	token := p.get("Token")
	if token == "" {
		return nil, invalidParameter("Token")
	}
	if _, err := s.state.topic(ctx, topicArn); err != nil {
		return nil, err
	}

	subs, err := s.state.subscriptionsOf(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.Token != token {
			continue
		}
		sub.Pending = false
		if sub.Attributes == nil {
			sub.Attributes = map[string]string{}
		}
		sub.Attributes["ConfirmationWasAuthenticated"] = strconv.FormatBool(p.get("AuthenticateOnUnsubscribe") == "true")
		if err := s.state.save(ctx, kindSubscription, sub.Arn, sub); err != nil {
			return nil, err
		}
		s.log.Info().Str("subscription_arn", sub.Arn).Msg("assinatura confirmada")
		return &sns.ConfirmSubscriptionOutput{SubscriptionArn: sub.Arn}, nil
	}
	return nil, invalidParameter("Token")
}

func (s *Server) unsubscribe(ctx context.Context, p params) (any, error) {
	subArn, err := requireArn(p, "SubscriptionArn")
	if err != nil {
		return nil, err
	}
	if _, err := s.state.subscription(ctx, subArn); err != nil {
		return nil, err
	}
	if err := s.state.remove(ctx, kindSubscription, subArn); err != nil {
		return nil, err
	}
	s.log.Info().Str("subscription_arn", subArn).Msg("assinatura removida")
	return nil, nil
}

func (s *Server) getSubscriptionAttributes(ctx context.Context, p params) (any, error) {
	subArn, err := requireArn(p, "SubscriptionArn")
	if err != nil {
		return nil, err
	}
	sub, err := s.state.subscription(ctx, subArn)
	if err != nil {
		return nil, err
	}

	attrs := sns.AttributeMap{
		"SubscriptionArn":              sub.Arn,
		"TopicArn":                     sub.TopicArn,
		"Owner":                        sub.Owner,
		"Protocol":                     sub.Protocol,
		"Endpoint":                     sub.Endpoint,
		"PendingConfirmation":          strconv.FormatBool(sub.Pending),
		"ConfirmationWasAuthenticated": "false",
		"RawMessageDelivery":           "false",
	}
	for k, v := range sub.Attributes {
		attrs[k] = v
	}
	return &sns.GetSubscriptionAttributesOutput{Attributes: attrs}, nil
}

func (s *Server) setSubscriptionAttributes(ctx context.Context, p params) (any, error) {
	subArn, err := requireArn(p, "SubscriptionArn")
	if err != nil {
		return nil, err
	}
	name := p.get("AttributeName")
	value := p.get("AttributeValue")
	if err := validateSubscriptionAttribute(name, value); err != nil {
		return nil, err
	}

	sub, err := s.state.subscription(ctx, subArn)
	if err != nil {
		return nil, err
	}
	if sub.Attributes == nil {
		sub.Attributes = map[string]string{}
	}
	if value == "" && name == "FilterPolicy" {
		delete(sub.Attributes, name)
	} else {
		sub.Attributes[name] = value
	}
	return nil, s.state.save(ctx, kindSubscription, subArn, sub)
}

func (s *Server) listSubscriptions(ctx context.Context, p params) (any, error) {
	subs, err := loadAll[subscriptionRecord](ctx, s.state, kindSubscription)
	if err != nil {
		return nil, err
	}
	page, next, err := paginate(subs, p.get("NextToken"), pageSize)
	if err != nil {
		return nil, err
	}
	return &sns.ListSubscriptionsOutput{Subscriptions: toSubscriptions(page), NextToken: next}, nil
}

func (s *Server) listSubscriptionsByTopic(ctx context.Context, p params) (any, error) {
	topicArn, err := requireArn(p, "TopicArn")
	if err != nil {
		return nil, err
	}
	if _, err := s.state.topic(ctx, topicArn); err != nil {
		return nil, err
	}
	subs, err := s.state.subscriptionsOf(ctx, topicArn)
	if err != nil {
		return nil, err
	}
	page, next, err := paginate(subs, p.get("NextToken"), pageSize)
	if err != nil {
		return nil, err
	}
	return &sns.ListSubscriptionsByTopicOutput{Subscriptions: toSubscriptions(page), NextToken: next}, nil
}

func toSubscriptions(subs []*subscriptionRecord) []sns.Subscription {
	out := make([]sns.Subscription, 0, len(subs))
	for _, sub := range subs {
		out = append(out, sns.Subscription{
			SubscriptionArn: sub.listedArn(),
			Owner:           sub.Owner,
			Protocol:        sub.Protocol,
			Endpoint:        sub.Endpoint,
			TopicArn:        sub.TopicArn,
		})
	}
	return out
}

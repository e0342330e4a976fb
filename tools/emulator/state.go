package emulator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/raywall/fast-sns/sns"
	"github.com/raywall/fast-sns/tools/emulator/store"
)

const (
	kindTopic        = "topic"
	kindSubscription = "subscription"
	kindApplication  = "application"
	kindEndpoint     = "endpoint"
	kindSMS          = "sms"
	kindOptOut       = "optout"

	smsAttributesID = "attributes"

	// pageSize é o tamanho de página das listagens (100 no SNS).
	pageSize = 100
)

type topicRecord struct {
	Arn        string            `json:"arn"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes"`
	Tags       []sns.Tag         `json:"tags,omitempty"`
	Sequence   uint64            `json:"sequence"`
}

func (t *topicRecord) fifo() bool { return t.Attributes["FifoTopic"] == "true" }

type subscriptionRecord struct {
	Arn        string            `json:"arn"`
	TopicArn   string            `json:"topic_arn"`
	Protocol   string            `json:"protocol"`
	Endpoint   string            `json:"endpoint"`
	Owner      string            `json:"owner"`
	Attributes map[string]string `json:"attributes"`
	Pending    bool              `json:"pending"`
	Token      string            `json:"token,omitempty"`
}

func (s *subscriptionRecord) raw() bool { return s.Attributes["RawMessageDelivery"] == "true" }

// listedArn é o ARN exibido nas listagens ("PendingConfirmation" enquanto pendente).
func (s *subscriptionRecord) listedArn() string {
	if s.Pending {
		return "PendingConfirmation"
	}
	return s.Arn
}

type applicationRecord struct {
	Arn        string            `json:"arn"`
	Name       string            `json:"name"`
	Platform   string            `json:"platform"`
	Attributes map[string]string `json:"attributes"`
}

type endpointRecord struct {
	Arn            string            `json:"arn"`
	ApplicationArn string            `json:"application_arn"`
	Attributes     map[string]string `json:"attributes"`
}

func (e *endpointRecord) enabled() bool { return e.Attributes["Enabled"] != "false" }

// state serializa os registros do emulador em um store.Store.
type state struct {
	st store.Store
}

func load[T any](ctx context.Context, s *state, kind, id string) (*T, error) {
	data, err := s.st.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func loadAll[T any](ctx context.Context, s *state, kind string) ([]*T, error) {
	records, err := s.st.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(records))
	for _, r := range records {
		var v T
		if err := json.Unmarshal(r.Data, &v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}

func (s *state) save(ctx context.Context, kind, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.st.Put(ctx, kind, id, data)
}

func (s *state) remove(ctx context.Context, kind, id string) error {
	return s.st.Delete(ctx, kind, id)
}

func (s *state) topic(ctx context.Context, arn string) (*topicRecord, error) {
	t, err := load[topicRecord](ctx, s, kindTopic, arn)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Topic does not exist")
	}
	return t, err
}

func (s *state) subscription(ctx context.Context, arn string) (*subscriptionRecord, error) {
	sub, err := load[subscriptionRecord](ctx, s, kindSubscription, arn)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Subscription does not exist")
	}
	return sub, err
}

func (s *state) application(ctx context.Context, arn string) (*applicationRecord, error) {
	app, err := load[applicationRecord](ctx, s, kindApplication, arn)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("PlatformApplication does not exist")
	}
	return app, err
}

func (s *state) endpoint(ctx context.Context, arn string) (*endpointRecord, error) {
	ep, err := load[endpointRecord](ctx, s, kindEndpoint, arn)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Endpoint does not exist")
	}
	return ep, err
}

func (s *state) subscriptionsOf(ctx context.Context, topicArn string) ([]*subscriptionRecord, error) {
	all, err := loadAll[subscriptionRecord](ctx, s, kindSubscription)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, sub := range all {
		if sub.TopicArn == topicArn {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *state) endpointsOf(ctx context.Context, appArn string) ([]*endpointRecord, error) {
	all, err := loadAll[endpointRecord](ctx, s, kindEndpoint)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, ep := range all {
		if ep.ApplicationArn == appArn {
			out = append(out, ep)
		}
	}
	return out, nil
}

func (s *state) optedOut(ctx context.Context, phone string) (bool, error) {
	_, err := s.st.Get(ctx, kindOptOut, phone)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// paginate devolve uma página de items a partir do NextToken opaco.
func paginate[T any](items []T, token string, size int) ([]T, string, error) {
	start := 0
	if token != "" {
		raw, err := base64.RawURLEncoding.DecodeString(token)
		if err != nil || !strings.HasPrefix(string(raw), "offset:") {
			return nil, "", invalidParameter("NextToken")
		}
		start, err = strconv.Atoi(strings.TrimPrefix(string(raw), "offset:"))
		if err != nil || start < 0 || start > len(items) {
			return nil, "", invalidParameter("NextToken")
		}
	}

	end := start + size
	if end >= len(items) {
		return items[start:], "", nil
	}
	next := base64.RawURLEncoding.EncodeToString([]byte("offset:" + strconv.Itoa(end)))
	return items[start:end], next, nil
}

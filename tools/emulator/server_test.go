package emulator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/raywall/fast-sns/pkg/config"
	"github.com/raywall/fast-sns/sns"
	"github.com/raywall/fast-sns/tools/emulator/delivery"
	"github.com/raywall/fast-sns/tools/emulator/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testAccount = "123456789012"
	ordersArn   = "arn:aws:sns:us-east-1:123456789012:orders"
	queueArn    = "arn:aws:sqs:us-east-1:123456789012:orders-queue"
)

type delivered struct {
	target delivery.Target
	n      delivery.Notification
}

type recordingDeliverer struct {
	mu  sync.Mutex
	got []delivered
}

func (r *recordingDeliverer) Deliver(_ context.Context, t delivery.Target, n delivery.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, delivered{target: t, n: n})
	return nil
}

func (r *recordingDeliverer) all() []delivered {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]delivered(nil), r.got...)
}

func (r *recordingDeliverer) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = nil
}

type fixture struct {
	srv    *Server
	client *sns.Client
	rec    *recordingDeliverer
}

func testConf() config.EmulatorConf {
	return config.EmulatorConf{Port: 9911, Region: "us-east-1", AccountID: testAccount}
}

func newFixture(t *testing.T, cfg config.EmulatorConf, faults *Faults, opts ...Option) *fixture {
	t.Helper()
	rec := &recordingDeliverer{}
	srv := NewServer(cfg, store.NewMemory(), rec, faults, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := sns.New(context.Background(), sns.Options{
		Region:      "us-east-1",
		Endpoint:    ts.URL,
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "secret", ""),
		Retry:       sns.RetryPolicy{MaxAttempts: 1},
	})
	require.NoError(t, err)
	t.Cleanup(client.Shutdown)

	return &fixture{srv: srv, client: client, rec: rec}
}

func call(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) createTopic(t *testing.T, name string, attrs map[string]string) string {
	t.Helper()
	out, err := f.client.CreateTopic(context.Background(), &sns.CreateTopicInput{Name: name, Attributes: attrs})
	require.NoError(t, err)
	return out.TopicArn
}

func TestTopics_Lifecycle(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()

	arn := f.createTopic(t, "orders", nil)
	assert.Equal(t, ordersArn, arn)
	assert.Equal(t, ordersArn, f.createTopic(t, "orders", nil), "CreateTopic deve ser idempotente")

	list, err := f.client.ListTopics(ctx, &sns.ListTopicsInput{})
	require.NoError(t, err)
	require.Len(t, list.Topics, 1)
	assert.Equal(t, ordersArn, list.Topics[0].TopicArn)
	assert.NotEmpty(t, list.RequestID)

	require.NoError(t, f.client.SetTopicAttributes(ctx, &sns.SetTopicAttributesInput{
		TopicArn: ordersArn, AttributeName: "DisplayName", AttributeValue: "Pedidos",
	}))
	attrs, err := f.client.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{TopicArn: ordersArn})
	require.NoError(t, err)
	assert.Equal(t, "Pedidos", attrs.Attributes["DisplayName"])
	assert.Equal(t, testAccount, attrs.Attributes["Owner"])
	assert.Equal(t, "0", attrs.Attributes["SubscriptionsConfirmed"])
	assert.Contains(t, attrs.Attributes["Policy"], "__default_statement_ID")

	err = f.client.SetTopicAttributes(ctx, &sns.SetTopicAttributesInput{
		TopicArn: ordersArn, AttributeName: "Unknown", AttributeValue: "x",
	})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))

	require.NoError(t, f.client.DeleteTopic(ctx, &sns.DeleteTopicInput{TopicArn: ordersArn}))
	require.NoError(t, f.client.DeleteTopic(ctx, &sns.DeleteTopicInput{TopicArn: ordersArn}), "DeleteTopic deve ser idempotente")

	_, err = f.client.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{TopicArn: ordersArn})
	var nf *sns.NotFoundException
	assert.ErrorAs(t, err, &nf)
}

func TestCreateTopic_Validation(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		attrs map[string]string
	}{
		{"orders.fifo", nil},
		{"orders", map[string]string{"FifoTopic": "true"}},
		{"orders!", nil},
		{"orders", map[string]string{"ContentBasedDeduplication": "true"}},
		{"orders", map[string]string{"Nope": "1"}},
	}
	for _, tc := range cases {
		_, err := f.client.CreateTopic(ctx, &sns.CreateTopicInput{Name: tc.name, Attributes: tc.attrs})
		assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err), "%s %v", tc.name, tc.attrs)
	}

	fifo := f.createTopic(t, "orders.fifo", map[string]string{"FifoTopic": "true"})
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:orders.fifo", fifo)

	f.createTopic(t, "billing", map[string]string{"DisplayName": "A"})
	_, err := f.client.CreateTopic(ctx, &sns.CreateTopicInput{Name: "billing", Attributes: map[string]string{"DisplayName": "B"}})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))
}

func TestListTopics_Pagination(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		f.createTopic(t, fmt.Sprintf("topic-%03d", i), nil)
	}

	page1, err := f.client.ListTopics(ctx, &sns.ListTopicsInput{})
	require.NoError(t, err)
	assert.Len(t, page1.Topics, 100)
	require.NotEmpty(t, page1.NextToken)

	page2, err := f.client.ListTopics(ctx, &sns.ListTopicsInput{NextToken: page1.NextToken})
	require.NoError(t, err)
	assert.Len(t, page2.Topics, 50)
	assert.Empty(t, page2.NextToken)

	all, err := sns.ListAllTopics(ctx, f.client)
	require.NoError(t, err)
	assert.Len(t, all, 150)

	_, err = f.client.ListTopics(ctx, &sns.ListTopicsInput{NextToken: "garbage"})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))
}

func TestSubscribe_HTTPConfirmation(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()
	f.createTopic(t, "orders", nil)

	out, err := f.client.Subscribe(ctx, &sns.SubscribeInput{TopicArn: ordersArn, Protocol: "http", Endpoint: "http://localhost:8080/hook"})
	require.NoError(t, err)
	assert.Equal(t, "pending confirmation", out.SubscriptionArn)

	f.srv.Wait()
	got := f.rec.all()
	require.Len(t, got, 1)
	conf := got[0].n
	assert.Equal(t, delivery.TypeSubscriptionConfirmation, conf.Type)
	assert.NotEmpty(t, conf.Token)
	assert.Contains(t, conf.SubscribeURL, "Action=ConfirmSubscription")

	subs, err := f.client.ListSubscriptionsByTopic(ctx, &sns.ListSubscriptionsByTopicInput{TopicArn: ordersArn})
	require.NoError(t, err)
	require.Len(t, subs.Subscriptions, 1)
	assert.Equal(t, "PendingConfirmation", subs.Subscriptions[0].SubscriptionArn)

	// SubscribeURL é um GET no próprio emulador.
	u, err := url.Parse(conf.SubscribeURL)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?"+u.RawQuery, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<ConfirmSubscriptionResult>")

	again, err := f.client.Subscribe(ctx, &sns.SubscribeInput{TopicArn: ordersArn, Protocol: "http", Endpoint: "http://localhost:8080/hook"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(again.SubscriptionArn, ordersArn+":"))

	attrs, err := f.client.GetSubscriptionAttributes(ctx, &sns.GetSubscriptionAttributesInput{SubscriptionArn: again.SubscriptionArn})
	require.NoError(t, err)
	assert.Equal(t, "false", attrs.Attributes["PendingConfirmation"])
	assert.Equal(t, "http", attrs.Attributes["Protocol"])

	_, err = f.client.ConfirmSubscription(ctx, &sns.ConfirmSubscriptionInput{TopicArn: ordersArn, Token: "wrong"})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))
}

func TestSubscribe_Validation(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()
	f.createTopic(t, "orders", nil)

	cases := []sns.SubscribeInput{
		{TopicArn: ordersArn, Protocol: "http", Endpoint: "https://wrong-scheme"},
		{TopicArn: ordersArn, Protocol: "sqs", Endpoint: "not-an-arn"},
		{TopicArn: ordersArn, Protocol: "sms", Endpoint: "abc"},
		{TopicArn: ordersArn, Protocol: "sqs", Endpoint: queueArn, Attributes: map[string]string{"FilterPolicy": "{"}},
		{TopicArn: ordersArn, Protocol: "sqs", Endpoint: queueArn, Attributes: map[string]string{"RawMessageDelivery": "maybe"}},
	}
	for _, in := range cases {
		_, err := f.client.Subscribe(ctx, &in)
		assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err), "%+v", in)
	}

	_, err := f.client.Subscribe(ctx, &sns.SubscribeInput{TopicArn: ordersArn + "-missing", Protocol: "sqs", Endpoint: queueArn})
	assert.Equal(t, sns.CodeNotFound, sns.ErrorCode(err))
}

func TestPublish_FanOutWithFilterPolicy(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()
	f.createTopic(t, "orders", nil)

	filtered, err := f.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: ordersArn, Protocol: "sqs", Endpoint: queueArn,
		Attributes: map[string]string{"FilterPolicy": `{"event":["created"]}`, "RawMessageDelivery": "true"},
	})
	require.NoError(t, err)
	all, err := f.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: ordersArn, Protocol: "sqs", Endpoint: queueArn + "-all",
	})
	require.NoError(t, err)
	_, err = f.client.Subscribe(ctx, &sns.SubscribeInput{TopicArn: ordersArn, Protocol: "email", Endpoint: "ops@example.com"})
	require.NoError(t, err)

	pub, err := f.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          ordersArn,
		Message:           `{"id":1}`,
		Subject:           "novo pedido",
		MessageAttributes: map[string]sns.MessageAttributeValue{"event": sns.StringAttribute("created")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, pub.MessageID)

	f.srv.Wait()
	got := f.rec.all()
	require.Len(t, got, 2, "a assinatura email pendente não recebe")
	for _, d := range got {
		assert.Equal(t, pub.MessageID, d.n.MessageID)
		assert.Equal(t, delivery.TypeNotification, d.n.Type)
		assert.Equal(t, "novo pedido", d.n.Subject)
		assert.Equal(t, "created", d.n.Attributes["event"].StringValue)
		if d.target.SubscriptionArn == filtered.SubscriptionArn {
			assert.True(t, d.target.Raw)
		}
	}

	f.rec.reset()
	_, err = f.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          ordersArn,
		Message:           `{"id":2}`,
		MessageAttributes: map[string]sns.MessageAttributeValue{"event": sns.StringAttribute("deleted")},
	})
	require.NoError(t, err)
	f.srv.Wait()
	got = f.rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, all.SubscriptionArn, got[0].target.SubscriptionArn)
}

func TestPublish_MessageStructure(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()
	f.createTopic(t, "orders", nil)
	_, err := f.client.Subscribe(ctx, &sns.SubscribeInput{TopicArn: ordersArn, Protocol: "sqs", Endpoint: queueArn})
	require.NoError(t, err)

	_, err = f.client.Publish(ctx, &sns.PublishInput{TopicArn: ordersArn, MessageStructure: "json", Message: `{"sqs":"only sqs"}`})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))

	_, err = f.client.Publish(ctx, &sns.PublishInput{TopicArn: ordersArn, MessageStructure: "json", Message: `{"default":"todos","sqs":"fila"}`})
	require.NoError(t, err)
	f.srv.Wait()
	got := f.rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, "fila", got[0].n.Message)

	_, err = f.client.Publish(ctx, &sns.PublishInput{TopicArn: ordersArn + "-missing", Message: "x"})
	assert.Equal(t, sns.CodeNotFound, sns.ErrorCode(err))

	_, err = f.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          ordersArn,
		Message:           "x",
		MessageAttributes: map[string]sns.MessageAttributeValue{"total": {DataType: "Number", StringValue: "abc"}},
	})
	assert.Equal(t, sns.CodeInvalidParameterValue, sns.ErrorCode(err))
}

func TestPublish_Fifo(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()
	arn := f.createTopic(t, "orders.fifo", map[string]string{"FifoTopic": "true", "ContentBasedDeduplication": "true"})

	_, err := f.client.Publish(ctx, &sns.PublishInput{TopicArn: arn, Message: "a"})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err), "MessageGroupId é obrigatório")

	first, err := f.client.Publish(ctx, &sns.PublishInput{TopicArn: arn, Message: "a", MessageGroupID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, "00000000000000000001", first.SequenceNumber)

	dup, err := f.client.Publish(ctx, &sns.PublishInput{TopicArn: arn, Message: "a", MessageGroupID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, first.MessageID, dup.MessageID)
	assert.Equal(t, first.SequenceNumber, dup.SequenceNumber)

	next, err := f.client.Publish(ctx, &sns.PublishInput{TopicArn: arn, Message: "b", MessageGroupID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, "00000000000000000002", next.SequenceNumber)

	std := f.createTopic(t, "orders", nil)
	_, err = f.client.Publish(ctx, &sns.PublishInput{TopicArn: std, Message: "a", MessageDeduplicationID: "d1"})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))
}

func TestPublishBatch(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()
	f.createTopic(t, "orders", nil)

	out, err := f.client.PublishBatch(ctx, &sns.PublishBatchInput{
		TopicArn: ordersArn,
		PublishBatchRequestEntries: []sns.PublishBatchRequestEntry{
			{ID: "m1", Message: "um"},
			{ID: "m2", Message: "dois", MessageAttributes: map[string]sns.MessageAttributeValue{"n": {DataType: "Number", StringValue: "x"}}},
			{ID: "m3", Message: "três"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Successful, 2)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "m2", out.Failed[0].ID)
	assert.Equal(t, sns.CodeInvalidParameterValue, out.Failed[0].Code)
	assert.True(t, out.Failed[0].SenderFault)

	h := f.srv.Handler()
	base := func() url.Values {
		return url.Values{"Action": {"PublishBatch"}, "TopicArn": {ordersArn}}
	}

	rec := call(t, h, base())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Code>EmptyBatchRequest</Code>")

	form := base()
	for i := 1; i <= 11; i++ {
		form.Set(fmt.Sprintf("PublishBatchRequestEntries.member.%d.Id", i), fmt.Sprintf("m%d", i))
		form.Set(fmt.Sprintf("PublishBatchRequestEntries.member.%d.Message", i), "x")
	}
	assert.Contains(t, call(t, h, form).Body.String(), "<Code>TooManyEntriesInBatchRequest</Code>")

	form = base()
	for i := 1; i <= 2; i++ {
		form.Set(fmt.Sprintf("PublishBatchRequestEntries.member.%d.Id", i), "same")
		form.Set(fmt.Sprintf("PublishBatchRequestEntries.member.%d.Message", i), "x")
	}
	assert.Contains(t, call(t, h, form).Body.String(), "<Code>BatchEntryIdsNotDistinct</Code>")

	form = base()
	for i := 1; i <= 2; i++ {
		form.Set(fmt.Sprintf("PublishBatchRequestEntries.member.%d.Id", i), fmt.Sprintf("m%d", i))
		form.Set(fmt.Sprintf("PublishBatchRequestEntries.member.%d.Message", i), strings.Repeat("x", 200*1024))
	}
	assert.Contains(t, call(t, h, form).Body.String(), "<Code>BatchRequestTooLong</Code>")
}

func TestPermissions(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()
	f.createTopic(t, "orders", nil)

	in := &sns.AddPermissionInput{TopicArn: ordersArn, Label: "partner", AWSAccountID: []string{"111122223333"}, ActionName: []string{"Publish"}}
	require.NoError(t, f.client.AddPermission(ctx, in))
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(f.client.AddPermission(ctx, in)))

	attrs, err := f.client.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{TopicArn: ordersArn})
	require.NoError(t, err)
	assert.Contains(t, attrs.Attributes["Policy"], `"Sid":"partner"`)
	assert.Contains(t, attrs.Attributes["Policy"], "arn:aws:iam::111122223333:root")

	require.NoError(t, f.client.RemovePermission(ctx, &sns.RemovePermissionInput{TopicArn: ordersArn, Label: "partner"}))
	attrs, err = f.client.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{TopicArn: ordersArn})
	require.NoError(t, err)
	assert.NotContains(t, attrs.Attributes["Policy"], "partner")
	assert.Contains(t, attrs.Attributes["Policy"], "__default_statement_ID")
}

func TestPlatformEndpoints(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()

	app, err := f.client.CreatePlatformApplication(ctx, &sns.CreatePlatformApplicationInput{
		Name: "mobile", Platform: "GCM", Attributes: map[string]string{"PlatformCredential": "key"},
	})
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:app/GCM/mobile", app.PlatformApplicationArn)

	ep, err := f.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{PlatformApplicationArn: app.PlatformApplicationArn, Token: "device-1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ep.EndpointArn, "arn:aws:sns:us-east-1:123456789012:endpoint/GCM/mobile/"))

	same, err := f.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{PlatformApplicationArn: app.PlatformApplicationArn, Token: "device-1"})
	require.NoError(t, err)
	assert.Equal(t, ep.EndpointArn, same.EndpointArn)

	_, err = f.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{PlatformApplicationArn: app.PlatformApplicationArn, Token: "device-1", CustomUserData: "other"})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))

	eps, err := sns.ListAllEndpointsByPlatformApplication(ctx, f.client, app.PlatformApplicationArn)
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, "device-1", eps[0].Attributes["Token"])

	_, err = f.client.Publish(ctx, &sns.PublishInput{TargetArn: ep.EndpointArn, Message: "push"})
	require.NoError(t, err)

	require.NoError(t, f.client.SetEndpointAttributes(ctx, &sns.SetEndpointAttributesInput{
		EndpointArn: ep.EndpointArn, Attributes: map[string]string{"Enabled": "false"},
	}))
	_, err = f.client.Publish(ctx, &sns.PublishInput{TargetArn: ep.EndpointArn, Message: "push"})
	var disabled *sns.EndpointDisabledException
	assert.ErrorAs(t, err, &disabled)

	require.NoError(t, f.client.DeletePlatformApplication(ctx, &sns.DeletePlatformApplicationInput{PlatformApplicationArn: app.PlatformApplicationArn}))
	_, err = f.client.GetEndpointAttributes(ctx, &sns.GetEndpointAttributesInput{EndpointArn: ep.EndpointArn})
	assert.Equal(t, sns.CodeNotFound, sns.ErrorCode(err))
	apps, err := sns.ListAllPlatformApplications(ctx, f.client)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestSMS(t *testing.T) {
	cfg := testConf()
	cfg.OptedOut = []string{"+15550001111"}
	f := newFixture(t, cfg, nil)
	ctx := context.Background()
	require.NoError(t, f.srv.Seed(ctx))

	_, err := f.client.SetSMSAttributes(ctx, &sns.SetSMSAttributesInput{Attributes: map[string]string{"DefaultSMSType": "Transactional"}})
	require.NoError(t, err)
	_, err = f.client.SetSMSAttributes(ctx, &sns.SetSMSAttributesInput{Attributes: map[string]string{"DefaultSMSType": "Loud"}})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))

	attrs, err := f.client.GetSMSAttributes(ctx, &sns.GetSMSAttributesInput{})
	require.NoError(t, err)
	assert.Equal(t, "Transactional", attrs.Attributes["DefaultSMSType"])

	check, err := f.client.CheckIfPhoneNumberIsOptedOut(ctx, &sns.CheckIfPhoneNumberIsOptedOutInput{PhoneNumber: "+15550001111"})
	require.NoError(t, err)
	assert.True(t, check.IsOptedOut)

	_, err = f.client.Publish(ctx, &sns.PublishInput{PhoneNumber: "+15550001111", Message: "oi"})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))

	phones, err := sns.ListAllPhoneNumbersOptedOut(ctx, f.client)
	require.NoError(t, err)
	assert.Equal(t, []string{"+15550001111"}, phones)

	_, err = f.client.OptInPhoneNumber(ctx, &sns.OptInPhoneNumberInput{PhoneNumber: "+15550001111"})
	require.NoError(t, err)
	check, err = f.client.CheckIfPhoneNumberIsOptedOut(ctx, &sns.CheckIfPhoneNumberIsOptedOutInput{PhoneNumber: "+15550001111"})
	require.NoError(t, err)
	assert.False(t, check.IsOptedOut)

	_, err = f.client.Publish(ctx, &sns.PublishInput{PhoneNumber: "+15550001111", Message: "oi"})
	assert.NoError(t, err)
}

func TestDispatch_Errors(t *testing.T) {
	srv := NewServer(testConf(), store.NewMemory(), nil, nil)
	h := srv.Handler()

	rec := call(t, h, url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Code>MissingAction</Code>")
	assert.NotEmpty(t, rec.Header().Get("x-amzn-RequestId"))

	rec = call(t, h, url.Values{"Action": {"DeleteQueue"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Code>InvalidAction</Code>")
	assert.Contains(t, rec.Body.String(), "<Type>Sender</Type>")

	health := httptest.NewRecorder()
	h.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body.String())
}

func TestDispatch_ActionPanicReleasesLock(t *testing.T) {
	srv := NewServer(testConf(), store.NewMemory(), nil, nil)
	srv.actions["CreateTopic"] = func(context.Context, params) (any, error) {
		var m map[string]any
		m["boom"] = 1
		return nil, nil
	}
	h := srv.Handler()

	rec := call(t, h, url.Values{"Action": {"CreateTopic"}, "Name": {"orders"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Code>InternalError</Code>")

	rec = call(t, h, url.Values{"Action": {"ListTopics"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubscribe_ObjectFilterPolicy(t *testing.T) {
	f := newFixture(t, testConf(), nil)
	ctx := context.Background()
	f.createTopic(t, "orders", nil)

	_, err := f.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: ordersArn, Protocol: "sqs", Endpoint: queueArn,
		Attributes: map[string]string{
			"FilterPolicyScope": "MessageBody",
			"FilterPolicy":      `{"a":[{"anything-but":[{"x":1}]}]}`,
		},
	})
	assert.Equal(t, sns.CodeInvalidParameter, sns.ErrorCode(err))

	sub, err := f.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: ordersArn, Protocol: "sqs", Endpoint: queueArn,
		Attributes: map[string]string{
			"FilterPolicyScope": "MessageBody",
			"FilterPolicy":      `{"a":[{"anything-but":["x"]}]}`,
		},
	})
	require.NoError(t, err)

	_, err = f.client.Publish(ctx, &sns.PublishInput{TopicArn: ordersArn, Message: `{"a":{"x":1}}`})
	require.NoError(t, err)
	f.srv.Wait()
	got := f.rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, sub.SubscriptionArn, got[0].target.SubscriptionArn)

	_, err = f.client.ListTopics(ctx, &sns.ListTopicsInput{})
	require.NoError(t, err)
}

func TestFaults(t *testing.T) {
	faults, err := NewFaults([]config.FaultConf{
		{ID: "throttle", Expr: `action == "Publish" && calls <= 2`, Code: sns.CodeThrottled},
		{ID: "once", Expr: `action == "CreateTopic" && "Name" in params && params["Name"] == "boom"`, Code: sns.CodeInternalError, Status: 500, Times: 1},
	})
	require.NoError(t, err)
	f := newFixture(t, testConf(), faults)
	ctx := context.Background()

	_, err = f.client.CreateTopic(ctx, &sns.CreateTopicInput{Name: "boom"})
	var internal *sns.InternalErrorException
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "injected fault once", internal.Message)
	f.createTopic(t, "boom", nil)
	f.createTopic(t, "orders", nil)

	for i := 0; i < 2; i++ {
		_, err = f.client.Publish(ctx, &sns.PublishInput{TopicArn: ordersArn, Message: "x"})
		assert.Equal(t, sns.CodeThrottled, sns.ErrorCode(err))
	}
	_, err = f.client.Publish(ctx, &sns.PublishInput{TopicArn: ordersArn, Message: "x"})
	assert.NoError(t, err)

	_, err = NewFaults([]config.FaultConf{{ID: "bad", Expr: "action +", Code: "X"}})
	assert.ErrorContains(t, err, "fault bad")
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) Count(name string, value float64, tags []string) error {
	return m.Called(name, value, tags).Error(0)
}

func (m *mockProvider) Gauge(name string, value float64, tags []string) error {
	return m.Called(name, value, tags).Error(0)
}

func (m *mockProvider) Histogram(name string, value float64, tags []string) error {
	return m.Called(name, value, tags).Error(0)
}

func TestServer_Metrics(t *testing.T) {
	mp := &mockProvider{}
	mp.On("Count", "sns.emulator.requests", float64(1),
		[]string{"region:us-east-1", "action:CreateTopic", "outcome:success"}).Return(nil).Once()
	mp.On("Count", "sns.emulator.requests", float64(1),
		[]string{"region:us-east-1", "action:GetTopicAttributes", "outcome:service_error"}).Return(nil).Once()

	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	f := newFixture(t, testConf(), nil, WithMetrics(mp, metricsHandler))
	ctx := context.Background()

	f.createTopic(t, "orders", nil)
	_, err := f.client.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{TopicArn: ordersArn + "-missing"})
	assert.Equal(t, sns.CodeNotFound, sns.ErrorCode(err))

	mp.AssertNumberOfCalls(t, "Count", 2)

	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "# metrics", rec.Body.String())
}

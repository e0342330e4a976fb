package sns

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ordersArn      = "arn:aws:sns:us-east-1:123:orders"
	gcmAppArn      = "arn:aws:sns:us-west-2:123456789012:app/GCM/gcmpushapp"
	gcmEndpointArn = "arn:aws:sns:us-west-2:123456789012:endpoint/GCM/gcmpushapp/5e3e9847-3183-3f18-a7e8-671c3a57d4b3"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func errorBody(code, message string) string {
	return fmt.Sprintf(`<ErrorResponse xmlns="http://sns.amazonaws.com/doc/2010-03-31/">
  <Error>
    <Type>Sender</Type>
    <Code>%s</Code>
    <Message>%s</Message>
  </Error>
  <RequestId>req-%s</RequestId>
</ErrorResponse>`, code, message, code)
}

func fastRetry() RetryPolicy {
	return RetryPolicy{
		BaseDelay:          time.Millisecond,
		ThrottledBaseDelay: time.Millisecond,
		MaxBackoff:         5 * time.Millisecond,
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc, fns ...func(*Options)) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts := Options{
		Endpoint:    srv.URL,
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
		Retry:       fastRetry(),
	}
	for _, fn := range fns {
		fn(&opts)
	}
	c, err := New(context.Background(), opts)
	require.NoError(t, err)
	return c
}

func TestClient_CreateTopic(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "CreateTopic", r.PostForm.Get("Action"))
		assert.Equal(t, APIVersion, r.PostForm.Get("Version"))
		assert.Equal(t, "orders", r.PostForm.Get("Name"))
		assert.Equal(t, "DisplayName", r.PostForm.Get("Attributes.entry.1.key"))
		assert.Equal(t, "Orders", r.PostForm.Get("Attributes.entry.1.value"))
		assert.Equal(t, "team", r.PostForm.Get("Tags.member.1.Key"))
		assert.Equal(t, "checkout", r.PostForm.Get("Tags.member.1.Value"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "AWS4-HMAC-SHA256"), "requisição não assinada")
		assert.Contains(t, r.Header.Get("Authorization"), "/us-east-1/sns/aws4_request")
		w.Write(fixture(t, "create_topic.xml"))
	})

	in := &CreateTopicInput{
		Name:       "orders",
		Attributes: map[string]string{"DisplayName": "Orders"},
		Tags:       []Tag{{Key: "team", Value: "checkout"}},
	}
	first, err := c.CreateTopic(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, ordersArn, first.TopicArn)
	assert.Equal(t, "a8dec8b3-33a4-11df-8963-01868b7c937a", first.RequestID)

	second, err := c.CreateTopic(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.TopicArn, second.TopicArn)
	assert.EqualValues(t, 2, calls.Load())
}

func TestClient_PublishMessageAttributes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f := r.PostForm
		assert.Equal(t, "Publish", f.Get("Action"))
		assert.Equal(t, ordersArn, f.Get("TopicArn"))
		assert.Equal(t, "hello", f.Get("Message"))
		assert.Equal(t, "greeting", f.Get("Subject"))
		// chaves ordenadas: amount, payload, tenant
		assert.Equal(t, "amount", f.Get("MessageAttributes.entry.1.Name"))
		assert.Equal(t, "Number", f.Get("MessageAttributes.entry.1.Value.DataType"))
		assert.Equal(t, "42", f.Get("MessageAttributes.entry.1.Value.StringValue"))
		assert.Equal(t, "payload", f.Get("MessageAttributes.entry.2.Name"))
		assert.Equal(t, "Binary", f.Get("MessageAttributes.entry.2.Value.DataType"))
		assert.Equal(t, "AQID", f.Get("MessageAttributes.entry.2.Value.BinaryValue"))
		assert.Equal(t, "tenant", f.Get("MessageAttributes.entry.3.Name"))
		assert.Equal(t, "acme", f.Get("MessageAttributes.entry.3.Value.StringValue"))
		assert.Equal(t, "g1", f.Get("MessageGroupId"))
		w.Write(fixture(t, "publish.xml"))
	})

	out, err := c.Publish(context.Background(), &PublishInput{
		TopicArn: ordersArn,
		Message:  "hello",
		Subject:  "greeting",
		MessageAttributes: map[string]MessageAttributeValue{
			"tenant":  StringAttribute("acme"),
			"amount":  NumberAttribute(42),
			"payload": BinaryAttribute([]byte{1, 2, 3}),
		},
		MessageGroupID: "g1",
	})
	require.NoError(t, err)
	assert.Equal(t, "94f20ce6-13c5-43a0-9a9e-ca52d816e90b", out.MessageID)
	assert.Equal(t, "f187a3c1-376f-11df-8963-01868b7c937a", out.RequestID)
}

func TestClient_Decoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostForm.Get("Action") {
		case "GetTopicAttributes":
			w.Write(fixture(t, "get_topic_attributes.xml"))
		case "DeleteTopic":
			w.Write(fixture(t, "delete_topic.xml"))
		case "PublishBatch":
			assert.Equal(t, "m1", r.PostForm.Get("PublishBatchRequestEntries.member.1.Id"))
			assert.Equal(t, "second", r.PostForm.Get("PublishBatchRequestEntries.member.2.Message"))
			w.Write(fixture(t, "publish_batch.xml"))
		case "ListPhoneNumbersOptedOut":
			assert.Equal(t, "abc", r.PostForm.Get("nextToken"))
			w.Write(fixture(t, "list_phone_numbers_opted_out.xml"))
		case "CheckIfPhoneNumberIsOptedOut":
			assert.Equal(t, "+15555550100", r.PostForm.Get("phoneNumber"))
			w.Write(fixture(t, "check_opted_out.xml"))
		case "ListSubscriptionsByTopic":
			w.Write(fixture(t, "list_subscriptions_by_topic.xml"))
		case "ListPlatformApplications":
			assert.Equal(t, "apps-1", r.PostForm.Get("NextToken"))
			w.Write(fixture(t, "list_platform_applications.xml"))
		case "ListEndpointsByPlatformApplication":
			assert.Equal(t, gcmAppArn, r.PostForm.Get("PlatformApplicationArn"))
			w.Write(fixture(t, "list_endpoints_by_platform_application.xml"))
		case "GetPlatformApplicationAttributes":
			assert.Equal(t, gcmAppArn, r.PostForm.Get("PlatformApplicationArn"))
			w.Write(fixture(t, "get_platform_application_attributes.xml"))
		case "SetPlatformApplicationAttributes":
			assert.Equal(t, gcmAppArn, r.PostForm.Get("PlatformApplicationArn"))
			assert.Equal(t, "Enabled", r.PostForm.Get("Attributes.entry.1.key"))
			assert.Equal(t, "false", r.PostForm.Get("Attributes.entry.1.value"))
			assert.Equal(t, "EventEndpointCreated", r.PostForm.Get("Attributes.entry.2.key"))
			w.Write(fixture(t, "set_platform_application_attributes.xml"))
		case "DeleteEndpoint":
			assert.Equal(t, gcmEndpointArn, r.PostForm.Get("EndpointArn"))
			w.Write(fixture(t, "delete_endpoint.xml"))
		case "SetSubscriptionAttributes":
			assert.Equal(t, ordersArn+":sub-1", r.PostForm.Get("SubscriptionArn"))
			assert.Equal(t, "RawMessageDelivery", r.PostForm.Get("AttributeName"))
			assert.Equal(t, "true", r.PostForm.Get("AttributeValue"))
			w.Write(fixture(t, "set_subscription_attributes.xml"))
		default:
			t.Errorf("ação inesperada %s", r.PostForm.Get("Action"))
		}
	})
	ctx := context.Background()

	t.Run("Attributes como mapa", func(t *testing.T) {
		out, err := c.GetTopicAttributes(ctx, &GetTopicAttributesInput{TopicArn: ordersArn})
		require.NoError(t, err)
		assert.Equal(t, "Orders", out.Attributes["DisplayName"])
		assert.Equal(t, "2", out.Attributes["SubscriptionsConfirmed"])
		assert.Len(t, out.Attributes, 4)
	})

	t.Run("Operação sem resultado", func(t *testing.T) {
		assert.NoError(t, c.DeleteTopic(ctx, &DeleteTopicInput{TopicArn: ordersArn}))
	})

	t.Run("PublishBatch com falha parcial", func(t *testing.T) {
		out, err := c.PublishBatch(ctx, &PublishBatchInput{
			TopicArn: ordersArn,
			PublishBatchRequestEntries: []PublishBatchRequestEntry{
				{ID: "m1", Message: "first"},
				{ID: "m2", Message: "second"},
			},
		})
		require.NoError(t, err)
		require.Len(t, out.Successful, 1)
		require.Len(t, out.Failed, 1)
		assert.Equal(t, "m1", out.Successful[0].ID)
		assert.Equal(t, "InvalidParameter", out.Failed[0].Code)
		assert.True(t, out.Failed[0].SenderFault)
	})

	t.Run("Campos em minúsculas", func(t *testing.T) {
		out, err := c.ListPhoneNumbersOptedOut(ctx, &ListPhoneNumbersOptedOutInput{NextToken: "abc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"+15555550100", "+15555550101"}, out.PhoneNumbers)
		assert.Equal(t, "next-1", out.NextToken)

		opted, err := c.CheckIfPhoneNumberIsOptedOut(ctx, &CheckIfPhoneNumberIsOptedOutInput{PhoneNumber: "+15555550100"})
		require.NoError(t, err)
		assert.True(t, opted.IsOptedOut)
	})

	t.Run("Lista de assinaturas", func(t *testing.T) {
		out, err := c.ListSubscriptionsByTopic(ctx, &ListSubscriptionsByTopicInput{TopicArn: ordersArn})
		require.NoError(t, err)
		require.Len(t, out.Subscriptions, 1)
		assert.Equal(t, "sqs", out.Subscriptions[0].Protocol)
		assert.Equal(t, "arn:aws:sqs:us-east-1:123:orders-queue", out.Subscriptions[0].Endpoint)
		assert.Empty(t, out.NextToken)
	})

	t.Run("Aplicações com atributos aninhados", func(t *testing.T) {
		out, err := c.ListPlatformApplications(ctx, &ListPlatformApplicationsInput{NextToken: "apps-1"})
		require.NoError(t, err)
		require.Len(t, out.PlatformApplications, 2)
		assert.Equal(t, "arn:aws:sns:us-west-2:123456789012:app/APNS_SANDBOX/apnspushapp", out.PlatformApplications[0].PlatformApplicationArn)
		assert.Equal(t, AttributeMap{"AllowEndpointPolicies": "false"}, out.PlatformApplications[0].Attributes)
		assert.Equal(t, gcmAppArn, out.PlatformApplications[1].PlatformApplicationArn)
		assert.Equal(t, AttributeMap{"AllowEndpointPolicies": "false", "Enabled": "true"}, out.PlatformApplications[1].Attributes)
		assert.Equal(t, "apps-2", out.NextToken)
		assert.Equal(t, "315a335e-85d8-52df-9349-791283cbb529", out.RequestID)
	})

	t.Run("Endpoints com atributos aninhados", func(t *testing.T) {
		out, err := c.ListEndpointsByPlatformApplication(ctx, &ListEndpointsByPlatformApplicationInput{PlatformApplicationArn: gcmAppArn})
		require.NoError(t, err)
		require.Len(t, out.Endpoints, 1)
		assert.Equal(t, gcmEndpointArn, out.Endpoints[0].EndpointArn)
		assert.Equal(t, "UserId=27576823", out.Endpoints[0].Attributes["CustomUserData"])
		assert.Equal(t, "true", out.Endpoints[0].Attributes["Enabled"])
		assert.Len(t, out.Endpoints[0].Attributes, 3)
		assert.Empty(t, out.NextToken)
	})

	t.Run("Atributos da aplicação", func(t *testing.T) {
		out, err := c.GetPlatformApplicationAttributes(ctx, &GetPlatformApplicationAttributesInput{PlatformApplicationArn: gcmAppArn})
		require.NoError(t, err)
		assert.Equal(t, AttributeMap{
			"AllowEndpointPolicies": "false",
			"EventEndpointCreated":  "arn:aws:sns:us-west-2:123456789012:endpoint-created",
		}, out.Attributes)

		assert.NoError(t, c.SetPlatformApplicationAttributes(ctx, &SetPlatformApplicationAttributesInput{
			PlatformApplicationArn: gcmAppArn,
			Attributes: map[string]string{
				"EventEndpointCreated": "arn:aws:sns:us-west-2:123456789012:endpoint-created",
				"Enabled":              "false",
			},
		}))
	})

	t.Run("Operações sem resultado de push e assinatura", func(t *testing.T) {
		assert.NoError(t, c.DeleteEndpoint(ctx, &DeleteEndpointInput{EndpointArn: gcmEndpointArn}))
		assert.NoError(t, c.SetSubscriptionAttributes(ctx, &SetSubscriptionAttributesInput{
			SubscriptionArn: ordersArn + ":sub-1",
			AttributeName:   "RawMessageDelivery",
			AttributeValue:  "true",
		}))
	})
}

func TestClient_ErrorClassification(t *testing.T) {
	cases := []struct {
		code   string
		status int
		target any
	}{
		{CodeAuthorizationError, 403, new(*AuthorizationErrorException)},
		{CodeEndpointDisabled, 400, new(*EndpointDisabledException)},
		{CodeInvalidParameter, 400, new(*InvalidParameterException)},
		{CodeInvalidParameterValue, 400, new(*InvalidParameterValueException)},
		{CodeNotFound, 404, new(*NotFoundException)},
		{CodePlatformApplicationDisabled, 400, new(*PlatformApplicationDisabledException)},
		{CodeSubscriptionLimitExceeded, 403, new(*SubscriptionLimitExceededException)},
		{CodeTopicLimitExceeded, 403, new(*TopicLimitExceededException)},
		{CodeEmptyBatchRequest, 400, new(*EmptyBatchRequestException)},
		{CodeBatchEntryIdsNotDistinct, 400, new(*BatchEntryIdsNotDistinctException)},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				w.Write([]byte(errorBody(tc.code, "boom")))
			})

			_, err := c.GetTopicAttributes(context.Background(), &GetTopicAttributesInput{TopicArn: ordersArn})
			require.Error(t, err)
			assert.True(t, errors.As(err, tc.target), "esperado %T, recebido %T", tc.target, err)

			var svcErr *ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, tc.code, svcErr.Code)
			assert.Equal(t, "boom", svcErr.Message)
			assert.Equal(t, tc.status, svcErr.StatusCode)
			assert.Equal(t, "req-"+tc.code, svcErr.RequestID)
			assert.Equal(t, "GetTopicAttributes", svcErr.Operation)
			assert.Equal(t, tc.code, ErrorCode(err))
			assert.EqualValues(t, 1, calls.Load(), "erro do chamador não deve ser repetido")
		})
	}

	t.Run("Código desconhecido vira ServiceError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(400)
			w.Write([]byte(errorBody("KMSDisabled", "kms off")))
		})
		_, err := c.GetTopicAttributes(context.Background(), &GetTopicAttributesInput{TopicArn: ordersArn})
		svcErr, ok := err.(*ServiceError)
		require.True(t, ok, "recebido %T", err)
		assert.Equal(t, "KMSDisabled", svcErr.Code)
	})
}

func TestClient_Retry(t *testing.T) {
	t.Run("Throttled esgota as tentativas", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(errorBody(CodeThrottled, "slow down")))
		})

		_, err := c.Publish(context.Background(), &PublishInput{TopicArn: ordersArn, Message: "x"})
		var throttled *ThrottledException
		require.ErrorAs(t, err, &throttled)
		assert.EqualValues(t, DefaultMaxAttempts, calls.Load())
	})

	t.Run("InternalError seguido de sucesso", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(errorBody(CodeInternalError, "oops")))
				return
			}
			w.Write(fixture(t, "publish.xml"))
		})

		out, err := c.Publish(context.Background(), &PublishInput{TopicArn: ordersArn, Message: "x"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.MessageID)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("503 sem XML é repetido", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("upstream unavailable"))
		}, func(o *Options) { o.Retry.MaxAttempts = 2 })

		_, err := c.Publish(context.Background(), &PublishInput{TopicArn: ordersArn, Message: "x"})
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusServiceUnavailable, svcErr.StatusCode)
		assert.Equal(t, "upstream unavailable", svcErr.Message)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("Deadline encerra durante o backoff", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(errorBody(CodeThrottled, "slow down")))
		}, func(o *Options) {
			o.Retry = RetryPolicy{
				MaxAttempts:        10,
				ThrottledBaseDelay: 10 * time.Second,
				MaxBackoff:         10 * time.Second,
				Deadline:           30 * time.Millisecond,
			}
		})

		start := time.Now()
		_, err := c.Publish(context.Background(), &PublishInput{TopicArn: ordersArn, Message: "x"})
		elapsed := time.Since(start)

		var throttled *ThrottledException
		require.ErrorAs(t, err, &throttled)
		assert.Less(t, elapsed, time.Second)
		assert.Less(t, calls.Load(), int32(10))
	})

	t.Run("Cancelamento durante o backoff vira ClientError", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(errorBody(CodeThrottled, "slow down")))
		}, func(o *Options) {
			o.Retry = RetryPolicy{
				MaxAttempts:        10,
				ThrottledBaseDelay: 10 * time.Second,
				MaxBackoff:         10 * time.Second,
			}
		})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		time.AfterFunc(30*time.Millisecond, cancel)

		start := time.Now()
		_, err := c.Publish(ctx, &PublishInput{TopicArn: ordersArn, Message: "x"})

		var cliErr *ClientError
		require.ErrorAs(t, err, &cliErr)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "Publish", cliErr.Operation)
		assert.Less(t, time.Since(start), time.Second)
		assert.GreaterOrEqual(t, calls.Load(), int32(1))
	})

	t.Run("Contexto cancelado não repete", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(errorBody(CodeInternalError, "oops")))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Publish(ctx, &PublishInput{TopicArn: ordersArn, Message: "x"})
		var cliErr *ClientError
		require.ErrorAs(t, err, &cliErr)
		assert.ErrorIs(t, err, context.Canceled)
		assert.EqualValues(t, 0, calls.Load())
	})
}

func TestClient_ClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("<html>not xml"))
	})
	ctx := context.Background()

	t.Run("Publish sem destino", func(t *testing.T) {
		_, err := c.Publish(ctx, &PublishInput{Message: "x"})
		var cliErr *ClientError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, "Publish", cliErr.Operation)
	})

	t.Run("ARN inválido", func(t *testing.T) {
		err := c.DeleteTopic(ctx, &DeleteTopicInput{TopicArn: "orders"})
		var cliErr *ClientError
		require.ErrorAs(t, err, &cliErr)
	})

	t.Run("Protocolo inválido", func(t *testing.T) {
		_, err := c.Subscribe(ctx, &SubscribeInput{TopicArn: ordersArn, Protocol: "carrier-pigeon"})
		var cliErr *ClientError
		require.ErrorAs(t, err, &cliErr)
	})

	assert.EqualValues(t, 0, calls.Load(), "entradas inválidas não podem ser enviadas")

	t.Run("Resposta ilegível", func(t *testing.T) {
		_, err := c.ListTopics(ctx, nil)
		var cliErr *ClientError
		require.ErrorAs(t, err, &cliErr)
		assert.EqualValues(t, 1, calls.Load())
	})
}

func TestClient_Anonymous(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write(fixture(t, "create_topic.xml"))
	}, func(o *Options) { o.Credentials = aws.AnonymousCredentials{} })

	_, err := c.CreateTopic(context.Background(), &CreateTopicInput{Name: "orders"})
	assert.NoError(t, err)
}

func TestClient_Shutdown(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture(t, "create_topic.xml"))
	})

	c.Shutdown()
	c.Shutdown()

	_, err := c.CreateTopic(context.Background(), &CreateTopicInput{Name: "orders"})
	var cliErr *ClientError
	require.ErrorAs(t, err, &cliErr)
	assert.ErrorIs(t, err, ErrClientShutdown)
}

func TestResolveEndpoint(t *testing.T) {
	assert.Equal(t, "https://sns.us-east-1.amazonaws.com/", resolveEndpoint("us-east-1", ""))
	assert.Equal(t, "https://sns.cn-north-1.amazonaws.com.cn/", resolveEndpoint("cn-north-1", ""))
	assert.Equal(t, "https://localhost:9911/", resolveEndpoint("us-east-1", "localhost:9911"))
	assert.Equal(t, "http://127.0.0.1:9911/", resolveEndpoint("us-east-1", "http://127.0.0.1:9911/"))
}

func TestListAllTopics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("NextToken") == "page-2" {
			w.Write(fixture(t, "list_topics_page2.xml"))
			return
		}
		w.Write(fixture(t, "list_topics_page1.xml"))
	})

	topics, err := ListAllTopics(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	assert.Equal(t, "arn:aws:sns:us-east-1:123:shipments", topics[2].TopicArn)
}

package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSClient é o subconjunto do SDK usado na entrega (permite Mocking).
type SQSClient interface {
	GetQueueUrl(ctx context.Context, params *awssqs.GetQueueUrlInput, optFns ...func(*awssqs.Options)) (*awssqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *awssqs.SendMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error)
}

// SQS entrega notificações em filas identificadas pelo ARN do endpoint da assinatura.
type SQS struct {
	client SQSClient

	mu   sync.Mutex
	urls map[string]string
}

// NewSQS cria o Deliverer SQS. As URLs das filas são resolvidas uma vez por ARN.
func NewSQS(client SQSClient) *SQS {
	return &SQS{client: client, urls: map[string]string{}}
}

func (s *SQS) queueURL(ctx context.Context, queueArn string) (string, error) {
	s.mu.Lock()
	url, ok := s.urls[queueArn]
	s.mu.Unlock()
	if ok {
		return url, nil
	}

	parsed, err := arn.Parse(queueArn)
	if err != nil || parsed.Service != "sqs" {
		return "", fmt.Errorf("endpoint SQS inválido: %s", queueArn)
	}

	out, err := s.client.GetQueueUrl(ctx, &awssqs.GetQueueUrlInput{
		QueueName:              aws.String(parsed.Resource),
		QueueOwnerAWSAccountId: aws.String(parsed.AccountID),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SQS GetQueueUrl: %w", err)
	}

	s.mu.Lock()
	s.urls[queueArn] = aws.ToString(out.QueueUrl)
	s.mu.Unlock()
	return aws.ToString(out.QueueUrl), nil
}

func (s *SQS) Deliver(ctx context.Context, target Target, n Notification) error {
	url, err := s.queueURL(ctx, target.Endpoint)
	if err != nil {
		return err
	}

	in := &awssqs.SendMessageInput{QueueUrl: aws.String(url)}
	if target.Raw {
		in.MessageBody = aws.String(n.Message)
		in.MessageAttributes = sqsAttributes(n)
	} else {
		body, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("erro ao serializar notificação: %w", err)
		}
		in.MessageBody = aws.String(string(body))
	}

	if strings.HasSuffix(target.Endpoint, ".fifo") {
		group := n.MessageGroupID
		if group == "" {
			group = n.TopicArn
		}
		dedup := n.DeduplicationID
		if dedup == "" {
			dedup = n.MessageID
		}
		in.MessageGroupId = aws.String(group)
		in.MessageDeduplicationId = aws.String(dedup)
	}

	if _, err := s.client.SendMessage(ctx, in); err != nil {
		return fmt.Errorf("erro no SQS SendMessage: %w", err)
	}
	return nil
}

func sqsAttributes(n Notification) map[string]types.MessageAttributeValue {
	if len(n.Attributes) == 0 {
		return nil
	}
	out := make(map[string]types.MessageAttributeValue, len(n.Attributes))
	for k, v := range n.Attributes {
		attr := types.MessageAttributeValue{DataType: aws.String(v.DataType)}
		if len(v.BinaryValue) > 0 {
			attr.BinaryValue = v.BinaryValue
		} else {
			attr.StringValue = aws.String(v.StringValue)
		}
		out[k] = attr
	}
	return out
}

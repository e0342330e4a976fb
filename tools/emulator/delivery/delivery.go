// Package delivery entrega as mensagens publicadas no emulador aos assinantes
// (HTTP/HTTPS e SQS), no mesmo formato JSON usado pelo SNS.
package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/fast-sns/sns"
)

// Tipos de mensagem (campo Type e header x-amz-sns-message-type).
const (
	TypeNotification             = "Notification"
	TypeSubscriptionConfirmation = "SubscriptionConfirmation"
)

// ErrUnsupportedProtocol indica que não há Deliverer para o protocolo da assinatura.
var ErrUnsupportedProtocol = errors.New("delivery: unsupported protocol")

// Target identifica o assinante que recebe a mensagem.
type Target struct {
	SubscriptionArn string
	TopicArn        string
	Protocol        string
	Endpoint        string
	// Raw entrega apenas o corpo da mensagem (RawMessageDelivery=true).
	Raw bool
}

// Notification é o documento JSON entregue ao assinante.
//
// Token e SubscribeURL só existem em mensagens SubscriptionConfirmation.
// Os campos sem representação JSON são usados por entregas raw e filas FIFO.
type Notification struct {
	events.SNSEntity
	Token          string `json:"Token,omitempty"`
	SubscribeURL   string `json:"SubscribeURL,omitempty"`
	SequenceNumber string `json:"SequenceNumber,omitempty"`

	Attributes      map[string]sns.MessageAttributeValue `json:"-"`
	MessageGroupID  string                               `json:"-"`
	DeduplicationID string                               `json:"-"`
}

// Deliverer entrega uma notificação a um assinante.
type Deliverer interface {
	Deliver(ctx context.Context, target Target, n Notification) error
}

// Multi escolhe o Deliverer pelo protocolo da assinatura.
type Multi map[string]Deliverer

func (m Multi) Deliver(ctx context.Context, target Target, n Notification) error {
	d, ok := m[target.Protocol]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedProtocol, target.Protocol)
	}
	return d.Deliver(ctx, target, n)
}

// Noop descarta as mensagens (entrega desabilitada).
type Noop struct{}

func (Noop) Deliver(context.Context, Target, Notification) error { return nil }

// JSONAttributes converte atributos para o formato {"Type":..,"Value":..} do JSON do SNS.
func JSONAttributes(attrs map[string]sns.MessageAttributeValue) map[string]interface{} {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = map[string]interface{}{"Type": v.DataType, "Value": v.String()}
	}
	return out
}

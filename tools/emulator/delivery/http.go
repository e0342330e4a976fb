package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultHTTPTimeout é usado quando NewHTTP recebe timeout zero.
const DefaultHTTPTimeout = 15 * time.Second

// HTTP entrega notificações via POST, com os headers x-amz-sns-* do SNS.
type HTTP struct {
	client *http.Client
}

// NewHTTP cria o Deliverer HTTP/HTTPS.
func NewHTTP(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTP{client: &http.Client{Timeout: timeout}}
}

func (h *HTTP) Deliver(ctx context.Context, target Target, n Notification) error {
	// 1. Corpo: JSON completo ou apenas a mensagem (raw)
	var body []byte
	if target.Raw && n.Type == TypeNotification {
		body = []byte(n.Message)
	} else {
		var err error
		if body, err = json.Marshal(n); err != nil {
			return fmt.Errorf("erro ao serializar notificação: %w", err)
		}
	}

	// 2. Prepara Request
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao criar request de entrega: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=UTF-8")
	req.Header.Set("User-Agent", "Amazon Simple Notification Service Agent")
	req.Header.Set("x-amz-sns-message-type", n.Type)
	req.Header.Set("x-amz-sns-message-id", n.MessageID)
	req.Header.Set("x-amz-sns-topic-arn", n.TopicArn)
	if n.Type == TypeNotification {
		req.Header.Set("x-amz-sns-subscription-arn", target.SubscriptionArn)
	}
	if target.Raw {
		req.Header.Set("x-amz-sns-rawdelivery", "true")
	}

	// 3. Executa
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("falha na conexão com assinante (%s): %w", target.Endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("assinante %s respondeu status %d", target.Endpoint, resp.StatusCode)
	}
	return nil
}

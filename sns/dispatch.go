package sns

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws/protocol/query"
	awsxml "github.com/aws/aws-sdk-go-v2/aws/protocol/xml"
	"github.com/raywall/fast-sns/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// operation descreve uma ação do protocolo Query.
type operation[In, Out any] struct {
	name      string
	serialize func(in *In, body *query.Object) error
}

// maxErrorBody limita a leitura de corpos de erro que não são XML.
const maxErrorBody = 64 << 10

// invoke é o caminho comum de todas as operações:
// valida, serializa, assina, envia, classifica ou decodifica e repete conforme a RetryPolicy.
func invoke[In, Out any](ctx context.Context, c *Client, op operation[In, Out], in *In) (*Out, error) {
	if c.closed.Load() {
		return nil, &ClientError{Operation: op.name, Err: ErrClientShutdown}
	}
	if in == nil {
		in = new(In)
	}

	ctx, span := c.tracer.Start(ctx, "SNS."+op.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rpc.system", "aws-api"),
			attribute.String("rpc.service", "SNS"),
			attribute.String("rpc.method", op.name),
			attribute.String("cloud.region", c.opts.Region),
		))
	defer span.End()

	start := time.Now()
	out, retries, err := dispatch(ctx, c, op, in)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			outcome = metrics.OutcomeServiceError
			span.SetAttributes(attribute.String("aws.error_code", svcErr.Code))
		} else {
			outcome = metrics.OutcomeClientError
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Debug().Err(err).Str("operation", op.name).Int("retries", retries).Msg("chamada falhou")
	}
	span.SetAttributes(attribute.Int("aws.retries", retries))
	if mErr := c.recorder.Record(op.name, outcome, time.Since(start), retries); mErr != nil {
		c.log.Warn().Err(mErr).Str("operation", op.name).Msg("falha ao registrar métricas")
	}
	return out, err
}

// dispatch executa as tentativas e devolve o resultado, o número de retries e o último erro.
func dispatch[In, Out any](ctx context.Context, c *Client, op operation[In, Out], in *In) (*Out, int, error) {
	if err := c.validate.StructCtx(ctx, in); err != nil {
		return nil, 0, &ClientError{Operation: op.name, Err: fmt.Errorf("entrada inválida: %w", err)}
	}

	body, err := encodeBody(op, in)
	if err != nil {
		return nil, 0, &ClientError{Operation: op.name, Err: fmt.Errorf("falha ao serializar: %w", err)}
	}

	parent := ctx
	policy := c.opts.Retry
	if policy.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.Deadline)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := policy.Backoff(attempt-1, lastErr)
			c.log.Warn().
				Err(lastErr).
				Str("operation", op.name).
				Int("attempt", attempt+1).
				Dur("backoff", delay).
				Msg("repetindo chamada")

			if dl, ok := ctx.Deadline(); ok && time.Until(dl) < delay {
				if parent.Err() != nil {
					return nil, attempt - 1, &ClientError{Operation: op.name, Err: parent.Err()}
				}
				return nil, attempt - 1, lastErr
			}

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				if parent.Err() != nil {
					return nil, attempt - 1, &ClientError{Operation: op.name, Err: parent.Err()}
				}
				return nil, attempt - 1, lastErr
			}
		}

		out := new(Out)
		c.log.Debug().Str("operation", op.name).Int("attempt", attempt+1).Msg("enviando requisição")
		lastErr = c.send(ctx, op.name, body, out)
		if lastErr == nil {
			return out, attempt, nil
		}
		if ctx.Err() != nil || !policy.IsRetryable(lastErr) {
			return nil, attempt, lastErr
		}
	}
	return nil, policy.MaxAttempts - 1, lastErr
}

func encodeBody[In, Out any](op operation[In, Out], in *In) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	enc := query.NewEncoder(buf)
	body := enc.Object()
	body.Key("Action").String(op.name)
	body.Key("Version").String(APIVersion)
	if op.serialize != nil {
		if err := op.serialize(in, body); err != nil {
			return nil, err
		}
	}
	if err := enc.Encode(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// send executa uma única tentativa.
func (c *Client) send(ctx context.Context, action string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ReadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Operation: action, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	if err := c.sign(ctx, req, body); err != nil {
		return &ClientError{Operation: action, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ClientError{Operation: action, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serviceError(action, resp)
	}
	if err := decodeResult(resp.Body, action, out); err != nil {
		return &ClientError{Operation: action, Err: fmt.Errorf("resposta inválida: %w", err)}
	}
	return nil
}

func (c *Client) sign(ctx context.Context, req *http.Request, body []byte) error {
	if c.anonymous {
		return nil
	}
	creds, err := c.opts.Credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter credenciais: %w", err)
	}
	if !creds.HasKeys() {
		return nil
	}
	sum := sha256.Sum256(body)
	return c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), signingName, c.opts.Region, time.Now())
}

// serviceError interpreta o corpo <ErrorResponse> e devolve o erro tipado.
func serviceError(action string, resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &ClientError{Operation: action, Err: fmt.Errorf("falha ao ler erro (status %d): %w", resp.StatusCode, err)}
	}

	base := ServiceError{
		StatusCode: resp.StatusCode,
		Operation:  action,
		RequestID:  resp.Header.Get("x-amzn-RequestId"),
	}
	comp, err := awsxml.GetErrorResponseComponents(bytes.NewReader(raw), false)
	if err != nil || comp.Code == "" {
		base.Message = strings.TrimSpace(string(raw))
		if base.Message == "" {
			base.Message = http.StatusText(resp.StatusCode)
		}
		return &base
	}
	base.Code = comp.Code
	base.Message = comp.Message
	if comp.RequestID != "" {
		base.RequestID = comp.RequestID
	}
	return classify(base)
}

type requestIDSetter interface{ setRequestID(string) }

// decodeResult localiza <ActionResult> e <RequestId> no documento de resposta.
func decodeResult(r io.Reader, action string, out any) error {
	d := xml.NewDecoder(r)
	var sawRoot bool
	var requestID string
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case action + "Response":
			sawRoot = true
		case action + "Result":
			if err := d.DecodeElement(out, &se); err != nil {
				return fmt.Errorf("%sResult: %w", action, err)
			}
		case "RequestId":
			if err := d.DecodeElement(&requestID, &se); err != nil {
				return err
			}
		}
	}
	if !sawRoot {
		return fmt.Errorf("elemento %sResponse ausente", action)
	}
	if s, ok := out.(requestIDSetter); ok {
		s.setRequestID(strings.TrimSpace(requestID))
	}
	return nil
}

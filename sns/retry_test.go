package sns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_IsRetryable(t *testing.T) {
	p := DefaultRetryPolicy()
	p.RetryableCodes = []string{"KMSThrottling"}

	svc := func(code string, status int) error {
		return classify(ServiceError{Code: code, StatusCode: status})
	}

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"Throttled", svc(CodeThrottled, 400), true},
		{"Throttling padrão AWS", svc("Throttling", 400), true},
		{"InternalError", svc(CodeInternalError, 500), true},
		{"Código configurado", svc("KMSThrottling", 400), true},
		{"503 sem código", svc("", 503), true},
		{"NotFound", svc(CodeNotFound, 404), false},
		{"InvalidParameter", svc(CodeInvalidParameter, 400), false},
		{"Conexão recusada", &ClientError{Operation: "Publish", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}, true},
		{"Validação", &ClientError{Operation: "Publish", Err: errors.New("entrada inválida")}, false},
		{"Shutdown", &ClientError{Operation: "Publish", Err: ErrClientShutdown}, false},
		{"Cancelado", &ClientError{Operation: "Publish", Err: fmt.Errorf("send: %w", context.Canceled)}, false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.IsRetryable(tc.err))
		})
	}
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := RetryPolicy{
		BaseDelay:          10 * time.Millisecond,
		ThrottledBaseDelay: 50 * time.Millisecond,
		MaxBackoff:         200 * time.Millisecond,
	}
	generic := classify(ServiceError{Code: CodeInternalError, StatusCode: 500})
	throttled := classify(ServiceError{Code: CodeThrottled, StatusCode: 400})

	for i := 0; i < 100; i++ {
		assert.Less(t, p.Backoff(0, generic), 10*time.Millisecond)
		assert.Less(t, p.Backoff(2, generic), 40*time.Millisecond)
		assert.Less(t, p.Backoff(0, throttled), 50*time.Millisecond)
		assert.Less(t, p.Backoff(10, throttled), 200*time.Millisecond)
		assert.Less(t, p.Backoff(80, generic), 200*time.Millisecond)
		assert.GreaterOrEqual(t, p.Backoff(3, generic), time.Duration(0))
	}
}

func TestRetryPolicy_Defaults(t *testing.T) {
	p := RetryPolicy{}.withDefaults()
	assert.Equal(t, DefaultRetryPolicy(), p)
}

package sns

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
)

const (
	DefaultMaxAttempts        = 4
	DefaultBaseDelay          = 100 * time.Millisecond
	DefaultThrottledBaseDelay = 500 * time.Millisecond
	DefaultMaxBackoff         = 20 * time.Second
)

// RetryPolicy controla as novas tentativas de uma chamada.
//
// Campos zerados assumem os valores Default*. MaxAttempts conta a primeira
// tentativa, portanto MaxAttempts=1 desliga o retry.
type RetryPolicy struct {
	MaxAttempts        int           `yaml:"max_attempts" toml:"max_attempts" validate:"gte=0"`
	BaseDelay          time.Duration `yaml:"base_delay" toml:"base_delay"`
	ThrottledBaseDelay time.Duration `yaml:"throttled_base_delay" toml:"throttled_base_delay"`
	MaxBackoff         time.Duration `yaml:"max_backoff" toml:"max_backoff"`
	// Deadline limita a chamada inteira, incluindo o backoff. Zero = sem limite.
	Deadline time.Duration `yaml:"deadline" toml:"deadline"`
	// RetryableCodes adiciona códigos de erro do serviço considerados transitórios.
	RetryableCodes []string `yaml:"retryable_codes" toml:"retryable_codes"`
}

// DefaultRetryPolicy devolve a política padrão (4 tentativas, backoff exponencial com jitter).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:        DefaultMaxAttempts,
		BaseDelay:          DefaultBaseDelay,
		ThrottledBaseDelay: DefaultThrottledBaseDelay,
		MaxBackoff:         DefaultMaxBackoff,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.ThrottledBaseDelay <= 0 {
		p.ThrottledBaseDelay = DefaultThrottledBaseDelay
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = DefaultMaxBackoff
	}
	return p
}

// IsRetryable informa se o erro de uma tentativa justifica uma nova tentativa.
func (p RetryPolicy) IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		if isThrottle(svcErr.Code) || svcErr.Code == CodeInternalError {
			return true
		}
		if _, ok := retry.DefaultRetryableErrorCodes[svcErr.Code]; ok {
			return true
		}
		for _, c := range p.RetryableCodes {
			if c == svcErr.Code {
				return true
			}
		}
		_, ok := retry.DefaultRetryableHTTPStatusCodes[svcErr.StatusCode]
		return ok
	}

	var cliErr *ClientError
	if errors.As(err, &cliErr) {
		if errors.Is(cliErr.Err, ErrClientShutdown) {
			return false
		}
		return retry.RetryableConnectionError{}.IsErrorRetryable(cliErr.Err) == aws.TrueTernary
	}
	return false
}

// Backoff calcula a espera antes da tentativa attempt+1 (attempt começa em 0).
// Usa full jitter: um valor uniforme em [0, min(MaxBackoff, base*2^attempt)).
func (p RetryPolicy) Backoff(attempt int, err error) time.Duration {
	p = p.withDefaults()
	base := p.BaseDelay
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && isThrottle(svcErr.Code) {
		base = p.ThrottledBaseDelay
	}

	ceiling := p.MaxBackoff
	if attempt < 32 {
		if d := base << uint(attempt); d > 0 && d < ceiling {
			ceiling = d
		}
	}
	if ceiling <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(ceiling)))
}

func isThrottle(code string) bool {
	if code == CodeThrottled {
		return true
	}
	_, ok := retry.DefaultThrottleErrorCodes[code]
	return ok
}

package sns

import (
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/raywall/fast-sns/pkg/metrics"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultRegion é usada quando Options.Region está vazio.
	DefaultRegion = "us-east-1"
	// DefaultMaxConnections é o limite de conexões HTTP abertas por client.
	DefaultMaxConnections = 10
	DefaultConnectTimeout = 15 * time.Second
	DefaultReadTimeout    = 15 * time.Second

	// APIVersion é a versão do protocolo Query enviada em toda requisição.
	APIVersion  = "2010-03-31"
	signingName = "sns"
)

// HTTPDoer é o mínimo exigido do transporte HTTP (satisfeito por *http.Client).
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Options configura o Client.
type Options struct {
	// Region define a região de assinatura e o endpoint padrão.
	Region string
	// Endpoint sobrescreve o endpoint (ex: "http://localhost:9911" para o emulador).
	// Sem esquema, https é assumido.
	Endpoint string
	// Credentials é o provedor de credenciais. aws.AnonymousCredentials desliga a assinatura.
	Credentials aws.CredentialsProvider

	MaxConnections int
	ConnectTimeout time.Duration
	// ReadTimeout limita cada tentativa (envio + leitura do corpo).
	ReadTimeout time.Duration

	Retry RetryPolicy

	// HTTPClient substitui o transporte interno. Quando informado, o Client
	// não gerencia conexões e Shutdown não fecha nada além do próprio Client.
	HTTPClient HTTPDoer

	Logger         *zerolog.Logger
	Metrics        metrics.Provider
	TracerProvider trace.TracerProvider
}

func (o Options) withDefaults() Options {
	if o.Region == "" {
		o.Region = DefaultRegion
	}
	if o.MaxConnections <= 0 {
		o.MaxConnections = DefaultMaxConnections
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	o.Retry = o.Retry.withDefaults()
	return o
}

// resolveEndpoint devolve a URL base para a região ou o endpoint configurado.
func resolveEndpoint(region, endpoint string) string {
	if endpoint != "" {
		if !strings.Contains(endpoint, "://") {
			endpoint = "https://" + endpoint
		}
		return strings.TrimRight(endpoint, "/") + "/"
	}
	suffix := "amazonaws.com"
	if strings.HasPrefix(region, "cn-") {
		suffix = "amazonaws.com.cn"
	}
	return "https://sns." + region + "." + suffix + "/"
}

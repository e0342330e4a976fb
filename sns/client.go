package sns

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-playground/validator/v10"
	"github.com/raywall/fast-sns/pkg/metrics"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/raywall/fast-sns/sns"

// Client executa as operações do Amazon SNS de forma síncrona.
//
// É seguro para uso concorrente: cada chamada usa sua própria requisição e resposta.
type Client struct {
	opts      Options
	endpoint  string
	http      HTTPDoer
	transport *http.Transport
	signer    *v4.Signer
	validate  *validator.Validate
	log       zerolog.Logger
	recorder  *metrics.CallRecorder
	tracer    trace.Tracer
	anonymous bool
	closed    atomic.Bool
}

// New cria um Client. Sem Options.Credentials, a cadeia padrão de
// credenciais da AWS (env, profile, IAM role) é resolvida.
//
// Erros:
//   - Falha ao carregar a configuração padrão da AWS.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.Credentials == nil {
		loadOpts := []func(*config.LoadOptions) error{}
		if opts.Region != "" {
			loadOpts = append(loadOpts, config.WithRegion(opts.Region))
		}
		cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("sns: falha ao carregar configuração AWS: %w", err)
		}
		opts.Credentials = cfg.Credentials
		if opts.Region == "" {
			opts.Region = cfg.Region
		}
	}
	return newClient(opts), nil
}

// NewFromConfig cria um Client a partir de um aws.Config já carregado.
func NewFromConfig(cfg aws.Config, optFns ...func(*Options)) *Client {
	opts := Options{
		Region:      cfg.Region,
		Credentials: cfg.Credentials,
	}
	if cfg.BaseEndpoint != nil {
		opts.Endpoint = *cfg.BaseEndpoint
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return newClient(opts)
}

func newClient(opts Options) *Client {
	opts = opts.withDefaults()

	c := &Client{
		opts:     opts,
		endpoint: resolveEndpoint(opts.Region, opts.Endpoint),
		signer:   v4.NewSigner(),
		validate: newValidator(),
		recorder: metrics.NewCallRecorder(opts.Metrics, "region:"+opts.Region),
	}

	switch p := opts.Credentials.(type) {
	case nil, aws.AnonymousCredentials, *aws.AnonymousCredentials:
		c.anonymous = true
	case *aws.CredentialsCache:
	default:
		c.opts.Credentials = aws.NewCredentialsCache(p)
	}

	if opts.Logger != nil {
		c.log = opts.Logger.With().Str("component", "sns-client").Logger()
	} else {
		c.log = zerolog.Nop()
	}

	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	c.tracer = tp.Tracer(tracerName)

	if opts.HTTPClient != nil {
		c.http = opts.HTTPClient
	} else {
		c.transport = newTransport(opts)
		c.http = &http.Client{Transport: c.transport}
	}
	return c
}

func newTransport(opts Options) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   opts.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          opts.MaxConnections,
		MaxIdleConnsPerHost:   opts.MaxConnections,
		MaxConnsPerHost:       opts.MaxConnections,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   opts.ConnectTimeout,
		ExpectContinueTimeout: time.Second,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Vazio é aceito: a obrigatoriedade fica a cargo de "required".
	_ = v.RegisterValidation("arn", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || arn.IsARN(s)
	})
	return v
}

// Endpoint devolve a URL usada nas requisições.
func (c *Client) Endpoint() string { return c.endpoint }

// Region devolve a região de assinatura.
func (c *Client) Region() string { return c.opts.Region }

// Shutdown libera as conexões ociosas do transporte interno.
// Chamadas posteriores falham com ErrClientShutdown; chamadas em andamento terminam normalmente.
func (c *Client) Shutdown() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	c.log.Debug().Msg("client encerrado")
}

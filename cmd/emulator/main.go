package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	_ "github.com/lib/pq"
	"github.com/raywall/fast-sns/pkg/awsutil"
	"github.com/raywall/fast-sns/pkg/config"
	"github.com/raywall/fast-sns/pkg/logger"
	"github.com/raywall/fast-sns/pkg/observability"
	"github.com/raywall/fast-sns/tools/emulator"
	"github.com/raywall/fast-sns/tools/emulator/delivery"
	"github.com/raywall/fast-sns/tools/emulator/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	configPath string
	// Variáveis injetáveis para testes
	serverStarter = func(ctx context.Context, srv *emulator.Server) error { return srv.Start(ctx) }
	awsConfig     = awsutil.GetAWSConfig
	sqlOpen       = sql.Open
)

func init() {
	configPath = os.Getenv("EMULATOR_CONFIG")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run carrega a configuração (arquivo, s3://, dynamodb:// ou só variáveis de
// ambiente quando cfgPath é vazio), monta as dependências e inicia o emulador.
func run(ctx context.Context, cfgPath string) error {
	var (
		cfg *config.EmulatorConf
		err error
	)
	if cfgPath == "" {
		cfg, err = config.LoadEmulatorFromEnv()
	} else {
		cfg, err = config.LoadEmulator(ctx, cfgPath)
	}
	if err != nil {
		return err
	}

	l := logger.Configure(cfg.Logging)

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	d, err := newDeliverer(ctx, cfg)
	if err != nil {
		return err
	}
	faults, err := emulator.NewFaults(cfg.Faults)
	if err != nil {
		return err
	}
	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := observability.Close(provider); err != nil {
			l.Warn().Err(err).Msg("falha ao fechar provedor de métricas")
		}
	}()
	metricsHandler := observability.MetricsHandler(provider)
	if metricsHandler != nil && cfg.Metrics.Prometheus.Addr != "" {
		go serveMetrics(l, cfg.Metrics.Prometheus.Addr, metricsHandler)
	}

	srv := emulator.NewServer(*cfg, st, d, faults,
		emulator.WithLogger(l),
		emulator.WithMetrics(provider, metricsHandler),
	)
	if err := srv.Seed(ctx); err != nil {
		return fmt.Errorf("falha ao carregar opted-out: %w", err)
	}

	l.Info().
		Str("store", cfg.Store.Type).
		Bool("delivery", cfg.Delivery.Enabled).
		Int("faults", len(cfg.Faults)).
		Msg("emulador configurado")
	return serverStarter(ctx, srv)
}

func newStore(ctx context.Context, cfg *config.EmulatorConf) (store.Store, error) {
	switch cfg.Store.Type {
	case "", "memory":
		return store.NewMemory(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis indisponível em %s: %w", cfg.Store.Redis.Addr, err)
		}
		return store.NewRedis(client), nil
	case "dynamodb":
		region := cfg.Store.DynamoDB.Region
		if region == "" {
			region = cfg.Region
		}
		awsCfg, err := awsConfig(ctx, region)
		if err != nil {
			return nil, err
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.Store.DynamoDB.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Store.DynamoDB.Endpoint)
			}
		})
		return store.NewDynamoDB(client, cfg.Store.DynamoDB.Table), nil
	case "postgres":
		db, err := sqlOpen("postgres", cfg.Store.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("postgres indisponível: %w", err)
		}
		return store.NewPostgres(ctx, db, cfg.Store.Postgres.Table)
	default:
		return nil, fmt.Errorf("store desconhecido: %s", cfg.Store.Type)
	}
}

func newDeliverer(ctx context.Context, cfg *config.EmulatorConf) (delivery.Deliverer, error) {
	if !cfg.Delivery.Enabled {
		return delivery.Noop{}, nil
	}

	h := delivery.NewHTTP(cfg.Delivery.HTTPTimeout)
	d := delivery.Multi{"http": h, "https": h}

	awsCfg, err := awsConfig(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}
	client := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.Delivery.SQSEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Delivery.SQSEndpoint)
		}
	})
	d["sqs"] = delivery.NewSQS(client)
	return d, nil
}

func serveMetrics(l zerolog.Logger, addr string, h http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error().Err(err).Str("addr", addr).Msg("servidor de métricas parou")
	}
}

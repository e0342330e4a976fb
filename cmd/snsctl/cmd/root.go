package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/raywall/fast-sns/pkg/config"
	"github.com/raywall/fast-sns/pkg/logger"
	"github.com/raywall/fast-sns/pkg/metrics"
	"github.com/raywall/fast-sns/pkg/observability"
	"github.com/raywall/fast-sns/sns"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app concentra as flags globais e o client criado antes de cada subcomando.
type app struct {
	cfgFile   string
	endpoint  string
	region    string
	anonymous bool

	conf    *config.ClientConf
	client  *sns.Client
	log     *zerolog.Logger
	metrics metrics.Provider
	out     io.Writer
}

// NewRootCmd monta a árvore de comandos do snsctl.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "snsctl",
		Short: "Operações do Amazon SNS pela linha de comando",
		Long: `snsctl executa operações do SNS usando o client do fast-sns.

A configuração vem de --config (arquivo local, s3:// ou dynamodb://) ou,
sem ela, das variáveis SNS_*. As flags sobrescrevem a configuração.

Exemplos:
  snsctl --endpoint http://localhost:9911 --anonymous topic create orders
  snsctl publish arn:aws:sns:us-east-1:000000000000:orders '{"id":1}' --attr tipo=pedido
  snsctl subscription list --topic arn:aws:sns:us-east-1:000000000000:orders`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			return a.connect(cmd.Context(), cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Arquivo de configuração do client (yaml, toml, s3:// ou dynamodb://)")
	flags.StringVar(&a.endpoint, "endpoint", "", "Endpoint do SNS (ex: http://localhost:9911)")
	flags.StringVar(&a.region, "region", "", "Região AWS")
	flags.BoolVar(&a.anonymous, "anonymous", false, "Envia requisições sem assinatura")

	root.AddCommand(
		newTopicCmd(a),
		newPublishCmd(a),
		newSubscribeCmd(a),
		newUnsubscribeCmd(a),
		newSubscriptionCmd(a),
	)
	return root
}

// Execute roda o snsctl com os argumentos do processo, cancelando em SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

func (a *app) connect(ctx context.Context, logOut io.Writer) error {
	var (
		cfg *config.ClientConf
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadClient(ctx, a.cfgFile)
	} else {
		cfg, err = config.LoadClientFromEnv()
	}
	if err != nil {
		return fmt.Errorf("falha ao carregar configuração: %w", err)
	}

	if a.endpoint != "" {
		cfg.Endpoint = a.endpoint
	}
	if a.region != "" {
		cfg.Region = a.region
	}
	if a.anonymous {
		cfg.Credentials = config.CredentialsConf{Anonymous: true}
	}

	opts, err := cfg.Options(ctx)
	if err != nil {
		return err
	}
	log := logger.ConfigureTo(logOut, cfg.Logging)
	opts.Logger = logger.Component(log, "snsctl")

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return fmt.Errorf("falha ao configurar métricas: %w", err)
	}
	opts.Metrics = provider

	client, err := sns.New(ctx, opts)
	if err != nil {
		_ = observability.Close(provider)
		return fmt.Errorf("falha ao criar client SNS: %w", err)
	}
	a.conf = cfg
	a.client = client
	a.log = opts.Logger
	a.metrics = provider
	return nil
}

// close encerra o client e libera o provedor de métricas (socket do statsd).
func (a *app) close() {
	if a.client != nil {
		a.client.Shutdown()
	}
	if err := observability.Close(a.metrics); err != nil && a.log != nil {
		a.log.Warn().Err(err).Msg("falha ao fechar provedor de métricas")
	}
}

// print escreve v como JSON indentado na saída do comando.
func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parsePairs converte uma lista "chave=valor" em mapa.
func parsePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("par inválido %q, esperado chave=valor", p)
		}
		out[k] = v
	}
	return out, nil
}

func printError(w io.Writer, err error) {
	if code := sns.ErrorCode(err); code != "" {
		fmt.Fprintf(w, "Erro (%s): %v\n", code, err)
		return
	}
	fmt.Fprintf(w, "Erro: %v\n", err)
}

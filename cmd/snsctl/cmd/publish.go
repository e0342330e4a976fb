package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/raywall/fast-sns/sns"
	"github.com/spf13/cobra"
)

type publishFlags struct {
	subject   string
	structure string
	groupID   string
	dedupID   string
	attrs     []string
	count     int
	async     bool
}

// publishResult é a linha impressa para cada mensagem quando --count > 1.
type publishResult struct {
	Index          int    `json:"index"`
	MessageID      string `json:"message_id,omitempty"`
	SequenceNumber string `json:"sequence_number,omitempty"`
	Error          string `json:"error,omitempty"`
}

func newPublishCmd(a *app) *cobra.Command {
	f := &publishFlags{}

	cmd := &cobra.Command{
		Use:   "publish <destino> <mensagem>",
		Short: "Publica uma mensagem em um tópico, endpoint ou telefone",
		Long: `Publica uma mensagem. O destino pode ser o ARN de um tópico, o ARN de um
endpoint de plataforma (.../endpoint/...) ou um telefone em E.164 (+5511...).
Use "-" como mensagem para ler da entrada padrão.

Atributos usam nome=valor (String) ou nome:Tipo=valor (ex: preco:Number=10).

Exemplos:
  snsctl publish arn:aws:sns:us-east-1:000000000000:orders '{"id":1}' --attr tipo=pedido
  snsctl publish +5511999999999 "Seu código é 1234"
  snsctl publish arn:aws:sns:us-east-1:000000000000:orders ping --count 100 --async`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.input(args[0], args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if f.count <= 1 && !f.async {
				out, err := a.client.Publish(cmd.Context(), in)
				if err != nil {
					return err
				}
				return a.print(out)
			}
			if f.async {
				return a.print(a.publishAsync(cmd.Context(), in, f.count))
			}
			return a.print(a.publishSync(cmd.Context(), in, f.count))
		},
	}

	cmd.Flags().StringVar(&f.subject, "subject", "", "Assunto (e-mail)")
	cmd.Flags().StringVar(&f.structure, "structure", "", `MessageStructure ("json" para mensagem por protocolo)`)
	cmd.Flags().StringVar(&f.groupID, "group-id", "", "MessageGroupId (tópicos FIFO)")
	cmd.Flags().StringVar(&f.dedupID, "dedup-id", "", "MessageDeduplicationId (tópicos FIFO)")
	cmd.Flags().StringArrayVar(&f.attrs, "attr", nil, "Atributo da mensagem (nome=valor ou nome:Tipo=valor), repetível")
	cmd.Flags().IntVar(&f.count, "count", 1, "Quantidade de cópias publicadas")
	cmd.Flags().BoolVar(&f.async, "async", false, "Publica pelo client assíncrono (pool de workers)")
	return cmd
}

func (f *publishFlags) input(target, message string, stdin io.Reader) (*sns.PublishInput, error) {
	if message == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler mensagem da entrada padrão: %w", err)
		}
		message = string(data)
	}

	attrs, err := parseMessageAttributes(f.attrs)
	if err != nil {
		return nil, err
	}

	in := &sns.PublishInput{
		Message:                message,
		Subject:                f.subject,
		MessageStructure:       f.structure,
		MessageAttributes:      attrs,
		MessageGroupID:         f.groupID,
		MessageDeduplicationID: f.dedupID,
	}
	switch {
	case strings.HasPrefix(target, "+"):
		in.PhoneNumber = target
	case strings.Contains(target, ":endpoint/"):
		in.TargetArn = target
	default:
		in.TopicArn = target
	}
	return in, nil
}

func parseMessageAttributes(pairs []string) (map[string]sns.MessageAttributeValue, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]sns.MessageAttributeValue, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("atributo inválido %q, esperado nome=valor", p)
		}
		name, dataType, typed := strings.Cut(key, ":")
		if !typed {
			dataType = "String"
		}
		if name == "" || dataType == "" {
			return nil, fmt.Errorf("atributo inválido %q", p)
		}
		out[name] = sns.MessageAttributeValue{DataType: dataType, StringValue: value}
	}
	return out, nil
}

func (a *app) publishSync(ctx context.Context, in *sns.PublishInput, count int) []publishResult {
	results := make([]publishResult, count)
	for i := range results {
		out, err := a.client.Publish(ctx, in)
		results[i] = toResult(i, out, err)
	}
	return results
}

// publishAsync enfileira count publicações no AsyncClient e aguarda todas as Futures.
func (a *app) publishAsync(ctx context.Context, in *sns.PublishInput, count int) []publishResult {
	opts := a.conf.Async.AsyncOptions()
	opts.Logger = a.log
	opts.Metrics = a.metrics

	async := sns.NewAsync(a.client, opts)
	defer async.Shutdown()

	futures := make([]*sns.Future[sns.PublishOutput], count)
	for i := range futures {
		futures[i] = async.PublishAsync(ctx, in)
	}

	results := make([]publishResult, count)
	for i, fut := range futures {
		out, err := fut.Get(ctx)
		results[i] = toResult(i, out, err)
	}
	return results
}

func toResult(i int, out *sns.PublishOutput, err error) publishResult {
	if err != nil {
		return publishResult{Index: i, Error: err.Error()}
	}
	return publishResult{Index: i, MessageID: out.MessageID, SequenceNumber: out.SequenceNumber}
}

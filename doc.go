// Package fastsns reúne um client Go para o Amazon SNS e as ferramentas em
// volta dele: configuração, observabilidade, um emulador local e uma CLI.
//
// Visão Geral:
// O módulo é organizado em camadas independentes, que podem ser usadas em
// conjunto ou isoladamente:
//  1. Client (sns): operações do protocolo Query com assinatura SigV4,
//     retry com backoff, erros tipados e um client assíncrono com pool.
//  2. Configuração (pkg/config, envloader): YAML/TOML locais, S3 ou DynamoDB,
//     com interpolação de ${env.X}, ${ssm.X} e ${secret.X}.
//  3. Observabilidade (pkg/logger, pkg/metrics, pkg/observability): zerolog,
//     Datadog e Prometheus, além de spans OpenTelemetry no client.
//  4. Emulador (tools/emulator): servidor SNS local com entrega HTTP/SQS,
//     filter policies, tópicos FIFO e falhas injetadas por regras CEL.
//
// Sub-Pacotes Principais:
//
// 1. sns:
//   - Client com uma operação por ação do SNS (CreateTopic, Publish, Subscribe, ...).
//   - AsyncClient devolvendo Futures, com handlers opcionais.
//   - Helpers de paginação (ListAllTopics, ListAllSubscriptions, ...).
//
// 2. pkg/config:
//   - ClientConf e EmulatorConf, validados com go-playground/validator.
//   - ClientConf.Options converte a configuração em sns.Options.
//
// 3. tools/emulator:
//   - Server HTTP compatível com o protocolo Query do SNS.
//   - Estado em memória, Redis ou DynamoDB.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		"github.com/raywall/fast-sns/pkg/config"
//		"github.com/raywall/fast-sns/sns"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		// 1. Carrega SNS_REGION, SNS_ENDPOINT, SNS_ACCESS_KEY_ID, ...
//		cfg, err := config.LoadClientFromEnv()
//		if err != nil {
//			log.Fatalf("Erro ao carregar env: %v", err)
//		}
//		opts, err := cfg.Options(ctx)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// 2. Cria o client
//		client, err := sns.New(ctx, opts)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer client.Shutdown()
//
//		// 3. Publica
//		topic, err := client.CreateTopic(ctx, &sns.CreateTopicInput{Name: "orders"})
//		if err != nil {
//			log.Fatal(err)
//		}
//		out, err := client.Publish(ctx, &sns.PublishInput{
//			TopicArn: topic.TopicArn,
//			Message:  `{"id":1}`,
//			MessageAttributes: map[string]sns.MessageAttributeValue{
//				"tipo": sns.StringAttribute("pedido"),
//			},
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("MessageId: %s", out.MessageID)
//	}
package fastsns

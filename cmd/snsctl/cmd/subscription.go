package cmd

import (
	"github.com/raywall/fast-sns/sns"
	"github.com/spf13/cobra"
)

func newSubscribeCmd(a *app) *cobra.Command {
	var (
		attrs     []string
		returnArn bool
	)
	cmd := &cobra.Command{
		Use:   "subscribe <topic-arn> <protocolo> <endpoint>",
		Short: "Assina um tópico",
		Long: `Cria uma assinatura. Protocolos http, https, email e email-json ficam
pendentes até a confirmação; os demais são confirmados na hora.

Exemplos:
  snsctl subscribe arn:aws:sns:us-east-1:000000000000:orders sqs arn:aws:sqs:us-east-1:000000000000:orders-queue
  snsctl subscribe arn:aws:sns:us-east-1:000000000000:orders https https://example.com/hook
  snsctl subscribe arn:aws:sns:us-east-1:000000000000:orders sqs arn:aws:sqs:... --attr RawMessageDelivery=true`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			attributes, err := parsePairs(attrs)
			if err != nil {
				return err
			}
			out, err := a.client.Subscribe(cmd.Context(), &sns.SubscribeInput{
				TopicArn:              args[0],
				Protocol:              args[1],
				Endpoint:              args[2],
				Attributes:            attributes,
				ReturnSubscriptionArn: returnArn,
			})
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "Atributo da assinatura (chave=valor), repetível")
	cmd.Flags().BoolVar(&returnArn, "return-arn", false, "Devolve o ARN mesmo com a assinatura pendente")
	return cmd
}

func newUnsubscribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unsubscribe <subscription-arn>",
		Short: "Remove uma assinatura",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Unsubscribe(cmd.Context(), &sns.UnsubscribeInput{SubscriptionArn: args[0]}); err != nil {
				return err
			}
			return a.print(map[string]string{"unsubscribed": args[0]})
		},
	}
}

func newSubscriptionCmd(a *app) *cobra.Command {
	subscriptionCmd := &cobra.Command{
		Use:   "subscription",
		Short: "Consulta assinaturas",
	}

	var topic string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista as assinaturas da conta ou de um tópico",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				subs []sns.Subscription
				err  error
			)
			if topic != "" {
				subs, err = sns.ListAllSubscriptionsByTopic(cmd.Context(), a.client, topic)
			} else {
				subs, err = sns.ListAllSubscriptions(cmd.Context(), a.client)
			}
			if err != nil {
				return err
			}
			if subs == nil {
				subs = []sns.Subscription{}
			}
			return a.print(subs)
		},
	}
	listCmd.Flags().StringVar(&topic, "topic", "", "Filtra pelo ARN do tópico")

	subscriptionCmd.AddCommand(listCmd)
	return subscriptionCmd
}

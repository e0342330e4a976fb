package cmd

import (
	"sort"

	"github.com/raywall/fast-sns/sns"
	"github.com/spf13/cobra"
)

func newTopicCmd(a *app) *cobra.Command {
	topicCmd := &cobra.Command{
		Use:   "topic",
		Short: "Gerencia tópicos",
	}

	var attrs, tags []string
	createCmd := &cobra.Command{
		Use:   "create <nome>",
		Short: "Cria um tópico (idempotente)",
		Long: `Cria um tópico e imprime o ARN.

Exemplos:
  snsctl topic create orders
  snsctl topic create orders.fifo --attr FifoTopic=true --attr ContentBasedDeduplication=true
  snsctl topic create orders --tag time=pagamentos`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attributes, err := parsePairs(attrs)
			if err != nil {
				return err
			}
			tagMap, err := parsePairs(tags)
			if err != nil {
				return err
			}
			in := &sns.CreateTopicInput{Name: args[0], Attributes: attributes}
			for _, k := range sortedKeys(tagMap) {
				in.Tags = append(in.Tags, sns.Tag{Key: k, Value: tagMap[k]})
			}

			out, err := a.client.CreateTopic(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	createCmd.Flags().StringArrayVar(&attrs, "attr", nil, "Atributo do tópico (chave=valor), repetível")
	createCmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag do tópico (chave=valor), repetível")

	deleteCmd := &cobra.Command{
		Use:   "delete <topic-arn>",
		Short: "Remove um tópico e suas assinaturas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteTopic(cmd.Context(), &sns.DeleteTopicInput{TopicArn: args[0]}); err != nil {
				return err
			}
			return a.print(map[string]string{"deleted": args[0]})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista todos os tópicos, seguindo a paginação",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, err := sns.ListAllTopics(cmd.Context(), a.client)
			if err != nil {
				return err
			}
			if topics == nil {
				topics = []sns.Topic{}
			}
			return a.print(topics)
		},
	}

	var sets []string
	attributesCmd := &cobra.Command{
		Use:   "attributes <topic-arn>",
		Short: "Mostra ou altera atributos de um tópico",
		Long: `Sem --set, imprime os atributos do tópico.
Com --set, altera cada atributo informado e imprime o resultado.

Exemplos:
  snsctl topic attributes arn:aws:sns:us-east-1:000000000000:orders
  snsctl topic attributes arn:aws:sns:us-east-1:000000000000:orders --set DisplayName=Pedidos`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parsePairs(sets)
			if err != nil {
				return err
			}
			for _, k := range sortedKeys(updates) {
				err := a.client.SetTopicAttributes(cmd.Context(), &sns.SetTopicAttributesInput{
					TopicArn:       args[0],
					AttributeName:  k,
					AttributeValue: updates[k],
				})
				if err != nil {
					return err
				}
			}

			out, err := a.client.GetTopicAttributes(cmd.Context(), &sns.GetTopicAttributesInput{TopicArn: args[0]})
			if err != nil {
				return err
			}
			return a.print(out.Attributes)
		},
	}
	attributesCmd.Flags().StringArrayVar(&sets, "set", nil, "Atributo a alterar (chave=valor), repetível")

	topicCmd.AddCommand(createCmd, deleteCmd, listCmd, attributesCmd)
	return topicCmd
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

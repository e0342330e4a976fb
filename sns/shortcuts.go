package sns

import "context"

// Atalhos para as chamadas mais comuns. Cada um monta a entrada completa e
// delega ao método correspondente, passando pela mesma validação e retry.

// CreateTopicNamed cria (ou recupera) o tópico com o nome informado.
func (c *Client) CreateTopicNamed(ctx context.Context, name string) (*CreateTopicOutput, error) {
	return c.CreateTopic(ctx, &CreateTopicInput{Name: name})
}

// DeleteTopicArn remove o tópico e todas as suas assinaturas.
func (c *Client) DeleteTopicArn(ctx context.Context, topicArn string) error {
	return c.DeleteTopic(ctx, &DeleteTopicInput{TopicArn: topicArn})
}

// PublishMessage publica uma mensagem de texto no tópico.
func (c *Client) PublishMessage(ctx context.Context, topicArn, message string) (*PublishOutput, error) {
	return c.Publish(ctx, &PublishInput{TopicArn: topicArn, Message: message})
}

// PublishWithSubject publica uma mensagem com assunto (usado por assinaturas de e-mail).
func (c *Client) PublishWithSubject(ctx context.Context, topicArn, message, subject string) (*PublishOutput, error) {
	return c.Publish(ctx, &PublishInput{TopicArn: topicArn, Message: message, Subject: subject})
}

// SubscribeEndpoint assina o endpoint no tópico pelo protocolo informado.
func (c *Client) SubscribeEndpoint(ctx context.Context, topicArn, protocol, endpoint string) (*SubscribeOutput, error) {
	return c.Subscribe(ctx, &SubscribeInput{TopicArn: topicArn, Protocol: protocol, Endpoint: endpoint})
}

// UnsubscribeArn cancela a assinatura.
func (c *Client) UnsubscribeArn(ctx context.Context, subscriptionArn string) error {
	return c.Unsubscribe(ctx, &UnsubscribeInput{SubscriptionArn: subscriptionArn})
}

// ListSubscriptionsByTopicArn lista uma página das assinaturas do tópico.
// nextToken vazio pede a primeira página.
func (c *Client) ListSubscriptionsByTopicArn(ctx context.Context, topicArn, nextToken string) (*ListSubscriptionsByTopicOutput, error) {
	return c.ListSubscriptionsByTopic(ctx, &ListSubscriptionsByTopicInput{TopicArn: topicArn, NextToken: nextToken})
}

// SetTopicAttribute altera um único atributo do tópico.
func (c *Client) SetTopicAttribute(ctx context.Context, topicArn, name, value string) error {
	return c.SetTopicAttributes(ctx, &SetTopicAttributesInput{TopicArn: topicArn, AttributeName: name, AttributeValue: value})
}

package sns

import "context"

// Tabela de operações.
var (
	opAddPermission                      = operation[AddPermissionInput, struct{}]{name: "AddPermission", serialize: serializeAddPermission}
	opCheckIfPhoneNumberIsOptedOut       = operation[CheckIfPhoneNumberIsOptedOutInput, CheckIfPhoneNumberIsOptedOutOutput]{name: "CheckIfPhoneNumberIsOptedOut", serialize: serializeCheckIfPhoneNumberIsOptedOut}
	opConfirmSubscription                = operation[ConfirmSubscriptionInput, ConfirmSubscriptionOutput]{name: "ConfirmSubscription", serialize: serializeConfirmSubscription}
	opCreatePlatformApplication          = operation[CreatePlatformApplicationInput, CreatePlatformApplicationOutput]{name: "CreatePlatformApplication", serialize: serializeCreatePlatformApplication}
	opCreatePlatformEndpoint             = operation[CreatePlatformEndpointInput, CreatePlatformEndpointOutput]{name: "CreatePlatformEndpoint", serialize: serializeCreatePlatformEndpoint}
	opCreateTopic                        = operation[CreateTopicInput, CreateTopicOutput]{name: "CreateTopic", serialize: serializeCreateTopic}
	opDeleteEndpoint                     = operation[DeleteEndpointInput, struct{}]{name: "DeleteEndpoint", serialize: serializeDeleteEndpoint}
	opDeletePlatformApplication          = operation[DeletePlatformApplicationInput, struct{}]{name: "DeletePlatformApplication", serialize: serializeDeletePlatformApplication}
	opDeleteTopic                        = operation[DeleteTopicInput, struct{}]{name: "DeleteTopic", serialize: serializeDeleteTopic}
	opGetEndpointAttributes              = operation[GetEndpointAttributesInput, GetEndpointAttributesOutput]{name: "GetEndpointAttributes", serialize: serializeGetEndpointAttributes}
	opGetPlatformApplicationAttributes   = operation[GetPlatformApplicationAttributesInput, GetPlatformApplicationAttributesOutput]{name: "GetPlatformApplicationAttributes", serialize: serializeGetPlatformApplicationAttributes}
	opGetSMSAttributes                   = operation[GetSMSAttributesInput, GetSMSAttributesOutput]{name: "GetSMSAttributes", serialize: serializeGetSMSAttributes}
	opGetSubscriptionAttributes          = operation[GetSubscriptionAttributesInput, GetSubscriptionAttributesOutput]{name: "GetSubscriptionAttributes", serialize: serializeGetSubscriptionAttributes}
	opGetTopicAttributes                 = operation[GetTopicAttributesInput, GetTopicAttributesOutput]{name: "GetTopicAttributes", serialize: serializeGetTopicAttributes}
	opListEndpointsByPlatformApplication = operation[ListEndpointsByPlatformApplicationInput, ListEndpointsByPlatformApplicationOutput]{name: "ListEndpointsByPlatformApplication", serialize: serializeListEndpointsByPlatformApplication}
	opListPhoneNumbersOptedOut           = operation[ListPhoneNumbersOptedOutInput, ListPhoneNumbersOptedOutOutput]{name: "ListPhoneNumbersOptedOut", serialize: serializeListPhoneNumbersOptedOut}
	opListPlatformApplications           = operation[ListPlatformApplicationsInput, ListPlatformApplicationsOutput]{name: "ListPlatformApplications", serialize: serializeListPlatformApplications}
	opListSubscriptions                  = operation[ListSubscriptionsInput, ListSubscriptionsOutput]{name: "ListSubscriptions", serialize: serializeListSubscriptions}
	opListSubscriptionsByTopic           = operation[ListSubscriptionsByTopicInput, ListSubscriptionsByTopicOutput]{name: "ListSubscriptionsByTopic", serialize: serializeListSubscriptionsByTopic}
	opListTopics                         = operation[ListTopicsInput, ListTopicsOutput]{name: "ListTopics", serialize: serializeListTopics}
	opOptInPhoneNumber                   = operation[OptInPhoneNumberInput, OptInPhoneNumberOutput]{name: "OptInPhoneNumber", serialize: serializeOptInPhoneNumber}
	opPublish                            = operation[PublishInput, PublishOutput]{name: "Publish", serialize: serializePublish}
	opPublishBatch                       = operation[PublishBatchInput, PublishBatchOutput]{name: "PublishBatch", serialize: serializePublishBatch}
	opRemovePermission                   = operation[RemovePermissionInput, struct{}]{name: "RemovePermission", serialize: serializeRemovePermission}
	opSetEndpointAttributes              = operation[SetEndpointAttributesInput, struct{}]{name: "SetEndpointAttributes", serialize: serializeSetEndpointAttributes}
	opSetPlatformApplicationAttributes   = operation[SetPlatformApplicationAttributesInput, struct{}]{name: "SetPlatformApplicationAttributes", serialize: serializeSetPlatformApplicationAttributes}
	opSetSMSAttributes                   = operation[SetSMSAttributesInput, SetSMSAttributesOutput]{name: "SetSMSAttributes", serialize: serializeSetSMSAttributes}
	opSetSubscriptionAttributes          = operation[SetSubscriptionAttributesInput, struct{}]{name: "SetSubscriptionAttributes", serialize: serializeSetSubscriptionAttributes}
	opSetTopicAttributes                 = operation[SetTopicAttributesInput, struct{}]{name: "SetTopicAttributes", serialize: serializeSetTopicAttributes}
	opSubscribe                          = operation[SubscribeInput, SubscribeOutput]{name: "Subscribe", serialize: serializeSubscribe}
	opUnsubscribe                        = operation[UnsubscribeInput, struct{}]{name: "Unsubscribe", serialize: serializeUnsubscribe}
)

// AddPermission adiciona uma declaração à política de acesso do tópico.
func (c *Client) AddPermission(ctx context.Context, in *AddPermissionInput) error {
	_, err := invoke(ctx, c, opAddPermission, in)
	return err
}

// CheckIfPhoneNumberIsOptedOut informa se o número de telefone optou por não receber SMS.
func (c *Client) CheckIfPhoneNumberIsOptedOut(ctx context.Context, in *CheckIfPhoneNumberIsOptedOutInput) (*CheckIfPhoneNumberIsOptedOutOutput, error) {
	return invoke(ctx, c, opCheckIfPhoneNumberIsOptedOut, in)
}

// ConfirmSubscription confirma uma assinatura com o token enviado ao endpoint.
func (c *Client) ConfirmSubscription(ctx context.Context, in *ConfirmSubscriptionInput) (*ConfirmSubscriptionOutput, error) {
	return invoke(ctx, c, opConfirmSubscription, in)
}

// CreatePlatformApplication cria uma aplicação de push (APNS, GCM, ADM, ...).
func (c *Client) CreatePlatformApplication(ctx context.Context, in *CreatePlatformApplicationInput) (*CreatePlatformApplicationOutput, error) {
	return invoke(ctx, c, opCreatePlatformApplication, in)
}

// CreatePlatformEndpoint registra um dispositivo em uma aplicação de push.
func (c *Client) CreatePlatformEndpoint(ctx context.Context, in *CreatePlatformEndpointInput) (*CreatePlatformEndpointOutput, error) {
	return invoke(ctx, c, opCreatePlatformEndpoint, in)
}

// CreateTopic cria um tópico. A operação é idempotente: repetir o nome devolve o mesmo ARN.
func (c *Client) CreateTopic(ctx context.Context, in *CreateTopicInput) (*CreateTopicOutput, error) {
	return invoke(ctx, c, opCreateTopic, in)
}

// DeleteEndpoint remove um endpoint de push.
func (c *Client) DeleteEndpoint(ctx context.Context, in *DeleteEndpointInput) error {
	_, err := invoke(ctx, c, opDeleteEndpoint, in)
	return err
}

// DeletePlatformApplication remove uma aplicação de push.
func (c *Client) DeletePlatformApplication(ctx context.Context, in *DeletePlatformApplicationInput) error {
	_, err := invoke(ctx, c, opDeletePlatformApplication, in)
	return err
}

// DeleteTopic remove o tópico e todas as suas assinaturas.
func (c *Client) DeleteTopic(ctx context.Context, in *DeleteTopicInput) error {
	_, err := invoke(ctx, c, opDeleteTopic, in)
	return err
}

// GetEndpointAttributes devolve os atributos de um endpoint de push.
func (c *Client) GetEndpointAttributes(ctx context.Context, in *GetEndpointAttributesInput) (*GetEndpointAttributesOutput, error) {
	return invoke(ctx, c, opGetEndpointAttributes, in)
}

// GetPlatformApplicationAttributes devolve os atributos de uma aplicação de push.
func (c *Client) GetPlatformApplicationAttributes(ctx context.Context, in *GetPlatformApplicationAttributesInput) (*GetPlatformApplicationAttributesOutput, error) {
	return invoke(ctx, c, opGetPlatformApplicationAttributes, in)
}

// GetSMSAttributes devolve as preferências de SMS da conta.
func (c *Client) GetSMSAttributes(ctx context.Context, in *GetSMSAttributesInput) (*GetSMSAttributesOutput, error) {
	return invoke(ctx, c, opGetSMSAttributes, in)
}

// GetSubscriptionAttributes devolve os atributos de uma assinatura.
func (c *Client) GetSubscriptionAttributes(ctx context.Context, in *GetSubscriptionAttributesInput) (*GetSubscriptionAttributesOutput, error) {
	return invoke(ctx, c, opGetSubscriptionAttributes, in)
}

// GetTopicAttributes devolve os atributos de um tópico.
func (c *Client) GetTopicAttributes(ctx context.Context, in *GetTopicAttributesInput) (*GetTopicAttributesOutput, error) {
	return invoke(ctx, c, opGetTopicAttributes, in)
}

// ListEndpointsByPlatformApplication lista uma página de endpoints da aplicação.
func (c *Client) ListEndpointsByPlatformApplication(ctx context.Context, in *ListEndpointsByPlatformApplicationInput) (*ListEndpointsByPlatformApplicationOutput, error) {
	return invoke(ctx, c, opListEndpointsByPlatformApplication, in)
}

// ListPhoneNumbersOptedOut lista uma página de números que optaram por não receber SMS.
func (c *Client) ListPhoneNumbersOptedOut(ctx context.Context, in *ListPhoneNumbersOptedOutInput) (*ListPhoneNumbersOptedOutOutput, error) {
	return invoke(ctx, c, opListPhoneNumbersOptedOut, in)
}

// ListPlatformApplications lista uma página de aplicações de push.
func (c *Client) ListPlatformApplications(ctx context.Context, in *ListPlatformApplicationsInput) (*ListPlatformApplicationsOutput, error) {
	return invoke(ctx, c, opListPlatformApplications, in)
}

// ListSubscriptions lista uma página das assinaturas da conta.
func (c *Client) ListSubscriptions(ctx context.Context, in *ListSubscriptionsInput) (*ListSubscriptionsOutput, error) {
	return invoke(ctx, c, opListSubscriptions, in)
}

// ListSubscriptionsByTopic lista uma página das assinaturas do tópico.
func (c *Client) ListSubscriptionsByTopic(ctx context.Context, in *ListSubscriptionsByTopicInput) (*ListSubscriptionsByTopicOutput, error) {
	return invoke(ctx, c, opListSubscriptionsByTopic, in)
}

// ListTopics lista uma página dos tópicos da conta.
func (c *Client) ListTopics(ctx context.Context, in *ListTopicsInput) (*ListTopicsOutput, error) {
	return invoke(ctx, c, opListTopics, in)
}

// OptInPhoneNumber reativa o envio de SMS para um número.
func (c *Client) OptInPhoneNumber(ctx context.Context, in *OptInPhoneNumberInput) (*OptInPhoneNumberOutput, error) {
	return invoke(ctx, c, opOptInPhoneNumber, in)
}

// Publish envia uma mensagem para um tópico, endpoint de push ou telefone.
func (c *Client) Publish(ctx context.Context, in *PublishInput) (*PublishOutput, error) {
	return invoke(ctx, c, opPublish, in)
}

// PublishBatch publica até 10 mensagens em um tópico. Falhas parciais chegam em Failed.
func (c *Client) PublishBatch(ctx context.Context, in *PublishBatchInput) (*PublishBatchOutput, error) {
	return invoke(ctx, c, opPublishBatch, in)
}

// RemovePermission remove uma declaração da política de acesso do tópico.
func (c *Client) RemovePermission(ctx context.Context, in *RemovePermissionInput) error {
	_, err := invoke(ctx, c, opRemovePermission, in)
	return err
}

// SetEndpointAttributes altera os atributos de um endpoint de push.
func (c *Client) SetEndpointAttributes(ctx context.Context, in *SetEndpointAttributesInput) error {
	_, err := invoke(ctx, c, opSetEndpointAttributes, in)
	return err
}

// SetPlatformApplicationAttributes altera os atributos de uma aplicação de push.
func (c *Client) SetPlatformApplicationAttributes(ctx context.Context, in *SetPlatformApplicationAttributesInput) error {
	_, err := invoke(ctx, c, opSetPlatformApplicationAttributes, in)
	return err
}

// SetSMSAttributes altera as preferências de SMS da conta.
func (c *Client) SetSMSAttributes(ctx context.Context, in *SetSMSAttributesInput) (*SetSMSAttributesOutput, error) {
	return invoke(ctx, c, opSetSMSAttributes, in)
}

// SetSubscriptionAttributes altera um atributo de uma assinatura.
func (c *Client) SetSubscriptionAttributes(ctx context.Context, in *SetSubscriptionAttributesInput) error {
	_, err := invoke(ctx, c, opSetSubscriptionAttributes, in)
	return err
}

// SetTopicAttributes altera um atributo de um tópico.
func (c *Client) SetTopicAttributes(ctx context.Context, in *SetTopicAttributesInput) error {
	_, err := invoke(ctx, c, opSetTopicAttributes, in)
	return err
}

// Subscribe assina um endpoint em um tópico.
func (c *Client) Subscribe(ctx context.Context, in *SubscribeInput) (*SubscribeOutput, error) {
	return invoke(ctx, c, opSubscribe, in)
}

// Unsubscribe remove uma assinatura.
func (c *Client) Unsubscribe(ctx context.Context, in *UnsubscribeInput) error {
	_, err := invoke(ctx, c, opUnsubscribe, in)
	return err
}

package sns

import "context"

// API é o contrato síncrono do SNS, implementado por *Client.
//
// O AsyncClient depende apenas desta interface, o que permite substituí-la em testes.
type API interface {
	AddPermission(ctx context.Context, in *AddPermissionInput) error
	CheckIfPhoneNumberIsOptedOut(ctx context.Context, in *CheckIfPhoneNumberIsOptedOutInput) (*CheckIfPhoneNumberIsOptedOutOutput, error)
	ConfirmSubscription(ctx context.Context, in *ConfirmSubscriptionInput) (*ConfirmSubscriptionOutput, error)
	CreatePlatformApplication(ctx context.Context, in *CreatePlatformApplicationInput) (*CreatePlatformApplicationOutput, error)
	CreatePlatformEndpoint(ctx context.Context, in *CreatePlatformEndpointInput) (*CreatePlatformEndpointOutput, error)
	CreateTopic(ctx context.Context, in *CreateTopicInput) (*CreateTopicOutput, error)
	DeleteEndpoint(ctx context.Context, in *DeleteEndpointInput) error
	DeletePlatformApplication(ctx context.Context, in *DeletePlatformApplicationInput) error
	DeleteTopic(ctx context.Context, in *DeleteTopicInput) error
	GetEndpointAttributes(ctx context.Context, in *GetEndpointAttributesInput) (*GetEndpointAttributesOutput, error)
	GetPlatformApplicationAttributes(ctx context.Context, in *GetPlatformApplicationAttributesInput) (*GetPlatformApplicationAttributesOutput, error)
	GetSMSAttributes(ctx context.Context, in *GetSMSAttributesInput) (*GetSMSAttributesOutput, error)
	GetSubscriptionAttributes(ctx context.Context, in *GetSubscriptionAttributesInput) (*GetSubscriptionAttributesOutput, error)
	GetTopicAttributes(ctx context.Context, in *GetTopicAttributesInput) (*GetTopicAttributesOutput, error)
	ListEndpointsByPlatformApplication(ctx context.Context, in *ListEndpointsByPlatformApplicationInput) (*ListEndpointsByPlatformApplicationOutput, error)
	ListPhoneNumbersOptedOut(ctx context.Context, in *ListPhoneNumbersOptedOutInput) (*ListPhoneNumbersOptedOutOutput, error)
	ListPlatformApplications(ctx context.Context, in *ListPlatformApplicationsInput) (*ListPlatformApplicationsOutput, error)
	ListSubscriptions(ctx context.Context, in *ListSubscriptionsInput) (*ListSubscriptionsOutput, error)
	ListSubscriptionsByTopic(ctx context.Context, in *ListSubscriptionsByTopicInput) (*ListSubscriptionsByTopicOutput, error)
	ListTopics(ctx context.Context, in *ListTopicsInput) (*ListTopicsOutput, error)
	OptInPhoneNumber(ctx context.Context, in *OptInPhoneNumberInput) (*OptInPhoneNumberOutput, error)
	Publish(ctx context.Context, in *PublishInput) (*PublishOutput, error)
	PublishBatch(ctx context.Context, in *PublishBatchInput) (*PublishBatchOutput, error)
	RemovePermission(ctx context.Context, in *RemovePermissionInput) error
	SetEndpointAttributes(ctx context.Context, in *SetEndpointAttributesInput) error
	SetPlatformApplicationAttributes(ctx context.Context, in *SetPlatformApplicationAttributesInput) error
	SetSMSAttributes(ctx context.Context, in *SetSMSAttributesInput) (*SetSMSAttributesOutput, error)
	SetSubscriptionAttributes(ctx context.Context, in *SetSubscriptionAttributesInput) error
	SetTopicAttributes(ctx context.Context, in *SetTopicAttributesInput) error
	Subscribe(ctx context.Context, in *SubscribeInput) (*SubscribeOutput, error)
	Unsubscribe(ctx context.Context, in *UnsubscribeInput) error
}

var _ API = (*Client)(nil)

package sns

import "context"

// AddPermissionAsync executa AddPermission no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) AddPermissionAsync(ctx context.Context, in *AddPermissionInput, handlers ...Handler[AddPermissionInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "AddPermission", in, voidCall(a.api.AddPermission), handlers)
}

// CheckIfPhoneNumberIsOptedOutAsync executa CheckIfPhoneNumberIsOptedOut no pool.
func (a *AsyncClient) CheckIfPhoneNumberIsOptedOutAsync(ctx context.Context, in *CheckIfPhoneNumberIsOptedOutInput, handlers ...Handler[CheckIfPhoneNumberIsOptedOutInput, CheckIfPhoneNumberIsOptedOutOutput]) *Future[CheckIfPhoneNumberIsOptedOutOutput] {
	return submit(ctx, a, "CheckIfPhoneNumberIsOptedOut", in, a.api.CheckIfPhoneNumberIsOptedOut, handlers)
}

// ConfirmSubscriptionAsync executa ConfirmSubscription no pool.
func (a *AsyncClient) ConfirmSubscriptionAsync(ctx context.Context, in *ConfirmSubscriptionInput, handlers ...Handler[ConfirmSubscriptionInput, ConfirmSubscriptionOutput]) *Future[ConfirmSubscriptionOutput] {
	return submit(ctx, a, "ConfirmSubscription", in, a.api.ConfirmSubscription, handlers)
}

// CreatePlatformApplicationAsync executa CreatePlatformApplication no pool.
func (a *AsyncClient) CreatePlatformApplicationAsync(ctx context.Context, in *CreatePlatformApplicationInput, handlers ...Handler[CreatePlatformApplicationInput, CreatePlatformApplicationOutput]) *Future[CreatePlatformApplicationOutput] {
	return submit(ctx, a, "CreatePlatformApplication", in, a.api.CreatePlatformApplication, handlers)
}

// CreatePlatformEndpointAsync executa CreatePlatformEndpoint no pool.
func (a *AsyncClient) CreatePlatformEndpointAsync(ctx context.Context, in *CreatePlatformEndpointInput, handlers ...Handler[CreatePlatformEndpointInput, CreatePlatformEndpointOutput]) *Future[CreatePlatformEndpointOutput] {
	return submit(ctx, a, "CreatePlatformEndpoint", in, a.api.CreatePlatformEndpoint, handlers)
}

// CreateTopicAsync executa CreateTopic no pool.
func (a *AsyncClient) CreateTopicAsync(ctx context.Context, in *CreateTopicInput, handlers ...Handler[CreateTopicInput, CreateTopicOutput]) *Future[CreateTopicOutput] {
	return submit(ctx, a, "CreateTopic", in, a.api.CreateTopic, handlers)
}

// DeleteEndpointAsync executa DeleteEndpoint no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) DeleteEndpointAsync(ctx context.Context, in *DeleteEndpointInput, handlers ...Handler[DeleteEndpointInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "DeleteEndpoint", in, voidCall(a.api.DeleteEndpoint), handlers)
}

// DeletePlatformApplicationAsync executa DeletePlatformApplication no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) DeletePlatformApplicationAsync(ctx context.Context, in *DeletePlatformApplicationInput, handlers ...Handler[DeletePlatformApplicationInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "DeletePlatformApplication", in, voidCall(a.api.DeletePlatformApplication), handlers)
}

// DeleteTopicAsync executa DeleteTopic no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) DeleteTopicAsync(ctx context.Context, in *DeleteTopicInput, handlers ...Handler[DeleteTopicInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "DeleteTopic", in, voidCall(a.api.DeleteTopic), handlers)
}

// GetEndpointAttributesAsync executa GetEndpointAttributes no pool.
func (a *AsyncClient) GetEndpointAttributesAsync(ctx context.Context, in *GetEndpointAttributesInput, handlers ...Handler[GetEndpointAttributesInput, GetEndpointAttributesOutput]) *Future[GetEndpointAttributesOutput] {
	return submit(ctx, a, "GetEndpointAttributes", in, a.api.GetEndpointAttributes, handlers)
}

// GetPlatformApplicationAttributesAsync executa GetPlatformApplicationAttributes no pool.
func (a *AsyncClient) GetPlatformApplicationAttributesAsync(ctx context.Context, in *GetPlatformApplicationAttributesInput, handlers ...Handler[GetPlatformApplicationAttributesInput, GetPlatformApplicationAttributesOutput]) *Future[GetPlatformApplicationAttributesOutput] {
	return submit(ctx, a, "GetPlatformApplicationAttributes", in, a.api.GetPlatformApplicationAttributes, handlers)
}

// GetSMSAttributesAsync executa GetSMSAttributes no pool.
func (a *AsyncClient) GetSMSAttributesAsync(ctx context.Context, in *GetSMSAttributesInput, handlers ...Handler[GetSMSAttributesInput, GetSMSAttributesOutput]) *Future[GetSMSAttributesOutput] {
	return submit(ctx, a, "GetSMSAttributes", in, a.api.GetSMSAttributes, handlers)
}

// GetSubscriptionAttributesAsync executa GetSubscriptionAttributes no pool.
func (a *AsyncClient) GetSubscriptionAttributesAsync(ctx context.Context, in *GetSubscriptionAttributesInput, handlers ...Handler[GetSubscriptionAttributesInput, GetSubscriptionAttributesOutput]) *Future[GetSubscriptionAttributesOutput] {
	return submit(ctx, a, "GetSubscriptionAttributes", in, a.api.GetSubscriptionAttributes, handlers)
}

// GetTopicAttributesAsync executa GetTopicAttributes no pool.
func (a *AsyncClient) GetTopicAttributesAsync(ctx context.Context, in *GetTopicAttributesInput, handlers ...Handler[GetTopicAttributesInput, GetTopicAttributesOutput]) *Future[GetTopicAttributesOutput] {
	return submit(ctx, a, "GetTopicAttributes", in, a.api.GetTopicAttributes, handlers)
}

// ListEndpointsByPlatformApplicationAsync executa ListEndpointsByPlatformApplication no pool.
func (a *AsyncClient) ListEndpointsByPlatformApplicationAsync(ctx context.Context, in *ListEndpointsByPlatformApplicationInput, handlers ...Handler[ListEndpointsByPlatformApplicationInput, ListEndpointsByPlatformApplicationOutput]) *Future[ListEndpointsByPlatformApplicationOutput] {
	return submit(ctx, a, "ListEndpointsByPlatformApplication", in, a.api.ListEndpointsByPlatformApplication, handlers)
}

// ListPhoneNumbersOptedOutAsync executa ListPhoneNumbersOptedOut no pool.
func (a *AsyncClient) ListPhoneNumbersOptedOutAsync(ctx context.Context, in *ListPhoneNumbersOptedOutInput, handlers ...Handler[ListPhoneNumbersOptedOutInput, ListPhoneNumbersOptedOutOutput]) *Future[ListPhoneNumbersOptedOutOutput] {
	return submit(ctx, a, "ListPhoneNumbersOptedOut", in, a.api.ListPhoneNumbersOptedOut, handlers)
}

// ListPlatformApplicationsAsync executa ListPlatformApplications no pool.
func (a *AsyncClient) ListPlatformApplicationsAsync(ctx context.Context, in *ListPlatformApplicationsInput, handlers ...Handler[ListPlatformApplicationsInput, ListPlatformApplicationsOutput]) *Future[ListPlatformApplicationsOutput] {
	return submit(ctx, a, "ListPlatformApplications", in, a.api.ListPlatformApplications, handlers)
}

// ListSubscriptionsAsync executa ListSubscriptions no pool.
func (a *AsyncClient) ListSubscriptionsAsync(ctx context.Context, in *ListSubscriptionsInput, handlers ...Handler[ListSubscriptionsInput, ListSubscriptionsOutput]) *Future[ListSubscriptionsOutput] {
	return submit(ctx, a, "ListSubscriptions", in, a.api.ListSubscriptions, handlers)
}

// ListSubscriptionsByTopicAsync executa ListSubscriptionsByTopic no pool.
func (a *AsyncClient) ListSubscriptionsByTopicAsync(ctx context.Context, in *ListSubscriptionsByTopicInput, handlers ...Handler[ListSubscriptionsByTopicInput, ListSubscriptionsByTopicOutput]) *Future[ListSubscriptionsByTopicOutput] {
	return submit(ctx, a, "ListSubscriptionsByTopic", in, a.api.ListSubscriptionsByTopic, handlers)
}

// ListTopicsAsync executa ListTopics no pool.
func (a *AsyncClient) ListTopicsAsync(ctx context.Context, in *ListTopicsInput, handlers ...Handler[ListTopicsInput, ListTopicsOutput]) *Future[ListTopicsOutput] {
	return submit(ctx, a, "ListTopics", in, a.api.ListTopics, handlers)
}

// OptInPhoneNumberAsync executa OptInPhoneNumber no pool.
func (a *AsyncClient) OptInPhoneNumberAsync(ctx context.Context, in *OptInPhoneNumberInput, handlers ...Handler[OptInPhoneNumberInput, OptInPhoneNumberOutput]) *Future[OptInPhoneNumberOutput] {
	return submit(ctx, a, "OptInPhoneNumber", in, a.api.OptInPhoneNumber, handlers)
}

// PublishAsync executa Publish no pool.
func (a *AsyncClient) PublishAsync(ctx context.Context, in *PublishInput, handlers ...Handler[PublishInput, PublishOutput]) *Future[PublishOutput] {
	return submit(ctx, a, "Publish", in, a.api.Publish, handlers)
}

// PublishBatchAsync executa PublishBatch no pool.
func (a *AsyncClient) PublishBatchAsync(ctx context.Context, in *PublishBatchInput, handlers ...Handler[PublishBatchInput, PublishBatchOutput]) *Future[PublishBatchOutput] {
	return submit(ctx, a, "PublishBatch", in, a.api.PublishBatch, handlers)
}

// RemovePermissionAsync executa RemovePermission no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) RemovePermissionAsync(ctx context.Context, in *RemovePermissionInput, handlers ...Handler[RemovePermissionInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "RemovePermission", in, voidCall(a.api.RemovePermission), handlers)
}

// SetEndpointAttributesAsync executa SetEndpointAttributes no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) SetEndpointAttributesAsync(ctx context.Context, in *SetEndpointAttributesInput, handlers ...Handler[SetEndpointAttributesInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "SetEndpointAttributes", in, voidCall(a.api.SetEndpointAttributes), handlers)
}

// SetPlatformApplicationAttributesAsync executa SetPlatformApplicationAttributes no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) SetPlatformApplicationAttributesAsync(ctx context.Context, in *SetPlatformApplicationAttributesInput, handlers ...Handler[SetPlatformApplicationAttributesInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "SetPlatformApplicationAttributes", in, voidCall(a.api.SetPlatformApplicationAttributes), handlers)
}

// SetSMSAttributesAsync executa SetSMSAttributes no pool.
func (a *AsyncClient) SetSMSAttributesAsync(ctx context.Context, in *SetSMSAttributesInput, handlers ...Handler[SetSMSAttributesInput, SetSMSAttributesOutput]) *Future[SetSMSAttributesOutput] {
	return submit(ctx, a, "SetSMSAttributes", in, a.api.SetSMSAttributes, handlers)
}

// SetSubscriptionAttributesAsync executa SetSubscriptionAttributes no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) SetSubscriptionAttributesAsync(ctx context.Context, in *SetSubscriptionAttributesInput, handlers ...Handler[SetSubscriptionAttributesInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "SetSubscriptionAttributes", in, voidCall(a.api.SetSubscriptionAttributes), handlers)
}

// SetTopicAttributesAsync executa SetTopicAttributes no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) SetTopicAttributesAsync(ctx context.Context, in *SetTopicAttributesInput, handlers ...Handler[SetTopicAttributesInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "SetTopicAttributes", in, voidCall(a.api.SetTopicAttributes), handlers)
}

// SubscribeAsync executa Subscribe no pool.
func (a *AsyncClient) SubscribeAsync(ctx context.Context, in *SubscribeInput, handlers ...Handler[SubscribeInput, SubscribeOutput]) *Future[SubscribeOutput] {
	return submit(ctx, a, "Subscribe", in, a.api.Subscribe, handlers)
}

// UnsubscribeAsync executa Unsubscribe no pool. O resultado de sucesso é struct{}.
func (a *AsyncClient) UnsubscribeAsync(ctx context.Context, in *UnsubscribeInput, handlers ...Handler[UnsubscribeInput, struct{}]) *Future[struct{}] {
	return submit(ctx, a, "Unsubscribe", in, voidCall(a.api.Unsubscribe), handlers)
}

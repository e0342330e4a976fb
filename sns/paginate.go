package sns

import (
	"context"
	"fmt"
)

// paginate segue NextToken até a última página, acumulando os itens.
func paginate[Item, Out any](
	ctx context.Context,
	fetch func(ctx context.Context, token string) (*Out, error),
	page func(*Out) ([]Item, string),
) ([]Item, error) {
	var (
		all   []Item
		token string
		seen  = map[string]struct{}{}
	)
	for {
		out, err := fetch(ctx, token)
		if err != nil {
			return all, err
		}
		items, next := page(out)
		all = append(all, items...)
		if next == "" {
			return all, nil
		}
		if _, dup := seen[next]; dup {
			return all, fmt.Errorf("sns: paginação em loop, token repetido %q", next)
		}
		seen[next] = struct{}{}
		token = next
	}
}

// ListTopicsAPI é o subconjunto de API usado por ListAllTopics.
type ListTopicsAPI interface {
	ListTopics(ctx context.Context, in *ListTopicsInput) (*ListTopicsOutput, error)
}

// ListAllTopics devolve todos os tópicos, seguindo a paginação.
func ListAllTopics(ctx context.Context, api ListTopicsAPI) ([]Topic, error) {
	return paginate(ctx,
		func(ctx context.Context, token string) (*ListTopicsOutput, error) {
			return api.ListTopics(ctx, &ListTopicsInput{NextToken: token})
		},
		func(o *ListTopicsOutput) ([]Topic, string) { return o.Topics, o.NextToken },
	)
}

type ListSubscriptionsAPI interface {
	ListSubscriptions(ctx context.Context, in *ListSubscriptionsInput) (*ListSubscriptionsOutput, error)
}

// ListAllSubscriptions devolve todas as assinaturas da conta.
func ListAllSubscriptions(ctx context.Context, api ListSubscriptionsAPI) ([]Subscription, error) {
	return paginate(ctx,
		func(ctx context.Context, token string) (*ListSubscriptionsOutput, error) {
			return api.ListSubscriptions(ctx, &ListSubscriptionsInput{NextToken: token})
		},
		func(o *ListSubscriptionsOutput) ([]Subscription, string) { return o.Subscriptions, o.NextToken },
	)
}

type ListSubscriptionsByTopicAPI interface {
	ListSubscriptionsByTopic(ctx context.Context, in *ListSubscriptionsByTopicInput) (*ListSubscriptionsByTopicOutput, error)
}

// ListAllSubscriptionsByTopic devolve todas as assinaturas de um tópico.
func ListAllSubscriptionsByTopic(ctx context.Context, api ListSubscriptionsByTopicAPI, topicArn string) ([]Subscription, error) {
	return paginate(ctx,
		func(ctx context.Context, token string) (*ListSubscriptionsByTopicOutput, error) {
			return api.ListSubscriptionsByTopic(ctx, &ListSubscriptionsByTopicInput{TopicArn: topicArn, NextToken: token})
		},
		func(o *ListSubscriptionsByTopicOutput) ([]Subscription, string) { return o.Subscriptions, o.NextToken },
	)
}

type ListPlatformApplicationsAPI interface {
	ListPlatformApplications(ctx context.Context, in *ListPlatformApplicationsInput) (*ListPlatformApplicationsOutput, error)
}

func ListAllPlatformApplications(ctx context.Context, api ListPlatformApplicationsAPI) ([]PlatformApplication, error) {
	return paginate(ctx,
		func(ctx context.Context, token string) (*ListPlatformApplicationsOutput, error) {
			return api.ListPlatformApplications(ctx, &ListPlatformApplicationsInput{NextToken: token})
		},
		func(o *ListPlatformApplicationsOutput) ([]PlatformApplication, string) {
			return o.PlatformApplications, o.NextToken
		},
	)
}

type ListEndpointsByPlatformApplicationAPI interface {
	ListEndpointsByPlatformApplication(ctx context.Context, in *ListEndpointsByPlatformApplicationInput) (*ListEndpointsByPlatformApplicationOutput, error)
}

func ListAllEndpointsByPlatformApplication(ctx context.Context, api ListEndpointsByPlatformApplicationAPI, appArn string) ([]Endpoint, error) {
	return paginate(ctx,
		func(ctx context.Context, token string) (*ListEndpointsByPlatformApplicationOutput, error) {
			return api.ListEndpointsByPlatformApplication(ctx, &ListEndpointsByPlatformApplicationInput{
				PlatformApplicationArn: appArn,
				NextToken:              token,
			})
		},
		func(o *ListEndpointsByPlatformApplicationOutput) ([]Endpoint, string) { return o.Endpoints, o.NextToken },
	)
}

type ListPhoneNumbersOptedOutAPI interface {
	ListPhoneNumbersOptedOut(ctx context.Context, in *ListPhoneNumbersOptedOutInput) (*ListPhoneNumbersOptedOutOutput, error)
}

func ListAllPhoneNumbersOptedOut(ctx context.Context, api ListPhoneNumbersOptedOutAPI) ([]string, error) {
	return paginate(ctx,
		func(ctx context.Context, token string) (*ListPhoneNumbersOptedOutOutput, error) {
			return api.ListPhoneNumbersOptedOut(ctx, &ListPhoneNumbersOptedOutInput{NextToken: token})
		},
		func(o *ListPhoneNumbersOptedOutOutput) ([]string, string) { return o.PhoneNumbers, o.NextToken },
	)
}

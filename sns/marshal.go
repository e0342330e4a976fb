package sns

import (
	"maps"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws/protocol/query"
)

func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}

func putString(o *query.Object, key, v string) {
	if v != "" {
		o.Key(key).String(v)
	}
}

func putList(o *query.Object, key string, vs []string) {
	if len(vs) == 0 {
		return
	}
	arr := o.Key(key).Array("member")
	for _, v := range vs {
		arr.Value().String(v)
	}
}

// putAttributes gera Key.entry.N.key / Key.entry.N.value.
func putAttributes(o *query.Object, key string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	mv := o.Key(key).Map("key", "value")
	for _, k := range sortedKeys(m) {
		mv.Key(k).String(m[k])
	}
}

// putMessageAttributes gera MessageAttributes.entry.N.Name / .Value.DataType / ...
func putMessageAttributes(o *query.Object, m map[string]MessageAttributeValue) {
	if len(m) == 0 {
		return
	}
	mv := o.Key("MessageAttributes").Map("Name", "Value")
	for _, k := range sortedKeys(m) {
		attr := m[k]
		obj := mv.Key(k).Object()
		obj.Key("DataType").String(attr.DataType)
		if len(attr.BinaryValue) > 0 {
			obj.Key("BinaryValue").Base64EncodeBytes(attr.BinaryValue)
		}
		if attr.StringValue != "" {
			obj.Key("StringValue").String(attr.StringValue)
		}
	}
}

func putTags(o *query.Object, tags []Tag) {
	if len(tags) == 0 {
		return
	}
	arr := o.Key("Tags").Array("member")
	for _, t := range tags {
		obj := arr.Value().Object()
		obj.Key("Key").String(t.Key)
		obj.Key("Value").String(t.Value)
	}
}

func serializeAddPermission(in *AddPermissionInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	putString(o, "Label", in.Label)
	putList(o, "AWSAccountId", in.AWSAccountID)
	putList(o, "ActionName", in.ActionName)
	return nil
}

func serializeCheckIfPhoneNumberIsOptedOut(in *CheckIfPhoneNumberIsOptedOutInput, o *query.Object) error {
	putString(o, "phoneNumber", in.PhoneNumber)
	return nil
}

func serializeConfirmSubscription(in *ConfirmSubscriptionInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	putString(o, "Token", in.Token)
	putString(o, "AuthenticateOnUnsubscribe", in.AuthenticateOnUnsubscribe)
	return nil
}

func serializeCreatePlatformApplication(in *CreatePlatformApplicationInput, o *query.Object) error {
	putString(o, "Name", in.Name)
	putString(o, "Platform", in.Platform)
	putAttributes(o, "Attributes", in.Attributes)
	return nil
}

func serializeCreatePlatformEndpoint(in *CreatePlatformEndpointInput, o *query.Object) error {
	putString(o, "PlatformApplicationArn", in.PlatformApplicationArn)
	putString(o, "Token", in.Token)
	putString(o, "CustomUserData", in.CustomUserData)
	putAttributes(o, "Attributes", in.Attributes)
	return nil
}

func serializeCreateTopic(in *CreateTopicInput, o *query.Object) error {
	putString(o, "Name", in.Name)
	putAttributes(o, "Attributes", in.Attributes)
	putTags(o, in.Tags)
	return nil
}

func serializeDeleteEndpoint(in *DeleteEndpointInput, o *query.Object) error {
	putString(o, "EndpointArn", in.EndpointArn)
	return nil
}

func serializeDeletePlatformApplication(in *DeletePlatformApplicationInput, o *query.Object) error {
	putString(o, "PlatformApplicationArn", in.PlatformApplicationArn)
	return nil
}

func serializeDeleteTopic(in *DeleteTopicInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	return nil
}

func serializeGetEndpointAttributes(in *GetEndpointAttributesInput, o *query.Object) error {
	putString(o, "EndpointArn", in.EndpointArn)
	return nil
}

func serializeGetPlatformApplicationAttributes(in *GetPlatformApplicationAttributesInput, o *query.Object) error {
	putString(o, "PlatformApplicationArn", in.PlatformApplicationArn)
	return nil
}

func serializeGetSMSAttributes(in *GetSMSAttributesInput, o *query.Object) error {
	putList(o, "attributes", in.Attributes)
	return nil
}

func serializeGetSubscriptionAttributes(in *GetSubscriptionAttributesInput, o *query.Object) error {
	putString(o, "SubscriptionArn", in.SubscriptionArn)
	return nil
}

func serializeGetTopicAttributes(in *GetTopicAttributesInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	return nil
}

func serializeListEndpointsByPlatformApplication(in *ListEndpointsByPlatformApplicationInput, o *query.Object) error {
	putString(o, "PlatformApplicationArn", in.PlatformApplicationArn)
	putString(o, "NextToken", in.NextToken)
	return nil
}

func serializeListPhoneNumbersOptedOut(in *ListPhoneNumbersOptedOutInput, o *query.Object) error {
	putString(o, "nextToken", in.NextToken)
	return nil
}

func serializeListPlatformApplications(in *ListPlatformApplicationsInput, o *query.Object) error {
	putString(o, "NextToken", in.NextToken)
	return nil
}

func serializeListSubscriptions(in *ListSubscriptionsInput, o *query.Object) error {
	putString(o, "NextToken", in.NextToken)
	return nil
}

func serializeListSubscriptionsByTopic(in *ListSubscriptionsByTopicInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	putString(o, "NextToken", in.NextToken)
	return nil
}

func serializeListTopics(in *ListTopicsInput, o *query.Object) error {
	putString(o, "NextToken", in.NextToken)
	return nil
}

func serializeOptInPhoneNumber(in *OptInPhoneNumberInput, o *query.Object) error {
	putString(o, "phoneNumber", in.PhoneNumber)
	return nil
}

func serializePublish(in *PublishInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	putString(o, "TargetArn", in.TargetArn)
	putString(o, "PhoneNumber", in.PhoneNumber)
	putString(o, "Message", in.Message)
	putString(o, "Subject", in.Subject)
	putString(o, "MessageStructure", in.MessageStructure)
	putMessageAttributes(o, in.MessageAttributes)
	putString(o, "MessageDeduplicationId", in.MessageDeduplicationID)
	putString(o, "MessageGroupId", in.MessageGroupID)
	return nil
}

func serializePublishBatch(in *PublishBatchInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	if len(in.PublishBatchRequestEntries) == 0 {
		return nil
	}
	arr := o.Key("PublishBatchRequestEntries").Array("member")
	for _, e := range in.PublishBatchRequestEntries {
		obj := arr.Value().Object()
		putString(obj, "Id", e.ID)
		putString(obj, "Message", e.Message)
		putString(obj, "Subject", e.Subject)
		putString(obj, "MessageStructure", e.MessageStructure)
		putMessageAttributes(obj, e.MessageAttributes)
		putString(obj, "MessageDeduplicationId", e.MessageDeduplicationID)
		putString(obj, "MessageGroupId", e.MessageGroupID)
	}
	return nil
}

func serializeRemovePermission(in *RemovePermissionInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	putString(o, "Label", in.Label)
	return nil
}

func serializeSetEndpointAttributes(in *SetEndpointAttributesInput, o *query.Object) error {
	putString(o, "EndpointArn", in.EndpointArn)
	putAttributes(o, "Attributes", in.Attributes)
	return nil
}

func serializeSetPlatformApplicationAttributes(in *SetPlatformApplicationAttributesInput, o *query.Object) error {
	putString(o, "PlatformApplicationArn", in.PlatformApplicationArn)
	putAttributes(o, "Attributes", in.Attributes)
	return nil
}

func serializeSetSMSAttributes(in *SetSMSAttributesInput, o *query.Object) error {
	putAttributes(o, "attributes", in.Attributes)
	return nil
}

func serializeSetSubscriptionAttributes(in *SetSubscriptionAttributesInput, o *query.Object) error {
	putString(o, "SubscriptionArn", in.SubscriptionArn)
	putString(o, "AttributeName", in.AttributeName)
	o.Key("AttributeValue").String(in.AttributeValue)
	return nil
}

func serializeSetTopicAttributes(in *SetTopicAttributesInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	putString(o, "AttributeName", in.AttributeName)
	o.Key("AttributeValue").String(in.AttributeValue)
	return nil
}

func serializeSubscribe(in *SubscribeInput, o *query.Object) error {
	putString(o, "TopicArn", in.TopicArn)
	putString(o, "Protocol", in.Protocol)
	putString(o, "Endpoint", in.Endpoint)
	putAttributes(o, "Attributes", in.Attributes)
	if in.ReturnSubscriptionArn {
		o.Key("ReturnSubscriptionArn").String(strconv.FormatBool(true))
	}
	return nil
}

func serializeUnsubscribe(in *UnsubscribeInput, o *query.Object) error {
	putString(o, "SubscriptionArn", in.SubscriptionArn)
	return nil
}

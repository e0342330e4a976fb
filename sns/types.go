package sns

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
)

// ResponseMetadata carrega os metadados devolvidos pelo SNS em toda resposta.
type ResponseMetadata struct {
	// RequestID é o identificador da requisição gerado pelo serviço.
	RequestID string `xml:"-" json:"request_id,omitempty"`
}

func (m *ResponseMetadata) setRequestID(id string) { m.RequestID = id }

// AttributeMap representa os mapas de atributos do SNS.
//
// No XML de resposta os mapas chegam no formato
// <entry><key>k</key><value>v</value></entry>.
type AttributeMap map[string]string

type attributeEntry struct {
	Key   string `xml:"key"`
	Value string `xml:"value"`
}

// UnmarshalXML decodifica a lista de entries em um mapa.
func (m *AttributeMap) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var wrapper struct {
		Entries []attributeEntry `xml:"entry"`
	}
	if err := d.DecodeElement(&wrapper, &start); err != nil {
		return err
	}
	out := make(AttributeMap, len(wrapper.Entries))
	for _, e := range wrapper.Entries {
		out[e.Key] = e.Value
	}
	*m = out
	return nil
}

// MarshalXML gera o formato <entry> usado pelo serviço (útil para o emulador).
func (m AttributeMap) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	entries := make([]attributeEntry, 0, len(m))
	for _, k := range sortedKeys(m) {
		entries = append(entries, attributeEntry{Key: k, Value: m[k]})
	}
	return e.EncodeElement(struct {
		Entries []attributeEntry `xml:"entry"`
	}{entries}, start)
}

// Tag é um par chave/valor associado a um tópico.
type Tag struct {
	Key   string `xml:"Key" json:"key" validate:"required"`
	Value string `xml:"Value" json:"value"`
}

// MessageAttributeValue é o valor de um atributo de mensagem.
//
// DataType aceita "String", "String.Array", "Number" e "Binary"
// (com sufixos customizados, ex: "String.tenant").
type MessageAttributeValue struct {
	DataType    string `json:"data_type" validate:"required"`
	StringValue string `json:"string_value,omitempty"`
	BinaryValue []byte `json:"binary_value,omitempty"`
}

// StringAttribute cria um atributo do tipo String.
func StringAttribute(v string) MessageAttributeValue {
	return MessageAttributeValue{DataType: "String", StringValue: v}
}

// NumberAttribute cria um atributo do tipo Number.
func NumberAttribute(v any) MessageAttributeValue {
	return MessageAttributeValue{DataType: "Number", StringValue: fmt.Sprint(v)}
}

// BinaryAttribute cria um atributo do tipo Binary.
func BinaryAttribute(v []byte) MessageAttributeValue {
	return MessageAttributeValue{DataType: "Binary", BinaryValue: v}
}

// String devolve a representação textual do valor (binários em base64).
func (v MessageAttributeValue) String() string {
	if len(v.BinaryValue) > 0 {
		return base64.StdEncoding.EncodeToString(v.BinaryValue)
	}
	return v.StringValue
}

// Topic identifica um tópico na listagem.
type Topic struct {
	TopicArn string `xml:"TopicArn" json:"topic_arn"`
}

// Subscription descreve uma assinatura.
type Subscription struct {
	SubscriptionArn string `xml:"SubscriptionArn" json:"subscription_arn"`
	Owner           string `xml:"Owner" json:"owner"`
	Protocol        string `xml:"Protocol" json:"protocol"`
	Endpoint        string `xml:"Endpoint" json:"endpoint"`
	TopicArn        string `xml:"TopicArn" json:"topic_arn"`
}

// PlatformApplication descreve uma aplicação de push (APNS, GCM, ...).
type PlatformApplication struct {
	PlatformApplicationArn string       `xml:"PlatformApplicationArn" json:"platform_application_arn"`
	Attributes             AttributeMap `xml:"Attributes" json:"attributes,omitempty"`
}

// Endpoint descreve um dispositivo registrado em uma PlatformApplication.
type Endpoint struct {
	EndpointArn string       `xml:"EndpointArn" json:"endpoint_arn"`
	Attributes  AttributeMap `xml:"Attributes" json:"attributes,omitempty"`
}

// PublishBatchRequestEntry é uma mensagem dentro de um PublishBatch.
type PublishBatchRequestEntry struct {
	ID                     string                           `json:"id" validate:"required,max=80"`
	Message                string                           `json:"message" validate:"required"`
	Subject                string                           `json:"subject,omitempty"`
	MessageStructure       string                           `json:"message_structure,omitempty"`
	MessageAttributes      map[string]MessageAttributeValue `json:"message_attributes,omitempty" validate:"dive"`
	MessageDeduplicationID string                           `json:"message_deduplication_id,omitempty"`
	MessageGroupID         string                           `json:"message_group_id,omitempty"`
}

// PublishBatchResultEntry é uma mensagem publicada com sucesso no batch.
type PublishBatchResultEntry struct {
	ID             string `xml:"Id" json:"id"`
	MessageID      string `xml:"MessageId" json:"message_id"`
	SequenceNumber string `xml:"SequenceNumber" json:"sequence_number,omitempty"`
}

// BatchResultErrorEntry é uma mensagem rejeitada dentro do batch.
type BatchResultErrorEntry struct {
	ID          string `xml:"Id" json:"id"`
	Code        string `xml:"Code" json:"code"`
	Message     string `xml:"Message" json:"message,omitempty"`
	SenderFault bool   `xml:"SenderFault" json:"sender_fault"`
}

// --- Inputs e Outputs por operação ---

type AddPermissionInput struct {
	TopicArn     string   `validate:"required,arn"`
	Label        string   `validate:"required"`
	AWSAccountID []string `validate:"required,min=1"`
	ActionName   []string `validate:"required,min=1"`
}

type CheckIfPhoneNumberIsOptedOutInput struct {
	PhoneNumber string `validate:"required"`
}

type CheckIfPhoneNumberIsOptedOutOutput struct {
	IsOptedOut bool `xml:"isOptedOut" json:"is_opted_out"`
	ResponseMetadata
}

type ConfirmSubscriptionInput struct {
	TopicArn                  string `validate:"required,arn"`
	Token                     string `validate:"required"`
	AuthenticateOnUnsubscribe string `validate:"omitempty,oneof=true false"`
}

type ConfirmSubscriptionOutput struct {
	SubscriptionArn string `xml:"SubscriptionArn" json:"subscription_arn"`
	ResponseMetadata
}

type CreatePlatformApplicationInput struct {
	Name       string `validate:"required"`
	Platform   string `validate:"required"`
	Attributes map[string]string
}

type CreatePlatformApplicationOutput struct {
	PlatformApplicationArn string `xml:"PlatformApplicationArn" json:"platform_application_arn"`
	ResponseMetadata
}

type CreatePlatformEndpointInput struct {
	PlatformApplicationArn string `validate:"required,arn"`
	Token                  string `validate:"required"`
	CustomUserData         string
	Attributes             map[string]string
}

type CreatePlatformEndpointOutput struct {
	EndpointArn string `xml:"EndpointArn" json:"endpoint_arn"`
	ResponseMetadata
}

type CreateTopicInput struct {
	Name       string `validate:"required,max=256"`
	Attributes map[string]string
	Tags       []Tag `validate:"dive"`
}

type CreateTopicOutput struct {
	TopicArn string `xml:"TopicArn" json:"topic_arn"`
	ResponseMetadata
}

type DeleteEndpointInput struct {
	EndpointArn string `validate:"required,arn"`
}

type DeletePlatformApplicationInput struct {
	PlatformApplicationArn string `validate:"required,arn"`
}

type DeleteTopicInput struct {
	TopicArn string `validate:"required,arn"`
}

type GetEndpointAttributesInput struct {
	EndpointArn string `validate:"required,arn"`
}

type GetEndpointAttributesOutput struct {
	Attributes AttributeMap `xml:"Attributes" json:"attributes"`
	ResponseMetadata
}

type GetPlatformApplicationAttributesInput struct {
	PlatformApplicationArn string `validate:"required,arn"`
}

type GetPlatformApplicationAttributesOutput struct {
	Attributes AttributeMap `xml:"Attributes" json:"attributes"`
	ResponseMetadata
}

type GetSMSAttributesInput struct {
	// Attributes filtra os nomes desejados; vazio devolve todos.
	Attributes []string
}

type GetSMSAttributesOutput struct {
	Attributes AttributeMap `xml:"attributes" json:"attributes"`
	ResponseMetadata
}

type GetSubscriptionAttributesInput struct {
	SubscriptionArn string `validate:"required,arn"`
}

type GetSubscriptionAttributesOutput struct {
	Attributes AttributeMap `xml:"Attributes" json:"attributes"`
	ResponseMetadata
}

type GetTopicAttributesInput struct {
	TopicArn string `validate:"required,arn"`
}

type GetTopicAttributesOutput struct {
	Attributes AttributeMap `xml:"Attributes" json:"attributes"`
	ResponseMetadata
}

type ListEndpointsByPlatformApplicationInput struct {
	PlatformApplicationArn string `validate:"required,arn"`
	NextToken              string
}

type ListEndpointsByPlatformApplicationOutput struct {
	Endpoints []Endpoint `xml:"Endpoints>member" json:"endpoints"`
	NextToken string     `xml:"NextToken" json:"next_token,omitempty"`
	ResponseMetadata
}

type ListPhoneNumbersOptedOutInput struct {
	NextToken string
}

type ListPhoneNumbersOptedOutOutput struct {
	PhoneNumbers []string `xml:"phoneNumbers>member" json:"phone_numbers"`
	NextToken    string   `xml:"nextToken" json:"next_token,omitempty"`
	ResponseMetadata
}

type ListPlatformApplicationsInput struct {
	NextToken string
}

type ListPlatformApplicationsOutput struct {
	PlatformApplications []PlatformApplication `xml:"PlatformApplications>member" json:"platform_applications"`
	NextToken            string                `xml:"NextToken" json:"next_token,omitempty"`
	ResponseMetadata
}

type ListSubscriptionsInput struct {
	NextToken string
}

type ListSubscriptionsOutput struct {
	Subscriptions []Subscription `xml:"Subscriptions>member" json:"subscriptions"`
	NextToken     string         `xml:"NextToken" json:"next_token,omitempty"`
	ResponseMetadata
}

type ListSubscriptionsByTopicInput struct {
	TopicArn  string `validate:"required,arn"`
	NextToken string
}

type ListSubscriptionsByTopicOutput struct {
	Subscriptions []Subscription `xml:"Subscriptions>member" json:"subscriptions"`
	NextToken     string         `xml:"NextToken" json:"next_token,omitempty"`
	ResponseMetadata
}

type ListTopicsInput struct {
	NextToken string
}

type ListTopicsOutput struct {
	Topics    []Topic `xml:"Topics>member" json:"topics"`
	NextToken string  `xml:"NextToken" json:"next_token,omitempty"`
	ResponseMetadata
}

type OptInPhoneNumberInput struct {
	PhoneNumber string `validate:"required"`
}

type OptInPhoneNumberOutput struct {
	ResponseMetadata
}

// PublishInput exige um destino: TopicArn, TargetArn ou PhoneNumber.
type PublishInput struct {
	TopicArn               string `validate:"required_without_all=TargetArn PhoneNumber,arn"`
	TargetArn              string `validate:"arn"`
	PhoneNumber            string
	Message                string                           `validate:"required"`
	Subject                string                           `validate:"max=100"`
	MessageStructure       string                           `validate:"omitempty,oneof=json"`
	MessageAttributes      map[string]MessageAttributeValue `validate:"dive"`
	MessageDeduplicationID string                           `validate:"max=128"`
	MessageGroupID         string                           `validate:"max=128"`
}

type PublishOutput struct {
	MessageID      string `xml:"MessageId" json:"message_id"`
	SequenceNumber string `xml:"SequenceNumber" json:"sequence_number,omitempty"`
	ResponseMetadata
}

type PublishBatchInput struct {
	TopicArn                   string                     `validate:"required,arn"`
	PublishBatchRequestEntries []PublishBatchRequestEntry `validate:"required,min=1,max=10,dive"`
}

type PublishBatchOutput struct {
	Successful []PublishBatchResultEntry `xml:"Successful>member" json:"successful"`
	Failed     []BatchResultErrorEntry   `xml:"Failed>member" json:"failed"`
	ResponseMetadata
}

type RemovePermissionInput struct {
	TopicArn string `validate:"required,arn"`
	Label    string `validate:"required"`
}

type SetEndpointAttributesInput struct {
	EndpointArn string            `validate:"required,arn"`
	Attributes  map[string]string `validate:"required"`
}

type SetPlatformApplicationAttributesInput struct {
	PlatformApplicationArn string            `validate:"required,arn"`
	Attributes             map[string]string `validate:"required"`
}

type SetSMSAttributesInput struct {
	Attributes map[string]string `validate:"required"`
}

type SetSMSAttributesOutput struct {
	ResponseMetadata
}

type SetSubscriptionAttributesInput struct {
	SubscriptionArn string `validate:"required,arn"`
	AttributeName   string `validate:"required"`
	AttributeValue  string
}

type SetTopicAttributesInput struct {
	TopicArn       string `validate:"required,arn"`
	AttributeName  string `validate:"required"`
	AttributeValue string
}

type SubscribeInput struct {
	TopicArn              string `validate:"required,arn"`
	Protocol              string `validate:"required,oneof=http https email email-json sms sqs application lambda firehose"`
	Endpoint              string
	Attributes            map[string]string
	ReturnSubscriptionArn bool
}

type SubscribeOutput struct {
	SubscriptionArn string `xml:"SubscriptionArn" json:"subscription_arn"`
	ResponseMetadata
}

type UnsubscribeInput struct {
	SubscriptionArn string `validate:"required,arn"`
}

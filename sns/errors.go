package sns

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	// ErrClientShutdown é retornado (dentro de um ClientError) após Client.Shutdown.
	ErrClientShutdown = errors.New("sns: client is shut down")
	// ErrPoolShutdown resolve futures submetidas após (ou pendentes durante) AsyncClient.Shutdown.
	ErrPoolShutdown = errors.New("sns: async worker pool is shut down")
	// ErrCanceled resolve futures canceladas antes de iniciar.
	ErrCanceled = errors.New("sns: call canceled before start")
)

// Códigos de erro do protocolo (elemento <Code> do ErrorResponse).
const (
	CodeAuthorizationError           = "AuthorizationError"
	CodeEndpointDisabled             = "EndpointDisabled"
	CodeInternalError                = "InternalError"
	CodeInvalidParameter             = "InvalidParameter"
	CodeInvalidParameterValue        = "ParameterValueInvalid"
	CodeNotFound                     = "NotFound"
	CodePlatformApplicationDisabled  = "PlatformApplicationDisabled"
	CodeSubscriptionLimitExceeded    = "SubscriptionLimitExceeded"
	CodeThrottled                    = "Throttled"
	CodeTopicLimitExceeded           = "TopicLimitExceeded"
	CodeBatchEntryIdsNotDistinct     = "BatchEntryIdsNotDistinct"
	CodeBatchRequestTooLong          = "BatchRequestTooLong"
	CodeEmptyBatchRequest            = "EmptyBatchRequest"
	CodeInvalidBatchEntryID          = "InvalidBatchEntryId"
	CodeTooManyEntriesInBatchRequest = "TooManyEntriesInBatchRequest"
)

// ClientError indica que a requisição não pôde ser enviada ou que a
// resposta não pôde ser interpretada (rede, credenciais, validação, XML inválido).
type ClientError struct {
	// Operation é o nome da ação SNS (ex: "Publish").
	Operation string
	// Err é a causa original.
	Err error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("sns: %s: client error: %v", e.Operation, e.Err)
}

func (e *ClientError) Unwrap() error { return e.Err }

// ServiceError é o erro genérico devolvido pelo SNS.
//
// É usado diretamente quando o código não possui um tipo específico e
// embutido em todos os erros tipados.
type ServiceError struct {
	Code       string
	Message    string
	StatusCode int
	RequestID  string
	Operation  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("sns: %s: %s (status %d, request id %s): %s",
		e.Operation, e.Code, e.StatusCode, e.RequestID, e.Message)
}

// ErrorCode implementa smithy.APIError.
func (e *ServiceError) ErrorCode() string { return e.Code }

// ErrorMessage implementa smithy.APIError.
func (e *ServiceError) ErrorMessage() string { return e.Message }

// ErrorFault implementa smithy.APIError. Status 5xx é falha do servidor.
func (e *ServiceError) ErrorFault() smithy.ErrorFault {
	switch {
	case e.StatusCode >= 500:
		return smithy.FaultServer
	case e.StatusCode >= 400:
		return smithy.FaultClient
	default:
		return smithy.FaultUnknown
	}
}

// HTTPStatusCode devolve o status HTTP da resposta de erro.
func (e *ServiceError) HTTPStatusCode() int { return e.StatusCode }

var _ smithy.APIError = (*ServiceError)(nil)

type AuthorizationErrorException struct{ ServiceError }

func (e *AuthorizationErrorException) Unwrap() error { return &e.ServiceError }

type EndpointDisabledException struct{ ServiceError }

func (e *EndpointDisabledException) Unwrap() error { return &e.ServiceError }

type InternalErrorException struct{ ServiceError }

func (e *InternalErrorException) Unwrap() error { return &e.ServiceError }

type InvalidParameterException struct{ ServiceError }

func (e *InvalidParameterException) Unwrap() error { return &e.ServiceError }

type InvalidParameterValueException struct{ ServiceError }

func (e *InvalidParameterValueException) Unwrap() error { return &e.ServiceError }

type NotFoundException struct{ ServiceError }

func (e *NotFoundException) Unwrap() error { return &e.ServiceError }

type PlatformApplicationDisabledException struct{ ServiceError }

func (e *PlatformApplicationDisabledException) Unwrap() error { return &e.ServiceError }

type SubscriptionLimitExceededException struct{ ServiceError }

func (e *SubscriptionLimitExceededException) Unwrap() error { return &e.ServiceError }

type ThrottledException struct{ ServiceError }

func (e *ThrottledException) Unwrap() error { return &e.ServiceError }

type TopicLimitExceededException struct{ ServiceError }

func (e *TopicLimitExceededException) Unwrap() error { return &e.ServiceError }

type BatchEntryIdsNotDistinctException struct{ ServiceError }

func (e *BatchEntryIdsNotDistinctException) Unwrap() error { return &e.ServiceError }

type BatchRequestTooLongException struct{ ServiceError }

func (e *BatchRequestTooLongException) Unwrap() error { return &e.ServiceError }

type EmptyBatchRequestException struct{ ServiceError }

func (e *EmptyBatchRequestException) Unwrap() error { return &e.ServiceError }

type InvalidBatchEntryIDException struct{ ServiceError }

func (e *InvalidBatchEntryIDException) Unwrap() error { return &e.ServiceError }

type TooManyEntriesInBatchRequestException struct{ ServiceError }

func (e *TooManyEntriesInBatchRequestException) Unwrap() error { return &e.ServiceError }

// errorTable mapeia o código do protocolo para o construtor do erro tipado.
// Códigos ausentes caem no *ServiceError genérico.
var errorTable = map[string]func(ServiceError) error{
	CodeAuthorizationError:           func(b ServiceError) error { return &AuthorizationErrorException{b} },
	CodeEndpointDisabled:             func(b ServiceError) error { return &EndpointDisabledException{b} },
	CodeInternalError:                func(b ServiceError) error { return &InternalErrorException{b} },
	CodeInvalidParameter:             func(b ServiceError) error { return &InvalidParameterException{b} },
	CodeInvalidParameterValue:        func(b ServiceError) error { return &InvalidParameterValueException{b} },
	CodeNotFound:                     func(b ServiceError) error { return &NotFoundException{b} },
	CodePlatformApplicationDisabled:  func(b ServiceError) error { return &PlatformApplicationDisabledException{b} },
	CodeSubscriptionLimitExceeded:    func(b ServiceError) error { return &SubscriptionLimitExceededException{b} },
	CodeThrottled:                    func(b ServiceError) error { return &ThrottledException{b} },
	CodeTopicLimitExceeded:           func(b ServiceError) error { return &TopicLimitExceededException{b} },
	CodeBatchEntryIdsNotDistinct:     func(b ServiceError) error { return &BatchEntryIdsNotDistinctException{b} },
	CodeBatchRequestTooLong:          func(b ServiceError) error { return &BatchRequestTooLongException{b} },
	CodeEmptyBatchRequest:            func(b ServiceError) error { return &EmptyBatchRequestException{b} },
	CodeInvalidBatchEntryID:          func(b ServiceError) error { return &InvalidBatchEntryIDException{b} },
	CodeTooManyEntriesInBatchRequest: func(b ServiceError) error { return &TooManyEntriesInBatchRequestException{b} },
}

// classify transforma a resposta de erro no erro tipado correspondente.
func classify(base ServiceError) error {
	if ctor, ok := errorTable[base.Code]; ok {
		return ctor(base)
	}
	return &base
}

// ErrorCode extrai o código de erro do serviço, se houver.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

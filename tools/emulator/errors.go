package emulator

import (
	"fmt"
	"net/http"

	"github.com/raywall/fast-sns/sns"
)

// apiError é um erro devolvido ao client no formato <ErrorResponse>.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Code + ": " + e.Message }

func (e *apiError) errorType() string {
	if e.Status >= 500 {
		return "Receiver"
	}
	return "Sender"
}

func invalidParameter(format string, args ...any) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: sns.CodeInvalidParameter, Message: "Invalid parameter: " + fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *apiError {
	return &apiError{Status: http.StatusNotFound, Code: sns.CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func batchError(code, format string, args ...any) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: fmt.Sprintf(format, args...)}
}

func internalError(err error) *apiError {
	return &apiError{Status: http.StatusInternalServerError, Code: sns.CodeInternalError, Message: err.Error()}
}

package elevenlabs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error classes. Every client failure matches exactly one of them via errors.Is.
var (
	ErrTransport  = errors.New("elevenlabs transport error")
	ErrValidation = errors.New("elevenlabs request invalid")
)

// Validation errors raised before any network call.
var (
	ErrAPIKeyMissing    = fmt.Errorf("%w: api key is missing", ErrValidation)
	ErrVoiceNotSelected = fmt.Errorf("%w: no voice selected", ErrValidation)
	ErrTextEmpty        = fmt.Errorf("%w: text cannot be empty", ErrValidation)
)

// ClientError is a transport or HTTP failure. StatusCode is zero when the request
// never produced a response.
type ClientError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ClientError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s (status %d %s)", e.Message, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *ClientError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}

	return []error{ErrTransport, e.Err}
}

func newTransportError(message string, err error) *ClientError {
	return &ClientError{
		StatusCode: 0,
		Message:    fmt.Sprintf("%s: %v", message, err),
		Err:        err,
	}
}

func newStatusError(statusCode int, message string) *ClientError {
	return &ClientError{
		StatusCode: statusCode,
		Message:    message,
		Err:        nil,
	}
}

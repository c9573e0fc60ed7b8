package model

import (
	"errors"
	"fmt"

	"github.com/ferdian3456/communityclient/internal/constant"
)

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BusinessError is returned when the server answered with IsSuccess false.
// Message is shown to the user as is.
type BusinessError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request rejected by server", e.Op)
	}

	return e.Message
}

// TransportError covers network failures, undecodable bodies and non-2xx
// responses without a usable envelope.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}

	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage maps any error returned by the client core to the text a
// screen shows in its error banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	var businessErr *BusinessError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &businessErr):
		if businessErr.Message != "" {
			return businessErr.Message
		}
		return constant.ERR_BUSINESS_FALLBACK_MESSAGE
	default:
		return constant.ERR_GENERIC_RETRY_MESSAGE
	}
}

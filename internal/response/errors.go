package response

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse reports a response whose structure does not match the
// expected document, as opposed to an error reported by the service itself.
var ErrMalformedResponse = errors.New("malformed search response")

// Messages for the error codes the service is known to return.
var serviceMessages = map[int]string{
	0:   "user or key is not set",
	1:   "syntax error in the search query",
	2:   "empty search query",
	15:  "no results found for the search query",
	18:  "request document cannot be validated or has invalid parameters",
	19:  "search query contains incompatible parameters",
	20:  "unknown error",
	31:  "user is not registered with the service",
	32:  "daily request limit exceeded",
	33:  "request came from an IP address that is not allowed",
	37:  "error in request parameters",
	42:  "invalid key",
	43:  "invalid key version",
	44:  "request address is not registered",
	48:  "search type does not match the registered type",
	55:  "requests-per-second limit exceeded",
	100: "request looks automated, captcha required",
}

// ServiceError is returned when the response carries an error element.
type ServiceError struct {
	Code int
	// Context is the text of the error element as sent by the service.
	Context string
}

// Message resolves the code against the static message table, falling back
// to the service's own text.
func (e *ServiceError) Message() string {
	if msg, ok := serviceMessages[e.Code]; ok {
		return msg
	}
	if e.Context != "" {
		return e.Context
	}
	return "unknown error"
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("search service error %d: %s", e.Code, e.Message())
}

// MessageFor returns the message for a service error code.
func MessageFor(code int) string {
	return (&ServiceError{Code: code}).Message()
}

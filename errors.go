package generator

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to transport-level concerns
// such as HTTP status codes. Fetch failures use EUNAVAILABLE; the two
// structuring failure modes have their own codes so callers can tell a
// reply with no JSON apart from a reply with malformed JSON.
const (
	EINVALID         = "invalid"          // validation failed on caller input
	ENOTFOUND        = "not_found"        // entity does not exist
	EUNAVAILABLE     = "unavailable"      // network failure, timeout, or non-success status
	ENOJSON          = "no_json_found"    // structuring reply contains no JSON object
	EBADJSON         = "invalid_json"     // structuring reply contains unparseable JSON
	EUNAUTHORIZED    = "unauthorized"     // credential rejected
	EPAYMENTREQUIRED = "payment_required" // credential quota or balance exhausted
	ERATELIMITED     = "rate_limited"     // upstream throttled the request
	EINTERNAL        = "internal"         // internal error
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("generator error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

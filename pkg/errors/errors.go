package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code is the machine-readable error class carried in the envelope's code field.
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeIdempotency   Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit     Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// rendering decides what a client sees for a code.
type rendering struct {
	status   int
	fallback string
	// expose lets the error's own message replace fallback.
	expose bool
	// details allows the envelope's errors field.
	details bool
}

var renderings = map[Code]rendering{
	CodeValidation:    {status: http.StatusBadRequest, fallback: "Validation failed", expose: true, details: true},
	CodeUnauthorized:  {status: http.StatusUnauthorized, fallback: "Authentication required", expose: true},
	CodeForbidden:     {status: http.StatusForbidden, fallback: "Access denied", expose: true},
	CodeNotFound:      {status: http.StatusNotFound, fallback: "Resource not found", expose: true},
	CodeConflict:      {status: http.StatusConflict, fallback: "Resource already exists", expose: true},
	CodeStateConflict: {status: http.StatusUnprocessableEntity, fallback: "State transition disallowed", expose: true, details: true},
	CodeIdempotency:   {status: http.StatusConflict, fallback: "Idempotency key reused", details: true},
	CodeRateLimit:     {status: http.StatusTooManyRequests, fallback: "Too many requests, please try again later", expose: true},
	CodeInternal:      {status: http.StatusInternalServerError, fallback: "Internal server error"},
	CodeDependency:    {status: http.StatusServiceUnavailable, fallback: "Dependency unavailable", details: true},
}

func (c Code) rendering() rendering {
	if r, ok := renderings[c]; ok {
		return r
	}
	return renderings[CodeInternal]
}

// Status is the HTTP status written for the code. Unknown codes map to 500.
func (c Code) Status() int { return c.rendering().status }

// Error is the typed error services return to controllers.
type Error struct {
	code    Code
	message string
	details any
	cause   error
	public  bool
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap keeps err as the cause. A nil err behaves like New.
func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// From returns err as a typed error, wrapping untyped ones as internal.
func From(err error) *Error {
	if typed := As(err); typed != nil {
		return typed
	}
	if err == nil {
		err = stdErrors.New("unknown error")
	}
	return Wrap(CodeInternal, err, "unexpected error")
}

// Public marks the message as safe to show even under a code that hides messages.
func (e *Error) Public() *Error {
	if e != nil {
		e.public = true
	}
	return e
}

func (e *Error) IsPublic() bool {
	return e != nil && (e.public || e.code.rendering().expose)
}

func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// ClientMessage is the envelope message: the error's own text when public,
// otherwise the code's fallback.
func (e *Error) ClientMessage() string {
	if e.IsPublic() && e.message != "" {
		return e.message
	}
	return e.Code().rendering().fallback
}

// ClientDetails returns details only for codes that allow them.
func (e *Error) ClientDetails() any {
	if e == nil || !e.code.rendering().details {
		return nil
	}
	return e.details
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause == nil {
		return string(e.code) + ": " + e.message
	}
	return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	var typed *Error
	if err != nil && stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given typed code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

package bizerror

import (
	"errors"
	"net/http"
)

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

// Error is a failure a client can act upon. Two errors are the same kind when their codes match.
type Error struct {
	Status  int
	Code    string
	Message string

	Cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: e.Status, Code: e.Code, Message: e.Message, Cause: e.Cause}
}

// WithMessage returns an error of the same kind carrying a more specific message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Status: e.Status, Code: e.Code, Message: message, Cause: e.Cause}
}

// WithCause returns an error of the same kind wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	message := e.Message
	if cause != nil {
		message = cause.Error()
	}
	return &Error{Status: e.Status, Code: e.Code, Message: message, Cause: cause}
}

var (
	ErrRequiredInput = &Error{Status: http.StatusBadRequest, Code: "common.required_input",
		Message: "it is not allowed to persist a null object"}
	ErrEmptyName = &Error{Status: http.StatusBadRequest, Code: "validation.empty_name",
		Message: "the name cannot be null or blank"}
	ErrInvalidNameSize = &Error{Status: http.StatusBadRequest, Code: "validation.invalid_name_size",
		Message: "the name field must be between 3 and 100 characters"}
	ErrInvalidEmail = &Error{Status: http.StatusBadRequest, Code: "validation.invalid_email",
		Message: "the email provided is invalid"}
	ErrDuplicateEmail = &Error{Status: http.StatusBadRequest, Code: "validation.duplicate_email",
		Message: "the email is already in use"}
	ErrMissingForeignKey = &Error{Status: http.StatusBadRequest, Code: "validation.missing_foreign_key",
		Message: "project id is required"}
	ErrNotFound = &Error{Status: http.StatusNotFound, Code: "common.record_not_found",
		Message: "record not found"}
	ErrDuplicateAssignment = &Error{Status: http.StatusBadRequest, Code: "validation.duplicate_assignment",
		Message: "collaborator is already assigned to the task"}
	ErrIntegrityConflict = &Error{Status: http.StatusBadRequest, Code: "database.integrity_conflict",
		Message: "record is referenced by other records"}

	ErrTooManyRequests = errors.New("too many requests")
)

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}

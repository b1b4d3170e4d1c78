package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	// CodeValidation tags ValidationErrors responses.
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Quiz session errors
	CodeEmptyBank         ErrorCode = "EMPTY_BANK"
	CodeNoAnswerSelected  ErrorCode = "NO_ANSWER_SELECTED"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeInvalidAnswer     ErrorCode = "INVALID_ANSWER"
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"

	// Content errors
	CodeTextNotFound ErrorCode = "TEXT_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code, so callers can test
// against the sentinels below with errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a key/value pair reported alongside the error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// Sentinels for errors.Is checks.
var (
	ErrEmptyBank         = &DomainError{Code: CodeEmptyBank, Message: "question bank is empty"}
	ErrNoAnswerSelected  = &DomainError{Code: CodeNoAnswerSelected, Message: "no answer selected for the current question"}
	ErrInvalidTransition = &DomainError{Code: CodeInvalidTransition, Message: "operation not allowed in the current session state"}
	ErrInvalidAnswer     = &DomainError{Code: CodeInvalidAnswer, Message: "answer does not fit the current question"}
	ErrSessionNotFound   = &DomainError{Code: CodeSessionNotFound, Message: "session not found"}
	ErrTextNotFound      = &DomainError{Code: CodeTextNotFound, Message: "text not found"}
)

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewEmptyBankError() *DomainError {
	return NewError(CodeEmptyBank, ErrEmptyBank.Message, nil)
}

func NewNoAnswerSelectedError(position int) *DomainError {
	return NewError(CodeNoAnswerSelected, ErrNoAnswerSelected.Message, nil).
		WithContext("position", position)
}

// NewInvalidTransitionError reports an operation attempted from a state that
// does not allow it.
func NewInvalidTransitionError(op string, state SessionState, reason string) *DomainError {
	return NewError(CodeInvalidTransition, fmt.Sprintf("cannot %s: %s", op, reason), nil).
		WithContext("operation", op).
		WithContext("state", state.String())
}

func NewInvalidAnswerError(message string) *DomainError {
	return NewError(CodeInvalidAnswer, message, nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("session not found with ID: %s", sessionID), nil)
}

func NewTextNotFoundError(textID int) *DomainError {
	return NewError(CodeTextNotFound, fmt.Sprintf("text not found with ID: %d", textID), nil)
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors from one validation pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewValidationError(message string) ValidationError {
	return ValidationError{Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: "invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", min, max), Value: value}
}

package validation

import (
	"strconv"
	"strings"

	"classics-study/internal/domain"
	"classics-study/internal/util"
)

const (
	MaxTextID = 10000
	MaxLimit  = 100
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID checks a session id path parameter.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}
	return errors
}

// ParseTextID parses a text id. allowZero admits 0, meaning "whole bank".
func (v *Validator) ParseTextID(field, raw string, allowZero bool) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError(field, raw)}
	}
	return id, v.ValidateTextID(field, id, allowZero)
}

// ValidateTextID range-checks a text id.
func (v *Validator) ValidateTextID(field string, id int, allowZero bool) domain.ValidationErrors {
	min := 1
	if allowZero {
		min = 0
	}
	if id < min || id > MaxTextID {
		return domain.ValidationErrors{domain.NewOutOfRangeError(field, id, min, MaxTextID)}
	}
	return nil
}

// ParseLimit parses an optional limit query parameter; empty means 0, the
// caller's default.
func (v *Validator) ParseLimit(raw string) (int, domain.ValidationErrors) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
	}
	if limit < 1 || limit > MaxLimit {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("limit", limit, 1, MaxLimit)}
	}
	return limit, nil
}

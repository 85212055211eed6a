package domain

import (
	"fmt"
	"strings"
)

// Violation describes a single failed input rule as a field/message pair.
// The JSON shape matches the API error body: {"field": ..., "message": ...}.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete, ordered list of violations for a
// payload. Violations appear in field declaration order so the output is
// deterministic; rule evaluation never short-circuits on the first failure.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError creates a ValidationError with a single violation.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Violations: []Violation{{Field: field, Message: message}},
	}
}

// Add appends a violation, preserving insertion order.
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Message: message})
}

// HasViolations reports whether any rule failed.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// Has reports whether a violation was recorded for the given field.
func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s %s", v.Field, v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Unwrap supports errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

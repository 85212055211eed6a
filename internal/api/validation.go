package api

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/plumehq/plume-api/internal/domain"
)

// birthDateLayout is the wire format for birth dates.
const birthDateLayout = "2006-01-02"

// minPasswordLen is the minimum accepted password length.
const minPasswordLen = 8

// Validator evaluates the declarative per-field rules on request payloads
// and translates failures into ordered domain.Violation lists. Rules run
// in struct field declaration order and every failure is collected, so
// callers receive the complete violation set in one round trip.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the application's custom rules
// registered: "minage" (birth date implies a minimum age in years) and
// "password" (length plus digit and symbol requirements).
func NewValidator() *Validator {
	v := validator.New()

	// Report violations under the JSON field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("minage", validateMinAge); err != nil {
		panic(fmt.Sprintf("failed to register minage validation: %v", err))
	}
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		panic(fmt.Sprintf("failed to register password validation: %v", err))
	}

	return &Validator{validate: v}
}

// Struct validates the given payload struct. Returns nil when every rule
// passes, otherwise a ValidationError carrying all violations in field
// declaration order.
func (v *Validator) Struct(payload interface{}) *domain.ValidationError {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError means the payload was not a struct,
		// which is a programming error in the handler
		panic(fmt.Sprintf("validation called with invalid payload: %v", err))
	}

	ve := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), violationMessage(fe))
	}
	return ve
}

// violationMessage maps a failed validation tag to a client-facing message.
func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "datetime":
		return "must be a valid date in YYYY-MM-DD format"
	case "minage":
		return fmt.Sprintf("must correspond to an age of at least %s years", fe.Param())
	case "password":
		return fmt.Sprintf(
			"must be at least %d characters long and contain at least one digit and one symbol",
			minPasswordLen,
		)
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}

// validateMinAge checks that a YYYY-MM-DD birth date implies an age of at
// least the tag parameter in whole years. Unparseable values pass; the
// datetime rule ahead of this one reports the format problem.
func validateMinAge(fl validator.FieldLevel) bool {
	minimum, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	birthDate, err := time.Parse(birthDateLayout, fl.Field().String())
	if err != nil {
		return true
	}

	now := time.Now().UTC()
	years := now.Year() - birthDate.Year()
	if birthDate.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years >= minimum
}

// validatePassword enforces the password strength rule: at least
// minPasswordLen characters, with at least one digit and one symbol.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < minPasswordLen {
		return false
	}

	var hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasDigit && hasSymbol
}

package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// serverNamePattern is port@domain.tld, case-insensitive.
var serverNamePattern = regexp.MustCompile(`(?i)^\d{1,5}@(?:[a-z\d\-]+\.)+[a-z\-]{2,}$`)

// ValidationError names the first rule a request broke.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s failed rule %s", e.Field, e.Rule)
}

// Validator checks request structs against their `validate` tags.
// Fields are checked in declaration order and only the first failure is reported.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("server_name", isServerName); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

func isServerName(fl validator.FieldLevel) bool {
	return serverNamePattern.MatchString(fl.Field().String())
}

// Check returns nil or a *ValidationError for the first violated rule.
func (v *Validator) Check(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return &ValidationError{Field: first.Field(), Rule: first.Tag()}
	}
	return err
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

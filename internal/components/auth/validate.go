package auth

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quytt2702/authapi/internal/shared/apperr"
)

// NewValidate builds the request validator. Field names in violations follow
// the JSON tag so pointers match what the client actually sent.
func NewValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the validator and converts violations into one
// FieldError per field per broken rule.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]apperr.FieldError, 0, len(violations))
	for _, violation := range violations {
		fields = append(fields, apperr.FieldError{
			Title:   fmt.Sprintf("The %s field is invalid.", violation.Field()),
			Detail:  ruleDetail(violation),
			Pointer: violation.Field(),
		})
	}

	return &apperr.ValidationError{Fields: fields}
}

func ruleDetail(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", violation.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", violation.Field())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", violation.Field(), violation.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", violation.Field(), violation.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", violation.Field())
	}
}

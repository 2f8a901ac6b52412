package dto

import (
	"errors"
	"fmt"

	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and reports the first failure as ErrValidation.
func Validate(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", autherror.ErrValidation, err)
	}
	return fmt.Errorf("%w: %s", autherror.ErrValidation, message(fieldErrs[0]))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", jsonName(fe.Field()))
	case "email":
		return "valid email required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", jsonName(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", jsonName(fe.Field()))
	}
}

func jsonName(field string) string {
	switch field {
	case "Email":
		return "email"
	case "Password":
		return "password"
	default:
		return field
	}
}

package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate runs struct-tag validation and converts failures into a
// VALIDATION_FAILED error naming each offending field.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(verrs))
	first := ""
	for _, fe := range verrs {
		if first == "" {
			first = fe.Field()
		}
		details[fe.Field()] = message(fe)
	}
	return apperrors.NewValidationError(fmt.Sprintf("invalid field %q", first), details)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the field '%s' is required", fe.Field())
	case "email":
		return fmt.Sprintf("the field '%s' must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("the field '%s' must be no longer than %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("the field '%s' is invalid", fe.Field())
	}
}

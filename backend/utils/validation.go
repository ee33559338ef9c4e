package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks struct tags and returns an InvalidInput error with per-field details.
func Validate(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return InvalidInputError("Invalid input")
	}
	details := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	appErr := InvalidInputError(validationMessage(ve[0]))
	appErr.Details = details
	return appErr
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please provide a valid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return "Validation failed"
	}
}

// BindJSON parses the request body into dst and validates it.
func BindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return InvalidInputError("Cannot parse JSON")
	}
	return Validate(dst)
}

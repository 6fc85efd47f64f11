package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"media-review/pkg/apperr"
)

// ReservedHandle cannot be registered: it names the self-profile route.
const ReservedHandle = "me"

var (
	handlePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern   = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("notme", func(fl validator.FieldLevel) bool {
		return fl.Field().String() != ReservedHandle
	})
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("pastyear", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1 && year <= int64(time.Now().Year())
	})

	return v
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// Validate runs ValidateStruct and wraps failures as an apperr validation error.
func Validate(data interface{}) error {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return apperr.Validation("Validation failed", errs)
	}
	return nil
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid":
		return "Must be a valid UUID"
	case "handle":
		return "May contain only letters, digits and @/./+/-/_"
	case "notme":
		return fmt.Sprintf("Username %q is reserved", ReservedHandle)
	case "slug":
		return "May contain only letters, digits, hyphens and underscores"
	case "pastyear":
		return "Year must be between 1 and the current year"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

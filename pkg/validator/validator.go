package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors turns validator failures into a field -> message
// map for the 400 response body. Numeric bounds (durations, buffers) and
// string lengths get distinct wording, and the scheduling tags (HH:mm
// times, status and recurrence enums) spell out the expected shape.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "datetime":
				if e.Param() == "15:04" {
					errors[field] = field + " must be a time in HH:mm format"
				} else {
					errors[field] = field + " must match the format " + e.Param()
				}
			case "oneof":
				errors[field] = field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
			case "min":
				if e.Kind() == reflect.String {
					errors[field] = field + " must be at least " + e.Param() + " characters"
				} else {
					errors[field] = field + " must be at least " + e.Param()
				}
			case "max":
				if e.Kind() == reflect.String {
					errors[field] = field + " must be at most " + e.Param() + " characters"
				} else {
					errors[field] = field + " must be at most " + e.Param()
				}
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

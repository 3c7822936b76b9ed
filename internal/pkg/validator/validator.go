package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
)

// Shared validator instance to avoid creating multiple instances
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report the wire name in field errors so messages match the request body
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct validates s by its struct tags and converts the first failure into a
// domain validation error named after the offending wire field.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("invalid input: %v", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "gte", "min":
		if fe.Param() == "0" {
			return domain.NewValidationError("attribute `%s` cannot be negative", fe.Field())
		}
		return domain.NewValidationError("attribute `%s` must be at least %s", fe.Field(), fe.Param())
	case "required":
		return domain.NewValidationError("attribute `%s` is empty", fe.Field())
	case "ne":
		return domain.NewValidationError("attribute `%s` cannot be %s", fe.Field(), describe(fe.Param()))
	default:
		return domain.NewValidationError("attribute `%s` failed on %s", fe.Field(), fe.Tag())
	}
}

func describe(param string) string {
	if param == "0" {
		return "zero"
	}
	return param
}

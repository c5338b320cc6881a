package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field-level validation failures keyed by JSON path.
type validationErrors struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func flattenValidation(err error) validationErrors {
	out := validationErrors{FormErrors: []string{}, FieldErrors: map[string][]string{}}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out.FormErrors = append(out.FormErrors, err.Error())
		return out
	}

	for _, fe := range ve {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out.FieldErrors[field] = append(out.FieldErrors[field], describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_unless":
		return "is required unless roundTrip is true"
	case "datetime":
		return fmt.Sprintf("must match layout %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "timezone":
		return "must be an IANA time zone name"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

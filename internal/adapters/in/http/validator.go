package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs validator/v10 struct tags into echo.Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator reports fields by their JSON names.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

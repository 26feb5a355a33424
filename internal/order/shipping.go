package order

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
)

// ShippingDetails are collected by the checkout form.
type ShippingDetails struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	City    string `json:"city" validate:"required"`
	Address string `json:"address" validate:"required"`
	Notes   string `json:"notes,omitempty"`
}

var shippingValidator = newValidator()

func newValidator() *validator.Validate {
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

// Normalized trims surrounding whitespace from every field.
func (s ShippingDetails) Normalized() ShippingDetails {
	return ShippingDetails{
		Name:    strings.TrimSpace(s.Name),
		Phone:   strings.TrimSpace(s.Phone),
		City:    strings.TrimSpace(s.City),
		Address: strings.TrimSpace(s.Address),
		Notes:   strings.TrimSpace(s.Notes),
	}
}

// Validate reports every missing required field at once.
func (s ShippingDetails) Validate() error {
	err := shippingValidator.Struct(s.Normalized())
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validate shipping details")
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "shipping details incomplete: "+strings.Join(missing, ", ")+" required").
		WithDetails(map[string]any{"missing": missing})
}

package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"go.uber.org/multierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Validate checks every record and reports all violations at once.
func Validate(products []Product, collections []Collection) error {
	var errs error
	seenProducts := make(map[string]struct{}, len(products))
	for i, p := range products {
		errs = multierr.Append(errs, validateProduct(i, p))
		if p.ID == "" {
			continue
		}
		if _, dup := seenProducts[p.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("product %q: duplicate id", p.ID))
		}
		seenProducts[p.ID] = struct{}{}
	}

	seenCollections := make(map[string]struct{}, len(collections))
	for i, c := range collections {
		if err := validate.Struct(c); err != nil {
			errs = multierr.Append(errs, fieldErrors(fmt.Sprintf("collection[%d]", i), err))
		}
		if c.Handle == "" {
			continue
		}
		if _, dup := seenCollections[c.Handle]; dup {
			errs = multierr.Append(errs, fmt.Errorf("collection %q: duplicate handle", c.Handle))
		}
		seenCollections[c.Handle] = struct{}{}
	}

	if errs == nil {
		return nil
	}
	violations := multierr.Errors(errs)
	messages := make([]string, len(violations))
	for i, v := range violations {
		messages[i] = v.Error()
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, fmt.Sprintf("catalog has %d invalid record(s)", len(violations))).WithDetails(map[string]any{
		"violations": messages,
	})
}

func validateProduct(i int, p Product) error {
	label := fmt.Sprintf("product[%d]", i)
	if p.ID != "" {
		label = fmt.Sprintf("product %q", p.ID)
	}

	var errs error
	if err := validate.Struct(p); err != nil {
		errs = multierr.Append(errs, fieldErrors(label, err))
	}
	if p.Price.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("%s: price must not be negative", label))
	}
	if !p.Price.Equal(p.Price.Round(2)) {
		errs = multierr.Append(errs, fmt.Errorf("%s: price has more than two decimal places", label))
	}
	if p.CompareAtPrice != nil && p.CompareAtPrice.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("%s: compare_at_price must not be negative", label))
	}
	return errs
}

func fieldErrors(label string, err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%s: %w", label, err)
	}
	var errs error
	for _, fe := range fieldErrs {
		errs = multierr.Append(errs, fmt.Errorf("%s: %s %s", label, fe.Field(), validationMessage(fe)))
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return "is invalid"
}

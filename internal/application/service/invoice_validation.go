package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
	"github.com/shopspring/decimal"
)

var contactPattern = regexp.MustCompile(`^\d{10}$`)

// newInvoiceValidator returns a validator that reports json field names,
// compares decimals numerically and knows the "contact" rule.
func newInvoiceValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return contactPattern.MatchString(fl.Field().String())
	})

	return v
}

// validationError converts validator output into an application error.
func validationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	fieldErrors := make([]apperror.FieldError, 0, len(ves))
	for _, fe := range ves {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   field,
			Message: fieldMessage(fe),
		})
	}
	return apperror.NewValidationError(fieldErrors)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "items" {
			return "At least one item is required"
		}
		return fieldLabel(fe.Field()) + " is required"
	case "contact":
		return "Contact number must be exactly 10 digits"
	case "min":
		if fe.Field() == "items" {
			return "At least one item is required"
		}
		return fieldLabel(fe.Field()) + " must be at least " + fe.Param() + " characters"
	case "gt":
		return fieldLabel(fe.Field()) + " must be greater than zero"
	case "gte":
		return fieldLabel(fe.Field()) + " must not be negative"
	default:
		return fieldLabel(fe.Field()) + " is invalid"
	}
}

// fieldLabel turns customer_name into "Customer name".
func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return "Value"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

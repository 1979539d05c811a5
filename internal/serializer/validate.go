package serializer

import (
	"errors"
	"reflect"
	"strings"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

// validate checks struct-level rules on the write structs. Field names in
// its errors are the JSON keys.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs the validator on s and appends any rule failures to errs.
func checkStruct(s any, errs *domain.ValidationErrors) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		// items[2] reports against items
		name, _, _ := strings.Cut(fe.Field(), "[")
		errs.Add(name, kindFor(fe), messageFor(fe))
	}
	return nil
}

func kindFor(fe validator.FieldError) domain.ValidationKind {
	if fe.Tag() == "required" {
		return domain.KindRequired
	}
	return domain.KindInvalid
}

func messageFor(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if isString {
			if fe.Param() == "1" {
				return "this field may not be blank"
			}
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if isString {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return `must be one of "` + strings.Join(strings.Fields(fe.Param()), `", "`) + `"`
	default:
		return "is invalid"
	}
}

// Validate runs the struct rules on s and returns the failures as
// domain.ValidationErrors, or nil.
func Validate(s any) error {
	var errs domain.ValidationErrors
	if err := checkStruct(s, &errs); err != nil {
		return err
	}
	return errs.Err()
}

package report

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/erp/salesperf/internal/domain/report"
	"github.com/go-playground/validator/v10"
)

var dataValidator = newDataValidator()

func newDataValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput rejects structurally malformed input before any other stage runs.
// Data errors take precedence over option errors.
func validateInput(data *report.SalesData, opts *Options) error {
	if err := validateData(data); err != nil {
		return err
	}
	return validateOptions(opts)
}

// validateData checks that every collection is present and non-empty
func validateData(data *report.SalesData) error {
	if data == nil {
		return fmt.Errorf("%w: data is required", report.ErrInvalidData)
	}
	if err := dataValidator.Struct(data); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return fmt.Errorf("%w: %s must be a non-empty list", report.ErrInvalidData, validationErrors[0].Field())
		}
		return fmt.Errorf("%w: %v", report.ErrInvalidData, err)
	}
	return nil
}

func validateOptions(opts *Options) error {
	if opts == nil {
		return fmt.Errorf("%w: options are required", report.ErrInvalidOptions)
	}
	if isNil(opts.Revenue) || isNil(opts.Bonus) {
		return fmt.Errorf("%w: revenue and bonus calculators are required", report.ErrInvalidOptions)
	}
	return nil
}

// isNil also catches typed nils such as a nil strategy.RevenueFunc
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Package validation checks tagged input structs and reports failures in the
// errs taxonomy, one error per offending field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"tracker/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct validates s and joins the per-field failures. Missing values become
// *errs.ValueIsRequiredError, everything else *errs.ValueIsInvalidError.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("input", err)
	}

	out := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, translate(fe))
	}
	return errors.Join(out...)
}

func translate(fe validator.FieldError) error {
	field := fieldPath(fe)
	if strings.HasPrefix(fe.Tag(), "required") {
		return errs.NewValueIsRequiredError(field)
	}
	if fe.Param() != "" {
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("failed %s=%s", fe.Tag(), fe.Param()))
	}
	return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("failed %s", fe.Tag()))
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

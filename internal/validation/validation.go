// Package validation centralizes request validation for the traversal HTTP
// surface: struct-tag rules via go-playground/validator, aggregated into a
// single reportable error.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a configured validator.Validate instance.
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// Get returns the process-wide Validator, built once on first use.
func Get() *Validator {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New builds a Validator with this module's tag-name and field rules
// configured.
func New() *Validator {
	v := &Validator{validate: validator.New()}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// FieldError is one field's validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Errors aggregates every FieldError from a single Validate call.
type Errors struct {
	Errors []FieldError `json:"errors"`
}

func (e Errors) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Validate runs struct-tag validation over i, aggregating every failing
// field into an Errors value.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var agg Errors
	for _, fe := range validationErrors {
		agg.Errors = append(agg.Errors, FieldError{
			Field:   fe.Field(),
			Message: message(fe.Tag(), fe.Param()),
			Code:    strings.ToUpper(fe.Tag()),
		})
	}
	return agg
}

func message(tag, param string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must be at most %s", param)
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", param)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "dive":
		return "invalid item in collection"
	default:
		return fmt.Sprintf("failed %s validation", tag)
	}
}

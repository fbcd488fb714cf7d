// Package validation turns gin binding errors into per-field messages.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

type FieldErrors map[string]string

// FromBindError maps err to field -> message. dst is the bound struct
// pointer, read for json tags.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fieldKey(dst, fe.StructField())
			out[key] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	out["_"] = "The request body is invalid."
	return out
}

// Invalid wraps a bind error as a 400 with field messages.
func Invalid(err error, dst any) error {
	return &apperr.AppError{
		Kind:      apperr.Invalid,
		PublicMsg: "Please check the highlighted fields.",
		Fields:    FromBindError(err, dst),
		Err:       err,
	}
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag := f.Tag.Get("json")
	if tag == "" {
		tag = f.Tag.Get("form")
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + param + "."
	case "max":
		return "Must be at most " + param + "."
	case "gte":
		return "Must be " + param + " or more."
	case "lte":
		return "Must be " + param + " or less."
	case "len":
		return "Must be exactly " + param + " characters."
	case "numeric":
		return "Digits only."
	default:
		return "Invalid value."
	}
}

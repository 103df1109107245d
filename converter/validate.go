package converter

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/broady/restahead"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a decoded body that violates the `validate` tags of
// its type.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = k + ": " + e.Fields[k]
	}
	return "invalid response: " + strings.Join(msgs, "; ")
}

type validating struct {
	restahead.Converter
}

// Validating wraps c so that decoded structs are checked against their
// `validate` struct tags. Targets that are not structs are not checked.
func Validating(c restahead.Converter) restahead.Converter {
	return validating{Converter: c}
}

func (v validating) Deserialize(r *restahead.Response, target any) error {
	if err := v.Converter.Deserialize(r, target); err != nil {
		return err
	}
	s, ok := structValue(target)
	if !ok {
		return nil
	}
	if err := validate.Struct(s); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			fields := make(map[string]string, len(valErrs))
			for _, fe := range valErrs {
				fields[fe.Namespace()] = describe(fe)
			}
			return &ValidationError{Fields: fields}
		}
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// structValue dereferences target down to a struct, if there is one.
func structValue(target any) (any, bool) {
	v := reflect.ValueOf(target)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		if v.Elem().Kind() == reflect.Struct {
			return v.Interface(), true
		}
		v = v.Elem()
	}
	return nil, false
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
}

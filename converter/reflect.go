package converter

import (
	"errors"
	"fmt"
	"reflect"
)

var errEmptyBody = errors.New("empty response body")

// structPointer follows target, allocating nil pointers on the way, until it
// reaches a pointer to a struct.
func structPointer(target any) (any, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, fmt.Errorf("target must be a non-nil pointer, got %T", target)
	}
	for v.Elem().Kind() == reflect.Pointer {
		if v.Elem().IsNil() {
			v.Elem().Set(reflect.New(v.Elem().Type().Elem()))
		}
		v = v.Elem()
	}
	if v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("target must point to a struct, got %T", target)
	}
	return v.Interface(), nil
}

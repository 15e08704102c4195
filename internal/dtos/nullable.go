package dtos

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Nullable is a PATCH field that tells an absent key apart from an explicit
// null. Set is true when the key was present; Null when its value was null.
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Null = true
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// change returns the value to store and whether the key was sent at all.
// An explicit null is stored as nil.
func (n Nullable[T]) change() (any, bool) {
	switch {
	case !n.Set:
		return nil, false
	case n.Null:
		return nil, true
	default:
		return n.Value, true
	}
}

// validationValue exposes the wrapped value to the validator. Absent and
// null fields yield nil, which "omitempty" skips.
func (n Nullable[T]) validationValue() any {
	if !n.Set || n.Null {
		return nil
	}
	return n.Value
}

type validationValuer interface {
	validationValue() any
}

func nullableValue(field reflect.Value) any {
	if v, ok := field.Interface().(validationValuer); ok {
		return v.validationValue()
	}
	return nil
}

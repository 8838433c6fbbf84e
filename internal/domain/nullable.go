package domain

import (
	"bytes"
	"encoding/json"
)

// Nullable is a partial-update field with three states: absent (Set is
// false), explicitly null (Set and !Valid), or a value (Set and Valid).
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null returns a Nullable that clears the field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Ptr returns the value as a pointer, nil when null or absent.
func (n Nullable[T]) Ptr() *T {
	if !n.Set || !n.Valid {
		return nil
	}

	v := n.Value

	return &v
}

// Apply writes the new state into dst when the field was supplied.
func (n Nullable[T]) Apply(dst **T) {
	if !n.Set {
		return
	}

	*dst = n.Ptr()
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// which is what separates "absent" from "null".
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false

		var zero T
		n.Value = zero

		return nil
	}

	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}

	n.Valid = true

	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Set || !n.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(n.Value)
}

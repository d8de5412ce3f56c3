package dto

import (
	"bytes"
	"encoding/json"
)

// Nullable tells apart a JSON field that was omitted, sent as null, or sent
// with a value.
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.Null = true
		n.Value = zero
		return nil
	}

	n.Null = false
	return json.Unmarshal(data, &n.Value)
}

// Present reports whether the field carried a non-null value.
func (n Nullable[T]) Present() bool {
	return n.Set && !n.Null
}

func (n Nullable[T]) Ptr() *T {
	if !n.Present() {
		return nil
	}
	v := n.Value
	return &v
}

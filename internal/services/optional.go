package services

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON key was supplied at all, and whether it was
// supplied as null, alongside the decoded value.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Present: true, Value: value}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

// HasValue reports whether the key was supplied with a non-null value.
func (optional Optional[T]) HasValue() bool {
	return optional.Present && !optional.Null
}

func (optional *Optional[T]) UnmarshalJSON(data []byte) error {
	optional.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		optional.Null = true
		var zero T
		optional.Value = zero
		return nil
	}
	optional.Null = false
	return json.Unmarshal(data, &optional.Value)
}

// apply keeps current unless the optional carries a value.
func apply[T any](current *T, incoming Optional[T]) *T {
	if !incoming.HasValue() {
		return current
	}
	value := incoming.Value
	return &value
}

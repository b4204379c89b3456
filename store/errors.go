package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no book matches the requested id.
var ErrNotFound = errors.New("shelf: book not found")

// StoreError is returned when a DynamoDB call fails for any reason
// (transport, throttling, permissions, service fault).
type StoreError struct {
	// Op is the gateway operation ("query" or "put").
	Op string

	// Table is the table the call was made against.
	Table string

	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("shelf: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a stored item cannot be read as a book.
type DecodeError struct {
	// Reason describes the structural mismatch.
	Reason string

	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shelf: decode item: %s: %v", e.Reason, e.Err)
	}
	return "shelf: decode item: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

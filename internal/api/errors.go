package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed Remote Event Service call
type Kind string

const (
	KindFetch  Kind = "fetch"
	KindSubmit Kind = "submit"
	KindDelete Kind = "delete"
	KindDecode Kind = "decode"
)

// Sentinels for errors.Is checks against an *Error of the matching kind.
var (
	ErrFetch  = errors.New("fetch failed")
	ErrSubmit = errors.New("submit failed")
	ErrDelete = errors.New("delete failed")
	ErrDecode = errors.New("decode failed")
)

// Error reports a failed call. Status is the HTTP status when the service
// answered, or 0 for transport failures.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.sentinel(), e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.sentinel(), e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.sentinel(), e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.sentinel())
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindFetch:
		return ErrFetch
	case KindSubmit:
		return ErrSubmit
	case KindDelete:
		return ErrDelete
	case KindDecode:
		return ErrDecode
	default:
		return nil
	}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

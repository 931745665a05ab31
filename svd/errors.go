package svd

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField        = errors.New("missing mandatory field")
	ErrUnexpectedValue     = errors.New("unexpected value")
	ErrUnresolvedReference = errors.New("unresolved derivedFrom reference")
	ErrDerivationCycle     = errors.New("derivation cycle")
	ErrUnsupportedFeature  = errors.New("unsupported feature")
)

type MissingFieldError struct {
	Element string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Element, ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

type UnexpectedValueError struct {
	Expected string
	Actual   string
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("%s %q, expected %s", ErrUnexpectedValue, e.Actual, e.Expected)
}

func (e *UnexpectedValueError) Unwrap() error {
	return ErrUnexpectedValue
}

// ReferenceError reports a derivedFrom name with no sibling of the same kind.
type ReferenceError struct {
	Kind string
	Name string
	Ref  string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s: %s %q", e.Kind, e.Name, ErrUnresolvedReference, e.Ref)
}

func (e *ReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

type CycleError struct {
	Kind  string
	Names []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s through %s", e.Kind, ErrDerivationCycle, strings.Join(e.Names, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrDerivationCycle
}

type UnsupportedError struct {
	What string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedFeature, e.What)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedFeature
}

// Unsupported formats a new UnsupportedError.
func Unsupported(format string, args ...any) error {
	return &UnsupportedError{What: fmt.Sprintf(format, args...)}
}

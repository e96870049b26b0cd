package fragment

import (
	"errors"
	"fmt"
)

// UnknownGeneratorError is returned when a name is not registered.
type UnknownGeneratorError struct {
	Name string
}

func (e *UnknownGeneratorError) Error() string {
	return fmt.Sprintf("fragment: unknown generator %q", e.Name)
}

// GenerateError wraps a generator failure with the marker it was producing.
type GenerateError struct {
	Marker    string
	Generator string
	Err       error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("fragment: marker %q: generator %q: %v", e.Marker, e.Generator, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// IsUnknownGenerator returns true if err is, or wraps, an UnknownGeneratorError.
func IsUnknownGenerator(err error) bool {
	var ue *UnknownGeneratorError
	return errors.As(err, &ue)
}

package producer

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid mapping definitions: unknown parameter
	// names or producer constructor arguments that violate their invariants.
	ErrConfiguration = errors.New("configuration error")

	// ErrDomain marks parameter values outside the range a producer accepts.
	ErrDomain = errors.New("value outside domain")
)

// Configf returns an error wrapping ErrConfiguration.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Domainf returns an error wrapping ErrDomain.
func Domainf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}

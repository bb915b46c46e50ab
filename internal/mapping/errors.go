package mapping

import (
	"fmt"
	"strings"

	"github.com/vk/modelopt/internal/producer"
)

var (
	// ErrConfiguration is returned for unknown parameters and invalid mappings.
	ErrConfiguration = producer.ErrConfiguration
	// ErrDomain is returned when a parameter value is outside its producer's range.
	ErrDomain = producer.ErrDomain
)

// UnknownParameterError lists parameters that have no producer in a mapping.
type UnknownParameterError struct {
	Model string
	Names []string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("parameters not mapped to a namelist in model %s: %s", e.Model, strings.Join(e.Names, ", "))
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *UnknownParameterError) Unwrap() error {
	return ErrConfiguration
}

// ParameterError attributes a producer failure to the parameter being translated.
type ParameterError struct {
	Name string
	Err  error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %s: %v", e.Name, e.Err)
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

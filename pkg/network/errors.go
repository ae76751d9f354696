package network

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLevel is wrapped by every *ValidationError
	ErrInvalidLevel = errors.New("network: level out of range")
	// ErrDuplicateID indicates two configs in one space share an identifier
	ErrDuplicateID = errors.New("network: duplicate config id")
	// ErrEmptySpace indicates a space with no configs
	ErrEmptySpace = errors.New("network: config space is empty")
	// ErrGridTooLarge is returned by BuildGrid beyond MaxGridConfigs configs
	ErrGridTooLarge = errors.New("network: grid too large")
)

// ValidationError reports a config whose level falls outside [0, Max].
// It signals a bug in whatever generated the config and is never recovered.
type ValidationError struct {
	Field string
	Value int
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("network: %s=%d outside [0, %d]", e.Field, e.Value, e.Max)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidLevel
}

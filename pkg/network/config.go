package network

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dd0wney/regnet-monotone/pkg/validation"
)

// MaxLevel is the highest activator or repressor level of the canonical space.
const MaxLevel = 2

// Config is one network configuration: how many activator and repressor
// binding sites are open. Zero value is not meaningful; use NewConfig.
type Config struct {
	activator int
	repressor int
	id        string
}

// levelSpec is the validated shape of a config request.
type levelSpec struct {
	ID             string `validate:"required"`
	ActivatorLevel int    `validate:"min=0,ltefield=MaxActivator"`
	RepressorLevel int    `validate:"min=0,ltefield=MaxRepressor"`
	MaxActivator   int    `validate:"min=0"`
	MaxRepressor   int    `validate:"min=0"`
}

// NewConfig builds a config with both levels bounded by MaxLevel.
func NewConfig(activator, repressor int, id string) (Config, error) {
	return newBoundedConfig(activator, repressor, MaxLevel, MaxLevel, id)
}

func newBoundedConfig(activator, repressor, maxActivator, maxRepressor int, id string) (Config, error) {
	bounds := levelSpec{
		ID:             id,
		ActivatorLevel: activator,
		RepressorLevel: repressor,
		MaxActivator:   maxActivator,
		MaxRepressor:   maxRepressor,
	}
	if err := validation.Struct(bounds); err != nil {
		return Config{}, toValidationError(err, bounds)
	}
	return Config{activator: activator, repressor: repressor, id: id}, nil
}

func toValidationError(err error, bounds levelSpec) error {
	var fe *validation.FieldError
	if !errors.As(err, &fe) {
		return fmt.Errorf("network: validate config %q: %w", bounds.ID, err)
	}
	switch fe.Field {
	case "ActivatorLevel":
		return &ValidationError{Field: "activatorLevel", Value: bounds.ActivatorLevel, Max: bounds.MaxActivator}
	case "RepressorLevel":
		return &ValidationError{Field: "repressorLevel", Value: bounds.RepressorLevel, Max: bounds.MaxRepressor}
	default:
		return fmt.Errorf("network: config %q: %w", bounds.ID, fe)
	}
}

// ActivatorLevel returns the number of open activator sites.
func (c Config) ActivatorLevel() int { return c.activator }

// RepressorLevel returns the number of open repressor sites.
func (c Config) RepressorLevel() int { return c.repressor }

// ID returns the config's stable identifier.
func (c Config) ID() string { return c.id }

// Label renders the config as "(activator, repressor)".
func (c Config) Label() string {
	return "(" + strconv.Itoa(c.activator) + ", " + strconv.Itoa(c.repressor) + ")"
}

// Swapped returns the config with its activator and repressor levels exchanged.
func (c Config) Swapped() Config {
	return Config{activator: c.repressor, repressor: c.activator, id: c.id}
}

func (c Config) String() string {
	return c.id + c.Label()
}

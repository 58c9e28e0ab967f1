package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/pilotwave-simulator/model"
)

// ErrInvalidScenario marks configuration errors detected before a run
// starts. The engine never partially executes an invalid scenario.
var ErrInvalidScenario = errors.New("invalid scenario")

// ValidateScenario checks a scenario once at run entry: both slit widths
// must be strictly positive (the Gaussian exponent and gradient divide by
// σ²), dt must be strictly positive, and the step count non-negative.
func ValidateScenario(sc model.Scenario) error {
	if sc.Slit1.Width <= 0 {
		return fmt.Errorf("%w: slit1 width must be > 0, got %v", ErrInvalidScenario, sc.Slit1.Width)
	}
	if sc.Slit2.Width <= 0 {
		return fmt.Errorf("%w: slit2 width must be > 0, got %v", ErrInvalidScenario, sc.Slit2.Width)
	}
	if sc.DT <= 0 {
		return fmt.Errorf("%w: dt must be > 0, got %v", ErrInvalidScenario, sc.DT)
	}
	if sc.Steps < 0 {
		return fmt.Errorf("%w: steps must be >= 0, got %d", ErrInvalidScenario, sc.Steps)
	}
	return nil
}

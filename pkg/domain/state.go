package domain

import (
	"fmt"
	"math"
)

// DefaultEnergy is the baseline energy used when no state is supplied.
const DefaultEnergy = 50.0

// State represents the complete snapshot of the modeled system.
//
// State is a value type with no reference fields: copying it yields an
// independent snapshot, so no holder can observe another holder's changes.
type State struct {
	// Energy is the only observable quantity. It is unbounded in both directions.
	Energy float64 `json:"energy" yaml:"energy" mapstructure:"energy"`
}

// NewState returns the initial state.
func NewState() State {
	return State{Energy: DefaultEnergy}
}

// Validate rejects energies that cannot be represented as a JSON number (NaN, ±Inf).
func (s State) Validate() error {
	if math.IsNaN(s.Energy) || math.IsInf(s.Energy, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidEnergy, s.Energy)
	}
	return nil
}

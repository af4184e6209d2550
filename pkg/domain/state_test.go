package domain

import (
	"errors"
	"math"
	"testing"
)

func TestState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		energy  float64
		wantErr bool
	}{
		{"default", DefaultEnergy, false},
		{"zero", 0, false},
		{"negative", -1e9, false},
		{"max float", math.MaxFloat64, false},
		{"nan", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := State{Energy: tt.energy}.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEnergy) {
					t.Errorf("Validate() error = %v, want ErrInvalidEnergy", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

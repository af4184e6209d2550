package domain

import "errors"

// ErrUnknownAction is returned when a value outside the closed action set is parsed or dispatched.
var ErrUnknownAction = errors.New("unknown action")

// ErrInvalidEnergy is returned when a state carries a NaN or infinite energy.
var ErrInvalidEnergy = errors.New("invalid energy")

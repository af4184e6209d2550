package domain

// deltas maps every action to its fixed energy adjustment.
var deltas = map[Action]float64{
	Sit:  +10,
	Run:  -15,
	Walk: -5,
}

// Delta returns the energy adjustment applied by the reducer for a.
// Values outside the closed set have a zero delta.
func Delta(a Action) float64 {
	return deltas[a]
}

// Reduce computes the state that follows state once action has happened.
//
// A nil state means the initial state (NewState). The input is never written to;
// a fresh value is always returned. Reduce has no side effects and is safe to call
// from any number of goroutines.
func Reduce(action Action, state *State) State {
	next := NewState()
	if state != nil {
		next = *state
	}
	next.Energy += Delta(action)
	return next
}

// Fold applies actions to state from left to right and returns the final state.
// A nil state starts from NewState.
func Fold(state *State, actions ...Action) State {
	current := NewState()
	if state != nil {
		current = *state
	}
	for _, a := range actions {
		current = Reduce(a, &current)
	}
	return current
}

package domain

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// Energy is the new energy value.
	Energy float64 `json:"energy"`

	// Delta is the signed change applied to energy.
	Delta float64 `json:"delta"`
}

// Diff calculates the difference between oldState and newState.
// It returns nil when the two snapshots are equal.
func Diff(oldState, newState State) *StateDiff {
	if oldState == newState {
		return nil
	}
	return &StateDiff{
		Energy: newState.Energy,
		Delta:  newState.Energy - oldState.Energy,
	}
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d == nil || d.Delta == 0
}

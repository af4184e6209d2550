package domain

import (
	"fmt"
	"strings"
)

// Action describes something that happened. It never describes how the state should change;
// that knowledge belongs to the reducer.
//
// The zero value is not a valid action.
type Action int

const (
	Run Action = iota + 1
	Walk
	Sit
)

var actionNames = map[Action]string{
	Run:  "run",
	Walk: "walk",
	Sit:  "sit",
}

// Actions returns the closed action set in declaration order.
func Actions() []Action {
	return []Action{Run, Walk, Sit}
}

// Valid reports whether a belongs to the closed action set.
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction resolves the textual form of an action ("run", "Walk", " SIT ").
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions() {
		if actionNames[a] == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// MarshalText implements encoding.TextMarshaler so actions travel as strings in JSON and YAML.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

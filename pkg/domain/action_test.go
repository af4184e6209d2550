package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"run", Run, false},
		{"Walk", Walk, false},
		{"  SIT ", Sit, false},
		{"jump", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownAction) {
				t.Errorf("ParseAction(%q) err = %v, want ErrUnknownAction", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAction(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAction_Valid(t *testing.T) {
	for _, a := range Actions() {
		if !a.Valid() {
			t.Errorf("%v should be valid", a)
		}
	}
	var zero Action
	if zero.Valid() {
		t.Error("zero Action should not be valid")
	}
	if got := Action(9).String(); got != "action(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestAction_JSON(t *testing.T) {
	type envelope struct {
		Action Action `json:"action"`
	}

	data, err := json.Marshal(envelope{Action: Walk})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"action":"walk"}` {
		t.Errorf("marshal = %s", data)
	}

	var decoded envelope
	if err := json.Unmarshal([]byte(`{"action":"RUN"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Action != Run {
		t.Errorf("decoded = %v, want run", decoded.Action)
	}

	err = json.Unmarshal([]byte(`{"action":"fly"}`), &decoded)
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unmarshal unknown err = %v", err)
	}

	if _, err := json.Marshal(envelope{}); err == nil {
		t.Error("expected marshal of zero action to fail")
	}
}

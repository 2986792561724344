package vm

import (
	"encoding/json"
	"errors"
	"strings"
)

// State of the engine. It's a set of flags, though only BreakState is ever
// combined with the others.
type State uint8

// Available engine states.
const (
	// NoneState represents an engine that can keep running.
	NoneState State = 0
	// HaltState represents a successfully finished engine.
	HaltState State = 1
	// FaultState represents an engine stopped by an error.
	FaultState State = 2
	// BreakState represents an engine paused by a debugger command.
	BreakState State = 4
	// FaultByGasState represents an engine that ran out of gas.
	FaultByGasState State = 8
)

var stateNames = []struct {
	s    State
	name string
}{
	{HaltState, "HALT"},
	{FaultState, "FAULT"},
	{BreakState, "BREAK"},
	{FaultByGasState, "FAULT_BY_GAS"},
}

// HasFlag checks for State flag presence.
func (s State) HasFlag(f State) bool {
	return s&f != 0
}

// IsTerminal returns true when no more instructions can be executed in this
// state.
func (s State) IsTerminal() bool {
	return s.HasFlag(HaltState | FaultState | FaultByGasState)
}

// String implements the fmt.Stringer interface.
func (s State) String() string {
	if s == NoneState {
		return "NONE"
	}

	ss := make([]string, 0, len(stateNames))
	for _, n := range stateNames {
		if s.HasFlag(n.s) {
			ss = append(ss, n.name)
		}
	}
	return strings.Join(ss, ", ")
}

// StateFromString converts a string into the State.
func StateFromString(s string) (State, error) {
	var st State
	s = strings.TrimSpace(s)
	if s == "NONE" {
		return NoneState, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		var found bool
		for _, n := range stateNames {
			if n.name == part {
				st |= n.s
				found = true
				break
			}
		}
		if !found {
			return NoneState, errors.New("unknown state")
		}
	}
	return st, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *State) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	st, err := StateFromString(str)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

package vm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFromString(t *testing.T) {
	var (
		s   State
		err error
	)

	s, err = StateFromString("HALT")
	assert.NoError(t, err)
	assert.Equal(t, HaltState, s)

	s, err = StateFromString("BREAK")
	assert.NoError(t, err)
	assert.Equal(t, BreakState, s)

	s, err = StateFromString("FAULT")
	assert.NoError(t, err)
	assert.Equal(t, FaultState, s)

	s, err = StateFromString("FAULT_BY_GAS")
	assert.NoError(t, err)
	assert.Equal(t, FaultByGasState, s)

	s, err = StateFromString("NONE")
	assert.NoError(t, err)
	assert.Equal(t, NoneState, s)

	s, err = StateFromString("HALT, BREAK")
	assert.NoError(t, err)
	assert.Equal(t, HaltState|BreakState, s)

	_, err = StateFromString("HALT, KEK")
	assert.Error(t, err)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "NONE", NoneState.String())
	assert.Equal(t, "HALT", HaltState.String())
	assert.Equal(t, "FAULT, BREAK", (FaultState | BreakState).String())
	assert.Equal(t, "FAULT_BY_GAS", FaultByGasState.String())
}

func TestState_HasFlag(t *testing.T) {
	assert.True(t, HaltState.HasFlag(HaltState))
	assert.True(t, (HaltState | BreakState).HasFlag(BreakState))
	assert.True(t, FaultByGasState.HasFlag(FaultState|FaultByGasState))

	assert.False(t, HaltState.HasFlag(BreakState))
	assert.False(t, NoneState.HasFlag(HaltState))
	assert.False(t, FaultByGasState.HasFlag(FaultState))
}

func TestState_IsTerminal(t *testing.T) {
	assert.True(t, HaltState.IsTerminal())
	assert.True(t, FaultState.IsTerminal())
	assert.True(t, FaultByGasState.IsTerminal())
	assert.False(t, NoneState.IsTerminal())
	assert.False(t, BreakState.IsTerminal())
}

func TestState_JSON(t *testing.T) {
	data, err := json.Marshal(HaltState | BreakState)
	require.NoError(t, err)
	assert.Equal(t, []byte(`"HALT, BREAK"`), data)

	var s State
	require.NoError(t, json.Unmarshal([]byte(`"FAULT_BY_GAS"`), &s))
	assert.Equal(t, FaultByGasState, s)

	assert.Error(t, json.Unmarshal([]byte(`"KEK"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`1`), &s))
}

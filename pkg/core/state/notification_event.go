package state

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-hypervm/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm"
)

// NotificationEvent is a tuple of the scripthash that has emitted the Item as a
// notification and the item itself in its JSON form.
type NotificationEvent struct {
	ScriptHash util.Uint160    `json:"contract"`
	Item       json.RawMessage `json:"state"`
}

// Execution represents the result of a single script invocation, gathering
// together the engine state, consumed gas, the result stack and
// notifications.
type Execution struct {
	SessionID      uuid.UUID           `json:"session"`
	Trigger        trigger.Type        `json:"-"`
	VMState        vm.State            `json:"vmstate"`
	GasConsumed    uint64              `json:"gasconsumed,string"`
	Stack          json.RawMessage     `json:"stack"`
	Events         []NotificationEvent `json:"notifications"`
	FaultException string              `json:"exception,omitempty"`
}

type executionAux struct {
	Trigger string `json:"trigger"`
	*executionAlias
}

type executionAlias Execution

// MarshalJSON implements the json.Marshaler interface.
func (e Execution) MarshalJSON() ([]byte, error) {
	alias := executionAlias(e)
	if alias.Events == nil {
		alias.Events = []NotificationEvent{}
	}
	if alias.Stack == nil {
		alias.Stack = json.RawMessage("[]")
	}
	return json.Marshal(executionAux{
		Trigger:        e.Trigger.String(),
		executionAlias: &alias,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *Execution) UnmarshalJSON(data []byte) error {
	aux := executionAux{executionAlias: (*executionAlias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := trigger.FromString(aux.Trigger)
	if err != nil {
		return err
	}
	e.Trigger = t
	return nil
}

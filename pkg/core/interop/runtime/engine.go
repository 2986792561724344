package runtime

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/state"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
	"go.uber.org/zap"
)

const (
	// MaxNotificationSize is the maximum length of a runtime log message
	// and of a serialized notification.
	MaxNotificationSize = 1024
	// Platform is the name of the platform.
	Platform = "NEO"
)

// GetExecutingScriptHash returns executing script hash.
func GetExecutingScriptHash(ic *interop.Context) error {
	return ic.PushBytes(ic.VM.CurrentContext().ScriptHash().BytesBE())
}

// GetCallingScriptHash returns calling script hash, an empty byte array is
// pushed for the entry context.
func GetCallingScriptHash(ic *interop.Context) error {
	ctx := ic.VM.CallingContext()
	if ctx == nil {
		return ic.PushBytes([]byte{})
	}
	return ic.PushBytes(ctx.ScriptHash().BytesBE())
}

// GetEntryScriptHash returns entry script hash.
func GetEntryScriptHash(ic *interop.Context) error {
	return ic.PushBytes(ic.VM.EntryContext().ScriptHash().BytesBE())
}

// GetScriptContainer pushes the script container as an Interop item.
func GetScriptContainer(ic *interop.Context) error {
	if ic.Container == nil {
		return errors.New("no script container")
	}
	return ic.PushInterop(ic.Container)
}

// GetPlatform returns the name of the platform.
func GetPlatform(ic *interop.Context) error {
	return ic.PushBytes([]byte(Platform))
}

// GetTrigger returns the script trigger.
func GetTrigger(ic *interop.Context) error {
	return ic.PushInt(int64(ic.Trigger))
}

// Notify records the item as a notification of the executing script. The
// item has to be serializable and fit into MaxNotificationSize.
func Notify(ic *interop.Context) error {
	item, err := ic.Pop()
	if err != nil {
		return err
	}
	size, err := stackitem.SerializedSize(item)
	if err != nil {
		return fmt.Errorf("bad notification: %w", err)
	}
	if size > MaxNotificationSize {
		return fmt.Errorf("notification size shouldn't exceed %d", MaxNotificationSize)
	}
	js, err := stackitem.ToJSONWithTypes(item)
	if err != nil {
		return fmt.Errorf("bad notification: %w", err)
	}
	ne := state.NotificationEvent{
		ScriptHash: ic.VM.CurrentContext().ScriptHash(),
		Item:       js,
	}
	ic.Notifications = append(ic.Notifications, ne)
	ic.Log.Debug("runtime notification",
		zap.Stringer("script", ne.ScriptHash),
		zap.ByteString("state", js))
	return nil
}

// Log logs the message passed.
func Log(ic *interop.Context) error {
	msg, err := ic.PopBytes()
	if err != nil {
		return err
	}
	if len(msg) > MaxNotificationSize {
		return fmt.Errorf("message length shouldn't exceed %v", MaxNotificationSize)
	}
	if !utf8.Valid(msg) {
		return errors.New("log message should be UTF8-encoded")
	}
	ic.Log.Info("runtime log",
		zap.Stringer("script", ic.VM.CurrentContext().ScriptHash()),
		zap.String("msg", string(msg)))
	return nil
}

package core

import (
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop/binary"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop/interopnames"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop/runtime"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop/storage"
)

// systemInterops is sorted by IDs in init.
var systemInterops = []interop.Function{
	{Name: interopnames.SystemExecutionEngineGetCallingScriptHash, Func: runtime.GetCallingScriptHash, Price: 1},
	{Name: interopnames.SystemExecutionEngineGetEntryScriptHash, Func: runtime.GetEntryScriptHash, Price: 1},
	{Name: interopnames.SystemExecutionEngineGetExecutingScriptHash, Func: runtime.GetExecutingScriptHash, Price: 1},
	{Name: interopnames.SystemExecutionEngineGetScriptContainer, Func: runtime.GetScriptContainer, Price: 1},
	{Name: interopnames.SystemRuntimeDeserialize, Func: binary.Deserialize, Price: 1, ParamCount: 1},
	{Name: interopnames.SystemRuntimeGetTrigger, Func: runtime.GetTrigger, Price: 1},
	{Name: interopnames.SystemRuntimeLog, Func: runtime.Log, Price: 1, ParamCount: 1},
	{Name: interopnames.SystemRuntimeNotify, Func: runtime.Notify, Price: 1, ParamCount: 1},
	{Name: interopnames.SystemRuntimePlatform, Func: runtime.GetPlatform, Price: 1},
	{Name: interopnames.SystemRuntimeSerialize, Func: binary.Serialize, Price: 1, ParamCount: 1},
	{Name: interopnames.SystemStorageDelete, Func: storage.Delete, Price: 100, ParamCount: 2},
	{Name: interopnames.SystemStorageGet, Func: storage.Get, Price: 100, ParamCount: 2},
	{Name: interopnames.SystemStorageGetContext, Func: storage.GetContext, Price: 1},
	{Name: interopnames.SystemStorageGetReadOnlyContext, Func: storage.GetReadOnlyContext, Price: 1},
	{Name: interopnames.SystemStoragePut, Func: storage.Put, ParamCount: 3},
}

func init() {
	interop.Sort(systemInterops)
}

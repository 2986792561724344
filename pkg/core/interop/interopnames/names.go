package interopnames

// Names of all used interops.
const (
	SystemExecutionEngineGetCallingScriptHash   = "System.ExecutionEngine.GetCallingScriptHash"
	SystemExecutionEngineGetEntryScriptHash     = "System.ExecutionEngine.GetEntryScriptHash"
	SystemExecutionEngineGetExecutingScriptHash = "System.ExecutionEngine.GetExecutingScriptHash"
	SystemExecutionEngineGetScriptContainer     = "System.ExecutionEngine.GetScriptContainer"
	SystemRuntimeDeserialize                    = "System.Runtime.Deserialize"
	SystemRuntimeGetTrigger                     = "System.Runtime.GetTrigger"
	SystemRuntimeLog                            = "System.Runtime.Log"
	SystemRuntimeNotify                         = "System.Runtime.Notify"
	SystemRuntimePlatform                       = "System.Runtime.Platform"
	SystemRuntimeSerialize                      = "System.Runtime.Serialize"
	SystemStorageDelete                         = "System.Storage.Delete"
	SystemStorageGet                            = "System.Storage.Get"
	SystemStorageGetContext                     = "System.Storage.GetContext"
	SystemStorageGetReadOnlyContext             = "System.Storage.GetReadOnlyContext"
	SystemStoragePut                            = "System.Storage.Put"
)

var names = []string{
	SystemExecutionEngineGetCallingScriptHash,
	SystemExecutionEngineGetEntryScriptHash,
	SystemExecutionEngineGetExecutingScriptHash,
	SystemExecutionEngineGetScriptContainer,
	SystemRuntimeDeserialize,
	SystemRuntimeGetTrigger,
	SystemRuntimeLog,
	SystemRuntimeNotify,
	SystemRuntimePlatform,
	SystemRuntimeSerialize,
	SystemStorageDelete,
	SystemStorageGet,
	SystemStorageGetContext,
	SystemStorageGetReadOnlyContext,
	SystemStoragePut,
}

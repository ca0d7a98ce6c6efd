package instrumentation

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Never record raw task or project names as metric labels; use the entity
// and operation constants instead.

// ScriptSizeBucket reduces a script's byte size to one of a fixed set of
// bucket labels. Keeps the osascript execution counter at a handful of
// label values regardless of how scripts grow.
func ScriptSizeBucket(n int) string {
	switch {
	case n <= 0:
		return "empty"
	case n <= 1024:
		return "1k"
	case n <= 8*1024:
		return "8k"
	case n <= 64*1024:
		return "64k"
	default:
		return "huge"
	}
}

// Common operation types for automation metrics.
// Status and Entity constants are defined in config.go.
const (
	OperationList      = "list"
	OperationGet       = "get"
	OperationAdd       = "add"
	OperationEdit      = "edit"
	OperationComplete  = "complete"
	OperationRemove    = "remove"
	OperationMove      = "move"
	OperationDuplicate = "duplicate"
	OperationRename    = "rename"
	OperationSetStatus = "set_status"
	OperationOpen      = "open"
	OperationDump      = "dump"
	OperationSummary   = "summary"
)

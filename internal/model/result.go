package model

// ResultKind classifies how a monitoring session ended.
type ResultKind int

const (
	// Completed: the operation finished; remaining work reached zero after
	// at least one nonzero reading.
	Completed ResultKind = iota
	// NothingToDo: the very first fetch already reported zero remaining
	// work; there was never anything to monitor.
	NothingToDo
	// Failed: monitoring stopped on an error (lost session, missing
	// resource, exhausted retry budget, cancellation).
	Failed
)

// MonitorResult is the single terminal outcome of a session, produced once
// at Monitor Loop exit.
type MonitorResult struct {
	Kind   ResultKind
	Reason string // populated for Failed
}

// Success reports whether the process should exit with a success indication.
// Both Completed and NothingToDo count as success; only Failed does not.
func (r MonitorResult) Success() bool {
	return r.Kind == Completed || r.Kind == NothingToDo
}

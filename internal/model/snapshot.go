package model

import "time"

// Snapshot is one point-in-time read of the watched operation's progress.
// Snapshots are immutable once captured; the Monitor Loop produces one per
// poll tick and appends it to the session History.
type Snapshot struct {
	CapturedAt time.Time
	Scope      string // cluster name / task scope, for display

	// RemainingWork is the operation's outstanding work in family units:
	// GB left to resync, or the number of tasks still running. Never negative.
	RemainingWork float64

	// SecondaryCount is a family-specific auxiliary count (objects left to
	// resync, total tasks observed). SecondaryKnown is false when the remote
	// endpoint did not report it.
	SecondaryCount int64
	SecondaryKnown bool

	// RawState is the free-form state label reported by the remote API,
	// e.g. "Running" or "Completed".
	RawState string

	// ReportedEtaMinutes is the remote source's own completion estimate.
	// When known it is authoritative and overrides any derived ETA.
	ReportedEtaMinutes float64
	ReportedEtaKnown   bool

	// StartedAt is the operation's declared start time, when the remote API
	// exposes one (vSphere tasks do; a resync does not). Zero means unknown.
	StartedAt time.Time
}

// DerivedMetrics holds trend values computed from two adjacent Snapshots.
// Each value carries a Known flag; an unknown value is rendered as "N/A",
// never as zero, so operators can tell "not yet computable" from "zero".
type DerivedMetrics struct {
	// Elapsed is time since the operation's declared start.
	Elapsed      time.Duration
	ElapsedKnown bool

	// Throughput is the rate of remaining-work reduction in display units
	// (MiB/s for resync, tasks/min for tasks). Signed: a negative value
	// means the backlog grew between ticks and must stay visible.
	Throughput      float64
	ThroughputKnown bool

	// EtaMinutes is the estimated minutes until remaining work reaches zero.
	EtaMinutes float64
	EtaKnown   bool
}

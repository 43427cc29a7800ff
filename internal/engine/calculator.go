package engine

import (
	"math"
	"time"

	"github.com/dm/vcwatch/internal/model"
)

// Unit scale factors converting raw remaining-work deltas per second into
// the rate the operator watches.
const (
	// ScaleResync turns GB/s into MiB/s.
	ScaleResync = 1024.0
	// ScaleTasks turns tasks/s into tasks/min.
	ScaleTasks = 60.0
)

// minRatePerSec is the epsilon below which a positive rate is treated as
// stalled for ETA purposes.
const minRatePerSec = 1e-9

// Compute derives trend metrics from the newest snapshot and its predecessor.
// It is a pure function of its arguments: identical inputs give bit-identical
// output, with no hidden wall-clock dependency.
//
// Throughput is floor(delta / seconds * scale), signed. A negative value
// (remaining work grew) passes through unclamped; operators rely on seeing
// regressions. It is undefined when prev is nil or the interval is not
// positive.
//
// The ETA prefers the remote source's own estimate when the snapshot carries
// one; otherwise it extrapolates remaining work over the measured rate, and
// stays unknown while the rate is undefined or non-positive.
func Compute(curr, prev *model.Snapshot, interval time.Duration, scale float64) model.DerivedMetrics {
	var m model.DerivedMetrics

	if !curr.StartedAt.IsZero() {
		m.Elapsed = curr.CapturedAt.Sub(curr.StartedAt)
		m.ElapsedKnown = true
	}

	var ratePerSec float64
	rateKnown := false
	if prev != nil && interval > 0 {
		ratePerSec = (prev.RemainingWork - curr.RemainingWork) / interval.Seconds()
		rateKnown = true
		m.Throughput = math.Floor(ratePerSec * scale)
		m.ThroughputKnown = true
	}

	switch {
	case curr.ReportedEtaKnown:
		// Authoritative: the source's own estimate wins over extrapolation.
		m.EtaMinutes = curr.ReportedEtaMinutes
		m.EtaKnown = true
	case rateKnown && ratePerSec > minRatePerSec:
		m.EtaMinutes = curr.RemainingWork / (ratePerSec * 60)
		m.EtaKnown = true
	}

	return m
}

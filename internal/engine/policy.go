package engine

import (
	"fmt"

	"github.com/dm/vcwatch/internal/client"
	"github.com/dm/vcwatch/internal/model"
)

// Decision is the Termination Policy's verdict for one tick.
type Decision int

const (
	Continue Decision = iota
	StopSuccess
	StopEmpty
	StopError
)

// DefaultMaxTransient is the default consecutive-transient-failure budget.
const DefaultMaxTransient = 3

// Policy decides each tick whether monitoring continues or stops, and with
// which terminal state. It distinguishes "nothing was ever running"
// (StopEmpty) from "it finished" (StopSuccess) from "we lost the ability to
// observe it" (StopError), because operators act differently on each.
//
// Transient fetch failures are absorbed up to MaxTransient consecutive
// occurrences before escalating; any successful fetch resets the counter.
type Policy struct {
	MaxTransient int

	transient int
}

// NewPolicy creates a Policy with the given consecutive-transient budget.
// A non-positive budget falls back to DefaultMaxTransient.
func NewPolicy(maxTransient int) *Policy {
	if maxTransient <= 0 {
		maxTransient = DefaultMaxTransient
	}
	return &Policy{MaxTransient: maxTransient}
}

// Evaluate inspects the tick's outcome. Exactly one of snap and fetchErr is
// set. firstSnapshot reports whether the History Store is still empty, i.e.
// a successful snap would be the session's first.
//
// Transitions are checked in priority order: unrecoverable fetch errors
// first, then the bounded transient budget, then empty-vs-finished work.
func (p *Policy) Evaluate(snap *model.Snapshot, fetchErr error, firstSnapshot bool) (Decision, string) {
	if fetchErr != nil {
		fe := client.AsFetchError(fetchErr)
		if fe == nil {
			return StopError, fetchErr.Error()
		}
		switch fe.Kind {
		case client.FetchNotFound, client.FetchUnauthorized, client.FetchUnexpected:
			return StopError, fe.Error()
		case client.FetchTransient:
			p.transient++
			if p.transient >= p.MaxTransient {
				return StopError, fmt.Sprintf("%d consecutive transient fetch failures, last: %v", p.transient, fe)
			}
			return Continue, ""
		}
		return StopError, fe.Error()
	}

	p.transient = 0

	if snap.RemainingWork <= 0 {
		if firstSnapshot {
			return StopEmpty, ""
		}
		return StopSuccess, ""
	}
	return Continue, ""
}

// ConsecutiveTransient returns the current run of unrecovered transient
// failures, for diagnostics.
func (p *Policy) ConsecutiveTransient() int {
	return p.transient
}

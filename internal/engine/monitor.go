package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dm/vcwatch/internal/model"
	"github.com/dm/vcwatch/internal/report"
)

// Monitor runs one monitoring session: a single-threaded
// fetch → decide → append → compute → report → wait cycle on a fixed
// cadence, ending in exactly one MonitorResult.
type Monitor struct {
	Fetcher  Fetcher
	Policy   *Policy
	Reporter *report.Reporter
	Interval time.Duration
	Log      logrus.FieldLogger

	history *model.History
}

// NewMonitor wires a session together. The History Store is created here and
// owned by the loop for the session's lifetime.
func NewMonitor(f Fetcher, p *Policy, r *report.Reporter, interval time.Duration, log logrus.FieldLogger) *Monitor {
	return &Monitor{
		Fetcher:  f,
		Policy:   p,
		Reporter: r,
		Interval: interval,
		Log:      log,
		history:  model.NewHistory(),
	}
}

// History exposes the session's snapshot sequence, mainly for tests.
func (m *Monitor) History() *model.History {
	return m.history
}

// Run polls until the Termination Policy stops the session or ctx is
// cancelled. The inter-tick wait is interruptible, so an operator SIGINT
// takes effect mid-sleep; the append-only History Store makes partial
// termination safe at any point.
func (m *Monitor) Run(ctx context.Context) model.MonitorResult {
	for {
		snap, err := m.Fetcher.Fetch(ctx)

		if err != nil {
			decision, reason := m.Policy.Evaluate(nil, err, m.history.Count() == 0)
			if decision == StopError {
				return model.MonitorResult{Kind: model.Failed, Reason: reason}
			}
			m.Log.WithError(err).Warnf("transient fetch failure %d/%d, retrying next tick",
				m.Policy.ConsecutiveTransient(), m.Policy.MaxTransient)
		} else {
			first := m.history.Count() == 0
			decision, reason := m.Policy.Evaluate(snap, nil, first)

			if decision == StopEmpty {
				// Nothing was ever running: no table, just the terminal line.
				return model.MonitorResult{Kind: model.NothingToDo}
			}

			if appendErr := m.history.Append(*snap); appendErr != nil {
				return model.MonitorResult{Kind: model.Failed, Reason: appendErr.Error()}
			}

			metrics := Compute(snap, m.history.Previous(), m.Interval, m.Fetcher.Scale())
			m.Reporter.Report(*snap, metrics)

			switch decision {
			case StopSuccess:
				return model.MonitorResult{Kind: model.Completed}
			case StopError:
				return model.MonitorResult{Kind: model.Failed, Reason: reason}
			}
		}

		timer := time.NewTimer(m.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return model.MonitorResult{Kind: model.Failed, Reason: ctx.Err().Error()}
		case <-timer.C:
		}
	}
}

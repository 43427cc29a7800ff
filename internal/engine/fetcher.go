package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/vcwatch/internal/client"
	"github.com/dm/vcwatch/internal/model"
)

// Fetcher obtains one status snapshot of the watched operation. One call is
// one logical remote read; fetchers keep no state between calls.
type Fetcher interface {
	Fetch(ctx context.Context) (*model.Snapshot, error)
	// Scale is the family's unit scale factor for the Metrics Engine.
	Scale() float64
}

// ResyncFetcher reads the vSAN resync status of one cluster. The snapshot is
// composed from the resync summary and the object-health count, fetched
// concurrently; both must succeed for the tick to count.
type ResyncFetcher struct {
	Client  client.VCClient
	Cluster string

	now func() time.Time // test hook, defaults to time.Now
}

// NewResyncFetcher creates a ResyncFetcher for the named cluster.
func NewResyncFetcher(c client.VCClient, cluster string) *ResyncFetcher {
	return &ResyncFetcher{Client: c, Cluster: cluster, now: time.Now}
}

func (f *ResyncFetcher) Scale() float64 {
	return ScaleResync
}

// Fetch reads the cluster's resync summary and object count and folds them
// into one Snapshot.
func (f *ResyncFetcher) Fetch(ctx context.Context) (*model.Snapshot, error) {
	var (
		summary *client.ResyncSummary
		objects *client.ObjectHealth
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		summary, err = f.Client.GetResyncSummary(gctx, f.Cluster)
		return err
	})

	g.Go(func() error {
		var err error
		objects, err = f.Client.GetObjectHealth(gctx, f.Cluster)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		CapturedAt:     f.now(),
		Scope:          f.Cluster,
		RemainingWork:  summary.BytesLeftGB,
		SecondaryCount: objects.ObjectsToResync,
		SecondaryKnown: true,
		RawState:       summary.State,
	}
	if summary.EtaMinutes != nil {
		snap.ReportedEtaMinutes = *summary.EtaMinutes
		snap.ReportedEtaKnown = true
	}
	return snap, nil
}

// TaskFetcher reads the set of running tasks in one scope. Remaining work is
// the running-task count; the earliest declared task start anchors the
// elapsed metric.
type TaskFetcher struct {
	Client client.VCClient
	Scope  string

	now func() time.Time
}

// NewTaskFetcher creates a TaskFetcher for the given scope. An empty scope
// watches the whole inventory.
func NewTaskFetcher(c client.VCClient, scope string) *TaskFetcher {
	return &TaskFetcher{Client: c, Scope: scope, now: time.Now}
}

func (f *TaskFetcher) Scale() float64 {
	return ScaleTasks
}

// Fetch lists the scope's running tasks and folds them into one Snapshot.
func (f *TaskFetcher) Fetch(ctx context.Context) (*model.Snapshot, error) {
	tasks, err := f.Client.GetRunningTasks(ctx, f.Scope)
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		CapturedAt:     f.now(),
		Scope:          f.Scope,
		RemainingWork:  float64(len(tasks)),
		SecondaryCount: int64(len(tasks)),
		SecondaryKnown: true,
		RawState:       "Completed",
	}
	if len(tasks) > 0 {
		snap.RawState = "Running"
		// Anchor on the earliest declared start; tasks without one are
		// skipped so a zero value never masks a known start.
		var earliest time.Time
		for _, task := range tasks {
			if task.StartedAt.IsZero() {
				continue
			}
			if earliest.IsZero() || task.StartedAt.Before(earliest) {
				earliest = task.StartedAt
			}
		}
		snap.StartedAt = earliest
	}
	return snap, nil
}

package engine

import (
	"context"
	"errors"

	"github.com/dm/vcwatch/internal/client"
)

// MockVCClient implements client.VCClient for testing.
type MockVCClient struct {
	LoginFn         func(ctx context.Context) error
	ResyncSummaryFn func(ctx context.Context, cluster string) (*client.ResyncSummary, error)
	ObjectHealthFn  func(ctx context.Context, cluster string) (*client.ObjectHealth, error)
	RunningTasksFn  func(ctx context.Context, scope string) ([]client.TaskInfo, error)
}

func (m *MockVCClient) Login(ctx context.Context) error {
	if m.LoginFn != nil {
		return m.LoginFn(ctx)
	}
	return nil
}

func (m *MockVCClient) GetResyncSummary(ctx context.Context, cluster string) (*client.ResyncSummary, error) {
	if m.ResyncSummaryFn != nil {
		return m.ResyncSummaryFn(ctx, cluster)
	}
	return &client.ResyncSummary{Cluster: cluster, State: "Running", BytesLeftGB: 100}, nil
}

func (m *MockVCClient) GetObjectHealth(ctx context.Context, cluster string) (*client.ObjectHealth, error) {
	if m.ObjectHealthFn != nil {
		return m.ObjectHealthFn(ctx, cluster)
	}
	return &client.ObjectHealth{ObjectsToResync: 10}, nil
}

func (m *MockVCClient) GetRunningTasks(ctx context.Context, scope string) ([]client.TaskInfo, error) {
	if m.RunningTasksFn != nil {
		return m.RunningTasksFn(ctx, scope)
	}
	return nil, nil
}

func (m *MockVCClient) Endpoint() string {
	return "https://mock.vcenter.local"
}

var errMockFailure = errors.New("mock failure")

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

const (
	endpointResyncFmt = "/api/vsan/clusters/%s/resync"
	endpointObjectFmt = "/api/vsan/clusters/%s/objects"
	endpointTasksFmt  = "/api/tasks?state=running&scope=%s"
)

// GetResyncSummary fetches the resync status for the named cluster.
// An unknown cluster name comes back as FetchError{NotFound}; it is never
// silently widened to a broader scope.
func (c *DefaultClient) GetResyncSummary(ctx context.Context, cluster string) (*ResyncSummary, error) {
	path := fmt.Sprintf(endpointResyncFmt, url.PathEscape(cluster))
	body, err := c.doGet(ctx, "GetResyncSummary", path)
	if err != nil {
		return nil, err
	}

	var result ResyncSummary
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &FetchError{Kind: FetchUnexpected, Op: "GetResyncSummary", Err: fmt.Errorf("decode: %w", err)}
	}
	return &result, nil
}

// GetObjectHealth fetches the objects-left-to-resync count for the named cluster.
func (c *DefaultClient) GetObjectHealth(ctx context.Context, cluster string) (*ObjectHealth, error) {
	path := fmt.Sprintf(endpointObjectFmt, url.PathEscape(cluster))
	body, err := c.doGet(ctx, "GetObjectHealth", path)
	if err != nil {
		return nil, err
	}

	var result ObjectHealth
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &FetchError{Kind: FetchUnexpected, Op: "GetObjectHealth", Err: fmt.Errorf("decode: %w", err)}
	}
	return &result, nil
}

// GetRunningTasks fetches the tasks currently in the running state for the
// given scope. An empty scope lists tasks across the whole inventory.
func (c *DefaultClient) GetRunningTasks(ctx context.Context, scope string) ([]TaskInfo, error) {
	path := fmt.Sprintf(endpointTasksFmt, url.QueryEscape(scope))
	body, err := c.doGet(ctx, "GetRunningTasks", path)
	if err != nil {
		return nil, err
	}

	var result []TaskInfo
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &FetchError{Kind: FetchUnexpected, Op: "GetRunningTasks", Err: fmt.Errorf("decode: %w", err)}
	}
	return result, nil
}

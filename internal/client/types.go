package client

import "time"

// ResyncSummary is the per-cluster vSAN resync status payload.
type ResyncSummary struct {
	Cluster     string   `json:"cluster"`
	State       string   `json:"state"`
	BytesLeftGB float64  `json:"bytes_left_gb"`
	EtaMinutes  *float64 `json:"eta_minutes"` // nil when the backend has no estimate yet
}

// ObjectHealth carries the count of objects still waiting to resync.
type ObjectHealth struct {
	ObjectsToResync int64 `json:"objects_to_resync"`
}

// TaskInfo is one entry from the running-task list.
type TaskInfo struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	State           string    `json:"state"`
	ProgressPercent float64   `json:"progress_percent"`
	StartedAt       time.Time `json:"started_at"`
}

package model

import "fmt"

// History is the append-only sequence of Snapshots for one monitoring
// session. It lives in memory only, is owned by the Monitor Loop, and is
// rebuilt fresh on every process run. Snapshots are never removed or
// reordered.
type History struct {
	snaps []Snapshot
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Append adds a snapshot to the end of the sequence. CapturedAt must be
// strictly greater than the latest snapshot's; a non-increasing timestamp
// is rejected to preserve the ordering invariant.
func (h *History) Append(s Snapshot) error {
	if last := h.Latest(); last != nil && !s.CapturedAt.After(last.CapturedAt) {
		return fmt.Errorf("history: snapshot at %s is not after latest %s",
			s.CapturedAt.Format("15:04:05.000"), last.CapturedAt.Format("15:04:05.000"))
	}
	h.snaps = append(h.snaps, s)
	return nil
}

// Latest returns the most recently appended snapshot, or nil when empty.
func (h *History) Latest() *Snapshot {
	if len(h.snaps) == 0 {
		return nil
	}
	return &h.snaps[len(h.snaps)-1]
}

// Previous returns the snapshot before the latest, or nil when fewer than
// two snapshots have been appended.
func (h *History) Previous() *Snapshot {
	if len(h.snaps) < 2 {
		return nil
	}
	return &h.snaps[len(h.snaps)-2]
}

// Count returns the number of snapshots appended so far.
func (h *History) Count() int {
	return len(h.snaps)
}

package report

import (
	"strconv"

	"github.com/dm/vcwatch/internal/format"
	"github.com/dm/vcwatch/internal/model"
)

// Align controls cell padding direction within a column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes a single column in an operation family's table.
type Column struct {
	Title string
	Width int
	Align Align
}

// Schema is the fixed column set for one operation family. Column order is
// stable for the whole session: the header printed on the first tick and
// every appended row use the same layout.
type Schema struct {
	Family  string
	Columns []Column
	Row     func(s model.Snapshot, m model.DerivedMetrics) []string
}

// Resync is the schema for vSAN resync monitoring.
func Resync() Schema {
	return Schema{
		Family: "resync",
		Columns: []Column{
			{Title: "Time", Width: 8},
			{Title: "Cluster", Width: 18},
			{Title: "GB Left", Width: 10, Align: AlignRight},
			{Title: "Objects Left", Width: 12, Align: AlignRight},
			{Title: "ETA Hours", Width: 9, Align: AlignRight},
			{Title: "ETA Minutes", Width: 11, Align: AlignRight},
			{Title: "MiB/s", Width: 8, Align: AlignRight},
		},
		Row: func(s model.Snapshot, m model.DerivedMetrics) []string {
			objects := format.NotAvailable
			if s.SecondaryKnown {
				objects = format.Number(s.SecondaryCount)
			}
			etaH, etaM := format.NotAvailable, format.NotAvailable
			if m.EtaKnown {
				h, min := format.SplitMinutes(m.EtaMinutes)
				etaH, etaM = strconv.Itoa(h), strconv.Itoa(min)
			}
			rate := format.NotAvailable
			if m.ThroughputKnown {
				rate = strconv.FormatFloat(m.Throughput, 'f', 0, 64)
			}
			return []string{
				s.CapturedAt.Format("15:04:05"),
				s.Scope,
				format.Gigabytes(s.RemainingWork),
				objects,
				etaH,
				etaM,
				rate,
			}
		},
	}
}

// Tasks is the schema for running-task monitoring.
func Tasks() Schema {
	return Schema{
		Family: "tasks",
		Columns: []Column{
			{Title: "Time", Width: 8},
			{Title: "Scope", Width: 18},
			{Title: "Tasks Left", Width: 10, Align: AlignRight},
			{Title: "Running", Width: 9, Align: AlignRight},
			{Title: "Elapsed", Width: 18},
			{Title: "ETA Minutes", Width: 11, Align: AlignRight},
			{Title: "Tasks/min", Width: 9, Align: AlignRight},
		},
		Row: func(s model.Snapshot, m model.DerivedMetrics) []string {
			running := format.NotAvailable
			if s.SecondaryKnown {
				running = format.Number(s.SecondaryCount)
			}
			elapsed := format.NotAvailable
			if m.ElapsedKnown {
				elapsed = format.Elapsed(m.Elapsed)
			}
			eta := format.NotAvailable
			if m.EtaKnown {
				eta = strconv.Itoa(int(m.EtaMinutes))
			}
			rate := format.NotAvailable
			if m.ThroughputKnown {
				rate = strconv.FormatFloat(m.Throughput, 'f', 0, 64)
			}
			return []string{
				s.CapturedAt.Format("15:04:05"),
				s.Scope,
				strconv.Itoa(int(s.RemainingWork)),
				running,
				elapsed,
				eta,
				rate,
			}
		},
	}
}

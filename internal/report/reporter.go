package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/vcwatch/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// Reporter renders a monitoring session as a continuously growing transcript:
// the first snapshot produces the header plus its data row, every later
// snapshot appends a single row in the same column order. Nothing is ever
// redrawn, so the output streams cleanly to a console or a captured log.
type Reporter struct {
	w           io.Writer
	schema      Schema
	wroteHeader bool
}

// New creates a Reporter writing to w with the given family schema.
func New(w io.Writer, schema Schema) *Reporter {
	return &Reporter{w: w, schema: schema}
}

// Report renders the latest snapshot and its derived metrics. On the first
// call it emits the header first.
func (r *Reporter) Report(s model.Snapshot, m model.DerivedMetrics) {
	if !r.wroteHeader {
		fmt.Fprintln(r.w, headerStyle.Render(r.headerLine()))
		r.wroteHeader = true
	}
	fmt.Fprintln(r.w, r.rowLine(s, m))
}

func (r *Reporter) headerLine() string {
	cells := make([]string, len(r.schema.Columns))
	for i, col := range r.schema.Columns {
		cells[i] = pad(col.Title, col.Width, col.Align)
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ")
}

func (r *Reporter) rowLine(s model.Snapshot, m model.DerivedMetrics) string {
	values := r.schema.Row(s, m)
	cells := make([]string, len(r.schema.Columns))
	for i, col := range r.schema.Columns {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cells[i] = pad(v, col.Width, col.Align)
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ")
}

// pad fits s into a cell of the given width. Overlong values are kept whole
// rather than truncated; a misaligned row beats a mutilated cluster name.
func pad(s string, width int, align Align) string {
	if len(s) >= width {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", width-len(s)) + s
	}
	return s + strings.Repeat(" ", width-len(s))
}

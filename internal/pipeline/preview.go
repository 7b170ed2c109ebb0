package pipeline

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/paveg/csvjoin/internal/join"
	"github.com/paveg/csvjoin/internal/monitoring"
)

// RenderPreview writes the header and up to limit rows of result to w as a
// text table.
func RenderPreview(w io.Writer, result *join.Result, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	headerRow := make(table.Row, len(result.Header))
	for i, col := range result.Header {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	shown := min(limit, result.Len())
	for _, row := range result.Rows[:shown] {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}

	t.SetCaption(fmt.Sprintf("%d of %d rows (%s join)", shown, result.Len(), result.Kind))
	t.Render()
}

// RenderMetrics writes one line per recorded stage followed by totals.
func RenderMetrics(w io.Writer, metrics []monitoring.StageMetrics, summary monitoring.MetricsSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Stage", "Source", "Rows", "Duration", "Memory"})

	for _, m := range metrics {
		status := m.Stage
		if m.Parallel {
			status += " (parallel)"
		}
		if m.Failed {
			status += " (failed)"
		}
		t.AppendRow(table.Row{status, m.Source, m.Rows, m.Duration, m.MemoryUsed})
	}

	t.AppendFooter(table.Row{"Total", "", summary.TotalRows, summary.TotalDuration, summary.TotalMemory})
	t.Render()
}

package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Colors
var (
	accent = lipgloss.Color("#00CC66")
	muted  = lipgloss.Color("#666666")
	warn   = lipgloss.Color("#FFCC00")
)

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	queueStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(muted)
	warnStyle   = lipgloss.NewStyle().Foreground(warn).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(muted)
	headerCell  = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center).Padding(0, 1)
	bodyCell    = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
)

// Render writes the styled terminal report: global time, then one block
// per queue with its configuration line, interval lines, occupancy table
// and loss count.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("======================== SIMULATION RESULTS ========================"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "TOTAL SIMULATION TIME: %.2f\n", r.Clock)
	fmt.Fprintln(w)

	for _, q := range r.Queues {
		renderQueue(w, q)
	}

	if r.Drained {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("WARNING: ran out of events after %d of %d draws", r.Draws, r.MaxDraws)))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("seed %d | %d draws consumed | total losses %d", r.Seed, r.Draws, r.TotalLosses)))
}

func renderQueue(w io.Writer, q QueueReport) {
	fmt.Fprintln(w, queueStyle.Render(fmt.Sprintf("------------------ QUEUE %d ------------------", q.ID)))
	fmt.Fprintf(w, "Configuration: %s\n", q.Signature)
	if !q.Arrival.IsZero() {
		fmt.Fprintf(w, "Arrivals:   [%6.2f, %6.2f]\n", q.Arrival.Min, q.Arrival.Max)
	}
	fmt.Fprintf(w, "Departures: [%6.2f, %6.2f]\n", q.Departure.Min, q.Departure.Max)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		}).
		Headers("Queue Length", "Total Time", "Probability")
	for _, ls := range q.Levels {
		tbl.Row(
			fmt.Sprintf("%d", ls.Level),
			fmt.Sprintf("%.2f", ls.Time),
			fmt.Sprintf("%.2f%%", ls.Probability*100),
		)
	}
	fmt.Fprintln(w, tbl.Render())

	fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("mean occupancy %.4f | server utilization %.2f%%", q.MeanOccupancy, q.Utilization*100)))
	fmt.Fprintf(w, "TOTAL LOSSES: %d\n", q.Losses)
	fmt.Fprintln(w)
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/ebracha/plank/internal/contract"
)

// FormatMetrics renders the board metrics report.
func FormatMetrics(m *contract.Metrics) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("BOARD METRICS"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Cards: %s   Columns: %s   Avg/column: %s\n",
		StyleBold.Render(fmt.Sprintf("%d", m.TotalCards)),
		StyleBold.Render(fmt.Sprintf("%d", m.TotalColumns)),
		StyleBold.Render(fmt.Sprintf("%.1f", m.AverageCardsPerColumn)),
	))
	b.WriteString(fmt.Sprintf("Completed: %s   Active: %s\n\n",
		StyleGreen.Render(fmt.Sprintf("%d", m.CompletedCards)),
		StyleBlue.Render(fmt.Sprintf("%d", m.ActiveCards)),
	))

	b.WriteString(StyleHeader.Render("Priorities"))
	b.WriteString("\n")
	b.WriteString(priorityLine(StyleRed.Render("High"), m.High))
	b.WriteString(priorityLine(StyleYellow.Render("Medium"), m.Medium))
	b.WriteString(priorityLine(StyleGreen.Render("Low"), m.Low))
	b.WriteString("\n")

	b.WriteString(StyleHeader.Render("Due dates"))
	b.WriteString("\n")
	overdue := fmt.Sprintf("%d", m.Overdue)
	if m.Overdue > 0 {
		overdue = StyleRed.Render(overdue)
	}
	b.WriteString(fmt.Sprintf("Overdue: %s (high priority: %d)   Today: %d   Next 7 days: %d\n\n",
		overdue, m.OverdueHighPriority, m.DueToday, m.DueNext7Days))

	b.WriteString(StyleHeader.Render("Per column"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(m.Columns))
	for _, col := range m.Columns {
		rows = append(rows, []string{
			col.Title,
			fmt.Sprintf("%d", col.Count),
			RenderShare(col.Percent, 16),
		})
	}
	b.WriteString(RenderTable([]string{"COLUMN", "CARDS", "SHARE"}, rows))

	return b.String()
}

func priorityLine(label string, bucket contract.PriorityBucket) string {
	return fmt.Sprintf("%s: %d (%.0f%%)\n", label, bucket.Count, bucket.Percent)
}

// RenderShare renders a percentage as a small bar like "████░░░░ 45%".
func RenderShare(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3.0f%%", StyleBlue.Render(bar), pct)
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/ebracha/plank/internal/domain"
)

// FormatCardList renders one column's cards as a table.
func FormatCardList(cards []*domain.Card) string {
	if len(cards) == 0 {
		return StyleDim.Render("No cards in this column.")
	}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		due := StyleDim.Render("-")
		if c.DueDate != nil {
			due = c.DueDate.Format("2006-01-02")
		}
		title := c.Title
		if c.IsArchived {
			title = StyleDim.Render(title + " (archived)")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.Position),
			shortID(c.ID),
			title,
			PriorityBadge(c.Priority),
			due,
		})
	}
	return RenderTable([]string{"#", "ID", "TITLE", "PRIORITY", "DUE"}, rows)
}

// FormatCardDetail renders one card with its dates and description.
func FormatCardDetail(c *domain.Card, labels []*domain.Label, attachments []*domain.Attachment) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(c.Title))
	if c.IsArchived {
		b.WriteString(" " + StyleDim.Render("(archived)"))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("id"), c.ID))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("priority"), PriorityBadge(c.Priority)))
	if c.StartDate != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("start"), c.StartDate.Format("2006-01-02")))
	}
	if c.DueDate != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("due"), c.DueDate.Format("2006-01-02")))
	}
	if len(labels) > 0 {
		names := make([]string, 0, len(labels))
		for _, l := range labels {
			names = append(names, l.Name)
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("labels"), strings.Join(names, ", ")))
	}
	if len(attachments) > 0 {
		b.WriteString(StyleDim.Render("attachments") + "\n")
		for _, a := range attachments {
			b.WriteString(fmt.Sprintf("  %s (%s, %d bytes)\n", a.OriginalFilename, a.MimeType, a.SizeBytes))
		}
	}
	if strings.TrimSpace(c.Description) != "" {
		b.WriteString("\n" + c.Description + "\n")
	}
	return b.String()
}

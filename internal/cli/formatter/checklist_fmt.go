package formatter

import (
	"fmt"
	"strings"

	"github.com/ebracha/plank/internal/domain"
)

// FormatChecklist renders one checklist with its items and a progress bar.
func FormatChecklist(cl *domain.Checklist, items []*domain.ChecklistItem) string {
	var b strings.Builder

	done := 0
	for _, item := range items {
		if item.IsChecked {
			done++
		}
	}

	b.WriteString(StyleBold.Render(cl.Title))
	if len(items) > 0 {
		b.WriteString("  ")
		b.WriteString(RenderShare(float64(done)*100/float64(len(items)), 12))
	}
	b.WriteString("\n")

	for _, item := range items {
		mark := StyleDim.Render("[ ]")
		text := item.Text
		if item.IsChecked {
			mark = StyleGreen.Render("[x]")
			text = StyleDim.Render(text)
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", mark, StyleDim.Render(shortID(item.ID)), text))
	}
	return b.String()
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ebracha/plank/internal/contract"
	"github.com/ebracha/plank/internal/domain"
)

var titleCaser = cases.Title(language.English)

// FormatBoardList renders the board table.
func FormatBoardList(boards []*domain.Board) string {
	if len(boards) == 0 {
		return StyleDim.Render("No boards. Create one with: plank board add <name>")
	}
	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		state := StyleGreen.Render("active")
		if !b.IsActive {
			state = StyleDim.Render("inactive")
		}
		rows = append(rows, []string{shortID(b.ID), StyleBold.Render(b.Name), state, b.Description})
	}
	return RenderTable([]string{"ID", "NAME", "STATE", "DESCRIPTION"}, rows)
}

// FormatBoardSnapshot renders the board as side-by-side column lanes.
func FormatBoardSnapshot(snap *contract.BoardSnapshot) string {
	header := StyleHeader.Render(snap.Board.Name)
	if !snap.Board.IsActive {
		header += " " + StyleDim.Render("(inactive)")
	}
	if len(snap.Columns) == 0 {
		return header + "\n" + StyleDim.Render("No columns yet.")
	}

	lanes := make([]string, 0, len(snap.Columns))
	for _, col := range snap.Columns {
		lanes = append(lanes, renderLane(col))
	}
	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, lanes...)
}

func renderLane(col contract.ColumnSnapshot) string {
	laneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1).
		Width(28)

	var b strings.Builder
	b.WriteString(StyleHeader.Render(titleCaser.String(strings.ToLower(col.Column.Title))))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d", len(col.Cards))))
	b.WriteString("\n")

	if len(col.Cards) == 0 {
		b.WriteString(StyleDim.Render("(empty)"))
	}
	for _, card := range col.Cards {
		b.WriteString("\n")
		b.WriteString(renderLaneCard(card))
	}
	return laneStyle.Render(b.String())
}

func renderLaneCard(card contract.CardSnapshot) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(card.Card.Title))
	b.WriteString("\n")
	b.WriteString(PriorityBadge(card.Card.Priority))
	if card.Card.DueDate != nil {
		b.WriteString("  ")
		b.WriteString(StyleBlue.Render("due " + card.Card.DueDate.Format("Jan 2")))
	}
	if done, total := checklistProgress(card); total > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", done, total)))
	}
	if len(card.Labels) > 0 {
		b.WriteString("\n")
		names := make([]string, 0, len(card.Labels))
		for _, l := range card.Labels {
			names = append(names, lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("◆"+l.Name))
		}
		b.WriteString(strings.Join(names, " "))
	}
	b.WriteString("\n")
	return b.String()
}

func checklistProgress(card contract.CardSnapshot) (done, total int) {
	for _, cl := range card.Checklists {
		for _, item := range cl.Items {
			total++
			if item.IsChecked {
				done++
			}
		}
	}
	return done, total
}

// shortID trims a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

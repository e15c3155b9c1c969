package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/service"
)

// runCardWizard walks the user through card creation with huh forms:
// column pick, title/description, priority, optional due date, labels.
func runCardWizard(ctx context.Context, app *App, boardRef string) error {
	board, err := pickBoard(ctx, app, boardRef)
	if err != nil {
		return err
	}

	columns, err := app.Columns.ListByBoard(ctx, board.ID)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("board %q has no columns; add one first", board.Name)
	}
	columnOpts := make([]huh.Option[string], 0, len(columns))
	for _, c := range columns {
		columnOpts = append(columnOpts, huh.NewOption(c.Title, c.ID))
	}

	labels, err := app.Labels.ListByBoard(ctx, board.ID)
	if err != nil {
		return err
	}

	var (
		columnID    string
		title       string
		description string
		priority    = int(domain.DefaultPriority)
		dueStr      string
		labelIDs    []string
	)

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Column").
			Options(columnOpts...).
			Value(&columnID),
		huh.NewInput().
			Title("Title").
			Value(&title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
		huh.NewText().
			Title("Description").
			Value(&description),
		huh.NewSelect[int]().
			Title("Priority").
			Options(
				huh.NewOption(domain.PriorityHigh.Name(), int(domain.PriorityHigh)),
				huh.NewOption(domain.PriorityMedium.Name(), int(domain.PriorityMedium)),
				huh.NewOption(domain.PriorityLow.Name(), int(domain.PriorityLow)),
			).
			Value(&priority),
		huh.NewInput().
			Title("Due date (YYYY-MM-DD, blank for none)").
			Placeholder("2026-09-15").
			Value(&dueStr).
			Validate(validateOptionalDate),
	}
	if len(labels) > 0 {
		labelOpts := make([]huh.Option[string], 0, len(labels))
		for _, l := range labels {
			labelOpts = append(labelOpts, huh.NewOption(l.Name, l.ID))
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Labels").
			Options(labelOpts...).
			Value(&labelIDs))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return err
	}

	req := service.CardCreate{
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Priority:    &priority,
		LabelIDs:    labelIDs,
	}
	if req.DueDate, err = parseDateFlag("due", strings.TrimSpace(dueStr)); err != nil {
		return err
	}

	card, err := app.Cards.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Added card %q at position %d\n", card.Title, card.Position)
	return nil
}

// pickBoard resolves the board ref if given, otherwise offers a select.
func pickBoard(ctx context.Context, app *App, ref string) (*domain.Board, error) {
	if ref != "" {
		return resolveBoard(ctx, app, ref)
	}
	boards, err := app.Boards.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, fmt.Errorf("no boards; create one with: plank board add <name>")
	}
	if len(boards) == 1 {
		return boards[0], nil
	}

	opts := make([]huh.Option[string], 0, len(boards))
	for _, b := range boards {
		opts = append(opts, huh.NewOption(b.Name, b.ID))
	}
	var boardID string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Board").Options(opts...).Value(&boardID),
	)).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return app.Boards.GetByID(ctx, boardID)
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

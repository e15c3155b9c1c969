package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/ebracha/plank/internal/domain"
)

// addBoardFlag registers the shared --board flag.
func addBoardFlag(fs *pflag.FlagSet, value *string) {
	fs.StringVar(value, "board", "", "Board name or ID")
}

// resolveBoard accepts a board ID, an ID prefix, or an exact name
// (case-insensitive) and returns the matching board.
func resolveBoard(ctx context.Context, app *App, ref string) (*domain.Board, error) {
	boards, err := app.Boards.List(ctx)
	if err != nil {
		return nil, err
	}
	var byPrefix, byName *domain.Board
	for _, b := range boards {
		if b.ID == ref {
			return b, nil
		}
		if strings.HasPrefix(b.ID, ref) {
			if byPrefix != nil {
				return nil, fmt.Errorf("board reference %q is ambiguous", ref)
			}
			byPrefix = b
		}
		if strings.EqualFold(b.Name, ref) {
			byName = b
		}
	}
	if byPrefix != nil {
		return byPrefix, nil
	}
	if byName != nil {
		return byName, nil
	}
	return nil, fmt.Errorf("no board matches %q", ref)
}

// resolveColumn accepts a column ID, an ID prefix, or an exact title within
// the given board (case-insensitive).
func resolveColumn(ctx context.Context, app *App, boardRef, ref string) (*domain.Column, error) {
	if boardRef == "" {
		col, err := app.Columns.GetByID(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("no column matches %q (pass --board to match by title): %w", ref, err)
		}
		return col, nil
	}

	board, err := resolveBoard(ctx, app, boardRef)
	if err != nil {
		return nil, err
	}
	columns, err := app.Columns.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}
	var byPrefix, byTitle *domain.Column
	for _, c := range columns {
		if c.ID == ref {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			if byPrefix != nil {
				return nil, fmt.Errorf("column reference %q is ambiguous", ref)
			}
			byPrefix = c
		}
		if strings.EqualFold(c.Title, ref) {
			byTitle = c
		}
	}
	if byPrefix != nil {
		return byPrefix, nil
	}
	if byTitle != nil {
		return byTitle, nil
	}
	return nil, fmt.Errorf("no column matches %q on board %q", ref, board.Name)
}

// shortID trims a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// parseDateFlag parses a --due / --start value. Empty means unset.
func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD, got %q", name, value)
	}
	return &t, nil
}

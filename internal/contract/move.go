package contract

import "github.com/ebracha/plank/internal/domain"

// ColumnState is a column plus its ordered non-archived cards, returned
// after a move so callers can redraw both affected columns.
type ColumnState struct {
	Column domain.Column
	Cards  []*domain.Card
}

// MoveResult reports the source and destination column states after a card
// move. For a same-column move both fields describe the same column.
type MoveResult struct {
	Card        domain.Card
	Source      ColumnState
	Destination ColumnState
}

// Package contract holds the typed request/response shapes the core exposes
// to its callers (CLI today). No transport or rendering concerns live here.
package contract

import "github.com/ebracha/plank/internal/domain"

// BoardSnapshot is a board with its ordered columns, each carrying ordered
// non-archived cards and their owned subtrees.
type BoardSnapshot struct {
	Board   domain.Board
	Columns []ColumnSnapshot
}

type ColumnSnapshot struct {
	Column domain.Column
	Cards  []CardSnapshot
}

type CardSnapshot struct {
	Card        domain.Card
	Labels      []*domain.Label
	Checklists  []ChecklistSnapshot
	Attachments []*domain.Attachment
}

type ChecklistSnapshot struct {
	Checklist domain.Checklist
	Items     []*domain.ChecklistItem
}

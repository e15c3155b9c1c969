package repository

import (
	"context"

	"github.com/ebracha/plank/internal/domain"
)

// ColumnCardCount pairs a column with its live (non-archived) card count,
// used by the metrics aggregator's per-column breakdown.
type ColumnCardCount struct {
	ColumnID string
	Count    int
}

type BoardRepo interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	List(ctx context.Context) ([]*domain.Board, error)
	Update(ctx context.Context, b *domain.Board) error
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}

type ColumnRepo interface {
	Create(ctx context.Context, c *domain.Column) error
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	Update(ctx context.Context, c *domain.Column) error
	Delete(ctx context.Context, id string) error
	MaxPosition(ctx context.Context, boardID string) (int, error)
	ShiftAfterRemoval(ctx context.Context, boardID string, removedPos int) error
	ShiftForInsert(ctx context.Context, boardID string, fromPos int) error
}

type CardRepo interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListByColumn(ctx context.Context, columnID string, includeArchived bool) ([]*domain.Card, error)
	ListByBoard(ctx context.Context, boardID string, includeArchived bool) ([]*domain.Card, error)
	Update(ctx context.Context, c *domain.Card) error
	Delete(ctx context.Context, id string) error
	DeleteByColumn(ctx context.Context, columnID string) error
	MaxPosition(ctx context.Context, columnID string) (int, error)
	ShiftAfterRemoval(ctx context.Context, columnID string, removedPos int) error
	ShiftForInsert(ctx context.Context, columnID string, fromPos int) error
}

type LabelRepo interface {
	Create(ctx context.Context, l *domain.Label) error
	GetByID(ctx context.Context, id string) (*domain.Label, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Label, error)
	ListByCard(ctx context.Context, cardID string) ([]*domain.Label, error)
	Update(ctx context.Context, l *domain.Label) error
	Delete(ctx context.Context, id string) error
	Attach(ctx context.Context, cardID, labelID string) error
	Detach(ctx context.Context, cardID, labelID string) error
}

type ChecklistRepo interface {
	Create(ctx context.Context, c *domain.Checklist) error
	GetByID(ctx context.Context, id string) (*domain.Checklist, error)
	ListByCard(ctx context.Context, cardID string) ([]*domain.Checklist, error)
	Update(ctx context.Context, c *domain.Checklist) error
	Delete(ctx context.Context, id string) error
	DeleteByCard(ctx context.Context, cardID string) error
	DeleteByColumn(ctx context.Context, columnID string) error
	MaxPosition(ctx context.Context, cardID string) (int, error)
	ShiftAfterRemoval(ctx context.Context, cardID string, removedPos int) error
	ShiftForInsert(ctx context.Context, cardID string, fromPos int) error
}

type ChecklistItemRepo interface {
	Create(ctx context.Context, i *domain.ChecklistItem) error
	GetByID(ctx context.Context, id string) (*domain.ChecklistItem, error)
	ListByChecklist(ctx context.Context, checklistID string) ([]*domain.ChecklistItem, error)
	Update(ctx context.Context, i *domain.ChecklistItem) error
	Delete(ctx context.Context, id string) error
	DeleteByCard(ctx context.Context, cardID string) error
	DeleteByColumn(ctx context.Context, columnID string) error
	MaxPosition(ctx context.Context, checklistID string) (int, error)
	ShiftAfterRemoval(ctx context.Context, checklistID string, removedPos int) error
	ShiftForInsert(ctx context.Context, checklistID string, fromPos int) error
}

type AttachmentRepo interface {
	Create(ctx context.Context, a *domain.Attachment) error
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	ListByCard(ctx context.Context, cardID string) ([]*domain.Attachment, error)
	ListByColumn(ctx context.Context, columnID string) ([]*domain.Attachment, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Attachment, error)
	Delete(ctx context.Context, id string) error
	DeleteByCard(ctx context.Context, cardID string) error
	DeleteByColumn(ctx context.Context, columnID string) error
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.CardTemplate) error
	GetByID(ctx context.Context, id string) (*domain.CardTemplate, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.CardTemplate, error)
	Delete(ctx context.Context, id string) error
}

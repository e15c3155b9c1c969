package service

import (
	"context"
	"time"

	"github.com/ebracha/plank/internal/contract"
	"github.com/ebracha/plank/internal/domain"
)

// BlobReleaser is the port to the external byte-storage collaborator. The
// core never touches payloads; on deletion it forwards the storage key so
// the collaborator can free the bytes.
type BlobReleaser interface {
	Release(ctx context.Context, storageKey string) error
}

// BoardPatch carries the optional fields of a board update; nil means
// "leave unchanged".
type BoardPatch struct {
	Name        *string
	Description *string
}

type BoardService interface {
	Create(ctx context.Context, name, description string) (*domain.Board, error)
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	List(ctx context.Context) ([]*domain.Board, error)
	Update(ctx context.Context, id string, patch BoardPatch) (*domain.Board, error)
	Activate(ctx context.Context, id string) (*domain.Board, error)
	// Deactivate fails with ErrConflict when the board is the last active one.
	Deactivate(ctx context.Context, id string) (*domain.Board, error)
	// Delete cascades through columns, cards and their subtrees. The last
	// remaining board cannot be deleted.
	Delete(ctx context.Context, id string) error
	Snapshot(ctx context.Context, id string) (*contract.BoardSnapshot, error)
}

type ColumnService interface {
	Create(ctx context.Context, boardID, title string) (*domain.Column, error)
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	Rename(ctx context.Context, id, title string) (*domain.Column, error)
	// Move reorders a column within its board to the given zero-based index.
	Move(ctx context.Context, id string, index int) (*domain.Column, error)
	Delete(ctx context.Context, id string) error
}

// CardCreate carries the fields of a card creation request. A nil or
// out-of-range Priority resolves to Medium.
type CardCreate struct {
	ColumnID    string
	Title       string
	Description string
	Priority    *int
	StartDate   *time.Time
	DueDate     *time.Time
	LabelIDs    []string
}

// CardPatch carries the optional fields of a card update; nil means "leave
// unchanged". Dates clear through the explicit flags since a nil pointer is
// ambiguous there. An out-of-range Priority is rejected.
type CardPatch struct {
	Title          *string
	Description    *string
	Priority       *int
	StartDate      *time.Time
	ClearStartDate bool
	DueDate        *time.Time
	ClearDueDate   bool
}

type CardService interface {
	Create(ctx context.Context, req CardCreate) (*domain.Card, error)
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListByColumn(ctx context.Context, columnID string, includeArchived bool) ([]*domain.Card, error)
	Update(ctx context.Context, id string, patch CardPatch) (*domain.Card, error)
	// Move places the card at the zero-based index within the destination
	// column's visible ordering, renumbering both scopes densely. An index
	// past the end clamps to the end; a negative index is a validation
	// error.
	Move(ctx context.Context, id, destColumnID string, index int) (*contract.MoveResult, error)
	Archive(ctx context.Context, id string) (*domain.Card, error)
	// Unarchive restores a card at the end of its column rather than at its
	// old position, which another card may have taken meanwhile.
	Unarchive(ctx context.Context, id string) (*domain.Card, error)
	Delete(ctx context.Context, id string) error
}

type ChecklistService interface {
	Create(ctx context.Context, cardID, title string) (*domain.Checklist, error)
	GetByID(ctx context.Context, id string) (*domain.Checklist, error)
	ListByCard(ctx context.Context, cardID string) ([]*domain.Checklist, error)
	Rename(ctx context.Context, id, title string) (*domain.Checklist, error)
	Move(ctx context.Context, id string, index int) (*domain.Checklist, error)
	Delete(ctx context.Context, id string) error

	ListItems(ctx context.Context, checklistID string) ([]*domain.ChecklistItem, error)
	AddItem(ctx context.Context, checklistID, text string) (*domain.ChecklistItem, error)
	UpdateItemText(ctx context.Context, itemID, text string) (*domain.ChecklistItem, error)
	ToggleItem(ctx context.Context, itemID string, checked bool) (*domain.ChecklistItem, error)
	MoveItem(ctx context.Context, itemID string, index int) (*domain.ChecklistItem, error)
	DeleteItem(ctx context.Context, itemID string) error
}

type LabelService interface {
	Create(ctx context.Context, boardID, name, color string) (*domain.Label, error)
	Update(ctx context.Context, id, name, color string) (*domain.Label, error)
	Delete(ctx context.Context, id string) error
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Label, error)
	ListByCard(ctx context.Context, cardID string) ([]*domain.Label, error)
	// AttachToCard references labels from the card's own board; a label from
	// any other board is a validation error. Returns the card's full label
	// set after the attach.
	AttachToCard(ctx context.Context, cardID string, labelIDs []string) ([]*domain.Label, error)
	DetachFromCard(ctx context.Context, cardID, labelID string) error
}

// AttachmentRegister carries the metadata of an upload completed by the
// external blob collaborator.
type AttachmentRegister struct {
	CardID           string
	OriginalFilename string
	StorageKey       string
	SizeBytes        int64
	MimeType         string
}

type AttachmentService interface {
	Register(ctx context.Context, req AttachmentRegister) (*domain.Attachment, error)
	ListByCard(ctx context.Context, cardID string) ([]*domain.Attachment, error)
	Delete(ctx context.Context, id string) error
}

type TemplateService interface {
	// Create validates the definition document against the template schema
	// before storing it.
	Create(ctx context.Context, boardID, name, description string, definition []byte) (*domain.CardTemplate, error)
	GetByID(ctx context.Context, id string) (*domain.CardTemplate, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.CardTemplate, error)
	Delete(ctx context.Context, id string) error
	// Instantiate materializes the template as a new card subtree at the end
	// of the destination column. Checklist and item positions are assigned
	// densely in document order.
	Instantiate(ctx context.Context, templateID, destColumnID string) (*contract.CardSnapshot, error)
}

type MetricsService interface {
	// Get derives the board's metrics from its current non-archived cards.
	// now anchors the relative date buckets; the computation never mutates
	// state.
	Get(ctx context.Context, boardID string, now time.Time) (*contract.Metrics, error)
}

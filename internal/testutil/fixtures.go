package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/ebracha/plank/internal/domain"
)

// Board options
type BoardOption func(*domain.Board)

func WithInactive() BoardOption {
	return func(b *domain.Board) {
		b.IsActive = false
	}
}

func WithBoardDescription(d string) BoardOption {
	return func(b *domain.Board) {
		b.Description = d
	}
}

func NewTestBoard(name string, opts ...BoardOption) *domain.Board {
	now := time.Now().UTC()
	b := &domain.Board{
		ID:        uuid.New().String(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Column options
type ColumnOption func(*domain.Column)

func WithColumnPosition(p int) ColumnOption {
	return func(c *domain.Column) {
		c.Position = p
	}
}

func NewTestColumn(boardID, title string, opts ...ColumnOption) *domain.Column {
	c := &domain.Column{
		ID:      uuid.New().String(),
		BoardID: boardID,
		Title:   title,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Card options
type CardOption func(*domain.Card)

func WithPosition(p int) CardOption {
	return func(c *domain.Card) {
		c.Position = p
	}
}

func WithPriority(p domain.Priority) CardOption {
	return func(c *domain.Card) {
		c.Priority = p
	}
}

func WithDueDate(d time.Time) CardOption {
	return func(c *domain.Card) {
		c.DueDate = &d
	}
}

func WithStartDate(d time.Time) CardOption {
	return func(c *domain.Card) {
		c.StartDate = &d
	}
}

func WithArchived() CardOption {
	return func(c *domain.Card) {
		c.IsArchived = true
	}
}

func NewTestCard(columnID, title string, opts ...CardOption) *domain.Card {
	now := time.Now().UTC()
	c := &domain.Card{
		ID:        uuid.New().String(),
		ColumnID:  columnID,
		Title:     title,
		Priority:  domain.DefaultPriority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Label options
type LabelOption func(*domain.Label)

func WithColor(hex string) LabelOption {
	return func(l *domain.Label) {
		l.Color = hex
	}
}

func NewTestLabel(boardID, name string, opts ...LabelOption) *domain.Label {
	l := &domain.Label{
		ID:      uuid.New().String(),
		BoardID: boardID,
		Name:    name,
		Color:   "#1e90ff",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Checklist options
type ChecklistOption func(*domain.Checklist)

func WithChecklistPosition(p int) ChecklistOption {
	return func(c *domain.Checklist) {
		c.Position = p
	}
}

func NewTestChecklist(cardID, title string, opts ...ChecklistOption) *domain.Checklist {
	c := &domain.Checklist{
		ID:     uuid.New().String(),
		CardID: cardID,
		Title:  title,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChecklistItem options
type ItemOption func(*domain.ChecklistItem)

func WithChecked() ItemOption {
	return func(i *domain.ChecklistItem) {
		i.IsChecked = true
	}
}

func WithItemPosition(p int) ItemOption {
	return func(i *domain.ChecklistItem) {
		i.Position = p
	}
}

func NewTestItem(checklistID, text string, opts ...ItemOption) *domain.ChecklistItem {
	i := &domain.ChecklistItem{
		ID:          uuid.New().String(),
		ChecklistID: checklistID,
		Text:        text,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Attachment options
type AttachmentOption func(*domain.Attachment)

func WithStorageKey(key string) AttachmentOption {
	return func(a *domain.Attachment) {
		a.StorageKey = key
	}
}

func NewTestAttachment(cardID, filename string, opts ...AttachmentOption) *domain.Attachment {
	a := &domain.Attachment{
		ID:               uuid.New().String(),
		CardID:           cardID,
		OriginalFilename: filename,
		StorageKey:       uuid.New().String(),
		SizeBytes:        1024,
		MimeType:         "application/octet-stream",
		UploadedAt:       time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

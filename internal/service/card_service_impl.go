package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ebracha/plank/internal/contract"
	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
)

type cardService struct {
	columns     repository.ColumnRepo
	cards       repository.CardRepo
	labels      repository.LabelRepo
	checklists  repository.ChecklistRepo
	items       repository.ChecklistItemRepo
	attachments repository.AttachmentRepo
	uow         db.UnitOfWork
	guard       *PositionGuard
	blobs       BlobReleaser
}

func NewCardService(
	columns repository.ColumnRepo,
	cards repository.CardRepo,
	labels repository.LabelRepo,
	checklists repository.ChecklistRepo,
	items repository.ChecklistItemRepo,
	attachments repository.AttachmentRepo,
	uow db.UnitOfWork,
	guard *PositionGuard,
	blobs BlobReleaser,
) CardService {
	return &cardService{
		columns:     columns,
		cards:       cards,
		labels:      labels,
		checklists:  checklists,
		items:       items,
		attachments: attachments,
		uow:         uow,
		guard:       guard,
		blobs:       blobs,
	}
}

// Create appends the card at the end of the column. A missing or
// out-of-range priority resolves to Medium; label references must belong to
// the column's board.
func (s *cardService) Create(ctx context.Context, req CardCreate) (*domain.Card, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, validationErr("title", "card title is required")
	}

	priority := domain.DefaultPriority
	if req.Priority != nil && domain.Priority(*req.Priority).Valid() {
		priority = domain.Priority(*req.Priority)
	}

	unlock := s.guard.Lock(req.ColumnID)
	defer unlock()

	var card *domain.Card
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)
		txLabels := repository.NewSQLiteLabelRepo(tx)

		column, err := txColumns.GetByID(ctx, req.ColumnID)
		if err != nil {
			return err
		}

		for _, labelID := range req.LabelIDs {
			label, err := txLabels.GetByID(ctx, labelID)
			if err != nil {
				return err
			}
			if label.BoardID != column.BoardID {
				return validationErr("labels", "label %q belongs to another board", label.Name)
			}
		}

		max, err := txCards.MaxPosition(ctx, req.ColumnID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		card = &domain.Card{
			ID:          uuid.New().String(),
			ColumnID:    req.ColumnID,
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Position:    max + 1,
			StartDate:   req.StartDate,
			DueDate:     req.DueDate,
			Priority:    priority,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := txCards.Create(ctx, card); err != nil {
			return err
		}
		for _, labelID := range req.LabelIDs {
			if err := txLabels.Attach(ctx, card.ID, labelID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *cardService) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	return s.cards.GetByID(ctx, id)
}

func (s *cardService) ListByColumn(ctx context.Context, columnID string, includeArchived bool) ([]*domain.Card, error) {
	if _, err := s.columns.GetByID(ctx, columnID); err != nil {
		return nil, err
	}
	return s.cards.ListByColumn(ctx, columnID, includeArchived)
}

// Update applies the patch. Unlike create, an out-of-range priority here is
// rejected rather than defaulted; an empty title is rejected too.
func (s *cardService) Update(ctx context.Context, id string, patch CardPatch) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, validationErr("title", "card title is required")
		}
		card.Title = title
	}
	if patch.Description != nil {
		card.Description = *patch.Description
	}
	if patch.Priority != nil {
		p := domain.Priority(*patch.Priority)
		if !p.Valid() {
			return nil, validationErr("priority", "priority %d out of range 1-3", *patch.Priority)
		}
		card.Priority = p
	}
	if patch.ClearStartDate {
		card.StartDate = nil
	} else if patch.StartDate != nil {
		card.StartDate = patch.StartDate
	}
	if patch.ClearDueDate {
		card.DueDate = nil
	} else if patch.DueDate != nil {
		card.DueDate = patch.DueDate
	}

	card.UpdatedAt = time.Now().UTC()
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Move places the card at the zero-based index within the destination
// column's visible (non-archived) ordering. Archived cards keep their place
// in the physical position run, so the visible index is first converted to a
// physical position. Both affected scopes renumber densely; an index past
// the end clamps to the end.
func (s *cardService) Move(ctx context.Context, id, destColumnID string, index int) (*contract.MoveResult, error) {
	if index < 0 {
		return nil, validationErr("index", "index %d must not be negative", index)
	}

	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(card.ColumnID, destColumnID)
	defer unlock()

	var result *contract.MoveResult
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)

		card, err = txCards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		source, err := txColumns.GetByID(ctx, card.ColumnID)
		if err != nil {
			return err
		}
		dest, err := txColumns.GetByID(ctx, destColumnID)
		if err != nil {
			return err
		}

		// Close the gap in the source scope first. The moved card's own row
		// keeps its stale position until the final update.
		if err := txCards.ShiftAfterRemoval(ctx, source.ID, card.Position); err != nil {
			return err
		}

		target, err := s.physicalTarget(ctx, txCards, dest.ID, card.ID, index)
		if err != nil {
			return err
		}
		if err := txCards.ShiftForInsert(ctx, dest.ID, target); err != nil {
			return err
		}

		card.ColumnID = dest.ID
		card.Position = target
		card.UpdatedAt = time.Now().UTC()
		if err := txCards.Update(ctx, card); err != nil {
			return err
		}

		sourceCards, err := txCards.ListByColumn(ctx, source.ID, false)
		if err != nil {
			return err
		}
		destCards, err := txCards.ListByColumn(ctx, dest.ID, false)
		if err != nil {
			return err
		}
		result = &contract.MoveResult{
			Card:        *card,
			Source:      contract.ColumnState{Column: *source, Cards: sourceCards},
			Destination: contract.ColumnState{Column: *dest, Cards: destCards},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// physicalTarget converts a visible index in the destination column into a
// physical position, after the source gap has been closed. The moved card is
// excluded from the visible ordering it may still (stale) appear in.
func (s *cardService) physicalTarget(ctx context.Context, cards repository.CardRepo, columnID, movedID string, index int) (int, error) {
	visible, err := cards.ListByColumn(ctx, columnID, false)
	if err != nil {
		return 0, err
	}
	others := visible[:0:0]
	for _, c := range visible {
		if c.ID != movedID {
			others = append(others, c)
		}
	}
	if index < len(others) {
		return others[index].Position, nil
	}
	// Past the last visible card: append after everything in the scope,
	// archived included. The moved card's stale row is excluded; on a
	// same-column move it still occupies its pre-shift slot.
	all, err := cards.ListByColumn(ctx, columnID, true)
	if err != nil {
		return 0, err
	}
	maxOther := -1
	for _, c := range all {
		if c.ID != movedID && c.Position > maxOther {
			maxOther = c.Position
		}
	}
	return maxOther + 1, nil
}

func (s *cardService) Archive(ctx context.Context, id string) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card.IsArchived {
		return card, nil
	}
	card.IsArchived = true
	card.UpdatedAt = time.Now().UTC()
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Unarchive restores the card at the end of its column. Its old slot may
// have been taken while it was archived, so the card leaves its current
// position and re-enters as an append.
func (s *cardService) Unarchive(ctx context.Context, id string) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !card.IsArchived {
		return card, nil
	}

	unlock := s.guard.Lock(card.ColumnID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)

		card, err = txCards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txCards.ShiftAfterRemoval(ctx, card.ColumnID, card.Position); err != nil {
			return err
		}
		// The append slot is one past the highest position among the other
		// rows; the moved card's own stale row does not count.
		all, err := txCards.ListByColumn(ctx, card.ColumnID, true)
		if err != nil {
			return err
		}
		maxOther := -1
		for _, c := range all {
			if c.ID != card.ID && c.Position > maxOther {
				maxOther = c.Position
			}
		}
		card.Position = maxOther + 1
		card.IsArchived = false
		card.UpdatedAt = time.Now().UTC()
		return txCards.Update(ctx, card)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Delete removes the card and its owned subtree in one transaction, closes
// the position gap, and releases attachment storage keys after commit.
func (s *cardService) Delete(ctx context.Context, id string) error {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.guard.Lock(card.ColumnID)
	defer unlock()

	var storageKeys []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)
		txChecklists := repository.NewSQLiteChecklistRepo(tx)
		txItems := repository.NewSQLiteChecklistItemRepo(tx)
		txAttachments := repository.NewSQLiteAttachmentRepo(tx)

		card, err = txCards.GetByID(ctx, id)
		if err != nil {
			return err
		}

		attachments, err := txAttachments.ListByCard(ctx, id)
		if err != nil {
			return err
		}
		for _, a := range attachments {
			storageKeys = append(storageKeys, a.StorageKey)
		}

		if err := txItems.DeleteByCard(ctx, id); err != nil {
			return err
		}
		if err := txChecklists.DeleteByCard(ctx, id); err != nil {
			return err
		}
		if err := txAttachments.DeleteByCard(ctx, id); err != nil {
			return err
		}
		if err := txCards.Delete(ctx, id); err != nil {
			return err
		}
		return txCards.ShiftAfterRemoval(ctx, card.ColumnID, card.Position)
	})
	if err != nil {
		return err
	}

	for _, key := range storageKeys {
		if err := s.blobs.Release(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

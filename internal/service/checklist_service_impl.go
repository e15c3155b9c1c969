package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
)

type checklistService struct {
	cards      repository.CardRepo
	checklists repository.ChecklistRepo
	items      repository.ChecklistItemRepo
	uow        db.UnitOfWork
	guard      *PositionGuard
}

func NewChecklistService(
	cards repository.CardRepo,
	checklists repository.ChecklistRepo,
	items repository.ChecklistItemRepo,
	uow db.UnitOfWork,
	guard *PositionGuard,
) ChecklistService {
	return &checklistService{
		cards:      cards,
		checklists: checklists,
		items:      items,
		uow:        uow,
		guard:      guard,
	}
}

// Create appends the checklist at the end of the card's checklist run.
func (s *checklistService) Create(ctx context.Context, cardID, title string) (*domain.Checklist, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validationErr("title", "checklist title is required")
	}

	unlock := s.guard.Lock(cardID)
	defer unlock()

	var checklist *domain.Checklist
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)
		txChecklists := repository.NewSQLiteChecklistRepo(tx)

		if _, err := txCards.GetByID(ctx, cardID); err != nil {
			return err
		}
		max, err := txChecklists.MaxPosition(ctx, cardID)
		if err != nil {
			return err
		}
		checklist = &domain.Checklist{
			ID:       uuid.New().String(),
			CardID:   cardID,
			Title:    strings.TrimSpace(title),
			Position: max + 1,
		}
		return txChecklists.Create(ctx, checklist)
	})
	if err != nil {
		return nil, err
	}
	return checklist, nil
}

func (s *checklistService) GetByID(ctx context.Context, id string) (*domain.Checklist, error) {
	return s.checklists.GetByID(ctx, id)
}

func (s *checklistService) ListByCard(ctx context.Context, cardID string) ([]*domain.Checklist, error) {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return nil, err
	}
	return s.checklists.ListByCard(ctx, cardID)
}

func (s *checklistService) ListItems(ctx context.Context, checklistID string) ([]*domain.ChecklistItem, error) {
	if _, err := s.checklists.GetByID(ctx, checklistID); err != nil {
		return nil, err
	}
	return s.items.ListByChecklist(ctx, checklistID)
}

func (s *checklistService) Rename(ctx context.Context, id, title string) (*domain.Checklist, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validationErr("title", "checklist title is required")
	}
	checklist, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	checklist.Title = strings.TrimSpace(title)
	if err := s.checklists.Update(ctx, checklist); err != nil {
		return nil, err
	}
	return checklist, nil
}

// Move places the checklist at the zero-based index within its card,
// clamping an index past the end.
func (s *checklistService) Move(ctx context.Context, id string, index int) (*domain.Checklist, error) {
	if index < 0 {
		return nil, validationErr("index", "index %d must not be negative", index)
	}

	checklist, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(checklist.CardID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChecklists := repository.NewSQLiteChecklistRepo(tx)

		checklist, err = txChecklists.GetByID(ctx, id)
		if err != nil {
			return err
		}
		siblings, err := txChecklists.ListByCard(ctx, checklist.CardID)
		if err != nil {
			return err
		}
		target := index
		if target > len(siblings)-1 {
			target = len(siblings) - 1
		}
		if target == checklist.Position {
			return nil
		}

		if err := txChecklists.ShiftAfterRemoval(ctx, checklist.CardID, checklist.Position); err != nil {
			return err
		}
		if err := txChecklists.ShiftForInsert(ctx, checklist.CardID, target); err != nil {
			return err
		}
		checklist.Position = target
		return txChecklists.Update(ctx, checklist)
	})
	if err != nil {
		return nil, err
	}
	return checklist, nil
}

// Delete removes the checklist with its items and closes the position gap.
func (s *checklistService) Delete(ctx context.Context, id string) error {
	checklist, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.guard.Lock(checklist.CardID)
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChecklists := repository.NewSQLiteChecklistRepo(tx)
		txItems := repository.NewSQLiteChecklistItemRepo(tx)

		checklist, err = txChecklists.GetByID(ctx, id)
		if err != nil {
			return err
		}
		items, err := txItems.ListByChecklist(ctx, id)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := txItems.Delete(ctx, item.ID); err != nil {
				return err
			}
		}
		if err := txChecklists.Delete(ctx, id); err != nil {
			return err
		}
		return txChecklists.ShiftAfterRemoval(ctx, checklist.CardID, checklist.Position)
	})
}

// AddItem appends the item at the end of the checklist.
func (s *checklistService) AddItem(ctx context.Context, checklistID, text string) (*domain.ChecklistItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationErr("text", "item text is required")
	}

	unlock := s.guard.Lock(checklistID)
	defer unlock()

	var item *domain.ChecklistItem
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChecklists := repository.NewSQLiteChecklistRepo(tx)
		txItems := repository.NewSQLiteChecklistItemRepo(tx)

		if _, err := txChecklists.GetByID(ctx, checklistID); err != nil {
			return err
		}
		max, err := txItems.MaxPosition(ctx, checklistID)
		if err != nil {
			return err
		}
		item = &domain.ChecklistItem{
			ID:          uuid.New().String(),
			ChecklistID: checklistID,
			Text:        strings.TrimSpace(text),
			Position:    max + 1,
		}
		return txItems.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *checklistService) UpdateItemText(ctx context.Context, itemID, text string) (*domain.ChecklistItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationErr("text", "item text is required")
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Text = strings.TrimSpace(text)
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *checklistService) ToggleItem(ctx context.Context, itemID string, checked bool) (*domain.ChecklistItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.IsChecked = checked
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// MoveItem places the item at the zero-based index within its checklist,
// clamping an index past the end.
func (s *checklistService) MoveItem(ctx context.Context, itemID string, index int) (*domain.ChecklistItem, error) {
	if index < 0 {
		return nil, validationErr("index", "index %d must not be negative", index)
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(item.ChecklistID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteChecklistItemRepo(tx)

		item, err = txItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		siblings, err := txItems.ListByChecklist(ctx, item.ChecklistID)
		if err != nil {
			return err
		}
		target := index
		if target > len(siblings)-1 {
			target = len(siblings) - 1
		}
		if target == item.Position {
			return nil
		}

		if err := txItems.ShiftAfterRemoval(ctx, item.ChecklistID, item.Position); err != nil {
			return err
		}
		if err := txItems.ShiftForInsert(ctx, item.ChecklistID, target); err != nil {
			return err
		}
		item.Position = target
		return txItems.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the item and closes the position gap.
func (s *checklistService) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	unlock := s.guard.Lock(item.ChecklistID)
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteChecklistItemRepo(tx)

		item, err = txItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if err := txItems.Delete(ctx, itemID); err != nil {
			return err
		}
		return txItems.ShiftAfterRemoval(ctx, item.ChecklistID, item.Position)
	})
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
)

type columnService struct {
	boards      repository.BoardRepo
	columns     repository.ColumnRepo
	cards       repository.CardRepo
	checklists  repository.ChecklistRepo
	items       repository.ChecklistItemRepo
	attachments repository.AttachmentRepo
	uow         db.UnitOfWork
	guard       *PositionGuard
	blobs       BlobReleaser
}

func NewColumnService(
	boards repository.BoardRepo,
	columns repository.ColumnRepo,
	cards repository.CardRepo,
	checklists repository.ChecklistRepo,
	items repository.ChecklistItemRepo,
	attachments repository.AttachmentRepo,
	uow db.UnitOfWork,
	guard *PositionGuard,
	blobs BlobReleaser,
) ColumnService {
	return &columnService{
		boards:      boards,
		columns:     columns,
		cards:       cards,
		checklists:  checklists,
		items:       items,
		attachments: attachments,
		uow:         uow,
		guard:       guard,
		blobs:       blobs,
	}
}

// Create appends the column at the end of the board's column run.
func (s *columnService) Create(ctx context.Context, boardID, title string) (*domain.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validationErr("title", "column title is required")
	}

	unlock := s.guard.Lock(boardID)
	defer unlock()

	var column *domain.Column
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBoards := repository.NewSQLiteBoardRepo(tx)
		txColumns := repository.NewSQLiteColumnRepo(tx)

		if _, err := txBoards.GetByID(ctx, boardID); err != nil {
			return err
		}
		max, err := txColumns.MaxPosition(ctx, boardID)
		if err != nil {
			return err
		}
		column = &domain.Column{
			ID:       uuid.New().String(),
			BoardID:  boardID,
			Title:    strings.TrimSpace(title),
			Position: max + 1,
		}
		return txColumns.Create(ctx, column)
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

func (s *columnService) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	return s.columns.GetByID(ctx, id)
}

func (s *columnService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	return s.columns.ListByBoard(ctx, boardID)
}

func (s *columnService) Rename(ctx context.Context, id, title string) (*domain.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validationErr("title", "column title is required")
	}
	column, err := s.columns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	column.Title = strings.TrimSpace(title)
	if err := s.columns.Update(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

// Move places the column at the zero-based index within its board,
// renumbering siblings densely. An index past the end clamps to the end.
func (s *columnService) Move(ctx context.Context, id string, index int) (*domain.Column, error) {
	if index < 0 {
		return nil, validationErr("index", "index %d must not be negative", index)
	}

	column, err := s.columns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(column.BoardID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)

		column, err = txColumns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		siblings, err := txColumns.ListByBoard(ctx, column.BoardID)
		if err != nil {
			return err
		}
		target := index
		if target > len(siblings)-1 {
			target = len(siblings) - 1
		}
		if target == column.Position {
			return nil
		}

		if err := txColumns.ShiftAfterRemoval(ctx, column.BoardID, column.Position); err != nil {
			return err
		}
		if err := txColumns.ShiftForInsert(ctx, column.BoardID, target); err != nil {
			return err
		}
		column.Position = target
		return txColumns.Update(ctx, column)
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// Delete removes the column, its cards and their subtrees, then closes the
// position gap in the board's column run. Attachment storage keys are
// released after commit.
func (s *columnService) Delete(ctx context.Context, id string) error {
	column, err := s.columns.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.guard.Lock(column.BoardID, id)
	defer unlock()

	var storageKeys []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)
		txChecklists := repository.NewSQLiteChecklistRepo(tx)
		txItems := repository.NewSQLiteChecklistItemRepo(tx)
		txAttachments := repository.NewSQLiteAttachmentRepo(tx)

		column, err = txColumns.GetByID(ctx, id)
		if err != nil {
			return err
		}

		attachments, err := txAttachments.ListByColumn(ctx, id)
		if err != nil {
			return err
		}
		for _, a := range attachments {
			storageKeys = append(storageKeys, a.StorageKey)
		}

		if err := txItems.DeleteByColumn(ctx, id); err != nil {
			return err
		}
		if err := txChecklists.DeleteByColumn(ctx, id); err != nil {
			return err
		}
		if err := txAttachments.DeleteByColumn(ctx, id); err != nil {
			return err
		}
		if err := txCards.DeleteByColumn(ctx, id); err != nil {
			return err
		}
		if err := txColumns.Delete(ctx, id); err != nil {
			return err
		}
		return txColumns.ShiftAfterRemoval(ctx, column.BoardID, column.Position)
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

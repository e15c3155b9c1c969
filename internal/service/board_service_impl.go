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

type boardService struct {
	boards      repository.BoardRepo
	columns     repository.ColumnRepo
	cards       repository.CardRepo
	labels      repository.LabelRepo
	checklists  repository.ChecklistRepo
	items       repository.ChecklistItemRepo
	attachments repository.AttachmentRepo
	templates   repository.TemplateRepo
	uow         db.UnitOfWork
	blobs       BlobReleaser
}

func NewBoardService(
	boards repository.BoardRepo,
	columns repository.ColumnRepo,
	cards repository.CardRepo,
	labels repository.LabelRepo,
	checklists repository.ChecklistRepo,
	items repository.ChecklistItemRepo,
	attachments repository.AttachmentRepo,
	templates repository.TemplateRepo,
	uow db.UnitOfWork,
	blobs BlobReleaser,
) BoardService {
	return &boardService{
		boards:      boards,
		columns:     columns,
		cards:       cards,
		labels:      labels,
		checklists:  checklists,
		items:       items,
		attachments: attachments,
		templates:   templates,
		uow:         uow,
		blobs:       blobs,
	}
}

func (s *boardService) Create(ctx context.Context, name, description string) (*domain.Board, error) {
	now := time.Now().UTC()
	board := &domain.Board{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := board.ValidateName(); err != nil {
		return nil, validationErr("name", "%v", err)
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *boardService) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	return s.boards.GetByID(ctx, id)
}

func (s *boardService) List(ctx context.Context) ([]*domain.Board, error) {
	return s.boards.List(ctx)
}

func (s *boardService) Update(ctx context.Context, id string, patch BoardPatch) (*domain.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		board.Name = strings.TrimSpace(*patch.Name)
		if err := board.ValidateName(); err != nil {
			return nil, validationErr("name", "%v", err)
		}
	}
	if patch.Description != nil {
		board.Description = *patch.Description
	}
	board.UpdatedAt = time.Now().UTC()
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *boardService) Activate(ctx context.Context, id string) (*domain.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if board.IsActive {
		return board, nil
	}
	board.IsActive = true
	board.UpdatedAt = time.Now().UTC()
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// Deactivate flips isActive off without cascading. At least one board must
// stay active, so deactivating the last active board is a conflict.
func (s *boardService) Deactivate(ctx context.Context, id string) (*domain.Board, error) {
	var board *domain.Board
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBoards := repository.NewSQLiteBoardRepo(tx)

		var err error
		board, err = txBoards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !board.IsActive {
			return nil
		}
		active, err := txBoards.CountActive(ctx)
		if err != nil {
			return err
		}
		if active <= 1 {
			return ErrConflict
		}
		board.IsActive = false
		board.UpdatedAt = time.Now().UTC()
		return txBoards.Update(ctx, board)
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// Delete refuses to remove the last remaining board, then removes the board
// and everything under it in one transaction:
// attachment metadata, checklist items, checklists, cards, labels, templates,
// columns, then the board row. Storage keys are collected first and released
// only after the commit succeeds.
func (s *boardService) Delete(ctx context.Context, id string) error {
	var storageKeys []string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBoards := repository.NewSQLiteBoardRepo(tx)
		txColumns := repository.NewSQLiteColumnRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)
		txLabels := repository.NewSQLiteLabelRepo(tx)
		txChecklists := repository.NewSQLiteChecklistRepo(tx)
		txItems := repository.NewSQLiteChecklistItemRepo(tx)
		txAttachments := repository.NewSQLiteAttachmentRepo(tx)
		txTemplates := repository.NewSQLiteTemplateRepo(tx)

		if _, err := txBoards.GetByID(ctx, id); err != nil {
			return err
		}
		all, err := txBoards.List(ctx)
		if err != nil {
			return err
		}
		if len(all) <= 1 {
			return ErrConflict
		}

		attachments, err := txAttachments.ListByBoard(ctx, id)
		if err != nil {
			return err
		}
		for _, a := range attachments {
			storageKeys = append(storageKeys, a.StorageKey)
		}

		columns, err := txColumns.ListByBoard(ctx, id)
		if err != nil {
			return err
		}
		for _, col := range columns {
			if err := txItems.DeleteByColumn(ctx, col.ID); err != nil {
				return err
			}
			if err := txChecklists.DeleteByColumn(ctx, col.ID); err != nil {
				return err
			}
			if err := txAttachments.DeleteByColumn(ctx, col.ID); err != nil {
				return err
			}
			if err := txCards.DeleteByColumn(ctx, col.ID); err != nil {
				return err
			}
			if err := txColumns.Delete(ctx, col.ID); err != nil {
				return err
			}
		}

		labels, err := txLabels.ListByBoard(ctx, id)
		if err != nil {
			return err
		}
		for _, l := range labels {
			if err := txLabels.Delete(ctx, l.ID); err != nil {
				return err
			}
		}

		templates, err := txTemplates.ListByBoard(ctx, id)
		if err != nil {
			return err
		}
		for _, t := range templates {
			if err := txTemplates.Delete(ctx, t.ID); err != nil {
				return err
			}
		}

		return txBoards.Delete(ctx, id)
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

// Snapshot assembles the board with its ordered columns, each column's
// visible cards, and every card's labels, checklists and attachments.
func (s *boardService) Snapshot(ctx context.Context, id string) (*contract.BoardSnapshot, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	columns, err := s.columns.ListByBoard(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &contract.BoardSnapshot{Board: *board}
	for _, col := range columns {
		colSnap := contract.ColumnSnapshot{Column: *col}

		cards, err := s.cards.ListByColumn(ctx, col.ID, false)
		if err != nil {
			return nil, err
		}
		for _, card := range cards {
			cardSnap, err := s.snapshotCard(ctx, card)
			if err != nil {
				return nil, err
			}
			colSnap.Cards = append(colSnap.Cards, *cardSnap)
		}
		snapshot.Columns = append(snapshot.Columns, colSnap)
	}
	return snapshot, nil
}

func (s *boardService) snapshotCard(ctx context.Context, card *domain.Card) (*contract.CardSnapshot, error) {
	labels, err := s.labels.ListByCard(ctx, card.ID)
	if err != nil {
		return nil, err
	}
	attachments, err := s.attachments.ListByCard(ctx, card.ID)
	if err != nil {
		return nil, err
	}

	snap := &contract.CardSnapshot{
		Card:        *card,
		Labels:      labels,
		Attachments: attachments,
	}

	checklists, err := s.checklists.ListByCard(ctx, card.ID)
	if err != nil {
		return nil, err
	}
	for _, cl := range checklists {
		items, err := s.items.ListByChecklist(ctx, cl.ID)
		if err != nil {
			return nil, err
		}
		snap.Checklists = append(snap.Checklists, contract.ChecklistSnapshot{
			Checklist: *cl,
			Items:     items,
		})
	}
	return snap, nil
}

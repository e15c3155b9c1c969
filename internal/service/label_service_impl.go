package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
)

type labelService struct {
	boards  repository.BoardRepo
	columns repository.ColumnRepo
	cards   repository.CardRepo
	labels  repository.LabelRepo
	uow     db.UnitOfWork
}

func NewLabelService(
	boards repository.BoardRepo,
	columns repository.ColumnRepo,
	cards repository.CardRepo,
	labels repository.LabelRepo,
	uow db.UnitOfWork,
) LabelService {
	return &labelService{
		boards:  boards,
		columns: columns,
		cards:   cards,
		labels:  labels,
		uow:     uow,
	}
}

func (s *labelService) Create(ctx context.Context, boardID, name, color string) (*domain.Label, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	label := &domain.Label{
		ID:      uuid.New().String(),
		BoardID: boardID,
		Name:    strings.TrimSpace(name),
		Color:   strings.TrimSpace(color),
	}
	if err := label.Validate(); err != nil {
		return nil, validationErr("label", "%v", err)
	}
	if err := s.labels.Create(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

func (s *labelService) Update(ctx context.Context, id, name, color string) (*domain.Label, error) {
	label, err := s.labels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	label.Name = strings.TrimSpace(name)
	label.Color = strings.TrimSpace(color)
	if err := label.Validate(); err != nil {
		return nil, validationErr("label", "%v", err)
	}
	if err := s.labels.Update(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// Delete removes the label; the junction rows go with it, so cards simply
// stop listing it.
func (s *labelService) Delete(ctx context.Context, id string) error {
	if _, err := s.labels.GetByID(ctx, id); err != nil {
		return err
	}
	return s.labels.Delete(ctx, id)
}

func (s *labelService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Label, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	return s.labels.ListByBoard(ctx, boardID)
}

func (s *labelService) ListByCard(ctx context.Context, cardID string) ([]*domain.Label, error) {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return nil, err
	}
	return s.labels.ListByCard(ctx, cardID)
}

// AttachToCard links the given labels to the card. Every label must belong
// to the card's board; attaching an already-attached label is a no-op.
func (s *labelService) AttachToCard(ctx context.Context, cardID string, labelIDs []string) ([]*domain.Label, error) {
	var attached []*domain.Label
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)
		txLabels := repository.NewSQLiteLabelRepo(tx)

		card, err := txCards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		column, err := txColumns.GetByID(ctx, card.ColumnID)
		if err != nil {
			return err
		}

		for _, labelID := range labelIDs {
			label, err := txLabels.GetByID(ctx, labelID)
			if err != nil {
				return err
			}
			if label.BoardID != column.BoardID {
				return validationErr("labels", "label %q belongs to another board", label.Name)
			}
		}
		for _, labelID := range labelIDs {
			if err := txLabels.Attach(ctx, cardID, labelID); err != nil {
				return err
			}
		}

		attached, err = txLabels.ListByCard(ctx, cardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return attached, nil
}

func (s *labelService) DetachFromCard(ctx context.Context, cardID, labelID string) error {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return err
	}
	if _, err := s.labels.GetByID(ctx, labelID); err != nil {
		return err
	}
	return s.labels.Detach(ctx, cardID, labelID)
}

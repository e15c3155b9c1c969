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
	"github.com/ebracha/plank/internal/templatedef"
)

type templateService struct {
	boards    repository.BoardRepo
	columns   repository.ColumnRepo
	cards     repository.CardRepo
	templates repository.TemplateRepo
	uow       db.UnitOfWork
	guard     *PositionGuard
}

func NewTemplateService(
	boards repository.BoardRepo,
	columns repository.ColumnRepo,
	cards repository.CardRepo,
	templates repository.TemplateRepo,
	uow db.UnitOfWork,
	guard *PositionGuard,
) TemplateService {
	return &templateService{
		boards:    boards,
		columns:   columns,
		cards:     cards,
		templates: templates,
		uow:       uow,
		guard:     guard,
	}
}

// Create validates the definition document up front; a template that parses
// cleanly here instantiates cleanly later.
func (s *templateService) Create(ctx context.Context, boardID, name, description string, definition []byte) (*domain.CardTemplate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationErr("name", "template name is required")
	}
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	if _, err := templatedef.ParseValidated(definition); err != nil {
		return nil, validationErr("definition", "%v", err)
	}

	now := time.Now().UTC()
	template := &domain.CardTemplate{
		ID:          uuid.New().String(),
		BoardID:     boardID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Definition:  string(definition),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *templateService) GetByID(ctx context.Context, id string) (*domain.CardTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) ListByBoard(ctx context.Context, boardID string) ([]*domain.CardTemplate, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	return s.templates.ListByBoard(ctx, boardID)
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	if _, err := s.templates.GetByID(ctx, id); err != nil {
		return err
	}
	return s.templates.Delete(ctx, id)
}

// Instantiate materializes the template as a new card appended to the
// destination column. Checklists and items get dense positions in document
// order regardless of any position values recorded in the definition.
func (s *templateService) Instantiate(ctx context.Context, templateID, destColumnID string) (*contract.CardSnapshot, error) {
	template, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	def, err := templatedef.ParseValidated([]byte(template.Definition))
	if err != nil {
		return nil, validationErr("definition", "%v", err)
	}

	priority := domain.DefaultPriority
	if def.Priority != nil && domain.Priority(*def.Priority).Valid() {
		priority = domain.Priority(*def.Priority)
	}

	unlock := s.guard.Lock(destColumnID)
	defer unlock()

	var snapshot *contract.CardSnapshot
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)
		txChecklists := repository.NewSQLiteChecklistRepo(tx)
		txItems := repository.NewSQLiteChecklistItemRepo(tx)

		if _, err := txColumns.GetByID(ctx, destColumnID); err != nil {
			return err
		}
		max, err := txCards.MaxPosition(ctx, destColumnID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		card := &domain.Card{
			ID:          uuid.New().String(),
			ColumnID:    destColumnID,
			Title:       def.Title,
			Description: def.Description,
			Position:    max + 1,
			Priority:    priority,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := txCards.Create(ctx, card); err != nil {
			return err
		}
		snapshot = &contract.CardSnapshot{Card: *card}

		for clPos, clDef := range def.Checklists {
			checklist := &domain.Checklist{
				ID:       uuid.New().String(),
				CardID:   card.ID,
				Title:    clDef.Title,
				Position: clPos,
			}
			if err := txChecklists.Create(ctx, checklist); err != nil {
				return err
			}

			clSnap := contract.ChecklistSnapshot{Checklist: *checklist}
			for itemPos, itemDef := range clDef.Items {
				item := &domain.ChecklistItem{
					ID:          uuid.New().String(),
					ChecklistID: checklist.ID,
					Text:        itemDef.Text,
					IsChecked:   itemDef.Checked,
					Position:    itemPos,
				}
				if err := txItems.Create(ctx, item); err != nil {
					return err
				}
				clSnap.Items = append(clSnap.Items, item)
			}
			snapshot.Checklists = append(snapshot.Checklists, clSnap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
)

// checklistColumns is the canonical SELECT column list for checklists.
const checklistColumns = `id, card_id, title, position`

// SQLiteChecklistRepo implements ChecklistRepo using a SQLite database.
type SQLiteChecklistRepo struct {
	db db.DBTX
}

// NewSQLiteChecklistRepo creates a new SQLiteChecklistRepo.
func NewSQLiteChecklistRepo(conn db.DBTX) *SQLiteChecklistRepo {
	return &SQLiteChecklistRepo{db: conn}
}

func (r *SQLiteChecklistRepo) Create(ctx context.Context, c *domain.Checklist) error {
	query := `INSERT INTO checklists (id, card_id, title, position) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.CardID, c.Title, c.Position)
	if err != nil {
		return fmt.Errorf("inserting checklist: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) GetByID(ctx context.Context, id string) (*domain.Checklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklists WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var c domain.Checklist
	err := row.Scan(&c.ID, &c.CardID, &c.Title, &c.Position)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("checklist: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning checklist: %w", err)
	}
	return &c, nil
}

func (r *SQLiteChecklistRepo) ListByCard(ctx context.Context, cardID string) ([]*domain.Checklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklists WHERE card_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing checklists by card: %w", err)
	}
	defer rows.Close()

	var lists []*domain.Checklist
	for rows.Next() {
		var c domain.Checklist
		if err := rows.Scan(&c.ID, &c.CardID, &c.Title, &c.Position); err != nil {
			return nil, fmt.Errorf("scanning checklist row: %w", err)
		}
		lists = append(lists, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklists: %w", err)
	}
	return lists, nil
}

func (r *SQLiteChecklistRepo) Update(ctx context.Context, c *domain.Checklist) error {
	query := `UPDATE checklists SET title = ?, position = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, c.Title, c.Position, c.ID)
	if err != nil {
		return fmt.Errorf("updating checklist: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM checklists WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting checklist: %w", err)
	}
	return nil
}

// DeleteByCard removes all of a card's checklists, used by the cascade path.
func (r *SQLiteChecklistRepo) DeleteByCard(ctx context.Context, cardID string) error {
	query := `DELETE FROM checklists WHERE card_id = ?`
	_, err := r.db.ExecContext(ctx, query, cardID)
	if err != nil {
		return fmt.Errorf("deleting checklists by card: %w", err)
	}
	return nil
}

// DeleteByColumn removes the checklists of every card in a column.
func (r *SQLiteChecklistRepo) DeleteByColumn(ctx context.Context, columnID string) error {
	query := `DELETE FROM checklists WHERE card_id IN
		(SELECT id FROM cards WHERE column_id = ?)`
	_, err := r.db.ExecContext(ctx, query, columnID)
	if err != nil {
		return fmt.Errorf("deleting checklists by column: %w", err)
	}
	return nil
}

// MaxPosition returns the highest position among a card's checklists,
// or -1 when the card has none.
func (r *SQLiteChecklistRepo) MaxPosition(ctx context.Context, cardID string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(position), -1) FROM checklists WHERE card_id = ?`
	if err := r.db.QueryRowContext(ctx, query, cardID).Scan(&max); err != nil {
		return 0, fmt.Errorf("querying max checklist position: %w", err)
	}
	return max, nil
}

func (r *SQLiteChecklistRepo) ShiftAfterRemoval(ctx context.Context, cardID string, removedPos int) error {
	query := `UPDATE checklists SET position = position - 1 WHERE card_id = ? AND position > ?`
	if _, err := r.db.ExecContext(ctx, query, cardID, removedPos); err != nil {
		return fmt.Errorf("shifting checklists after removal: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) ShiftForInsert(ctx context.Context, cardID string, fromPos int) error {
	query := `UPDATE checklists SET position = position + 1 WHERE card_id = ? AND position >= ?`
	if _, err := r.db.ExecContext(ctx, query, cardID, fromPos); err != nil {
		return fmt.Errorf("shifting checklists for insert: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
)

// checklistItemColumns is the canonical SELECT column list for checklist_items.
const checklistItemColumns = `id, checklist_id, text, is_checked, position`

// SQLiteChecklistItemRepo implements ChecklistItemRepo using a SQLite database.
type SQLiteChecklistItemRepo struct {
	db db.DBTX
}

// NewSQLiteChecklistItemRepo creates a new SQLiteChecklistItemRepo.
func NewSQLiteChecklistItemRepo(conn db.DBTX) *SQLiteChecklistItemRepo {
	return &SQLiteChecklistItemRepo{db: conn}
}

func (r *SQLiteChecklistItemRepo) Create(ctx context.Context, i *domain.ChecklistItem) error {
	query := `INSERT INTO checklist_items (id, checklist_id, text, is_checked, position)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, i.ID, i.ChecklistID, i.Text, boolToInt(i.IsChecked), i.Position)
	if err != nil {
		return fmt.Errorf("inserting checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistItemRepo) GetByID(ctx context.Context, id string) (*domain.ChecklistItem, error) {
	query := `SELECT ` + checklistItemColumns + ` FROM checklist_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var i domain.ChecklistItem
	var checkedInt int
	err := row.Scan(&i.ID, &i.ChecklistID, &i.Text, &checkedInt, &i.Position)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("checklist item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning checklist item: %w", err)
	}
	i.IsChecked = intToBool(checkedInt)
	return &i, nil
}

func (r *SQLiteChecklistItemRepo) ListByChecklist(ctx context.Context, checklistID string) ([]*domain.ChecklistItem, error) {
	query := `SELECT ` + checklistItemColumns + ` FROM checklist_items
		WHERE checklist_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, checklistID)
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ChecklistItem
	for rows.Next() {
		var i domain.ChecklistItem
		var checkedInt int
		if err := rows.Scan(&i.ID, &i.ChecklistID, &i.Text, &checkedInt, &i.Position); err != nil {
			return nil, fmt.Errorf("scanning checklist item row: %w", err)
		}
		i.IsChecked = intToBool(checkedInt)
		items = append(items, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}
	return items, nil
}

func (r *SQLiteChecklistItemRepo) Update(ctx context.Context, i *domain.ChecklistItem) error {
	query := `UPDATE checklist_items SET text = ?, is_checked = ?, position = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, i.Text, boolToInt(i.IsChecked), i.Position, i.ID)
	if err != nil {
		return fmt.Errorf("updating checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistItemRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM checklist_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting checklist item: %w", err)
	}
	return nil
}

// DeleteByCard removes every item under any of a card's checklists,
// used by the cascade path before the checklists themselves go.
func (r *SQLiteChecklistItemRepo) DeleteByCard(ctx context.Context, cardID string) error {
	query := `DELETE FROM checklist_items WHERE checklist_id IN
		(SELECT id FROM checklists WHERE card_id = ?)`
	_, err := r.db.ExecContext(ctx, query, cardID)
	if err != nil {
		return fmt.Errorf("deleting checklist items by card: %w", err)
	}
	return nil
}

// DeleteByColumn removes every item under any checklist of any card in a
// column.
func (r *SQLiteChecklistItemRepo) DeleteByColumn(ctx context.Context, columnID string) error {
	query := `DELETE FROM checklist_items WHERE checklist_id IN
		(SELECT cl.id FROM checklists cl
		 JOIN cards c ON cl.card_id = c.id
		 WHERE c.column_id = ?)`
	_, err := r.db.ExecContext(ctx, query, columnID)
	if err != nil {
		return fmt.Errorf("deleting checklist items by column: %w", err)
	}
	return nil
}

// MaxPosition returns the highest position among a checklist's items,
// or -1 when the checklist is empty.
func (r *SQLiteChecklistItemRepo) MaxPosition(ctx context.Context, checklistID string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(position), -1) FROM checklist_items WHERE checklist_id = ?`
	if err := r.db.QueryRowContext(ctx, query, checklistID).Scan(&max); err != nil {
		return 0, fmt.Errorf("querying max checklist item position: %w", err)
	}
	return max, nil
}

func (r *SQLiteChecklistItemRepo) ShiftAfterRemoval(ctx context.Context, checklistID string, removedPos int) error {
	query := `UPDATE checklist_items SET position = position - 1
		WHERE checklist_id = ? AND position > ?`
	if _, err := r.db.ExecContext(ctx, query, checklistID, removedPos); err != nil {
		return fmt.Errorf("shifting checklist items after removal: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistItemRepo) ShiftForInsert(ctx context.Context, checklistID string, fromPos int) error {
	query := `UPDATE checklist_items SET position = position + 1
		WHERE checklist_id = ? AND position >= ?`
	if _, err := r.db.ExecContext(ctx, query, checklistID, fromPos); err != nil {
		return fmt.Errorf("shifting checklist items for insert: %w", err)
	}
	return nil
}

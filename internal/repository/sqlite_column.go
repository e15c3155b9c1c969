package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
)

// columnColumns is the canonical SELECT column list for columns.
const columnColumns = `id, board_id, title, position`

// SQLiteColumnRepo implements ColumnRepo using a SQLite database.
type SQLiteColumnRepo struct {
	db db.DBTX
}

// NewSQLiteColumnRepo creates a new SQLiteColumnRepo.
func NewSQLiteColumnRepo(conn db.DBTX) *SQLiteColumnRepo {
	return &SQLiteColumnRepo{db: conn}
}

func (r *SQLiteColumnRepo) Create(ctx context.Context, c *domain.Column) error {
	query := `INSERT INTO columns (id, board_id, title, position) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.BoardID, c.Title, c.Position)
	if err != nil {
		return fmt.Errorf("inserting column: %w", err)
	}
	return nil
}

func (r *SQLiteColumnRepo) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var c domain.Column
	err := row.Scan(&c.ID, &c.BoardID, &c.Title, &c.Position)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("column: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning column: %w", err)
	}
	return &c, nil
}

func (r *SQLiteColumnRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE board_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing columns by board: %w", err)
	}
	defer rows.Close()

	var cols []*domain.Column
	for rows.Next() {
		var c domain.Column
		if err := rows.Scan(&c.ID, &c.BoardID, &c.Title, &c.Position); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		cols = append(cols, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	return cols, nil
}

func (r *SQLiteColumnRepo) Update(ctx context.Context, c *domain.Column) error {
	query := `UPDATE columns SET board_id = ?, title = ?, position = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, c.BoardID, c.Title, c.Position, c.ID)
	if err != nil {
		return fmt.Errorf("updating column: %w", err)
	}
	return nil
}

func (r *SQLiteColumnRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM columns WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting column: %w", err)
	}
	return nil
}

// MaxPosition returns the highest position among a board's columns,
// or -1 when the board has none.
func (r *SQLiteColumnRepo) MaxPosition(ctx context.Context, boardID string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(position), -1) FROM columns WHERE board_id = ?`
	if err := r.db.QueryRowContext(ctx, query, boardID).Scan(&max); err != nil {
		return 0, fmt.Errorf("querying max column position: %w", err)
	}
	return max, nil
}

// ShiftAfterRemoval closes the gap left at removedPos, keeping the board's
// column positions a dense 0..N-1 run.
func (r *SQLiteColumnRepo) ShiftAfterRemoval(ctx context.Context, boardID string, removedPos int) error {
	query := `UPDATE columns SET position = position - 1 WHERE board_id = ? AND position > ?`
	if _, err := r.db.ExecContext(ctx, query, boardID, removedPos); err != nil {
		return fmt.Errorf("shifting columns after removal: %w", err)
	}
	return nil
}

// ShiftForInsert opens a slot at fromPos by moving every column at or after
// it one position to the right.
func (r *SQLiteColumnRepo) ShiftForInsert(ctx context.Context, boardID string, fromPos int) error {
	query := `UPDATE columns SET position = position + 1 WHERE board_id = ? AND position >= ?`
	if _, err := r.db.ExecContext(ctx, query, boardID, fromPos); err != nil {
		return fmt.Errorf("shifting columns for insert: %w", err)
	}
	return nil
}

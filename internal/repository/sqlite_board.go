package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
)

// boardColumns is the canonical SELECT column list for boards.
const boardColumns = `id, name, description, is_active, created_at, updated_at`

// SQLiteBoardRepo implements BoardRepo using a SQLite database.
type SQLiteBoardRepo struct {
	db db.DBTX
}

// NewSQLiteBoardRepo creates a new SQLiteBoardRepo.
func NewSQLiteBoardRepo(conn db.DBTX) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: conn}
}

func (r *SQLiteBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	query := `INSERT INTO boards (id, name, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Name,
		b.Description,
		boolToInt(b.IsActive),
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanBoard(row)
}

func (r *SQLiteBoardRepo) List(ctx context.Context) ([]*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		b, err := scanBoardRow(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}
	return boards, nil
}

func (r *SQLiteBoardRepo) Update(ctx context.Context, b *domain.Board) error {
	query := `UPDATE boards SET name = ?, description = ?, is_active = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		b.Name,
		b.Description,
		boolToInt(b.IsActive),
		b.UpdatedAt.Format(time.RFC3339),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM boards WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM boards WHERE is_active = 1`
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting active boards: %w", err)
	}
	return n, nil
}

func scanBoard(row *sql.Row) (*domain.Board, error) {
	var b domain.Board
	var activeInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&b.ID, &b.Name, &b.Description, &activeInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("board: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning board: %w", err)
	}
	return populateBoard(&b, activeInt, createdAtStr, updatedAtStr)
}

func scanBoardRow(rows *sql.Rows) (*domain.Board, error) {
	var b domain.Board
	var activeInt int
	var createdAtStr, updatedAtStr string

	if err := rows.Scan(&b.ID, &b.Name, &b.Description, &activeInt, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning board row: %w", err)
	}
	return populateBoard(&b, activeInt, createdAtStr, updatedAtStr)
}

func populateBoard(b *domain.Board, activeInt int, createdAtStr, updatedAtStr string) (*domain.Board, error) {
	b.IsActive = intToBool(activeInt)

	var parseErr error
	b.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	b.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return b, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
)

// templateColumns is the canonical SELECT column list for card_templates.
const templateColumns = `id, board_id, name, description, definition, created_at, updated_at`

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.CardTemplate) error {
	query := `INSERT INTO card_templates (id, board_id, name, description, definition, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.BoardID,
		t.Name,
		t.Description,
		t.Definition,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting card template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.CardTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM card_templates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var t domain.CardTemplate
	var createdAtStr, updatedAtStr string
	err := row.Scan(&t.ID, &t.BoardID, &t.Name, &t.Description, &t.Definition,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("card template: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning card template: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}

func (r *SQLiteTemplateRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.CardTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM card_templates WHERE board_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing card templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.CardTemplate
	for rows.Next() {
		var t domain.CardTemplate
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&t.ID, &t.BoardID, &t.Name, &t.Description, &t.Definition,
			&createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning card template row: %w", err)
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card templates: %w", err)
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM card_templates WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting card template: %w", err)
	}
	return nil
}

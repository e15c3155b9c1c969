package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
)

// labelColumns is the canonical SELECT column list for labels.
const labelColumns = `id, board_id, name, color`

// SQLiteLabelRepo implements LabelRepo using a SQLite database. Card-label
// references live in the card_labels junction table.
type SQLiteLabelRepo struct {
	db db.DBTX
}

// NewSQLiteLabelRepo creates a new SQLiteLabelRepo.
func NewSQLiteLabelRepo(conn db.DBTX) *SQLiteLabelRepo {
	return &SQLiteLabelRepo{db: conn}
}

func (r *SQLiteLabelRepo) Create(ctx context.Context, l *domain.Label) error {
	query := `INSERT INTO labels (id, board_id, name, color) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.BoardID, l.Name, l.Color)
	if err != nil {
		return fmt.Errorf("inserting label: %w", err)
	}
	return nil
}

func (r *SQLiteLabelRepo) GetByID(ctx context.Context, id string) (*domain.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var l domain.Label
	err := row.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("label: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning label: %w", err)
	}
	return &l, nil
}

func (r *SQLiteLabelRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels WHERE board_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing labels by board: %w", err)
	}
	defer rows.Close()
	return r.scanLabels(rows)
}

func (r *SQLiteLabelRepo) ListByCard(ctx context.Context, cardID string) ([]*domain.Label, error) {
	query := `SELECT l.id, l.board_id, l.name, l.color
		FROM labels l
		JOIN card_labels cl ON cl.label_id = l.id
		WHERE cl.card_id = ?
		ORDER BY l.name`
	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing labels by card: %w", err)
	}
	defer rows.Close()
	return r.scanLabels(rows)
}

func (r *SQLiteLabelRepo) Update(ctx context.Context, l *domain.Label) error {
	query := `UPDATE labels SET name = ?, color = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, l.Name, l.Color, l.ID)
	if err != nil {
		return fmt.Errorf("updating label: %w", err)
	}
	return nil
}

func (r *SQLiteLabelRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM labels WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting label: %w", err)
	}
	return nil
}

// Attach records a card-label reference. Attaching twice is a no-op.
func (r *SQLiteLabelRepo) Attach(ctx context.Context, cardID, labelID string) error {
	query := `INSERT OR IGNORE INTO card_labels (card_id, label_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, cardID, labelID)
	if err != nil {
		return fmt.Errorf("attaching label to card: %w", err)
	}
	return nil
}

func (r *SQLiteLabelRepo) Detach(ctx context.Context, cardID, labelID string) error {
	query := `DELETE FROM card_labels WHERE card_id = ? AND label_id = ?`
	_, err := r.db.ExecContext(ctx, query, cardID, labelID)
	if err != nil {
		return fmt.Errorf("detaching label from card: %w", err)
	}
	return nil
}

func (r *SQLiteLabelRepo) scanLabels(rows *sql.Rows) ([]*domain.Label, error) {
	var labels []*domain.Label
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("scanning label row: %w", err)
		}
		labels = append(labels, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating labels: %w", err)
	}
	return labels, nil
}

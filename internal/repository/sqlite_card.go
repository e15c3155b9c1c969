package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
)

// cardColumns is the canonical SELECT column list for cards.
const cardColumns = `id, column_id, title, description, position,
		start_date, due_date, priority, is_archived, created_at, updated_at`

// cardColumnsAliased is the same column list prefixed with "c." for join queries.
const cardColumnsAliased = `c.id, c.column_id, c.title, c.description, c.position,
		c.start_date, c.due_date, c.priority, c.is_archived, c.created_at, c.updated_at`

// SQLiteCardRepo implements CardRepo using a SQLite database.
type SQLiteCardRepo struct {
	db db.DBTX
}

// NewSQLiteCardRepo creates a new SQLiteCardRepo.
func NewSQLiteCardRepo(conn db.DBTX) *SQLiteCardRepo {
	return &SQLiteCardRepo{db: conn}
}

func (r *SQLiteCardRepo) Create(ctx context.Context, c *domain.Card) error {
	query := `INSERT INTO cards (id, column_id, title, description, position,
		start_date, due_date, priority, is_archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ColumnID,
		c.Title,
		c.Description,
		c.Position,
		nullableTimeToString(c.StartDate, dateLayout),
		nullableTimeToString(c.DueDate, dateLayout),
		int(c.Priority),
		boolToInt(c.IsArchived),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanCard(row)
}

func (r *SQLiteCardRepo) ListByColumn(ctx context.Context, columnID string, includeArchived bool) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE column_id = ?`
	if !includeArchived {
		query += ` AND is_archived = 0`
	}
	query += ` ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("listing cards by column: %w", err)
	}
	defer rows.Close()
	return r.scanCards(rows)
}

func (r *SQLiteCardRepo) ListByBoard(ctx context.Context, boardID string, includeArchived bool) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumnsAliased + `
		FROM cards c
		JOIN columns col ON c.column_id = col.id
		WHERE col.board_id = ?`
	if !includeArchived {
		query += ` AND c.is_archived = 0`
	}
	query += ` ORDER BY col.position, c.position`

	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing cards by board: %w", err)
	}
	defer rows.Close()
	return r.scanCards(rows)
}

func (r *SQLiteCardRepo) Update(ctx context.Context, c *domain.Card) error {
	query := `UPDATE cards SET column_id = ?, title = ?, description = ?, position = ?,
		start_date = ?, due_date = ?, priority = ?, is_archived = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.ColumnID,
		c.Title,
		c.Description,
		c.Position,
		nullableTimeToString(c.StartDate, dateLayout),
		nullableTimeToString(c.DueDate, dateLayout),
		int(c.Priority),
		boolToInt(c.IsArchived),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM cards WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return nil
}

// DeleteByColumn removes every card in a column, used by the cascade path.
func (r *SQLiteCardRepo) DeleteByColumn(ctx context.Context, columnID string) error {
	query := `DELETE FROM cards WHERE column_id = ?`
	_, err := r.db.ExecContext(ctx, query, columnID)
	if err != nil {
		return fmt.Errorf("deleting cards by column: %w", err)
	}
	return nil
}

// MaxPosition returns the highest position among all cards in a column,
// archived included, or -1 when the column is empty.
func (r *SQLiteCardRepo) MaxPosition(ctx context.Context, columnID string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(position), -1) FROM cards WHERE column_id = ?`
	if err := r.db.QueryRowContext(ctx, query, columnID).Scan(&max); err != nil {
		return 0, fmt.Errorf("querying max card position: %w", err)
	}
	return max, nil
}

// ShiftAfterRemoval closes the gap left at removedPos. Archived cards shift
// too; they stay part of the column's dense position run.
func (r *SQLiteCardRepo) ShiftAfterRemoval(ctx context.Context, columnID string, removedPos int) error {
	query := `UPDATE cards SET position = position - 1 WHERE column_id = ? AND position > ?`
	if _, err := r.db.ExecContext(ctx, query, columnID, removedPos); err != nil {
		return fmt.Errorf("shifting cards after removal: %w", err)
	}
	return nil
}

// ShiftForInsert opens a slot at fromPos by moving every card at or after it
// one position to the right.
func (r *SQLiteCardRepo) ShiftForInsert(ctx context.Context, columnID string, fromPos int) error {
	query := `UPDATE cards SET position = position + 1 WHERE column_id = ? AND position >= ?`
	if _, err := r.db.ExecContext(ctx, query, columnID, fromPos); err != nil {
		return fmt.Errorf("shifting cards for insert: %w", err)
	}
	return nil
}

// scanCard scans a single card from a *sql.Row.
func (r *SQLiteCardRepo) scanCard(row *sql.Row) (*domain.Card, error) {
	var c domain.Card
	var startDateStr, dueDateStr sql.NullString
	var priorityInt, archivedInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&c.ID, &c.ColumnID, &c.Title, &c.Description, &c.Position,
		&startDateStr, &dueDateStr, &priorityInt, &archivedInt,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("card: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning card: %w", err)
	}
	return populateCard(&c, startDateStr, dueDateStr, priorityInt, archivedInt, createdAtStr, updatedAtStr)
}

// scanCards scans multiple cards from *sql.Rows.
func (r *SQLiteCardRepo) scanCards(rows *sql.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		var c domain.Card
		var startDateStr, dueDateStr sql.NullString
		var priorityInt, archivedInt int
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&c.ID, &c.ColumnID, &c.Title, &c.Description, &c.Position,
			&startDateStr, &dueDateStr, &priorityInt, &archivedInt,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}

		card, err := populateCard(&c, startDateStr, dueDateStr, priorityInt, archivedInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

// populateCard fills in parsed fields on a Card after scanning raw values.
func populateCard(
	c *domain.Card,
	startDateStr, dueDateStr sql.NullString,
	priorityInt, archivedInt int,
	createdAtStr, updatedAtStr string,
) (*domain.Card, error) {
	c.StartDate = parseNullableTime(startDateStr, dateLayout)
	c.DueDate = parseNullableTime(dueDateStr, dateLayout)
	c.Priority = domain.Priority(priorityInt)
	c.IsArchived = intToBool(archivedInt)

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return c, nil
}

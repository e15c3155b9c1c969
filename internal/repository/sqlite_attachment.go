package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
)

// attachmentColumns is the canonical SELECT column list for attachments.
const attachmentColumns = `id, card_id, original_filename, storage_key, size_bytes, mime_type, uploaded_at`

// SQLiteAttachmentRepo implements AttachmentRepo using a SQLite database.
// Only metadata is stored; bytes live behind the blob collaborator.
type SQLiteAttachmentRepo struct {
	db db.DBTX
}

// NewSQLiteAttachmentRepo creates a new SQLiteAttachmentRepo.
func NewSQLiteAttachmentRepo(conn db.DBTX) *SQLiteAttachmentRepo {
	return &SQLiteAttachmentRepo{db: conn}
}

func (r *SQLiteAttachmentRepo) Create(ctx context.Context, a *domain.Attachment) error {
	query := `INSERT INTO attachments (id, card_id, original_filename, storage_key,
		size_bytes, mime_type, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.CardID,
		a.OriginalFilename,
		a.StorageKey,
		a.SizeBytes,
		a.MimeType,
		a.UploadedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting attachment: %w", err)
	}
	return nil
}

func (r *SQLiteAttachmentRepo) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var a domain.Attachment
	var uploadedAtStr string
	err := row.Scan(&a.ID, &a.CardID, &a.OriginalFilename, &a.StorageKey,
		&a.SizeBytes, &a.MimeType, &uploadedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("attachment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning attachment: %w", err)
	}
	a.UploadedAt, err = time.Parse(time.RFC3339, uploadedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing uploaded_at: %w", err)
	}
	return &a, nil
}

func (r *SQLiteAttachmentRepo) ListByCard(ctx context.Context, cardID string) ([]*domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments
		WHERE card_id = ? ORDER BY uploaded_at`
	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments by card: %w", err)
	}
	defer rows.Close()
	return r.scanAttachments(rows)
}

// ListByColumn returns the attachments of every card in a column, archived
// cards included. The cascade path uses it to collect storage keys before a
// column delete.
func (r *SQLiteAttachmentRepo) ListByColumn(ctx context.Context, columnID string) ([]*domain.Attachment, error) {
	query := `SELECT a.id, a.card_id, a.original_filename, a.storage_key,
			a.size_bytes, a.mime_type, a.uploaded_at
		FROM attachments a
		JOIN cards c ON a.card_id = c.id
		WHERE c.column_id = ?
		ORDER BY a.uploaded_at`
	rows, err := r.db.QueryContext(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments by column: %w", err)
	}
	defer rows.Close()
	return r.scanAttachments(rows)
}

// ListByBoard returns every attachment on the board, archived cards
// included. The board-delete cascade uses it to collect storage keys.
func (r *SQLiteAttachmentRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Attachment, error) {
	query := `SELECT a.id, a.card_id, a.original_filename, a.storage_key,
			a.size_bytes, a.mime_type, a.uploaded_at
		FROM attachments a
		JOIN cards c ON a.card_id = c.id
		JOIN columns col ON c.column_id = col.id
		WHERE col.board_id = ?
		ORDER BY a.uploaded_at`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments by board: %w", err)
	}
	defer rows.Close()
	return r.scanAttachments(rows)
}

func (r *SQLiteAttachmentRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM attachments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}
	return nil
}

func (r *SQLiteAttachmentRepo) DeleteByCard(ctx context.Context, cardID string) error {
	query := `DELETE FROM attachments WHERE card_id = ?`
	_, err := r.db.ExecContext(ctx, query, cardID)
	if err != nil {
		return fmt.Errorf("deleting attachments by card: %w", err)
	}
	return nil
}

// DeleteByColumn removes the attachment metadata of every card in a column.
func (r *SQLiteAttachmentRepo) DeleteByColumn(ctx context.Context, columnID string) error {
	query := `DELETE FROM attachments WHERE card_id IN
		(SELECT id FROM cards WHERE column_id = ?)`
	_, err := r.db.ExecContext(ctx, query, columnID)
	if err != nil {
		return fmt.Errorf("deleting attachments by column: %w", err)
	}
	return nil
}

func (r *SQLiteAttachmentRepo) scanAttachments(rows *sql.Rows) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		var uploadedAtStr string
		if err := rows.Scan(&a.ID, &a.CardID, &a.OriginalFilename, &a.StorageKey,
			&a.SizeBytes, &a.MimeType, &uploadedAtStr); err != nil {
			return nil, fmt.Errorf("scanning attachment row: %w", err)
		}
		var err error
		a.UploadedAt, err = time.Parse(time.RFC3339, uploadedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing uploaded_at: %w", err)
		}
		attachments = append(attachments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachments: %w", err)
	}
	return attachments, nil
}

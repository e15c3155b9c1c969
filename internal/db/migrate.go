package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema statements. Every statement is
// idempotent; the whole list re-runs on every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_active   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS columns (
		id       TEXT PRIMARY KEY,
		board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		title    TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_columns_board ON columns(board_id, position)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id          TEXT PRIMARY KEY,
		column_id   TEXT NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL DEFAULT 0,
		start_date  TEXT,
		due_date    TEXT,
		priority    INTEGER NOT NULL DEFAULT 2 CHECK(priority IN (1, 2, 3)),
		is_archived INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_column ON cards(column_id, position)`,

	`CREATE TABLE IF NOT EXISTS labels (
		id       TEXT PRIMARY KEY,
		board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		name     TEXT NOT NULL,
		color    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_labels_board ON labels(board_id)`,

	`CREATE TABLE IF NOT EXISTS card_labels (
		card_id  TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		label_id TEXT NOT NULL REFERENCES labels(id) ON DELETE CASCADE,
		PRIMARY KEY (card_id, label_id)
	)`,

	`CREATE TABLE IF NOT EXISTS checklists (
		id       TEXT PRIMARY KEY,
		card_id  TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		title    TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checklists_card ON checklists(card_id, position)`,

	`CREATE TABLE IF NOT EXISTS checklist_items (
		id           TEXT PRIMARY KEY,
		checklist_id TEXT NOT NULL REFERENCES checklists(id) ON DELETE CASCADE,
		text         TEXT NOT NULL,
		is_checked   INTEGER NOT NULL DEFAULT 0,
		position     INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checklist_items_checklist
		ON checklist_items(checklist_id, position)`,

	`CREATE TABLE IF NOT EXISTS attachments (
		id                TEXT PRIMARY KEY,
		card_id           TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		original_filename TEXT NOT NULL,
		storage_key       TEXT NOT NULL,
		size_bytes        INTEGER NOT NULL DEFAULT 0,
		mime_type         TEXT NOT NULL DEFAULT 'application/octet-stream',
		uploaded_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attachments_card ON attachments(card_id)`,

	`CREATE TABLE IF NOT EXISTS card_templates (
		id          TEXT PRIMARY KEY,
		board_id    TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		definition  TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_card_templates_board ON card_templates(board_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

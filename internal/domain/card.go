package domain

import "time"

type Card struct {
	ID          string
	ColumnID    string
	Title       string
	Description string
	Position    int
	StartDate   *time.Time
	DueDate     *time.Time
	Priority    Priority
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package domain

import "time"

// CardTemplate stores a reusable card-plus-checklists definition as a
// validated JSON document (see templatedef).
type CardTemplate struct {
	ID          string
	BoardID     string
	Name        string
	Description string
	Definition  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

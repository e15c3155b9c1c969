package domain

import (
	"fmt"
	"strings"
	"time"
)

type Board struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateName checks that the board name is non-empty after trimming.
func (b *Board) ValidateName() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("board name is required")
	}
	return nil
}

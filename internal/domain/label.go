package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Label struct {
	ID      string
	BoardID string
	Name    string
	Color   string
}

// Validate checks that the label has a non-empty name and a #RRGGBB color.
func (l *Label) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("label name is required")
	}
	if !hexColorPattern.MatchString(l.Color) {
		return fmt.Errorf("label color %q must be a hex RGB value like #1e90ff", l.Color)
	}
	return nil
}

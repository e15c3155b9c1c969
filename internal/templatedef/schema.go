// Package templatedef defines the typed card-subtree structure stored inside
// a CardTemplate, with parsing and validation. Definitions are validated when
// a template is created, not when it is instantiated.
package templatedef

import (
	"encoding/json"
	"fmt"
)

// CardDefinition is the top-level template document: the card fields plus an
// ordered list of checklist definitions.
type CardDefinition struct {
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Priority    *int                  `json:"priority,omitempty"`
	Checklists  []ChecklistDefinition `json:"checklists,omitempty"`
}

// ChecklistDefinition is one checklist inside a template. Document order
// determines the instantiated position; a recorded position field is
// accepted for compatibility but ignored.
type ChecklistDefinition struct {
	Title    string           `json:"title"`
	Position *int             `json:"position,omitempty"`
	Items    []ItemDefinition `json:"items,omitempty"`
}

// ItemDefinition is one checklist item inside a template.
type ItemDefinition struct {
	Text     string `json:"text"`
	Checked  bool   `json:"checked,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// Parse decodes a raw definition document.
func Parse(raw []byte) (*CardDefinition, error) {
	var def CardDefinition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parsing template definition: %w", err)
	}
	return &def, nil
}

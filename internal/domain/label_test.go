package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelValidate(t *testing.T) {
	valid := Label{Name: "bug", Color: "#fb4934"}
	assert.NoError(t, valid.Validate())

	upper := Label{Name: "bug", Color: "#FB4934"}
	assert.NoError(t, upper.Validate())

	bad := []struct {
		name  string
		label Label
	}{
		{"blank name", Label{Name: "  ", Color: "#fb4934"}},
		{"no hash", Label{Name: "bug", Color: "fb4934"}},
		{"too short", Label{Name: "bug", Color: "#fff"}},
		{"not hex", Label{Name: "bug", Color: "#zzzzzz"}},
		{"named color", Label{Name: "bug", Color: "red"}},
		{"trailing junk", Label{Name: "bug", Color: "#fb4934x"}},
	}
	for _, tc := range bad {
		assert.Errorf(t, tc.label.Validate(), "case %s", tc.name)
	}
}

func TestBoardValidateName(t *testing.T) {
	ok := Board{Name: "Sprint"}
	assert.NoError(t, ok.ValidateName())

	empty := Board{Name: "   "}
	assert.Error(t, empty.ValidateName())
}

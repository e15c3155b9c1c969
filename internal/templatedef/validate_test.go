package templatedef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsWellFormedDefinitions(t *testing.T) {
	docs := []string{
		`{"title": "Minimal"}`,
		`{"title": "Full", "description": "d", "priority": 1}`,
		`{"title": "Nested", "checklists": [
			{"title": "Steps", "items": [
				{"text": "one"},
				{"text": "two", "checked": true, "position": 4}
			]}
		]}`,
	}
	for _, doc := range docs {
		assert.NoErrorf(t, Validate([]byte(doc)), "doc %s", doc)
	}
}

func TestValidate_RejectsBadDefinitions(t *testing.T) {
	docs := []struct {
		name string
		doc  string
	}{
		{"not JSON", `{title:`},
		{"missing title", `{"description": "d"}`},
		{"empty title", `{"title": ""}`},
		{"unknown field", `{"title": "T", "extra": 1}`},
		{"priority too low", `{"title": "T", "priority": 0}`},
		{"priority too high", `{"title": "T", "priority": 4}`},
		{"checklist no title", `{"title": "T", "checklists": [{"items": []}]}`},
		{"item without text", `{"title": "T", "checklists": [{"title": "C", "items": [{"checked": true}]}]}`},
		{"negative position", `{"title": "T", "checklists": [{"title": "C", "position": -1}]}`},
		{"wrong type", `{"title": 7}`},
	}
	for _, tc := range docs {
		assert.Errorf(t, Validate([]byte(tc.doc)), "case %s", tc.name)
	}
}

func TestParseValidated(t *testing.T) {
	def, err := ParseValidated([]byte(`{
		"title": "Release",
		"priority": 1,
		"checklists": [
			{"title": "Prep", "items": [{"text": "tag"}, {"text": "log", "checked": true}]}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Release", def.Title)
	require.NotNil(t, def.Priority)
	assert.Equal(t, 1, *def.Priority)
	require.Len(t, def.Checklists, 1)
	require.Len(t, def.Checklists[0].Items, 2)
	assert.True(t, def.Checklists[0].Items[1].Checked)

	_, err = ParseValidated([]byte(`{"title": ""}`))
	assert.Error(t, err)
}

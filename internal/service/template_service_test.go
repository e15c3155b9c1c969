package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
)

const releaseTemplate = `{
	"title": "Release checklist",
	"description": "Ship a version",
	"priority": 1,
	"checklists": [
		{
			"title": "Prepare",
			"items": [
				{"text": "tag the commit"},
				{"text": "update changelog", "checked": true}
			]
		},
		{
			"title": "Verify",
			"items": [
				{"text": "smoke test"}
			]
		}
	]
}`

func TestTemplateCreate_ValidatesDefinition(t *testing.T) {
	env := newTestEnv(t)
	board, _ := env.seedBoard(t, "Dev")
	ctx := context.Background()

	tmpl, err := env.templateSvc.Create(ctx, board.ID, "release", "", []byte(releaseTemplate))
	require.NoError(t, err)
	assert.Equal(t, "release", tmpl.Name)
	assert.JSONEq(t, releaseTemplate, tmpl.Definition)

	var vErr *ValidationError

	_, err = env.templateSvc.Create(ctx, board.ID, "broken", "", []byte(`{not json`))
	assert.ErrorAs(t, err, &vErr, "malformed JSON")

	_, err = env.templateSvc.Create(ctx, board.ID, "untitled", "", []byte(`{"description":"no title"}`))
	assert.ErrorAs(t, err, &vErr, "missing title")

	_, err = env.templateSvc.Create(ctx, board.ID, "extras", "", []byte(`{"title":"T","surprise":true}`))
	assert.ErrorAs(t, err, &vErr, "unknown field")

	_, err = env.templateSvc.Create(ctx, board.ID, "badprio", "", []byte(`{"title":"T","priority":9}`))
	assert.ErrorAs(t, err, &vErr, "priority out of range")
}

func TestTemplateInstantiate_BuildsSubtreeInDocumentOrder(t *testing.T) {
	env := newTestEnv(t)
	board, cols := env.seedBoard(t, "Dev", "Todo")
	env.seedCards(t, cols[0].ID, "existing")
	ctx := context.Background()

	tmpl, err := env.templateSvc.Create(ctx, board.ID, "release", "", []byte(releaseTemplate))
	require.NoError(t, err)

	snap, err := env.templateSvc.Instantiate(ctx, tmpl.ID, cols[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "Release checklist", snap.Card.Title)
	assert.Equal(t, domain.PriorityHigh, snap.Card.Priority)
	assert.Equal(t, 1, snap.Card.Position, "lands after the existing card")

	require.Len(t, snap.Checklists, 2)
	assert.Equal(t, "Prepare", snap.Checklists[0].Checklist.Title)
	assert.Equal(t, 0, snap.Checklists[0].Checklist.Position)
	assert.Equal(t, "Verify", snap.Checklists[1].Checklist.Title)
	assert.Equal(t, 1, snap.Checklists[1].Checklist.Position)

	items := snap.Checklists[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "tag the commit", items[0].Text)
	assert.Equal(t, 0, items[0].Position)
	assert.False(t, items[0].IsChecked)
	assert.Equal(t, "update changelog", items[1].Text)
	assert.Equal(t, 1, items[1].Position)
	assert.True(t, items[1].IsChecked)

	// The subtree is persisted, not just reported.
	assert.Equal(t, []string{"existing", "Release checklist"}, env.visibleTitles(t, cols[0].ID))
	stored, err := env.checklistSvc.ListByCard(ctx, snap.Card.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestTemplateInstantiate_IgnoresRecordedPositions(t *testing.T) {
	env := newTestEnv(t)
	board, cols := env.seedBoard(t, "Dev", "Todo")
	ctx := context.Background()

	def := `{
		"title": "Sparse",
		"checklists": [
			{"title": "First", "position": 9, "items": [
				{"text": "a", "position": 5},
				{"text": "b", "position": 5}
			]},
			{"title": "Second", "position": 2}
		]
	}`
	tmpl, err := env.templateSvc.Create(ctx, board.ID, "sparse", "", []byte(def))
	require.NoError(t, err)

	snap, err := env.templateSvc.Instantiate(ctx, tmpl.ID, cols[0].ID)
	require.NoError(t, err)

	require.Len(t, snap.Checklists, 2)
	assert.Equal(t, "First", snap.Checklists[0].Checklist.Title)
	assert.Equal(t, 0, snap.Checklists[0].Checklist.Position)
	assert.Equal(t, 1, snap.Checklists[1].Checklist.Position)
	assert.Equal(t, 0, snap.Checklists[0].Items[0].Position)
	assert.Equal(t, 1, snap.Checklists[0].Items[1].Position)
}

func TestTemplateInstantiate_DefaultsPriorityToMedium(t *testing.T) {
	env := newTestEnv(t)
	board, cols := env.seedBoard(t, "Dev", "Todo")
	ctx := context.Background()

	tmpl, err := env.templateSvc.Create(ctx, board.ID, "plain", "", []byte(`{"title":"Plain"}`))
	require.NoError(t, err)

	snap, err := env.templateSvc.Instantiate(ctx, tmpl.ID, cols[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, snap.Card.Priority)
}

func TestTemplateInstantiate_UnknownColumnIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	board, _ := env.seedBoard(t, "Dev")
	ctx := context.Background()

	tmpl, err := env.templateSvc.Create(ctx, board.ID, "plain", "", []byte(`{"title":"Plain"}`))
	require.NoError(t, err)

	_, err = env.templateSvc.Instantiate(ctx, tmpl.ID, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTemplateListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	board, _ := env.seedBoard(t, "Dev")
	ctx := context.Background()

	a, err := env.templateSvc.Create(ctx, board.ID, "alpha", "", []byte(`{"title":"A"}`))
	require.NoError(t, err)
	_, err = env.templateSvc.Create(ctx, board.ID, "beta", "", []byte(`{"title":"B"}`))
	require.NoError(t, err)

	listed, err := env.templateSvc.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, env.templateSvc.Delete(ctx, a.ID))
	_, err = env.templateSvc.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebracha/plank/internal/repository"
	"github.com/ebracha/plank/internal/testutil"
)

func TestBoardCreate_TrimsNameAndStartsActive(t *testing.T) {
	env := newTestEnv(t)

	board, err := env.boardSvc.Create(context.Background(), "  Sprint 12  ", "Q3 work")
	require.NoError(t, err)

	assert.Equal(t, "Sprint 12", board.Name)
	assert.Equal(t, "Q3 work", board.Description)
	assert.True(t, board.IsActive)
	assert.NotEmpty(t, board.ID)
}

func TestBoardCreate_RejectsBlankName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.boardSvc.Create(context.Background(), "   ", "")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestBoardUpdate_PatchesOnlyGivenFields(t *testing.T) {
	env := newTestEnv(t)
	board, _ := env.seedBoard(t, "Dev")
	ctx := context.Background()

	name := "Renamed"
	updated, err := env.boardSvc.Update(ctx, board.ID, BoardPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, board.Description, updated.Description)

	desc := "new description"
	updated, err = env.boardSvc.Update(ctx, board.ID, BoardPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "new description", updated.Description)
}

func TestBoardDeactivate_LastActiveBoardIsConflict(t *testing.T) {
	env := newTestEnv(t)
	only, _ := env.seedBoard(t, "Only")

	_, err := env.boardSvc.Deactivate(context.Background(), only.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBoardDeactivate_AllowedWhileAnotherIsActive(t *testing.T) {
	env := newTestEnv(t)
	first, _ := env.seedBoard(t, "First")
	env.seedBoard(t, "Second")
	ctx := context.Background()

	board, err := env.boardSvc.Deactivate(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, board.IsActive)

	// Deactivating again is a no-op.
	board, err = env.boardSvc.Deactivate(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, board.IsActive)

	board, err = env.boardSvc.Activate(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, board.IsActive)
}

func TestBoardDelete_LastBoardIsConflict(t *testing.T) {
	env := newTestEnv(t)
	only, _ := env.seedBoard(t, "Only")

	err := env.boardSvc.Delete(context.Background(), only.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBoardDelete_CascadesWholeTreeAndReleasesBlobs(t *testing.T) {
	env := newTestEnv(t)
	board, cols := env.seedBoard(t, "Doomed", "Todo", "Done")
	env.seedBoard(t, "Survivor")
	ctx := context.Background()

	cards := env.seedCards(t, cols[0].ID, "a", "b")
	cl, err := env.checklistSvc.Create(ctx, cards[0].ID, "Steps")
	require.NoError(t, err)
	item, err := env.checklistSvc.AddItem(ctx, cl.ID, "one")
	require.NoError(t, err)

	label, err := env.labelSvc.Create(ctx, board.ID, "bug", "#fb4934")
	require.NoError(t, err)
	_, err = env.labelSvc.AttachToCard(ctx, cards[0].ID, []string{label.ID})
	require.NoError(t, err)

	att := testutil.NewTestAttachment(cards[1].ID, "spec.pdf", testutil.WithStorageKey("key-1"))
	require.NoError(t, env.attachments.Create(ctx, att))

	tmpl, err := env.templateSvc.Create(ctx, board.ID, "basic", "", []byte(`{"title":"T"}`))
	require.NoError(t, err)

	require.NoError(t, env.boardSvc.Delete(ctx, board.ID))

	_, err = env.boards.GetByID(ctx, board.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.columns.GetByID(ctx, cols[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.cards.GetByID(ctx, cards[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.checklists.GetByID(ctx, cl.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.items.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.labels.GetByID(ctx, label.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.attachments.GetByID(ctx, att.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.templates.GetByID(ctx, tmpl.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, []string{"key-1"}, env.blobs.released())
}

func TestBoardSnapshot_AssemblesOrderedTree(t *testing.T) {
	env := newTestEnv(t)
	board, cols := env.seedBoard(t, "Dev", "Todo", "Doing", "Done")
	ctx := context.Background()

	cards := env.seedCards(t, cols[0].ID, "a", "b")
	env.seedCards(t, cols[2].ID, "shipped")

	cl, err := env.checklistSvc.Create(ctx, cards[0].ID, "Steps")
	require.NoError(t, err)
	_, err = env.checklistSvc.AddItem(ctx, cl.ID, "one")
	require.NoError(t, err)

	// Archived cards stay out of the snapshot.
	_, err = env.cardSvc.Archive(ctx, cards[1].ID)
	require.NoError(t, err)

	snap, err := env.boardSvc.Snapshot(ctx, board.ID)
	require.NoError(t, err)

	assert.Equal(t, board.ID, snap.Board.ID)
	require.Len(t, snap.Columns, 3)
	assert.Equal(t, "Todo", snap.Columns[0].Column.Title)
	assert.Equal(t, "Done", snap.Columns[2].Column.Title)

	require.Len(t, snap.Columns[0].Cards, 1)
	assert.Equal(t, "a", snap.Columns[0].Cards[0].Card.Title)
	require.Len(t, snap.Columns[0].Cards[0].Checklists, 1)
	assert.Len(t, snap.Columns[0].Cards[0].Checklists[0].Items, 1)

	assert.Empty(t, snap.Columns[1].Cards)
	require.Len(t, snap.Columns[2].Cards, 1)
	assert.Equal(t, "shipped", snap.Columns[2].Cards[0].Card.Title)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebracha/plank/internal/repository"
	"github.com/ebracha/plank/internal/testutil"
)

func TestColumnCreate_AppendsAtEnd(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo", "Doing", "Done")

	for i, col := range cols {
		assert.Equal(t, i, col.Position)
	}
}

func TestColumnCreate_RejectsBlankTitle(t *testing.T) {
	env := newTestEnv(t)
	board, _ := env.seedBoard(t, "Dev")

	_, err := env.columnSvc.Create(context.Background(), board.ID, "  ")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestColumnMove_ReordersDensely(t *testing.T) {
	env := newTestEnv(t)
	board, cols := env.seedBoard(t, "Dev", "Todo", "Doing", "Review", "Done")
	ctx := context.Background()

	moved, err := env.columnSvc.Move(ctx, cols[3].ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.Position)

	listed, err := env.columnSvc.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	titles := make([]string, 0, len(listed))
	for i, c := range listed {
		require.Equal(t, i, c.Position)
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"Todo", "Done", "Doing", "Review"}, titles)
}

func TestColumnMove_ClampsPastEnd(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo", "Doing", "Done")

	moved, err := env.columnSvc.Move(context.Background(), cols[0].ID, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Position)
}

func TestColumnMove_NegativeIndexRejected(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")

	_, err := env.columnSvc.Move(context.Background(), cols[0].ID, -1)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestColumnDelete_CascadesAndRenumbersSiblings(t *testing.T) {
	env := newTestEnv(t)
	board, cols := env.seedBoard(t, "Dev", "Todo", "Doing", "Done")
	ctx := context.Background()

	cards := env.seedCards(t, cols[1].ID, "a", "b")
	cl, err := env.checklistSvc.Create(ctx, cards[0].ID, "Steps")
	require.NoError(t, err)
	att := testutil.NewTestAttachment(cards[1].ID, "notes.txt", testutil.WithStorageKey("key-7"))
	require.NoError(t, env.attachments.Create(ctx, att))

	require.NoError(t, env.columnSvc.Delete(ctx, cols[1].ID))

	_, err = env.columns.GetByID(ctx, cols[1].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.cards.GetByID(ctx, cards[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.checklists.GetByID(ctx, cl.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.attachments.GetByID(ctx, att.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, []string{"key-7"}, env.blobs.released())

	listed, err := env.columnSvc.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Todo", listed[0].Title)
	assert.Equal(t, 0, listed[0].Position)
	assert.Equal(t, "Done", listed[1].Title)
	assert.Equal(t, 1, listed[1].Position)
}

func TestColumnListByBoard_UnknownBoardIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedBoard(t, "Dev")

	_, err := env.columnSvc.ListByBoard(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

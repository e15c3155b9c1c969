package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebracha/plank/internal/testutil"
)

func TestBoardRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(database)
	ctx := context.Background()

	board := testutil.NewTestBoard("Sprint", testutil.WithBoardDescription("Q3"))
	require.NoError(t, repo.Create(ctx, board))

	got, err := repo.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)
	assert.Equal(t, "Sprint", got.Name)
	assert.Equal(t, "Q3", got.Description)
	assert.True(t, got.IsActive)
	assert.WithinDuration(t, board.CreatedAt, got.CreatedAt, time.Second)
}

func TestBoardRepo_GetMissingIsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(database)
	ctx := context.Background()

	board := testutil.NewTestBoard("Before")
	require.NoError(t, repo.Create(ctx, board))

	board.Name = "After"
	board.IsActive = false
	require.NoError(t, repo.Update(ctx, board))

	got, err := repo.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.False(t, got.IsActive)
}

func TestBoardRepo_CountActive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestBoard("a")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestBoard("b")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestBoard("c", testutil.WithInactive())))

	n, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBoardRepo_ListAndDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(database)
	ctx := context.Background()

	a := testutil.NewTestBoard("a")
	b := testutil.NewTestBoard("b")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	boards, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, 2)

	require.NoError(t, repo.Delete(ctx, a.ID))
	boards, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, b.ID, boards[0].ID)
}

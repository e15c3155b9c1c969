package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/testutil"
)

// seedTree inserts a board with one column and returns both, giving most
// tests a valid foreign-key chain to hang rows off.
func seedTree(t *testing.T, database *sql.DB) (*domain.Board, *domain.Column) {
	t.Helper()
	ctx := context.Background()

	board := testutil.NewTestBoard("Board")
	require.NoError(t, NewSQLiteBoardRepo(database).Create(ctx, board))

	column := testutil.NewTestColumn(board.ID, "Todo")
	require.NoError(t, NewSQLiteColumnRepo(database).Create(ctx, column))

	return board, column
}

func seedCard(t *testing.T, database *sql.DB, columnID, title string, opts ...testutil.CardOption) *domain.Card {
	t.Helper()
	card := testutil.NewTestCard(columnID, title, opts...)
	require.NoError(t, NewSQLiteCardRepo(database).Create(context.Background(), card))
	return card
}

package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentMoves_KeepPositionsDense(t *testing.T) {
	env := newFileTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo", "Doing")
	cards := env.seedCards(t, cols[0].ID, "a", "b", "c", "d", "e", "f")
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, len(cards))
	for i, card := range cards {
		wg.Add(1)
		go func(i int, cardID string) {
			defer wg.Done()
			dest := cols[i%2].ID
			_, errs[i] = env.cardSvc.Move(ctx, cardID, dest, i%3)
		}(i, card.ID)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoErrorf(t, err, "move %d", i)
	}

	env.requireDensePositions(t, cols[0].ID)
	env.requireDensePositions(t, cols[1].ID)

	left, err := env.cardSvc.ListByColumn(ctx, cols[0].ID, true)
	require.NoError(t, err)
	right, err := env.cardSvc.ListByColumn(ctx, cols[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, len(cards), len(left)+len(right), "no card lost or duplicated")
}

func TestConcurrentCreates_AssignDistinctPositions(t *testing.T) {
	env := newFileTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.cardSvc.Create(ctx, CardCreate{ColumnID: cols[0].ID, Title: "card"})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoErrorf(t, err, "create %d", i)
	}
	env.requireDensePositions(t, cols[0].ID)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
	"github.com/ebracha/plank/internal/testutil"
)

func TestCardCreate_AppendsAtEnd(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")

	cards := env.seedCards(t, cols[0].ID, "a", "b", "c")

	assert.Equal(t, 0, cards[0].Position)
	assert.Equal(t, 1, cards[1].Position)
	assert.Equal(t, 2, cards[2].Position)
	env.requireDensePositions(t, cols[0].ID)
}

func TestCardCreate_DefaultsPriorityToMedium(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	ctx := context.Background()

	card, err := env.cardSvc.Create(ctx, CardCreate{ColumnID: cols[0].ID, Title: "no priority"})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, card.Priority)

	// Out-of-range explicit priority also resolves to the default.
	bad := 7
	card, err = env.cardSvc.Create(ctx, CardCreate{ColumnID: cols[0].ID, Title: "bad priority", Priority: &bad})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, card.Priority)
}

func TestCardCreate_RejectsEmptyTitle(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")

	_, err := env.cardSvc.Create(context.Background(), CardCreate{ColumnID: cols[0].ID, Title: "   "})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)
}

func TestCardCreate_UnknownColumnIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedBoard(t, "Dev", "Todo")

	_, err := env.cardSvc.Create(context.Background(), CardCreate{ColumnID: "missing", Title: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCardUpdate_RejectsInvalidPriority(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	cards := env.seedCards(t, cols[0].ID, "a")

	bad := 0
	_, err := env.cardSvc.Update(context.Background(), cards[0].ID, CardPatch{Priority: &bad})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "priority", vErr.Field)
}

func TestCardUpdate_ClearsDates(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	ctx := context.Background()

	due := date(t, "2026-09-15")
	card, err := env.cardSvc.Create(ctx, CardCreate{ColumnID: cols[0].ID, Title: "dated", DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, card.DueDate)

	updated, err := env.cardSvc.Update(ctx, card.ID, CardPatch{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestCardMove_SameColumnReorders(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	cards := env.seedCards(t, cols[0].ID, "a", "b", "c", "d")

	// Move "a" to index 2.
	result, err := env.cardSvc.Move(context.Background(), cards[0].ID, cols[0].ID, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "a", "d"}, env.visibleTitles(t, cols[0].ID))
	assert.Equal(t, 2, result.Card.Position)
	env.requireDensePositions(t, cols[0].ID)
}

func TestCardMove_AcrossColumns(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo", "Doing")
	src := env.seedCards(t, cols[0].ID, "a", "b", "c")
	env.seedCards(t, cols[1].ID, "x", "y")

	result, err := env.cardSvc.Move(context.Background(), src[1].ID, cols[1].ID, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, env.visibleTitles(t, cols[0].ID))
	assert.Equal(t, []string{"x", "b", "y"}, env.visibleTitles(t, cols[1].ID))
	assert.Equal(t, cols[1].ID, result.Card.ColumnID)
	env.requireDensePositions(t, cols[0].ID)
	env.requireDensePositions(t, cols[1].ID)

	// Both column states come back for redraw.
	assert.Len(t, result.Source.Cards, 2)
	assert.Len(t, result.Destination.Cards, 3)
}

func TestCardMove_ClampsIndexPastEnd(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo", "Doing")
	src := env.seedCards(t, cols[0].ID, "a")
	env.seedCards(t, cols[1].ID, "x", "y")

	_, err := env.cardSvc.Move(context.Background(), src[0].ID, cols[1].ID, 99)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "a"}, env.visibleTitles(t, cols[1].ID))
	env.requireDensePositions(t, cols[1].ID)
}

func TestCardMove_NegativeIndexRejected(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	cards := env.seedCards(t, cols[0].ID, "a")

	_, err := env.cardSvc.Move(context.Background(), cards[0].ID, cols[0].ID, -1)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestCardArchive_HiddenFromVisibleListingButKeepsSlot(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	cards := env.seedCards(t, cols[0].ID, "a", "b", "c")
	ctx := context.Background()

	archived, err := env.cardSvc.Archive(ctx, cards[1].ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	assert.Equal(t, 1, archived.Position, "archiving must not move the card")

	assert.Equal(t, []string{"a", "c"}, env.visibleTitles(t, cols[0].ID))

	// The full scope still contains it at its old slot.
	all, err := env.cards.ListByColumn(ctx, cols[0].ID, true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[1].Title)
}

func TestCardUnarchive_AppendsAtEnd(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	cards := env.seedCards(t, cols[0].ID, "a", "b", "c")
	ctx := context.Background()

	_, err := env.cardSvc.Archive(ctx, cards[0].ID)
	require.NoError(t, err)

	// Another card lands while "a" is away.
	env.seedCards(t, cols[0].ID, "d")

	restored, err := env.cardSvc.Unarchive(ctx, cards[0].ID)
	require.NoError(t, err)
	assert.False(t, restored.IsArchived)

	assert.Equal(t, []string{"b", "c", "d", "a"}, env.visibleTitles(t, cols[0].ID))
	env.requireDensePositions(t, cols[0].ID)
}

func TestCardDelete_CascadesAndReleasesBlobs(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	cards := env.seedCards(t, cols[0].ID, "a", "b", "c")
	ctx := context.Background()

	cl, err := env.checklistSvc.Create(ctx, cards[1].ID, "Steps")
	require.NoError(t, err)
	item, err := env.checklistSvc.AddItem(ctx, cl.ID, "step one")
	require.NoError(t, err)

	att := testutil.NewTestAttachment(cards[1].ID, "design.pdf", testutil.WithStorageKey("blob-42"))
	require.NoError(t, env.attachments.Create(ctx, att))

	require.NoError(t, env.cardSvc.Delete(ctx, cards[1].ID))

	_, err = env.cards.GetByID(ctx, cards[1].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.checklists.GetByID(ctx, cl.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.items.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.attachments.GetByID(ctx, att.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, []string{"blob-42"}, env.blobs.released())

	// Siblings close the gap.
	assert.Equal(t, []string{"a", "c"}, env.visibleTitles(t, cols[0].ID))
	env.requireDensePositions(t, cols[0].ID)
}

func TestCardDelete_RollbackLeavesSubtreeIntact(t *testing.T) {
	env := newTestEnv(t)
	_, cols := env.seedBoard(t, "Dev", "Todo")
	cards := env.seedCards(t, cols[0].ID, "a")
	ctx := context.Background()

	cl, err := env.checklistSvc.Create(ctx, cards[0].ID, "Steps")
	require.NoError(t, err)
	_, err = env.checklistSvc.AddItem(ctx, cl.ID, "step")
	require.NoError(t, err)

	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: boom}
	svc := NewCardService(
		env.columns, env.cards, env.labels,
		env.checklists, env.items, env.attachments,
		failing, env.guard, env.blobs)

	err = svc.Delete(ctx, cards[0].ID)
	require.ErrorIs(t, err, boom)

	// Everything survives the rollback; no blob release happened.
	_, err = env.cards.GetByID(ctx, cards[0].ID)
	assert.NoError(t, err)
	_, err = env.checklists.GetByID(ctx, cl.ID)
	assert.NoError(t, err)
	assert.Empty(t, env.blobs.released())
}

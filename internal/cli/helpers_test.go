package cli

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebracha/plank/internal/blob"
	"github.com/ebracha/plank/internal/repository"
	"github.com/ebracha/plank/internal/service"
	"github.com/ebracha/plank/internal/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	database := testutil.NewTestDB(t)
	boards := repository.NewSQLiteBoardRepo(database)
	columns := repository.NewSQLiteColumnRepo(database)
	cards := repository.NewSQLiteCardRepo(database)
	labels := repository.NewSQLiteLabelRepo(database)
	checklists := repository.NewSQLiteChecklistRepo(database)
	items := repository.NewSQLiteChecklistItemRepo(database)
	attachments := repository.NewSQLiteAttachmentRepo(database)
	templates := repository.NewSQLiteTemplateRepo(database)

	uow := testutil.NewTestUoW(database)
	guard := service.NewPositionGuard()
	blobs := blob.NewNoopStore()

	return &App{
		Boards: service.NewBoardService(
			boards, columns, cards, labels, checklists, items, attachments, templates, uow, blobs),
		Columns: service.NewColumnService(
			boards, columns, cards, checklists, items, attachments, uow, guard, blobs),
		Cards: service.NewCardService(
			columns, cards, labels, checklists, items, attachments, uow, guard, blobs),
		Checklists:  service.NewChecklistService(cards, checklists, items, uow, guard),
		Labels:      service.NewLabelService(boards, columns, cards, labels, uow),
		Attachments: service.NewAttachmentService(cards, attachments, blobs),
		Templates:   service.NewTemplateService(boards, columns, cards, templates, uow, guard),
		Metrics:     service.NewMetricsService(boards, columns, cards),
		Logger:      log.New(io.Discard),
	}
}

func TestResolveBoard(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	dev, err := app.Boards.Create(ctx, "Dev", "")
	require.NoError(t, err)
	ops, err := app.Boards.Create(ctx, "Ops", "")
	require.NoError(t, err)

	got, err := resolveBoard(ctx, app, dev.ID)
	require.NoError(t, err)
	assert.Equal(t, dev.ID, got.ID)

	got, err = resolveBoard(ctx, app, dev.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, dev.ID, got.ID)

	got, err = resolveBoard(ctx, app, "ops")
	require.NoError(t, err)
	assert.Equal(t, ops.ID, got.ID)

	_, err = resolveBoard(ctx, app, "nonesuch")
	assert.Error(t, err)
}

func TestResolveColumn(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	board, err := app.Boards.Create(ctx, "Dev", "")
	require.NoError(t, err)
	todo, err := app.Columns.Create(ctx, board.ID, "Todo")
	require.NoError(t, err)
	_, err = app.Columns.Create(ctx, board.ID, "Done")
	require.NoError(t, err)

	// Direct ID lookup works without board context.
	got, err := resolveColumn(ctx, app, "", todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)

	// Title matching needs the board.
	got, err = resolveColumn(ctx, app, "Dev", "todo")
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)

	_, err = resolveColumn(ctx, app, "", "Todo")
	assert.Error(t, err, "title without board context")

	_, err = resolveColumn(ctx, app, "Dev", "Backlog")
	assert.Error(t, err)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "4a2b9c1d", shortID("4a2b9c1d-0000-1111-2222-333344445555"))
	assert.Equal(t, "plain", shortID("plain"))
	assert.Equal(t, "", shortID(""))
}

func TestParseDateFlag(t *testing.T) {
	got, err := parseDateFlag("due", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDateFlag("due", "2026-08-29")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), *got)

	_, err = parseDateFlag("due", "29/08/2026")
	assert.Error(t, err)
}

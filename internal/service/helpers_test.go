package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
	"github.com/ebracha/plank/internal/testutil"
)

// recordingReleaser captures the storage keys handed to Release.
type recordingReleaser struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingReleaser) Release(_ context.Context, storageKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, storageKey)
	return nil
}

func (r *recordingReleaser) released() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

// testEnv bundles the repos and services most tests need.
type testEnv struct {
	db          *sql.DB
	boards      repository.BoardRepo
	columns     repository.ColumnRepo
	cards       repository.CardRepo
	labels      repository.LabelRepo
	checklists  repository.ChecklistRepo
	items       repository.ChecklistItemRepo
	attachments repository.AttachmentRepo
	templates   repository.TemplateRepo
	uow         db.UnitOfWork
	guard       *PositionGuard
	blobs       *recordingReleaser

	boardSvc      BoardService
	columnSvc     ColumnService
	cardSvc       CardService
	checklistSvc  ChecklistService
	labelSvc      LabelService
	attachmentSvc AttachmentService
	templateSvc   TemplateService
	metricsSvc    MetricsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDB(t, testutil.NewTestDB(t))
}

// newFileTestEnv backs the env with a file database so multiple goroutines
// can share it.
func newFileTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDB(t, testutil.NewTestFileDB(t))
}

func newTestEnvWithDB(t *testing.T, database *sql.DB) *testEnv {
	t.Helper()

	env := &testEnv{
		db:          database,
		boards:      repository.NewSQLiteBoardRepo(database),
		columns:     repository.NewSQLiteColumnRepo(database),
		cards:       repository.NewSQLiteCardRepo(database),
		labels:      repository.NewSQLiteLabelRepo(database),
		checklists:  repository.NewSQLiteChecklistRepo(database),
		items:       repository.NewSQLiteChecklistItemRepo(database),
		attachments: repository.NewSQLiteAttachmentRepo(database),
		templates:   repository.NewSQLiteTemplateRepo(database),
		uow:         testutil.NewTestUoW(database),
		guard:       NewPositionGuard(),
		blobs:       &recordingReleaser{},
	}

	env.boardSvc = NewBoardService(
		env.boards, env.columns, env.cards, env.labels,
		env.checklists, env.items, env.attachments, env.templates,
		env.uow, env.blobs)
	env.columnSvc = NewColumnService(
		env.boards, env.columns, env.cards,
		env.checklists, env.items, env.attachments,
		env.uow, env.guard, env.blobs)
	env.cardSvc = NewCardService(
		env.columns, env.cards, env.labels,
		env.checklists, env.items, env.attachments,
		env.uow, env.guard, env.blobs)
	env.checklistSvc = NewChecklistService(env.cards, env.checklists, env.items, env.uow, env.guard)
	env.labelSvc = NewLabelService(env.boards, env.columns, env.cards, env.labels, env.uow)
	env.attachmentSvc = NewAttachmentService(env.cards, env.attachments, env.blobs)
	env.templateSvc = NewTemplateService(env.boards, env.columns, env.cards, env.templates, env.uow, env.guard)
	env.metricsSvc = NewMetricsService(env.boards, env.columns, env.cards)

	return env
}

// seedBoard creates a board with the given column titles and returns them.
func (env *testEnv) seedBoard(t *testing.T, name string, columnTitles ...string) (*domain.Board, []*domain.Column) {
	t.Helper()
	ctx := context.Background()

	board, err := env.boardSvc.Create(ctx, name, "")
	require.NoError(t, err)

	columns := make([]*domain.Column, 0, len(columnTitles))
	for _, title := range columnTitles {
		col, err := env.columnSvc.Create(ctx, board.ID, title)
		require.NoError(t, err)
		columns = append(columns, col)
	}
	return board, columns
}

// seedCards creates n cards in the column and returns them in position order.
func (env *testEnv) seedCards(t *testing.T, columnID string, titles ...string) []*domain.Card {
	t.Helper()
	ctx := context.Background()

	cards := make([]*domain.Card, 0, len(titles))
	for _, title := range titles {
		card, err := env.cardSvc.Create(ctx, CardCreate{ColumnID: columnID, Title: title})
		require.NoError(t, err)
		cards = append(cards, card)
	}
	return cards
}

// visibleTitles lists the column's non-archived card titles in order.
func (env *testEnv) visibleTitles(t *testing.T, columnID string) []string {
	t.Helper()
	cards, err := env.cards.ListByColumn(context.Background(), columnID, false)
	require.NoError(t, err)
	titles := make([]string, 0, len(cards))
	for _, c := range cards {
		titles = append(titles, c.Title)
	}
	return titles
}

// requireDensePositions asserts the column's full contents occupy 0..N-1.
func (env *testEnv) requireDensePositions(t *testing.T, columnID string) {
	t.Helper()
	cards, err := env.cards.ListByColumn(context.Background(), columnID, true)
	require.NoError(t, err)
	for i, c := range cards {
		require.Equal(t, i, c.Position, "card %q out of place", c.Title)
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

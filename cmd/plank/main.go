package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ebracha/plank/internal/blob"
	"github.com/ebracha/plank/internal/cli"
	"github.com/ebracha/plank/internal/cli/formatter"
	"github.com/ebracha/plank/internal/config"
	"github.com/ebracha/plank/internal/db"
	"github.com/ebracha/plank/internal/repository"
	"github.com/ebracha/plank/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "plank",
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	formatter.DisableColorIfNeeded(cfg.NoColor)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database open", "path", cfg.DBPath)

	// Wire repositories
	boardRepo := repository.NewSQLiteBoardRepo(database)
	columnRepo := repository.NewSQLiteColumnRepo(database)
	cardRepo := repository.NewSQLiteCardRepo(database)
	labelRepo := repository.NewSQLiteLabelRepo(database)
	checklistRepo := repository.NewSQLiteChecklistRepo(database)
	itemRepo := repository.NewSQLiteChecklistItemRepo(database)
	attachmentRepo := repository.NewSQLiteAttachmentRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)

	// Wire unit of work, renumber serialization, and the blob collaborator
	uow := db.NewSQLiteUnitOfWork(database)
	guard := service.NewPositionGuard()
	blobs := blob.NewFSStore(cfg.BlobDir)

	app := &cli.App{
		Boards: service.NewBoardService(
			boardRepo, columnRepo, cardRepo, labelRepo,
			checklistRepo, itemRepo, attachmentRepo, templateRepo,
			uow, blobs),
		Columns: service.NewColumnService(
			boardRepo, columnRepo, cardRepo,
			checklistRepo, itemRepo, attachmentRepo,
			uow, guard, blobs),
		Cards: service.NewCardService(
			columnRepo, cardRepo, labelRepo,
			checklistRepo, itemRepo, attachmentRepo,
			uow, guard, blobs),
		Checklists:  service.NewChecklistService(cardRepo, checklistRepo, itemRepo, uow, guard),
		Labels:      service.NewLabelService(boardRepo, columnRepo, cardRepo, labelRepo, uow),
		Attachments: service.NewAttachmentService(cardRepo, attachmentRepo, blobs),
		Templates:   service.NewTemplateService(boardRepo, columnRepo, cardRepo, templateRepo, uow, guard),
		Metrics:     service.NewMetricsService(boardRepo, columnRepo, cardRepo),
		Logger:      logger,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

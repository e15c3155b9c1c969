package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Boards      service.BoardService
	Columns     service.ColumnService
	Cards       service.CardService
	Checklists  service.ChecklistService
	Labels      service.LabelService
	Attachments service.AttachmentService
	Templates   service.TemplateService
	Metrics     service.MetricsService
	Logger      *log.Logger
}

// NewRootCmd creates the top-level "plank" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "plank",
		Short: "Kanban boards from the terminal",
	}

	root.AddCommand(
		newBoardCmd(app),
		newColumnCmd(app),
		newCardCmd(app),
		newChecklistCmd(app),
		newLabelCmd(app),
		newAttachmentCmd(app),
		newTemplateCmd(app),
		newMetricsCmd(app),
		newUICmd(app),
	)

	return root
}

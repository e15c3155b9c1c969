package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage card templates",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateRemoveCmd(app),
		newTemplateApplyCmd(app),
	)

	return cmd
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var boardFlag, description, file string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Store a card template from a JSON definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, boardFlag)
			if err != nil {
				return err
			}
			definition, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading definition file: %w", err)
			}
			template, err := app.Templates.Create(ctx, board.ID, args[0], description, definition)
			if err != nil {
				return err
			}
			fmt.Printf("Stored template %q (%s)\n", template.Name, shortID(template.ID))
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	cmd.Flags().StringVar(&description, "description", "", "Template description")
	cmd.Flags().StringVar(&file, "file", "", "Path to the JSON definition")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	var boardFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, boardFlag)
			if err != nil {
				return err
			}
			templates, err := app.Templates.ListByBoard(ctx, board.ID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(templates))
			for _, t := range templates {
				rows = append(rows, []string{shortID(t.ID), t.Name, t.Description})
			}
			fmt.Println(formatter.RenderTable([]string{"ID", "NAME", "DESCRIPTION"}, rows))
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <template-id>",
		Short: "Print a template's definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := app.Templates.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(template.Definition)
			return nil
		},
	}
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <template-id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted template")
			return nil
		},
	}
}

func newTemplateApplyCmd(app *App) *cobra.Command {
	var boardFlag, columnFlag string

	cmd := &cobra.Command{
		Use:   "apply <template-id>",
		Short: "Create a card from a template in a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dest, err := resolveColumn(ctx, app, boardFlag, columnFlag)
			if err != nil {
				return err
			}
			snap, err := app.Templates.Instantiate(ctx, args[0], dest.ID)
			if err != nil {
				return err
			}
			items := 0
			for _, cl := range snap.Checklists {
				items += len(cl.Items)
			}
			fmt.Printf("Created card %q with %d checklist(s), %d item(s)\n",
				snap.Card.Title, len(snap.Checklists), items)
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	cmd.Flags().StringVar(&columnFlag, "column", "", "Destination column title or ID")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
	"github.com/ebracha/plank/internal/service"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardAddCmd(app),
		newBoardListCmd(app),
		newBoardShowCmd(app),
		newBoardUpdateCmd(app),
		newBoardActivateCmd(app),
		newBoardDeactivateCmd(app),
		newBoardRemoveCmd(app),
	)

	return cmd
}

func newBoardAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := app.Boards.Create(context.Background(), args[0], description)
			if err != nil {
				return err
			}
			fmt.Printf("Created board %q (%s)\n", board.Name, board.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Board description")

	return cmd
}

func newBoardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := app.Boards.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatBoardList(boards))
			return nil
		},
	}
}

func newBoardShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <board>",
		Short: "Show a board with its columns and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Boards.Snapshot(ctx, board.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatBoardSnapshot(snap))
			return nil
		},
	}
}

func newBoardUpdateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <board>",
		Short: "Update a board's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			var patch service.BoardPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			updated, err := app.Boards.Update(ctx, board.ID, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated board %q\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New board name")
	cmd.Flags().StringVar(&description, "description", "", "New board description")

	return cmd
}

func newBoardActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <board>",
		Short: "Mark a board active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Boards.Activate(ctx, board.ID); err != nil {
				return err
			}
			fmt.Printf("Board %q is active\n", board.Name)
			return nil
		},
	}
}

func newBoardDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <board>",
		Short: "Mark a board inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Boards.Deactivate(ctx, board.ID); err != nil {
				return err
			}
			fmt.Printf("Board %q is inactive\n", board.Name)
			return nil
		},
	}
}

func newBoardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <board>",
		Short: "Delete a board and everything on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			if err := app.Boards.Delete(ctx, board.ID); err != nil {
				return err
			}
			app.Logger.Debug("board deleted", "board", board.ID, "took", time.Since(start))
			fmt.Printf("Deleted board %q\n", board.Name)
			return nil
		},
	}
}

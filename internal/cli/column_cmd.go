package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
)

func newColumnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage columns",
	}

	cmd.AddCommand(
		newColumnAddCmd(app),
		newColumnListCmd(app),
		newColumnRenameCmd(app),
		newColumnMoveCmd(app),
		newColumnRemoveCmd(app),
	)

	return cmd
}

func newColumnAddCmd(app *App) *cobra.Command {
	var boardFlag string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a column to a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, boardFlag)
			if err != nil {
				return err
			}
			column, err := app.Columns.Create(ctx, board.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added column %q at position %d\n", column.Title, column.Position)
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newColumnListCmd(app *App) *cobra.Command {
	var boardFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, boardFlag)
			if err != nil {
				return err
			}
			columns, err := app.Columns.ListByBoard(ctx, board.ID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(columns))
			for _, c := range columns {
				cards, err := app.Cards.ListByColumn(ctx, c.ID, false)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", c.Position),
					shortID(c.ID),
					c.Title,
					fmt.Sprintf("%d", len(cards)),
				})
			}
			fmt.Println(formatter.RenderTable([]string{"#", "ID", "TITLE", "CARDS"}, rows))
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newColumnRenameCmd(app *App) *cobra.Command {
	var boardFlag string

	cmd := &cobra.Command{
		Use:   "rename <column> <title>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			column, err := resolveColumn(ctx, app, boardFlag, args[0])
			if err != nil {
				return err
			}
			renamed, err := app.Columns.Rename(ctx, column.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed column to %q\n", renamed.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardFlag, "board", "", "Board context for matching columns by title")

	return cmd
}

func newColumnMoveCmd(app *App) *cobra.Command {
	var boardFlag string
	var index int

	cmd := &cobra.Command{
		Use:   "move <column>",
		Short: "Move a column to a new index on its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			column, err := resolveColumn(ctx, app, boardFlag, args[0])
			if err != nil {
				return err
			}
			moved, err := app.Columns.Move(ctx, column.ID, index)
			if err != nil {
				return err
			}
			fmt.Printf("Moved column %q to position %d\n", moved.Title, moved.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardFlag, "board", "", "Board context for matching columns by title")
	cmd.Flags().IntVar(&index, "to", 0, "Destination index (0-based)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newColumnRemoveCmd(app *App) *cobra.Command {
	var boardFlag string

	cmd := &cobra.Command{
		Use:   "remove <column>",
		Short: "Delete a column and all of its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			column, err := resolveColumn(ctx, app, boardFlag, args[0])
			if err != nil {
				return err
			}
			if err := app.Columns.Delete(ctx, column.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted column %q\n", column.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardFlag, "board", "", "Board context for matching columns by title")

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
)

func newLabelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage board labels",
	}

	cmd.AddCommand(
		newLabelAddCmd(app),
		newLabelListCmd(app),
		newLabelUpdateCmd(app),
		newLabelRemoveCmd(app),
		newLabelAttachCmd(app),
		newLabelDetachCmd(app),
	)

	return cmd
}

func newLabelAddCmd(app *App) *cobra.Command {
	var boardFlag, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a label on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, boardFlag)
			if err != nil {
				return err
			}
			label, err := app.Labels.Create(ctx, board.ID, args[0], color)
			if err != nil {
				return err
			}
			fmt.Printf("Created label %q (%s)\n", label.Name, shortID(label.ID))
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	cmd.Flags().StringVar(&color, "color", "#83a598", "Hex color (#RRGGBB)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newLabelListCmd(app *App) *cobra.Command {
	var boardFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, boardFlag)
			if err != nil {
				return err
			}
			labels, err := app.Labels.ListByBoard(ctx, board.ID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(labels))
			for _, l := range labels {
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("◆")
				rows = append(rows, []string{shortID(l.ID), swatch + " " + l.Name, l.Color})
			}
			fmt.Println(formatter.RenderTable([]string{"ID", "NAME", "COLOR"}, rows))
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newLabelUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <label-id>",
		Short: "Change a label's name or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := app.Labels.Update(context.Background(), args[0], name, color)
			if err != nil {
				return err
			}
			fmt.Printf("Updated label %q\n", label.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New hex color (#RRGGBB)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("color")

	return cmd
}

func newLabelRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <label-id>",
		Short: "Delete a label, detaching it from all cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Labels.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted label")
			return nil
		},
	}
}

func newLabelAttachCmd(app *App) *cobra.Command {
	var cardID string

	cmd := &cobra.Command{
		Use:   "attach <label-id>...",
		Short: "Attach labels to a card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels, err := app.Labels.AttachToCard(context.Background(), cardID, args)
			if err != nil {
				return err
			}
			fmt.Printf("Card now has %d label(s)\n", len(labels))
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "Card ID")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

func newLabelDetachCmd(app *App) *cobra.Command {
	var cardID string

	cmd := &cobra.Command{
		Use:   "detach <label-id>",
		Short: "Detach a label from a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Labels.DetachFromCard(context.Background(), cardID, args[0]); err != nil {
				return err
			}
			fmt.Println("Detached label")
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "Card ID")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage checklists and their items",
	}

	cmd.AddCommand(
		newChecklistAddCmd(app),
		newChecklistListCmd(app),
		newChecklistRenameCmd(app),
		newChecklistMoveCmd(app),
		newChecklistRemoveCmd(app),
		newItemCmd(app),
	)

	return cmd
}

func newChecklistAddCmd(app *App) *cobra.Command {
	var cardID string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a checklist to a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := app.Checklists.Create(context.Background(), cardID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added checklist %q (%s)\n", cl.Title, shortID(cl.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "Card ID")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

func newChecklistListCmd(app *App) *cobra.Command {
	var cardID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a card's checklists with items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			checklists, err := app.Checklists.ListByCard(ctx, cardID)
			if err != nil {
				return err
			}
			if len(checklists) == 0 {
				fmt.Println("No checklists on this card.")
				return nil
			}
			for _, cl := range checklists {
				items, err := app.Checklists.ListItems(ctx, cl.ID)
				if err != nil {
					return err
				}
				fmt.Println(formatter.FormatChecklist(cl, items))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "Card ID")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

func newChecklistRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <checklist-id> <title>",
		Short: "Rename a checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := app.Checklists.Rename(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed checklist to %q\n", cl.Title)
			return nil
		},
	}
}

func newChecklistMoveCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "move <checklist-id>",
		Short: "Move a checklist to a new index on its card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := app.Checklists.Move(context.Background(), args[0], index)
			if err != nil {
				return err
			}
			fmt.Printf("Moved checklist %q to position %d\n", cl.Title, cl.Position)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "to", 0, "Destination index (0-based)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newChecklistRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <checklist-id>",
		Short: "Delete a checklist and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Checklists.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted checklist")
			return nil
		},
	}
}

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage checklist items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemEditCmd(app),
		newItemCheckCmd(app),
		newItemUncheckCmd(app),
		newItemMoveCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var checklistID string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Append an item to a checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Checklists.AddItem(context.Background(), checklistID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added item at position %d (%s)\n", item.Position, shortID(item.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&checklistID, "checklist", "", "Checklist ID")
	_ = cmd.MarkFlagRequired("checklist")

	return cmd
}

func newItemEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <item-id> <text>",
		Short: "Change an item's text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Checklists.UpdateItemText(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Updated item")
			return nil
		},
	}
}

func newItemCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <item-id>",
		Short: "Mark an item done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Checklists.ToggleItem(context.Background(), args[0], true)
			if err != nil {
				return err
			}
			fmt.Printf("Checked %q\n", item.Text)
			return nil
		},
	}
}

func newItemUncheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uncheck <item-id>",
		Short: "Mark an item not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Checklists.ToggleItem(context.Background(), args[0], false)
			if err != nil {
				return err
			}
			fmt.Printf("Unchecked %q\n", item.Text)
			return nil
		},
	}
}

func newItemMoveCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Move an item to a new index in its checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Checklists.MoveItem(context.Background(), args[0], index)
			if err != nil {
				return err
			}
			fmt.Printf("Moved item to position %d\n", item.Position)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "to", 0, "Destination index (0-based)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Delete a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Checklists.DeleteItem(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted item")
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/service"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	cmd.AddCommand(
		newCardAddCmd(app),
		newCardListCmd(app),
		newCardShowCmd(app),
		newCardUpdateCmd(app),
		newCardMoveCmd(app),
		newCardArchiveCmd(app),
		newCardUnarchiveCmd(app),
		newCardRemoveCmd(app),
	)

	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var boardFlag, columnFlag, description, priorityFlag, startFlag, dueFlag string
	var labelIDs []string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a card to a column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if interactive {
				return runCardWizard(ctx, app, boardFlag)
			}
			if len(args) == 0 {
				return fmt.Errorf("card title is required (or pass -i for the wizard)")
			}

			column, err := resolveColumn(ctx, app, boardFlag, columnFlag)
			if err != nil {
				return err
			}

			req := service.CardCreate{
				ColumnID:    column.ID,
				Title:       args[0],
				Description: description,
				LabelIDs:    labelIDs,
			}
			if priorityFlag != "" {
				p, err := domain.ParsePriority(priorityFlag)
				if err != nil {
					return err
				}
				n := int(p)
				req.Priority = &n
			}
			if req.StartDate, err = parseDateFlag("start", startFlag); err != nil {
				return err
			}
			if req.DueDate, err = parseDateFlag("due", dueFlag); err != nil {
				return err
			}

			card, err := app.Cards.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Added card %q to %q at position %d\n", card.Title, column.Title, card.Position)
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	cmd.Flags().StringVar(&columnFlag, "column", "", "Column title or ID")
	cmd.Flags().StringVar(&description, "description", "", "Card description")
	cmd.Flags().StringVar(&priorityFlag, "priority", "", "Priority: 1-3 or high/medium/low")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dueFlag, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&labelIDs, "label", nil, "Label ID to attach (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the card through a wizard")

	return cmd
}

func newCardListCmd(app *App) *cobra.Command {
	var boardFlag, columnFlag string
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a column's cards in position order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			column, err := resolveColumn(ctx, app, boardFlag, columnFlag)
			if err != nil {
				return err
			}
			cards, err := app.Cards.ListByColumn(ctx, column.ID, includeArchived)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatCardList(cards))
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	cmd.Flags().StringVar(&columnFlag, "column", "", "Column title or ID")
	cmd.Flags().BoolVar(&includeArchived, "archived", false, "Include archived cards")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newCardShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <card-id>",
		Short: "Show a card's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			card, err := app.Cards.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			labels, err := app.Labels.ListByCard(ctx, card.ID)
			if err != nil {
				return err
			}
			attachments, err := app.Attachments.ListByCard(ctx, card.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatCardDetail(card, labels, attachments))

			checklists, err := app.Checklists.ListByCard(ctx, card.ID)
			if err != nil {
				return err
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
}

func newCardUpdateCmd(app *App) *cobra.Command {
	var title, description, priorityFlag, startFlag, dueFlag string
	var clearStart, clearDue bool

	cmd := &cobra.Command{
		Use:   "update <card-id>",
		Short: "Update a card's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch service.CardPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if priorityFlag != "" {
				p, err := domain.ParsePriority(priorityFlag)
				if err != nil {
					return err
				}
				n := int(p)
				patch.Priority = &n
			}
			var err error
			if patch.StartDate, err = parseDateFlag("start", startFlag); err != nil {
				return err
			}
			if patch.DueDate, err = parseDateFlag("due", dueFlag); err != nil {
				return err
			}
			patch.ClearStartDate = clearStart
			patch.ClearDueDate = clearDue

			card, err := app.Cards.Update(context.Background(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated card %q\n", card.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&priorityFlag, "priority", "", "Priority: 1-3 or high/medium/low")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dueFlag, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearStart, "clear-start", false, "Remove the start date")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")

	return cmd
}

func newCardMoveCmd(app *App) *cobra.Command {
	var boardFlag, columnFlag string
	var index int

	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card to a column and index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dest, err := resolveColumn(ctx, app, boardFlag, columnFlag)
			if err != nil {
				return err
			}
			result, err := app.Cards.Move(ctx, args[0], dest.ID, index)
			if err != nil {
				return err
			}
			fmt.Printf("Moved %q to %q position %d\n",
				result.Card.Title, result.Destination.Column.Title, result.Card.Position)
			return nil
		},
	}

	addBoardFlag(cmd.Flags(), &boardFlag)
	cmd.Flags().StringVar(&columnFlag, "column", "", "Destination column title or ID")
	cmd.Flags().IntVar(&index, "to", 0, "Destination index among visible cards (0-based)")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newCardArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <card-id>",
		Short: "Archive a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := app.Cards.Archive(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Archived card %q\n", card.Title)
			return nil
		},
	}
}

func newCardUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <card-id>",
		Short: "Restore an archived card at the end of its column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := app.Cards.Unarchive(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Restored card %q at position %d\n", card.Title, card.Position)
			return nil
		},
	}
}

func newCardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <card-id>",
		Short: "Delete a card and its checklists and attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Cards.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted card")
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
	"github.com/ebracha/plank/internal/service"
)

func newAttachmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachment",
		Short: "Manage attachment metadata",
	}

	cmd.AddCommand(
		newAttachmentRegisterCmd(app),
		newAttachmentListCmd(app),
		newAttachmentRemoveCmd(app),
	)

	return cmd
}

func newAttachmentRegisterCmd(app *App) *cobra.Command {
	var cardID, filename, storageKey, mimeType string
	var size int64

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Record an upload completed by the blob store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			attachment, err := app.Attachments.Register(context.Background(), service.AttachmentRegister{
				CardID:           cardID,
				OriginalFilename: filename,
				StorageKey:       storageKey,
				SizeBytes:        size,
				MimeType:         mimeType,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Registered %q (%s)\n", attachment.OriginalFilename, shortID(attachment.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "Card ID")
	cmd.Flags().StringVar(&filename, "filename", "", "Original filename")
	cmd.Flags().StringVar(&storageKey, "key", "", "Storage key assigned by the blob store")
	cmd.Flags().Int64Var(&size, "size", 0, "Payload size in bytes")
	cmd.Flags().StringVar(&mimeType, "mime", "application/octet-stream", "MIME type")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("filename")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newAttachmentListCmd(app *App) *cobra.Command {
	var cardID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a card's attachments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			attachments, err := app.Attachments.ListByCard(context.Background(), cardID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(attachments))
			for _, a := range attachments {
				rows = append(rows, []string{
					shortID(a.ID),
					a.OriginalFilename,
					a.MimeType,
					fmt.Sprintf("%d", a.SizeBytes),
					a.UploadedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Println(formatter.RenderTable([]string{"ID", "FILE", "MIME", "BYTES", "UPLOADED"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "Card ID")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

func newAttachmentRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <attachment-id>",
		Short: "Delete attachment metadata and release its bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Attachments.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted attachment")
			return nil
		},
	}
}

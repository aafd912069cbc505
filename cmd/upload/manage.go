package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewRetryCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [upload-id]",
		Short: "Resume a failed upload past its bad row",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := pickUpload(ctx, a, args, "Upload to retry")
			if err != nil {
				return err
			}
			session, err := a.Service.Uploads.Retry(ctx, id)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Processing of %s resumed\n", session.FileName)
			return watch(ctx, a, session)
		},
	}
}

func NewDeleteCmd(a *app.App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [upload-id]",
		Short: "Delete an upload session and its rows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := pickUpload(ctx, a, args, "Upload to delete")
			if err != nil {
				return err
			}

			if !yes {
				pterm.Warning.Println("The rows of this upload are deleted with it. This action cannot be undone!")
				confirmed, err := ui.Confirm(fmt.Sprintf("Delete upload %s?", id))
				if err != nil {
					return err
				}
				if !confirmed {
					pterm.Info.Println("Delete cancelled")
					return nil
				}
			}

			msg, err := a.Service.Uploads.Delete(ctx, id)
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "Upload deleted"
			}
			pterm.Success.Println(msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")

	return cmd
}

func NewDownloadCmd(a *app.App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download [upload-id]",
		Short: "Download the original batch file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := pickUpload(ctx, a, args, "Upload to download")
			if err != nil {
				return err
			}

			tmp, err := os.CreateTemp(".", ".payops-download-*")
			if err != nil {
				return err
			}
			defer os.Remove(tmp.Name())

			name, err := a.Service.Uploads.Download(ctx, id, tmp)
			if cerr := tmp.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			dest := output
			if dest == "" && name != "" {
				dest = filepath.Base(name)
			}
			if dest == "" {
				dest = id
			}
			if err := os.Rename(tmp.Name(), dest); err != nil {
				return fmt.Errorf("failed to save %s: %w", dest, err)
			}
			pterm.Success.Printf("Saved %s\n", dest)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: the uploaded file name)")

	return cmd
}

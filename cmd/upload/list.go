package upload

import (
	"context"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/ui/prompts"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewListCmd(a *app.App) *cobra.Command {
	q := api.UploadQuery{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upload sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.Service.Uploads.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return views.RenderUploadList(page)
		},
	}
	cmd.Flags().IntVarP(&q.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&q.Limit, "limit", "l", 0, "sessions per page (default from config)")
	cmd.Flags().StringVar(&q.Search, "search", "", "match on file name")
	cmd.Flags().StringVarP(&q.Status, "status", "s", "", "processing, completed or failed")

	return cmd
}

// pickUpload returns args[0] or lets the operator search for a session.
func pickUpload(ctx context.Context, a *app.App, args []string, title string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return prompts.PromptUpload(ctx, title, a.Service.Uploads.Search)
}

func NewWatchCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [upload-id]",
		Short: "Follow the processing of an upload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := pickUpload(ctx, a, args, "Upload to watch")
			if err != nil {
				return err
			}
			session, err := a.Service.Uploads.Status(ctx, id)
			if err != nil {
				return err
			}
			if session.Status.Terminal() {
				return views.RenderUploadSession(session)
			}
			return watch(ctx, a, session)
		},
	}
}

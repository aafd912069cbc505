package upload

import (
	"context"

	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type sendRunner struct {
	app     *app.App
	gateway string
	noWatch bool
	cmd     *cobra.Command
}

func NewSendCmd(a *app.App) *cobra.Command {
	runner := &sendRunner{app: a}

	cmd := &cobra.Command{
		Use:   "send <file>",
		Short: "Upload a batch file and follow its processing",
		Long: `Upload a reservation batch file. The server processes it row by row; the
progress is followed until it completes or fails unless --no-watch is given.

Examples:
  payops upload send reservations.xlsx
  payops upload send march.csv --gateway stripe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run(args[0])
		},
	}
	cmd.Flags().StringVarP(&runner.gateway, "gateway", "g", "", "gateway of the batch: paypal or stripe (default from config)")
	cmd.Flags().BoolVar(&runner.noWatch, "no-watch", false, "return as soon as the file is accepted")

	return cmd
}

func (r *sendRunner) Run(path string) error {
	ctx := r.cmd.Context()

	name := r.gateway
	if name == "" {
		name = r.app.Config.Defaults.Gateway
	}
	gateway, err := model.ParseGateway(name)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Uploading " + path)
	session, err := r.app.Service.Uploads.Send(ctx, path, gateway)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return err
	}
	pterm.Success.Printf("Uploaded as %s\n", session.UploadID)

	if r.noWatch || session.Status.Terminal() {
		return views.RenderUploadSession(session)
	}
	return watch(ctx, r.app, session)
}

// watch follows session with a progress bar and prints the final state.
func watch(ctx context.Context, a *app.App, session *model.UploadSession) error {
	progress, err := views.StartUploadProgress(session)
	if err != nil {
		return err
	}
	final, err := a.Service.Uploads.Watch(ctx, session.UploadID, progress.Update)
	progress.Stop()
	if err != nil {
		return err
	}

	switch final.Status {
	case model.UploadCompleted:
		pterm.Success.Printf("%s processed, %d rows\n", final.FileName, final.TotalRows)
	case model.UploadFailed:
		pterm.Warning.Printf("Processing stopped, run `payops upload retry %s` after fixing the file\n", final.UploadID)
	}
	return views.RenderUploadSession(final)
}

package upload

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/spf13/cobra"
)

func NewUploadCmd(a *app.App) *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload reservation batch files and follow their processing",
		Long: `Upload a reservation batch file for PayPal or Stripe, follow the server-side
processing, retry a failed session and download or delete the original file.`,
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthRequired},
	}

	uploadCmd.AddCommand(NewSendCmd(a))
	uploadCmd.AddCommand(NewListCmd(a))
	uploadCmd.AddCommand(NewWatchCmd(a))
	uploadCmd.AddCommand(NewRetryCmd(a))
	uploadCmd.AddCommand(NewDeleteCmd(a))
	uploadCmd.AddCommand(NewDownloadCmd(a))

	return uploadCmd
}

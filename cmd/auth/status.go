package auth

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewStatusCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:         "status",
		Short:       "Show the logged in user and session expiry",
		Args:        cobra.NoArgs,
		Annotations: loggedIn,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.Service.Auth.Status(cmd.Context())
			if err != nil {
				return err
			}
			return views.RenderAuthStatus(st)
		},
	}
}

func NewLogoutCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session, cached data and selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Service.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			pterm.Success.Println("Logged out")
			return nil
		},
	}
}

package auth

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/spf13/cobra"
)

func NewAuthCmd(a *app.App) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in and out and recover passwords",
		Long: `Manage the API session. Login is two steps: the password check mails a
one-time code, and the code is exchanged for the session token.`,
	}

	authCmd.AddCommand(NewLoginCmd(a))
	authCmd.AddCommand(NewResendOTPCmd(a))
	authCmd.AddCommand(NewForgotPasswordCmd(a))
	authCmd.AddCommand(NewResetPasswordCmd(a))
	authCmd.AddCommand(NewStatusCmd(a))
	authCmd.AddCommand(NewLogoutCmd(a))

	return authCmd
}

var guestOnly = map[string]string{constants.AnnotationAuth: constants.AuthGuestOnly}
var loggedIn = map[string]string{constants.AnnotationAuth: constants.AuthRequired}

package auth

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/hance08/payops/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func emailArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return prompts.PromptEmail("")
}

func NewResendOTPCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:         "resend-otp [email]",
		Short:       "Send the one-time code again",
		Args:        cobra.MaximumNArgs(1),
		Annotations: guestOnly,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := emailArg(args)
			if err != nil {
				return err
			}
			msg, err := a.Service.Auth.ResendOTP(cmd.Context(), email)
			if err != nil {
				return err
			}
			pterm.Success.Println(orDefault(msg, "A new code was sent"))
			return nil
		},
	}
}

func NewForgotPasswordCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:         "forgot-password [email]",
		Short:       "Mail a password reset link",
		Args:        cobra.MaximumNArgs(1),
		Annotations: guestOnly,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := emailArg(args)
			if err != nil {
				return err
			}
			msg, err := a.Service.Auth.ForgotPassword(cmd.Context(), email)
			if err != nil {
				return err
			}
			pterm.Success.Println(orDefault(msg, "Check your inbox for the reset link"))
			return nil
		},
	}
}

func NewResetPasswordCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:         "reset-password <token>",
		Short:       "Set a new password with the token from the reset mail",
		Args:        cobra.ExactArgs(1),
		Annotations: guestOnly,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, confirm, err := prompts.PromptNewPassword()
			if err != nil {
				return err
			}
			msg, err := a.Service.Auth.ResetPassword(cmd.Context(), args[0], password, confirm)
			if err != nil {
				return err
			}
			pterm.Success.Println(orDefault(msg, "Password changed"))
			pterm.Info.Printf("Run `%s auth login` with the new password\n", constants.AppName)
			return nil
		},
	}
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

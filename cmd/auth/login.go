package auth

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/hance08/payops/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type loginFlags struct {
	Email    string
	Password string
	OTP      string
	Force    bool
}

type loginRunner struct {
	app   *app.App
	flags *loginFlags
	cmd   *cobra.Command
}

func NewLoginCmd(a *app.App) *cobra.Command {
	flags := &loginFlags{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email, password and a one-time code",
		Long: `Log in to the payments API. Missing values are asked for interactively.

Examples:
  payops auth login
  payops auth login --email ops@example.com --password "$PAYOPS_PASSWORD"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &loginRunner{
				app:   a,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&flags.Email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&flags.Password, "password", "", "account password (asked when empty)")
	cmd.Flags().StringVar(&flags.OTP, "otp", "", "one-time code, when already received")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "log in again even with a live session")

	return cmd
}

func (r *loginRunner) Run() error {
	ctx := r.cmd.Context()
	auth := r.app.Service.Auth

	var err error
	email := r.flags.Email
	if email == "" {
		if email, err = prompts.PromptEmail(""); err != nil {
			return err
		}
	}

	if r.flags.OTP == "" {
		password := r.flags.Password
		if password == "" {
			if password, err = prompts.PromptPassword("Password:", nil); err != nil {
				return err
			}
		}

		msg, err := auth.Login(ctx, email, password, r.flags.Force)
		if err != nil {
			return err
		}
		if msg == "" {
			msg = "A one-time code was sent to " + email
		}
		pterm.Info.Println(msg)
	}

	otp := r.flags.OTP
	if otp == "" {
		if otp, err = prompts.PromptOTP(); err != nil {
			return err
		}
	}

	result, err := auth.VerifyOTP(ctx, email, otp)
	if err != nil {
		return err
	}

	name := result.User.Name
	if name == "" {
		name = email
	}
	pterm.Success.Printf("Logged in as %s\n", name)
	pterm.Info.Printf("Run `%s rows list` to see the reservation rows\n", constants.AppName)
	return nil
}

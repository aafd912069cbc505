package stripe

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/hance08/payops/internal/ui/prompts"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/hance08/payops/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewStripeCmd(a *app.App) *cobra.Command {
	stripeCmd := &cobra.Command{
		Use:         "stripe",
		Short:       "Manage Stripe connected accounts",
		Long:        `List and create the Stripe connected accounts rows are charged on, and read the platform settings.`,
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthRequired},
	}

	stripeCmd.AddCommand(newAccountsCmd(a))
	stripeCmd.AddCommand(newCreateAccountCmd(a))
	stripeCmd.AddCommand(newSettingsCmd(a))
	stripeCmd.AddCommand(newUpdateLinkCmd(a))

	return stripeCmd
}

func newAccountsCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List connected accounts and their open requirements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := a.Service.Stripe.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			return views.RenderStripeAccounts(accounts)
		},
	}
}

func newCreateAccountCmd(a *app.App) *cobra.Command {
	var email, country string

	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Create a connected account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = prompts.PromptEmail(""); err != nil {
					return err
				}
			}
			if country == "" {
				if country, err = prompts.PromptRequired("Country (ISO 3166 code):", "country"); err != nil {
					return err
				}
			}

			account, err := a.Service.Stripe.CreateAccount(cmd.Context(), email, country)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Connected account %s created\n", account.ID)
			pterm.Info.Printf("Run `%s stripe update-link %s` to finish onboarding\n", constants.AppName, account.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account owner email")
	cmd.Flags().StringVar(&country, "country", "", "two-letter country code")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if email != "" {
			return validation.ValidateEmail(email)
		}
		return nil
	}

	return cmd
}

func newSettingsCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the Stripe platform settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.Service.Stripe.Settings(cmd.Context())
			if err != nil {
				return err
			}
			return views.RenderStripeSettings(settings)
		},
	}
}

func newUpdateLinkCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "update-link <account-id>",
		Short: "Print a hosted onboarding link for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := a.Service.Stripe.UpdateLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			pterm.Info.Println("Open this link to complete the account details:")
			pterm.Println(link)
			return nil
		},
	}
}

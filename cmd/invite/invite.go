package invite

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/hance08/payops/internal/ui/prompts"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewInviteCmd(a *app.App) *cobra.Command {
	inviteCmd := &cobra.Command{
		Use:   "invite",
		Short: "Invite operators and accept invitations",
	}

	inviteCmd.AddCommand(newSendCmd(a))
	inviteCmd.AddCommand(newListCmd(a))
	inviteCmd.AddCommand(newAcceptCmd(a))

	return inviteCmd
}

func newSendCmd(a *app.App) *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:         "send",
		Short:       "Invite someone by email",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthRequired},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = prompts.PromptEmail(""); err != nil {
					return err
				}
			}

			inv, err := a.Service.Invitations.Send(cmd.Context(), email, name)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Invitation sent to %s\n", inv.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "email to invite")
	cmd.Flags().StringVarP(&name, "name", "n", "", "name of the invitee")

	return cmd
}

func newListCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List the invitations you sent",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthRequired},
		RunE: func(cmd *cobra.Command, args []string) error {
			invites, err := a.Service.Invitations.List(cmd.Context())
			if err != nil {
				return err
			}
			return views.RenderInvitations(invites)
		},
	}
}

func newAcceptCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:         "accept <token>",
		Short:       "Accept an invitation and set your password",
		Long:        `Accept an invitation with the token and temporary password from the invitation mail, then choose a password.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthGuestOnly},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			token := args[0]
			invitations := a.Service.Invitations

			temp, err := prompts.PromptPassword("Temporary password from the mail:", nil)
			if err != nil {
				return err
			}
			if _, err := invitations.Validate(ctx, token, temp); err != nil {
				return err
			}

			password, confirm, err := prompts.PromptNewPassword()
			if err != nil {
				return err
			}
			msg, err := invitations.Complete(ctx, token, password, confirm)
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "Account ready"
			}
			pterm.Success.Println(msg)
			pterm.Info.Printf("Run `%s auth login` to sign in\n", constants.AppName)
			return nil
		},
	}
}

package views

import (
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/ui"
	"github.com/pterm/pterm"
)

func RenderInvitations(invites []model.Invitation) error {
	if len(invites) == 0 {
		pterm.Warning.Println("No invitations sent yet")
		return nil
	}

	pterm.DefaultSection.Println("Invitations")

	tableData := pterm.TableData{{"Email", "Name", "Status", "Sent", "Completed"}}
	for _, inv := range invites {
		status := pterm.Yellow(string(inv.Status))
		if inv.Status == model.InvitationCompleted {
			status = pterm.Green(string(inv.Status))
		}
		completed := "-"
		if inv.CompletedAt != nil {
			completed = inv.CompletedAt.Local().Format("2006-01-02")
		}
		tableData = append(tableData, []string{
			inv.Email, ui.OrDash(inv.Name), status, inv.CreatedAt.Local().Format("2006-01-02"), completed,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

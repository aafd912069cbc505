package views

import (
	"fmt"

	"github.com/hance08/payops/internal/ledger"
	"github.com/pterm/pterm"
)

// RenderPendingOperations lists payment requests whose outcome was never
// confirmed by the server.
func RenderPendingOperations(entries []ledger.Entry) error {
	if len(entries) == 0 {
		pterm.Success.Println("No unconfirmed payment operations")
		return nil
	}

	tableData := pterm.TableData{{"Operation", "Idempotency Key", "Attempts", "Last Attempt"}}
	for _, e := range entries {
		tableData = append(tableData, []string{
			e.Operation, e.Key, fmt.Sprint(e.Attempts), e.LastSeen.Local().Format("2006-01-02 15:04:05"),
		})
	}

	pterm.DefaultSection.Println("Unconfirmed Payment Operations")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Warning.Println("Retrying one of these reuses its key, so the server will not charge twice.")
	return nil
}

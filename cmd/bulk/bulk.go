package bulk

import (
	"fmt"

	"github.com/hance08/payops/cmd/rows"
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/ui"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewBulkCmd(a *app.App) *cobra.Command {
	bulkCmd := &cobra.Command{
		Use:   "bulk",
		Short: "Charge or refund the selected rows in one batch",
		Long: `Send the selected rows of a page to the gateway in a single batch request.

Only rows eligible for the action are sent: bulk charge skips charged rows,
bulk refund takes charged rows only. Select rows first with 'payops rows select'.`,
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthRequired},
	}

	bulkCmd.AddCommand(newKindCmd(a, service.BulkCharge, "Charge every selected row that is not charged yet"))
	bulkCmd.AddCommand(newKindCmd(a, service.BulkRefund, "Refund every selected charged row"))

	return bulkCmd
}

type bulkRunner struct {
	app   *app.App
	kind  service.BulkKind
	flags *rows.QueryFlags
	yes   bool
	cmd   *cobra.Command
}

func newKindCmd(a *app.App, kind service.BulkKind, short string) *cobra.Command {
	flags := &rows.QueryFlags{}
	runner := &bulkRunner{app: a, kind: kind, flags: flags}

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	flags.Bind(cmd)
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "skip the confirmation")

	return cmd
}

func (r *bulkRunner) Run() error {
	ctx := r.cmd.Context()
	svc := r.app.Service

	q, err := r.flags.Resolve(r.cmd, svc.Rows)
	if err != nil {
		return err
	}
	table := svc.Rows.NewTable()
	page, err := table.Load(ctx, q, r.flags.Filter)
	if err != nil {
		return err
	}

	ids, err := svc.Bulk.Plan(page, r.kind)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		pterm.Info.Println("Nothing selected")
		return nil
	}

	gateway, err := page.Gateway()
	if err != nil {
		return err
	}
	if err := views.RenderBulkPlan(r.kind, gateway, page.Rows, ids); err != nil {
		return err
	}

	if !r.yes {
		if r.kind == service.BulkRefund {
			pterm.Warning.Println("This action cannot be undone!")
		}
		confirmed, err := ui.Confirm(fmt.Sprintf("Send bulk %s for %d rows?", r.kind, len(ids)))
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Printf("Bulk %s cancelled\n", r.kind)
			return nil
		}
	}

	spinner, _ := pterm.DefaultSpinner.Start(constants.BulkWarning)
	outcome, err := svc.Bulk.RunTable(ctx, table, r.kind)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if outcome == nil {
		return err
	}

	if rerr := views.RenderBulkOutcome(outcome); rerr != nil {
		return rerr
	}
	if outcome.Page != nil {
		if rerr := views.RenderRowList(outcome.Page); rerr != nil {
			return rerr
		}
	}
	return err
}

package rows

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/spf13/cobra"
)

type listRunner struct {
	app   *app.App
	flags *QueryFlags
	tree  bool
	cmd   *cobra.Command
}

func NewListCmd(a *app.App) *cobra.Command {
	flags := &QueryFlags{}
	runner := &listRunner{app: a, flags: flags}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of rows",
		Long: `List one page of reservation rows with their charge status and available action.

Without page flags the page holding the current selection is shown.

Examples:
  payops rows list --status "Ready to charge" --gateway stripe
  payops rows list --page 2 --sort "Amount to charge" --desc
  payops rows list --filter 'amount >= 200 AND NOT status = "Charged"'
  payops rows list --tree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	flags.Bind(cmd)
	cmd.Flags().BoolVar(&runner.tree, "tree", false, "group the page by batch")

	return cmd
}

func (r *listRunner) Run() error {
	rows := r.app.Service.Rows

	q, err := r.flags.Resolve(r.cmd, rows)
	if err != nil {
		return err
	}

	page, err := rows.NewTable().Load(r.cmd.Context(), q, r.flags.Filter)
	if err != nil {
		return err
	}

	if r.tree {
		return views.RenderRowTree(page)
	}
	return views.RenderRowList(page)
}

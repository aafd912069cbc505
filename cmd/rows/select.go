package rows

import (
	"fmt"
	"strings"

	"github.com/hance08/payops/internal/app"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type selectRunner struct {
	app   *app.App
	flags *QueryFlags
	all   bool
	cmd   *cobra.Command
}

func NewSelectCmd(a *app.App) *cobra.Command {
	flags := &QueryFlags{}
	runner := &selectRunner{app: a, flags: flags}

	cmd := &cobra.Command{
		Use:   "select [row-id...]",
		Short: "Add rows of a page to the selection",
		Long: `Add rows to the selection used by bulk actions. Only rows on the chosen page
can be selected; loading a different page later clears the selection.

Examples:
  payops rows select r1 r2
  payops rows select --all --status Failed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run(args)
		},
	}
	flags.Bind(cmd)
	cmd.Flags().BoolVarP(&runner.all, "all", "a", false, "select every row on the page")

	return cmd
}

func (r *selectRunner) Run(ids []string) error {
	if !r.all && len(ids) == 0 {
		return fmt.Errorf("give row ids or --all")
	}

	rows := r.app.Service.Rows
	q, err := r.flags.Resolve(r.cmd, rows)
	if err != nil {
		return err
	}

	table := rows.NewTable()
	if _, err := table.Load(r.cmd.Context(), q, r.flags.Filter); err != nil {
		return err
	}

	if r.all {
		sel, err := table.SelectAll()
		if err != nil {
			return err
		}
		pterm.Success.Printf("%d rows selected\n", len(sel.RowIDs))
		return nil
	}

	sel, rejected, err := table.Select(ids)
	if err != nil {
		return err
	}
	if len(rejected) > 0 {
		pterm.Warning.Printf("Not on this page: %s\n", strings.Join(rejected, ", "))
	}
	pterm.Success.Printf("%d rows selected\n", len(sel.RowIDs))
	return nil
}

func NewUnselectCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "unselect <row-id...>",
		Short: "Remove rows from the selection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := a.Service.Rows.NewTable().Unselect(args)
			if err != nil {
				return err
			}
			pterm.Success.Printf("%d rows selected\n", len(sel.RowIDs))
			return nil
		},
	}
}

func NewClearCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Service.Rows.NewTable().ClearSelection(); err != nil {
				return err
			}
			pterm.Success.Println("Selection cleared")
			return nil
		},
	}
}

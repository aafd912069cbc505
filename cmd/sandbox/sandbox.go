package sandbox

import (
	"github.com/hance08/payops/internal/sandbox"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type sandboxFlags struct {
	Addr   string
	Seed   bool
	Atomic bool
}

func NewSandboxCmd() *cobra.Command {
	flags := &sandboxFlags{}

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local fake of the payments API",
		Long: `Serve an in-memory fake of the payments API for trying payops without real
gateways. Settings come from PAYOPS_SANDBOX_* environment variables; flags
override them.

Example:
  payops sandbox --seed &
  PAYOPS_API_BASE_URL=http://127.0.0.1:5000/api payops auth login`,
		Args: cobra.NoArgs,
		// The sandbox needs no config, local state or session.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sandbox.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = flags.Addr
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = flags.Seed
			}
			if cmd.Flags().Changed("atomic-bulk") {
				cfg.AtomicBulk = flags.Atomic
			}

			srv := sandbox.New(cfg)
			pterm.Info.Printf("Sandbox API on http://%s/api, login %s / %s, OTP %s\n", cfg.Addr, cfg.Email, cfg.Password, cfg.OTP)
			if err := srv.Run(cmd.Context()); err != nil {
				return err
			}
			pterm.Info.Println("Sandbox stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Addr, "addr", "", "listen address")
	cmd.Flags().BoolVar(&flags.Seed, "seed", false, "start with demo rows")
	cmd.Flags().BoolVar(&flags.Atomic, "atomic-bulk", false, "answer bulk requests for the batch as a whole")

	return cmd
}

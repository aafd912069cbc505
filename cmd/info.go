package cmd

import (
	"os"

	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, local state paths and session details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: a,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbExists := false
	if _, err := os.Stat(r.app.DBPath); err == nil {
		dbExists = true
	}

	pending, err := r.app.Ledger.Pending()
	if err != nil {
		return err
	}

	loggedInAs := ""
	if session, err := r.app.Client.Session(); err == nil {
		loggedInAs = session.Email
	}

	items := views.SystemInfoItem{
		ConfigPath:      configPath,
		DBPath:          r.app.DBPath,
		DBExists:        dbExists,
		LedgerPath:      r.app.LedgerPath,
		PendingOps:      len(pending),
		APIBaseURL:      r.app.Client.BaseURL(),
		CacheBackend:    cfg.Cache.Backend,
		DefaultGateway:  cfg.Defaults.Gateway,
		DefaultCurrency: cfg.Defaults.Currency,
		AppDataDir:      getAppDataDirOrUnknown(),
		LoggedInAs:      loggedInAs,
	}

	return views.RenderSystemInfo(items)
}

func getAppDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}

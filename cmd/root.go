package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/hance08/payops/cmd/admin"
	"github.com/hance08/payops/cmd/auth"
	"github.com/hance08/payops/cmd/bulk"
	"github.com/hance08/payops/cmd/invite"
	"github.com/hance08/payops/cmd/rows"
	"github.com/hance08/payops/cmd/sandbox"
	"github.com/hance08/payops/cmd/stripe"
	"github.com/hance08/payops/cmd/upload"
	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/config"
	"github.com/hance08/payops/internal/constants"
	"github.com/hance08/payops/internal/errhandler"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// A missing .env is fine; values may come from the real environment.
	_ = godotenv.Load()

	application := &app.App{}
	cleanup := func() {}

	rootCmd := &cobra.Command{
		Use:           constants.AppName,
		Short:         "payops is a terminal client for hotel reservation payment operations",
		Long:          `payops uploads reservation batches, tracks their charge status and drives PayPal and Stripe charges and refunds.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}

			a, done, err := app.NewApp(cfg, migrations)
			if err != nil {
				return err
			}
			*application = *a
			cleanup = done

			return checkAuth(cmd, application)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(auth.NewAuthCmd(application))
	rootCmd.AddCommand(rows.NewRowsCmd(application))
	rootCmd.AddCommand(bulk.NewBulkCmd(application))
	rootCmd.AddCommand(upload.NewUploadCmd(application))
	rootCmd.AddCommand(stripe.NewStripeCmd(application))
	rootCmd.AddCommand(invite.NewInviteCmd(application))
	rootCmd.AddCommand(admin.NewAdminCmd(application))
	rootCmd.AddCommand(sandbox.NewSandboxCmd())
	rootCmd.AddCommand(NewInfoCmd(application))
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewLedgerCmd(application))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	cleanup()

	if err != nil {
		errhandler.HandleError(err, application.Logger)
		os.Exit(1)
	}
}

// checkAuth enforces the auth annotation of cmd or its closest ancestor.
func checkAuth(cmd *cobra.Command, a *app.App) error {
	switch authRequirement(cmd) {
	case constants.AuthRequired:
		if !a.Service.Auth.LoggedIn() {
			return api.ErrNotLoggedIn
		}
	case constants.AuthGuestOnly:
		if a.Service.Auth.LoggedIn() {
			return fmt.Errorf("already logged in, run `%s auth logout` first", constants.AppName)
		}
	}
	return nil
}

func authRequirement(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[constants.AnnotationAuth]; ok {
			return v
		}
	}
	return ""
}

func initConfig() error {
	defaults := config.NewDefault()
	for key, value := range defaults.Keys() {
		viper.SetDefault(key, value)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		created, err := createDefaultConfig(appDir)
		if err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
		if created {
			pterm.Info.Printf("Created a default config in %s, run `%s init` to change it\n", appDir, constants.AppName)
		}
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

func createDefaultConfig(appDir string) (bool, error) {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

package cmd

import (
	"fmt"

	"github.com/hance08/payops/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Set the API address and defaults interactively",
		Long:  `Walk through the settings payops needs and save them to the config file.`,
		// Only the config is loaded, so a broken setting can still be fixed here.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return initWizard()
		},
	}
}

func initWizard() error {
	answers, err := prompts.PromptInitDefaults(prompts.InitDefaults{
		BaseURL:  viper.GetString("api.base_url"),
		Gateway:  viper.GetString("defaults.gateway"),
		Currency: viper.GetString("defaults.currency"),
	})
	if err != nil {
		return err
	}

	viper.Set("api.base_url", answers.BaseURL)
	viper.Set("defaults.gateway", answers.Gateway)
	viper.Set("defaults.currency", answers.Currency)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Printf("Configuration saved to %s\n", viper.ConfigFileUsed())

	return nil
}

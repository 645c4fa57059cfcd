package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThatOtherAndrew/Aetherfield/internal/config"
	"github.com/ThatOtherAndrew/Aetherfield/internal/logger"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or reset the settings file",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE:  showSettings,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the settings file with defaults",
	RunE:  resetSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func showSettings(cmd *cobra.Command, args []string) error {
	path, err := config.GetSettingsPath()
	if err != nil {
		return fmt.Errorf("failed to get settings path: %w", err)
	}
	settings, err := config.LoadSettingsFrom(path, logger.New(logger.Config{Level: "warn"}))
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "#", path)
	fmt.Fprintln(out, string(data))
	return nil
}

func resetSettings(cmd *cobra.Command, args []string) error {
	path, err := config.GetSettingsPath()
	if err != nil {
		return fmt.Errorf("failed to get settings path: %w", err)
	}
	if err := config.WriteSettings(path, config.Default()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Reset settings:", path)
	return nil
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aetherfield",
	Short: "A full-screen shader field that responds to your presence",
	Long: `aetherfield draws a slowly drifting field that brightens and quickens
while the pointer is held down, then settles back to rest.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

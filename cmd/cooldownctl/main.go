package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cooldownctl",
	Short: "Validate and reformat cooldown bar definition files",
	Long: `cooldownctl works on cooldowns.xml files offline.

Examples:
  cooldownctl validate cooldowns.xml
  cooldownctl normalize cooldowns.xml
  cooldownctl fmt -w cooldowns.xml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

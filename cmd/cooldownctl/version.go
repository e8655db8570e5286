package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abianche/uoo-cooldown-manager/internal/httpapi"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show cooldownctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cooldownctl v%s\n", httpapi.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Print the normalized document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNormalize(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(w io.Writer, path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

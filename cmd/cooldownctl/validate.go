package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abianche/uoo-cooldown-manager/internal/cdxml"
	"github.com/abianche/uoo-cooldown-manager/internal/models"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a cooldowns file parses and fits the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func readDocument(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return cdxml.Parse(data)
}

func runValidate(w io.Writer, path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	triggers := 0
	for _, e := range doc.Entries {
		triggers += len(e.Triggers)
	}
	printOK(w, "%s: %d entries, %d triggers", path, len(doc.Entries), triggers)
	return nil
}

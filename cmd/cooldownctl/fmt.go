package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abianche/uoo-cooldown-manager/internal/cdxml"
)

var writeInPlace bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Rewrite a cooldowns file in canonical form",
	Long: `Decode, normalize and re-encode a cooldowns file.

Unknown bar and trigger types become Regular and SysMessage, missing
settings are filled in, and fields outside the schema are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFmt(cmd.OutOrStdout(), args[0], writeInPlace)
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "write result to the source file instead of stdout")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(w io.Writer, path string, inPlace bool) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	out, err := cdxml.Encode(doc)
	if err != nil {
		return err
	}

	if !inPlace {
		_, err = w.Write(out)
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	printOK(w, "%s rewritten", path)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/abianche/uoo-cooldown-manager/internal/cdxml"
	"github.com/abianche/uoo-cooldown-manager/internal/schema"
)

// printError renders err with the kind of failure and, when known, where it happened.
func printError(w io.Writer, err error) {
	errorColor := color.New(color.FgRed, color.Bold)
	locationColor := color.New(color.FgCyan)

	var (
		pe *cdxml.ParseError
		ve *schema.ValidationError
	)
	switch {
	case errors.As(err, &pe):
		errorColor.Fprint(w, "Parse error: ")
		fmt.Fprintln(w, pe.Reason)
		if pe.Line > 0 {
			locationColor.Fprint(w, "  --> ")
			fmt.Fprintf(w, "line %d\n", pe.Line)
		}
	case errors.As(err, &ve):
		errorColor.Fprint(w, "Validation error: ")
		fmt.Fprintln(w, ve.Reason)
		locationColor.Fprint(w, "  --> ")
		fmt.Fprintln(w, ve.Path)
	default:
		errorColor.Fprint(w, "Error: ")
		fmt.Fprintln(w, err)
	}
}

func printOK(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprint(w, "OK ")
	fmt.Fprintf(w, format+"\n", args...)
}

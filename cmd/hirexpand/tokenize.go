package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hirexpand/internal/diag"
	"hirexpand/internal/diagfmt"
	"hirexpand/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.rs",
	Short: "Tokenize a Rust source file",
	Long:  `Tokenize prints the tokens the macro call finder works on`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	st, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	result, err := driver.Tokenize(filePath, st.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	switch format {
	case "pretty":
		// в pretty-режиме диагностика лексера идёт в stderr
		if result.Bag.HasWarnings() {
			diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:       useColor(cmd, os.Stderr),
				Context:     2,
				MinSeverity: diag.SevWarning,
			})
		}
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.Bag, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

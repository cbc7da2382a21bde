// Package cmd — convert command.
// The root command orchestrates the pipeline:
// validate → extract → parse → export.
//
// It handles flag/env resolution, format selection and result reporting.
package cmd

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/onepux/core/convert"
	"github.com/gaurav-prasanna/onepux/core/schema"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onepux <file.1pux>",
		Short: "onepux — convert 1Password exports for other password managers",
		Long: `onepux converts a 1Password export (.1pux) into a CSV file that another
password manager can import.

Every flag can also be set through the environment, e.g. ONEPUX_FORMAT or
ONEPUX_OUTPUT_DIR. ONEPUX_TEMP_DIR sets where the archive is unpacked.

Examples:
  onepux vault.1pux
  onepux vault.1pux --output-dir ./out
  onepux vault.1pux --format icloud --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	formats := strings.Join(schema.Names(), ", ")
	cmd.Flags().StringP("output-dir", "o", "", "Output directory for the CSV file (default: same as input file)")
	cmd.Flags().StringP("format", "f", schema.NameICloud, "Output format for the target password manager ("+formats+")")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	// Reject unknown formats before touching the input.
	if _, err := schema.Resolve(cfg.Format); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	converter := convert.New(logger)
	converter.TempDir = cfg.TempDir

	path, err := converter.Convert(args[0], cfg.OutputDir, cfg.Format)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Conversion successful! Output saved to: %s\n", path)
	return nil
}

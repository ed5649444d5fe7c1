package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/diagfmt"
	"splice/internal/driver"
	"splice/internal/source"
)

func (c *cli) newIndexCmd() *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index [flags] [includes-file library-list]",
		Short: "Show what the library defines",
		Long: `Index loads the library and prints every keyword it can insert, followed by
the include directive each include keyword maps to.`,
		Args: validArgCount(0, 2),
		RunE: c.runIndex,
	}
	indexCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return indexCmd
}

func (c *cli) runIndex(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	s, err := c.settings(cmd, args, true)
	if err != nil {
		return err
	}
	opts, err := c.driverOptions(s)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	ix, err := driver.LoadIndex(cmd.Context(), opts, fs, nil)
	if err != nil {
		return statusErr(driver.Report(cmd.ErrOrStderr(), err, fs, opts))
	}
	if format == "json" {
		return diagfmt.FormatIndexJSON(cmd.OutOrStdout(), ix)
	}
	return diagfmt.FormatIndexPretty(cmd.OutOrStdout(), ix)
}

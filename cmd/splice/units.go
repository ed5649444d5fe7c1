package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/diagfmt"
	"splice/internal/driver"
)

func (c *cli) newUnitsCmd() *cobra.Command {
	unitsCmd := &cobra.Command{
		Use:   "units [flags] file",
		Short: "List the declaration units of a file",
		Long: `Units splits a C++ file the way the resolver sees it: includes, macros,
typedefs, structs, functions and unclassified blocks, each with the keyword
other code uses to reference it and its line range.`,
		Args: cobra.ExactArgs(1),
		RunE: c.runUnits,
	}
	unitsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return unitsCmd
}

func (c *cli) runUnits(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	s, err := c.settings(cmd, nil, false)
	if err != nil {
		return err
	}
	opts, err := c.driverOptions(s)
	if err != nil {
		return err
	}

	result, err := driver.Units(filePath)
	if err != nil {
		return statusErr(driver.Report(cmd.ErrOrStderr(), err, result.FileSet, opts))
	}

	// Выводим юниты в выбранном формате
	if format == "json" {
		return diagfmt.FormatUnitsJSON(cmd.OutOrStdout(), result.File.Path, result.Units)
	}
	return diagfmt.FormatUnitsPretty(cmd.OutOrStdout(), result.File.Path, result.Units)
}

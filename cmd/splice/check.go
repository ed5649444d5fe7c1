package main

import (
	"github.com/spf13/cobra"

	"splice/internal/driver"
)

func (c *cli) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] [includes-file library-list] file",
		Short: "Verify that a file is already resolved",
		Long: `Check resolves the file and compares the result with the file itself. It exits
with status 4 and names the first differing line when resolving would change
anything, so it can guard a pre-commit hook or CI job.`,
		Args: validArgCount(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[len(args)-1]
			s, err := c.settings(cmd, args[:len(args)-1], true)
			if err != nil {
				return err
			}
			opts, err := c.driverOptions(s)
			if err != nil {
				return err
			}
			return statusErr(driver.Check(cmd.Context(), opts, path, cmd.ErrOrStderr()))
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/library"
)

func (c *cli) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the library index cache",
		Long:  "Remove every cached library index, from [cache].dir in splice.toml or the default cache directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings(cmd, nil, false)
			if err != nil {
				return err
			}
			cache, err := library.OpenDiskCache(s.cacheDir, "splice")
			if err != nil {
				return fmt.Errorf("failed to open index cache: %w", err)
			}
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to remove %q: %w", cache.Dir(), err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cache.Dir())
			return nil
		},
	}
}

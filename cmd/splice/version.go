package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"splice/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var format string
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show splice build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch strings.ToLower(format) {
			case "pretty":
				colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
				out := cmd.OutOrStdout()
				useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(out))
				_, err := io.WriteString(out, version.Banner(useColor))
				return err
			case "json":
				return renderVersionJSON(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	versionCmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return versionCmd
}

func renderVersionJSON(out io.Writer) error {
	payload := versionPayload{
		Tool:      "splice",
		Version:   strings.TrimSpace(version.Version),
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

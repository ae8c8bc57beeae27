package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tempestlint/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit hash and build timestamp")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tempestlint build metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		full, err := cmd.Flags().GetBool("full")
		if err != nil {
			return err
		}

		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		payload := versionPayload{Tool: "tempestlint", Version: v}
		if full {
			payload.GitCommit = strings.TrimSpace(version.GitCommit)
			payload.BuildDate = strings.TrimSpace(version.BuildDate)
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(payload)
		case "pretty":
			fmt.Fprintf(out, "tempestlint %s\n", payload.Version)
			if full {
				fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(payload.GitCommit))
				fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(payload.BuildDate))
			}
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tempestlint/internal/diag"
	"tempestlint/internal/diagfmt"
	"tempestlint/internal/driver"
	"tempestlint/internal/lint"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <snapshot.tlt>...",
	Short: "Analyze snapshots and report diagnostics",
	Long:  "Load one or more typed-tree snapshots, run the rule catalog and print diagnostics. Exits non-zero when any error-level finding is reported.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("manifest-dir", "", "directory to start the tempest.toml walk-up from")
	checkCmd.Flags().Bool("notes", true, "show secondary notes")
	checkCmd.Flags().Bool("suggestions", true, "show suggestions")
	addToggleFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or short)", format)
	}

	manifestDir, err := cmd.Flags().GetString("manifest-dir")
	if err != nil {
		return err
	}
	showNotes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return err
	}
	showSuggestions, err := cmd.Flags().GetBool("suggestions")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	toggles, err := collectToggles(cmd)
	if err != nil {
		return err
	}
	colored, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	session := driver.NewSession(driver.DefaultInstallers(), driver.Config{
		SnapshotPaths:  args,
		ManifestDir:    manifestDir,
		Toggles:        toggles,
		MaxDiagnostics: maxDiagnostics,
		ErrOut:         os.Stderr,
	})
	result, err := session.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	// File identifiers are scoped to their program, so every program's bag
	// renders against that program's own file set.
	for i, prog := range result.Programs {
		perProgram := result.Bags[i]
		switch format {
		case "json":
			if err := diagfmt.JSON(out, perProgram, prog.Files, diagfmt.JSONOpts{
				IncludePositions:   true,
				IncludeNotes:       showNotes,
				IncludeSuggestions: showSuggestions,
			}); err != nil {
				return err
			}
		case "short":
			if s := diag.FormatShort(perProgram.Items(), prog.Files, showNotes); s != "" {
				fmt.Fprintln(out, s)
			}
		default:
			diagfmt.Pretty(out, perProgram, prog.Files, diagfmt.PrettyOpts{
				Color:           colored,
				ShowNotes:       showNotes,
				ShowSuggestions: showSuggestions,
			})
		}
	}

	if !quiet && format == "pretty" {
		fmt.Fprintf(out, "%d finding(s)\n", result.Bag.Len())
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("check failed with %d finding(s)", result.Bag.Len())
	}
	return nil
}

// addToggleFlags registers the severity override flags shared by check and
// fix. Each flag takes a rule or group name; repeats accumulate.
func addToggleFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("allow", nil, "set a rule or group to allow")
	cmd.Flags().StringArray("warn", nil, "set a rule or group to warn")
	cmd.Flags().StringArray("deny", nil, "set a rule or group to deny")
	cmd.Flags().StringArray("forbid", nil, "set a rule or group to forbid")
}

// collectToggles flattens the override flags into toggle order. pflag does
// not preserve interleaving across different flags, so overrides apply in
// ascending strictness: allow, warn, deny, forbid.
func collectToggles(cmd *cobra.Command) ([]lint.Toggle, error) {
	var toggles []lint.Toggle
	for _, group := range []struct {
		flag  string
		level lint.Level
	}{
		{"allow", lint.LevelAllow},
		{"warn", lint.LevelWarn},
		{"deny", lint.LevelDeny},
		{"forbid", lint.LevelForbid},
	} {
		names, err := cmd.Flags().GetStringArray(group.flag)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			toggles = append(toggles, lint.Toggle{Name: name, Level: group.level})
		}
	}
	return toggles, nil
}

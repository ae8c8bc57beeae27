package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tempestlint/internal/driver"
	"tempestlint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <snapshot.tlt>",
	Short: "Apply suggested fixes to the snapshot's source files",
	Long:  "Run the rule catalog over one snapshot and rewrite its source files according to the selected strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every machine-applicable suggestion")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().String("manifest-dir", "", "directory to start the tempest.toml walk-up from")
	addToggleFlags(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	manifestDir, err := cmd.Flags().GetString("manifest-dir")
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

	mode := fix.ApplyModeOnce
	if applyAll {
		mode = fix.ApplyModeAll
	}
	prog := result.Programs[0]
	applied, err := fix.Apply(prog.Files, result.Bags[0].Items(), fix.ApplyOptions{Mode: mode, DryRun: dryRun})
	if err != nil {
		if errors.Is(err, fix.ErrNoFixes) {
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "no applicable fixes found")
			}
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	if !quiet {
		for _, a := range applied.Applied {
			fmt.Fprintf(out, "applied: %s (%s) in %s\n", a.Title, a.Rule, a.PrimaryPath)
		}
		for _, s := range applied.Skipped {
			fmt.Fprintf(out, "skipped: %s (%s): %s\n", s.Title, s.Rule, s.Reason)
		}
		for _, c := range applied.FileChanges {
			verb := "rewrote"
			if dryRun {
				verb = "would rewrite"
			}
			fmt.Fprintf(out, "%s %s (%d edit(s))\n", verb, c.Path, c.EditCount)
		}
	}
	return nil
}

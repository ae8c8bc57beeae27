package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tempestlint/internal/driver"
	"tempestlint/internal/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags]",
	Short: "List registered rules and groups",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleJSON struct {
	ID      string   `json:"id"`
	Default string   `json:"default"`
	Groups  []string `json:"groups,omitempty"`
	Summary string   `json:"summary"`
}

type groupJSON struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type rulesOutput struct {
	Rules  []ruleJSON  `json:"rules"`
	Groups []groupJSON `json:"groups"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	reg := lint.NewRegistry()
	driver.DefaultInstallers().Apply(reg)

	switch format {
	case "json":
		out := rulesOutput{}
		for _, r := range reg.Rules() {
			out.Rules = append(out.Rules, ruleJSON{
				ID:      r.ID(),
				Default: r.Default.String(),
				Groups:  r.Groups,
				Summary: r.Summary,
			})
		}
		for _, name := range reg.GroupNames() {
			members, _ := reg.Group(name)
			out.Groups = append(out.Groups, groupJSON{Name: name, Members: members})
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "pretty":
		w := cmd.OutOrStdout()
		for _, r := range reg.Rules() {
			fmt.Fprintf(w, "%-42s %-7s %s\n", r.ID(), r.Default, r.Summary)
		}
		if names := reg.GroupNames(); len(names) > 0 {
			fmt.Fprintln(w)
			for _, name := range names {
				members, _ := reg.Group(name)
				fmt.Fprintf(w, "group %s: %s\n", name, strings.Join(members, ", "))
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tempestlint/internal/diag"
	"tempestlint/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It iterates
// bag.Items() as-is; callers sort and dedup the bag beforehand. For each
// diagnostic it prints
//
//	<path>:<line>:<col>: <SEV> <rule>: <message>
//
// followed by the source line with a ^~~~ underline, then notes and
// suggestions when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}

	for i := 0; i < limit; i++ {
		printDiagnostic(w, &items[i], fs, opts)
	}
	if limit < len(items) {
		fmt.Fprintf(w, "... and %d more\n", len(items)-limit)
	}
}

func printDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	path, line, col := locate(fs, d.Primary, opts.PathMode)
	sev := severityText(d.Severity, opts.Color)
	rule := d.Rule
	if opts.Color {
		rule = color.New(color.Bold).Sprint(rule)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, line, col, sev, rule, d.Message)
	printSourceLine(w, fs, d.Primary, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			if note.Span.Empty() && note.Span.File == 0 {
				fmt.Fprintf(w, "  note: %s\n", note.Msg)
				continue
			}
			npath, nline, ncol := locate(fs, note.Span, opts.PathMode)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", npath, nline, ncol, note.Msg)
		}
	}
	if opts.ShowSuggestions {
		for _, s := range d.Suggestions {
			fmt.Fprintf(w, "  suggestion (%s): %s\n", s.Applicability, s.Title)
			for _, edit := range s.Edits {
				if edit.NewText == "" {
					fmt.Fprintf(w, "    - remove %d bytes\n", edit.Span.Len())
					continue
				}
				fmt.Fprintf(w, "    - replace with `%s`\n", edit.NewText)
			}
		}
	}
}

// printSourceLine shows the offending line with a caret underline aligned
// under the span. Wide runes before the span shift the caret column, so the
// padding is measured in display cells, not bytes.
func printSourceLine(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	text := f.Line(start.Line)
	if text == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", expandTabs(text))

	prefix := text
	if int(start.Col)-1 <= len(text) && start.Col >= 1 {
		prefix = text[:start.Col-1]
	}
	pad := runewidth.StringWidth(expandTabs(prefix))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		covered := text
		if int(end.Col)-1 <= len(text) {
			covered = text[start.Col-1 : end.Col-1]
		}
		if cw := runewidth.StringWidth(covered); cw > 1 {
			width = cw
		}
	}

	underline := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = color.New(color.FgHiGreen, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
}

func locate(fs *source.FileSet, sp source.Span, mode PathMode) (string, uint32, uint32) {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>", 0, 0
	}
	start, _ := fs.Resolve(sp)
	return f.FormatPath(mode.formatArg(), fs.BaseDir()), start.Line, start.Col
}

func severityText(sev diag.Severity, colored bool) string {
	label := strings.ToUpper(sev.String())
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tempestlint/internal/diag"
	"tempestlint/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("setup.tp", []byte("fn setup() {\n    app.insert_resource(ev);\n}\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Rule:     "tempest::insert_event_resource",
		Severity: diag.SevError,
		Message:  "called App::insert_resource on an event buffer instead of App::add_event",
		Primary:  source.Span{File: id, Start: 21, End: 40},
		Notes:    []diag.Note{{Msg: "events are drained every tick"}},
		Suggestions: []diag.Suggestion{{
			Title:         "call add_event instead",
			Applicability: diag.MachineApplicable,
			IsPreferred:   true,
			Edits: []diag.TextEdit{{
				Span:    source.Span{File: id, Start: 21, End: 40},
				NewText: "add_event::<MoveEvent>()",
				OldText: "insert_resource(ev)",
			}},
		}},
	})
	return bag, fs
}

func TestPrettyOutput(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowSuggestions: true})
	out := buf.String()

	if !strings.Contains(out, "setup.tp:2:9: ERROR tempest::insert_event_resource:") {
		t.Fatalf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "app.insert_resource(ev);") {
		t.Fatalf("source line missing:\n%s", out)
	}
	if !strings.Contains(out, "^"+strings.Repeat("~", 18)) {
		t.Fatalf("underline missing:\n%s", out)
	}
	if !strings.Contains(out, "note: events are drained every tick") {
		t.Fatalf("span-less note missing:\n%s", out)
	}
	if !strings.Contains(out, "suggestion (machine-applicable): call add_event instead") {
		t.Fatalf("suggestion line missing:\n%s", out)
	}
	if !strings.Contains(out, "replace with `add_event::<MoveEvent>()`") {
		t.Fatalf("edit preview missing:\n%s", out)
	}
}

func TestPrettyTruncation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.tp", []byte("x\ny\nz\n"))
	bag := diag.NewBag(10)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.Diagnostic{
			Rule:     "tempest::a",
			Severity: diag.SevWarning,
			Message:  "m",
			Primary:  source.Span{File: id, Start: i, End: i + 1},
		})
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Max: 1})
	if !strings.Contains(buf.String(), "... and 2 more") {
		t.Fatalf("truncation notice missing:\n%s", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions:   true,
		IncludeNotes:       true,
		IncludeSuggestions: true,
	})
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Rule != "tempest::insert_event_resource" {
		t.Fatalf("diagnostic header = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 9 {
		t.Fatalf("location = %+v, want line 2 col 9", d.Location)
	}
	if len(d.Suggestions) != 1 || d.Suggestions[0].Applicability != "machine-applicable" {
		t.Fatalf("suggestions = %+v", d.Suggestions)
	}
	if len(d.Suggestions[0].Edits) != 1 || d.Suggestions[0].Edits[0].NewText != "add_event::<MoveEvent>()" {
		t.Fatalf("edits = %+v", d.Suggestions[0].Edits)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

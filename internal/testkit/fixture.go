// Package testkit provides fixture builders for rule tests: a one-file
// program, span helpers anchored to source text, and shortcuts for
// registering framework types.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"tempestlint/internal/diag"
	"tempestlint/internal/frontend"
	"tempestlint/internal/lint"
	"tempestlint/internal/lintconfig"
	"tempestlint/internal/source"
	"tempestlint/internal/tree"
	"tempestlint/internal/types"
)

// Fixture is a single-unit program under construction.
type Fixture struct {
	Program *frontend.Program
	File    source.FileID
	Unit    *tree.Unit
	src     string
}

// NewFixture creates a program with one virtual file holding src.
func NewFixture(name, src string) *Fixture {
	p := frontend.NewProgram()
	id := p.Files.AddVirtual(name, []byte(src))
	unit := &tree.Unit{Name: name, File: id}
	p.Units = append(p.Units, unit)
	return &Fixture{Program: p, File: id, Unit: unit, src: src}
}

// Span returns the span of the first occurrence of substr in the fixture
// source. Panics when absent: a test asking for missing text is broken.
func (f *Fixture) Span(substr string) source.Span {
	idx := strings.Index(f.src, substr)
	if idx < 0 {
		panic(fmt.Sprintf("testkit: %q not found in fixture source", substr))
	}
	start, err := safecast.Conv[uint32](idx)
	if err != nil {
		panic(err)
	}
	end, err := safecast.Conv[uint32](idx + len(substr))
	if err != nil {
		panic(err)
	}
	return source.Span{File: f.File, Start: start, End: end}
}

// After returns the zero-length span immediately following the first
// occurrence of substr, for insertion points.
func (f *Fixture) After(substr string) source.Span {
	sp := f.Span(substr)
	return sp.Collapse()
}

// Named registers an opaque nominal type under path.
func (f *Fixture) Named(path ...string) types.TypeID {
	return f.Program.Types.RegisterNamed(path, nil)
}

// NamedWith registers a nominal type with generic arguments.
func (f *Fixture) NamedWith(args []types.TypeID, path ...string) types.TypeID {
	return f.Program.Types.RegisterNamed(path, args)
}

// Concrete registers a nominal type whose field types are known, making its
// layout computable.
func (f *Fixture) Concrete(path []string, fields ...types.TypeID) types.TypeID {
	id := f.Program.Types.RegisterNamed(path, nil)
	f.Program.Types.SetNamedFields(id, fields)
	return id
}

// Marker registers a zero-sized nominal type (no fields, layout known).
func (f *Fixture) Marker(path ...string) types.TypeID {
	return f.Concrete(path)
}

// Ref wraps elem in a reference layer.
func (f *Fixture) Ref(elem types.TypeID, mutable bool) types.TypeID {
	return f.Program.Types.Intern(types.MakeRef(elem, mutable))
}

// Tuple registers a tuple over elems.
func (f *Fixture) Tuple(elems ...types.TypeID) types.TypeID {
	return f.Program.Types.RegisterTuple(elems)
}

// AddFunc appends a function to the unit.
func (f *Fixture) AddFunc(fn *tree.Func) {
	f.Unit.Funcs = append(f.Unit.Funcs, fn)
}

// Run dispatches the unit through the passes and returns the sorted,
// deduplicated bag. A nil overlay means no configuration.
func (f *Fixture) Run(passes []lint.Pass, levels map[string]lint.Level, overlay *lintconfig.Overlay) *diag.Bag {
	bag := diag.NewBag(100)
	ctx := lint.NewContext(f.Program.Types, f.Program.Frontend(), overlay, diag.BagReporter{Bag: bag}, levels)
	d := lint.NewDispatcher(passes, levels)
	d.Run(ctx, f.Unit)
	bag.Sort()
	bag.Dedup()
	return bag
}

package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"tempestlint/internal/diag"
	"tempestlint/internal/frontend"
	"tempestlint/internal/lint"
	"tempestlint/internal/lintconfig"
)

// DefaultMaxDiagnostics bounds a session's bag unless configured otherwise.
const DefaultMaxDiagnostics = 1000

// Config holds the per-session inputs.
type Config struct {
	// SnapshotPaths are typed-tree snapshot files to analyze.
	SnapshotPaths []string
	// ManifestDir is where the manifest walk-up starts. Empty means the
	// directory of the first loaded file.
	ManifestDir string
	// Toggles are command-line severity overrides, in flag order.
	Toggles []lint.Toggle
	// MaxDiagnostics caps each program's bag; 0 uses DefaultMaxDiagnostics.
	MaxDiagnostics int
	// ErrOut receives recovered-hook logs. Defaults to stderr.
	ErrOut io.Writer
}

// Result is what a finished session produced. File identifiers inside spans
// are scoped to their program, so findings are kept per program; Bags is
// parallel to Programs.
type Result struct {
	Programs []*frontend.Program
	// Bags holds each program's sorted, deduplicated findings. Spans are
	// only meaningful against the owning program's file set.
	Bags []*diag.Bag
	// Bag aggregates every program's findings in program order, for counts
	// and exit status.
	Bag    *diag.Bag
	Levels map[string]lint.Level
}

// Session runs one analysis: snapshots are loaded in parallel up front, the
// configuration overlay is rebuilt once, then every unit is dispatched
// strictly serially.
type Session struct {
	installers *Installers
	cfg        Config
}

// NewSession creates a session over the given installer list. A nil list
// falls back to the built-in catalog.
func NewSession(installers *Installers, cfg Config) *Session {
	if installers == nil {
		installers = DefaultInstallers()
	}
	return &Session{installers: installers, cfg: cfg}
}

// Run loads the configured snapshots and analyzes them.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	programs, err := s.loadSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	return s.Analyze(programs)
}

// loadSnapshots decodes every snapshot concurrently. Loading is pure
// decoding with no shared state, so parallelism is safe; analysis is not
// started until every program is in memory.
func (s *Session) loadSnapshots(ctx context.Context) ([]*frontend.Program, error) {
	programs := make([]*frontend.Program, len(s.cfg.SnapshotPaths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range s.cfg.SnapshotPaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := frontend.ReadSnapshot(path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			programs[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return programs, nil
}

// Analyze dispatches already loaded programs. It rebuilds the registry and
// overlay from scratch, so back-to-back calls never leak configuration.
func (s *Session) Analyze(programs []*frontend.Program) (*Result, error) {
	reg := lint.NewRegistry()
	passes := s.installers.Apply(reg)

	overlay := lintconfig.NewOverlay()
	overlay.Load(s.manifestDir(programs))

	levels, err := lint.EffectiveLevels(reg, overlay, s.cfg.Toggles)
	if err != nil {
		return nil, err
	}

	maxDiags := s.cfg.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = DefaultMaxDiagnostics
	}

	dispatcher := lint.NewDispatcher(passes, levels)
	if s.cfg.ErrOut != nil {
		dispatcher.ErrOut = s.cfg.ErrOut
	} else {
		dispatcher.ErrOut = os.Stderr
	}

	// Findings are collected per program: FileIDs restart at zero in every
	// snapshot, so two programs may produce identical spans for independent
	// findings. Sorting and dedup happen inside each program's bag, never
	// across programs.
	total := diag.NewBag(maxDiags)
	bags := make([]*diag.Bag, len(programs))
	for i, prog := range programs {
		bag := diag.NewBag(maxDiags)
		bags[i] = bag
		if prog == nil {
			continue
		}
		lctx := lint.NewContext(prog.Types, prog.Frontend(), overlay, diag.BagReporter{Bag: bag}, levels)
		for _, unit := range prog.Units {
			dispatcher.Run(lctx, unit)
		}
		bag.Sort()
		bag.Dedup()
		total.Merge(bag)
	}

	return &Result{Programs: programs, Bags: bags, Bag: total, Levels: levels}, nil
}

// manifestDir picks the starting point for the manifest walk-up: the
// configured directory, else the directory of the first loaded file.
func (s *Session) manifestDir(programs []*frontend.Program) string {
	if s.cfg.ManifestDir != "" {
		return s.cfg.ManifestDir
	}
	for _, prog := range programs {
		if prog == nil || prog.Files == nil || prog.Files.Len() == 0 {
			continue
		}
		if f := prog.Files.Get(0); f != nil {
			return filepath.Dir(f.Path)
		}
	}
	return "."
}

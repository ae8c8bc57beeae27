// Package diagfmt renders diagnostics for humans and tools.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) formatArg() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color           bool
	PathMode        PathMode
	ShowNotes       bool
	ShowSuggestions bool
	Max             int // 0 means unlimited
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions   bool
	PathMode           PathMode
	Max                int
	IncludeNotes       bool
	IncludeSuggestions bool
}

package layout

import (
	"errors"
	"fmt"

	"tempestlint/internal/types"
)

// ErrNotNormalizable indicates that a type's layout cannot be computed, for
// example because it still contains unsubstituted generic parameters or its
// definition is not visible. Callers treat this as "size unknown", not as a
// failure of the analysis.
var ErrNotNormalizable = errors.New("layout: type is not normalizable")

func notNormalizable(in *types.Interner, id types.TypeID) error {
	return fmt.Errorf("%w: %s", ErrNotNormalizable, in.String(id))
}

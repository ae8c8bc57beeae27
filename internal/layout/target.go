package layout

// Target describes the pointer model of the platform the analyzed program is
// compiled for.
type Target struct {
	PtrSize  int
	PtrAlign int
}

// DefaultTarget is a 64-bit target.
func DefaultTarget() Target {
	return Target{PtrSize: 8, PtrAlign: 8}
}

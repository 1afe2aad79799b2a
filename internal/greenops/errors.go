package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is().
//
// The calculator itself never returns these: unknown input contributes zero.
// They are used at input edges (CLI flags, config) that want strict parsing.
var (
	// ErrUnknownCategory indicates a category outside the closed set.
	ErrUnknownCategory = constError("unknown activity category")

	// ErrUnknownType indicates an activity type not present in the factor table.
	ErrUnknownType = constError("unknown activity type")
)

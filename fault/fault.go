// Package fault defines the error kinds shared by the deck conversion
// packages. All detected inconsistencies fail fast; there is no partial
// result mode.
package fault

import "errors"

var (
	// ErrInvalidArgument marks a malformed category tag or geometry argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStructuralMismatch marks an inconsistency between the exchange file
	// and the session registries, e.g. a native id present in one but not
	// the other.
	ErrStructuralMismatch = errors.New("structural mismatch")

	// ErrCountMismatch marks a composite input that resolved to a number of
	// objects other than the exactly-one required.
	ErrCountMismatch = errors.New("count mismatch")
)

package puzzle

import "errors"

// Sentinel error kinds; callers match with errors.Is rather than string
// comparison.
var (
	// ErrUnsolvable names the condition of a board that fails the parity
	// test and therefore has no path to the goal. No function in this
	// package returns it: Heuristic returns -1 and FindOptimalPath returns
	// an empty result with a nil error; this is a signaled value, not an
	// exceptional condition.
	ErrUnsolvable = errors.New("puzzle: board is not solvable")

	// ErrInvalidInput covers a nil board, a tile array that is not a
	// permutation of 0..15, or a pattern-group decomposition whose
	// sizes are not all in {3,5,6,7,8} or do not sum to 15.
	ErrInvalidInput = errors.New("puzzle: invalid input")

	// ErrTableIO covers a read or write failure against an element or
	// PDB table file. It is recovered locally by deleting the partial
	// file and regenerating; it surfaces to the caller only if
	// regeneration itself fails.
	ErrTableIO = errors.New("puzzle: table read/write failed")

	// ErrOracleUnavailable is never fatal: a reference-oracle lookup or
	// submit that fails degrades silently to standard search and is
	// only surfaced here for callers that want to log it themselves.
	ErrOracleUnavailable = errors.New("puzzle: reference oracle unavailable")
)

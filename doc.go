// Package puzzle implements the core of an optimal solver for the 15-puzzle:
// an immutable board representation with symmetry reduction and a
// solvability test, a disjoint pattern-database (PDB) element-table
// generator, a walking-distance table, and an IDA* search engine driven by
// a composite admissible heuristic (Manhattan distance + linear conflict,
// walking distance, and pattern databases).
//
// Element and pattern-database value tables are expensive to build and are
// persisted under a database directory so repeated runs load rather than
// regenerate them; the walking-distance table is rebuilt in memory each
// time tables are loaded. Everything else in this package is pure and read-only
// once constructed; a *Solver may be shared across goroutines, but a single
// search call mutates its own scratch state and must not be called
// concurrently on the same Solver.
package puzzle

package puzzle

import (
	"context"
	"fmt"
	"time"
)

// SolverOptions configures NewSolver, in an options-struct-with-defaults
// style.
type SolverOptions struct {
	// TableDir overrides the default "database" persistence directory.
	TableDir string
	// Decomposition selects the pattern groups for PDB-based heuristics;
	// if zero-valued, defaults to whichever standard decomposition Kind
	// names (Decomposition663 if Kind names none of them).
	Decomposition Decomposition
	// Kind selects the initial heuristic stack; defaults to KindWDMD.
	Kind Kind
	// Oracle is an optional reference-oracle collaborator; nil disables
	// "advanced" mode entirely.
	Oracle Oracle
}

func (o SolverOptions) withDefaults() SolverOptions {
	if o.TableDir == "" {
		o.TableDir = tableDir
	}
	if len(o.Decomposition.Groups) == 0 {
		o.Decomposition = defaultDecompositionForKind(o.Kind)
	}
	return o
}

// defaultDecompositionForKind picks the standard decomposition implied by
// a PDB heuristic Kind, so that requesting KindPDB555 or KindPDB78 without
// an explicit Decomposition builds and looks up tables under the matching
// name instead of silently defaulting to 663.
func defaultDecompositionForKind(k Kind) Decomposition {
	switch k {
	case KindPDB555:
		return Decomposition555
	case KindPDB78:
		return Decomposition78
	default:
		return Decomposition663
	}
}

// Solver ties Board, the heuristic Provider, and the IDA* Engine
// together. Tables are loaded once and
// are read-only afterward, so a *Solver may be shared across goroutines
// as long as no two callers invoke FindOptimalPath on it concurrently
// (see doc.go).
type Solver struct {
	opts   SolverOptions
	tables *Tables
	kind   Kind
	engine *Engine
}

// NewSolver loads (or builds) every table SolverOptions.Decomposition
// needs and constructs the initial heuristic stack.
func NewSolver(opts SolverOptions) (*Solver, error) {
	opts = opts.withDefaults()
	tables, err := BuildTables(opts.TableDir, opts.Decomposition)
	if err != nil {
		return nil, err
	}
	s := &Solver{opts: opts, tables: tables}
	if err := s.SelectHeuristic(opts.Kind); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectHeuristic switches the active heuristic stack. A PDB kind can only
// be selected when the tables loaded at NewSolver time belong to the
// matching decomposition; switching to a PDB kind that needs a different
// decomposition requires a new Solver built with that Decomposition.
func (s *Solver) SelectHeuristic(kind Kind) error {
	var p Provider
	switch kind {
	case KindMD, KindMDLC:
		p = mdlcProvider{}
	case KindWD:
		p = wdProvider{wd: s.tables.WD}
	case KindPDB555, KindPDB663, KindPDB78:
		if want := defaultDecompositionForKind(kind).Name; s.opts.Decomposition.Name != want {
			return fmt.Errorf("%w: %v needs decomposition %q, solver was built with %q", ErrInvalidInput, kind, want, s.opts.Decomposition.Name)
		}
		p = NewPDBProvider(kind, s.opts.Decomposition, s.tables)
	default:
		p = wdmdProvider{wd: wdProvider{wd: s.tables.WD}, md: mdlcProvider{}}
		kind = KindWDMD
	}
	s.kind = kind
	s.engine = NewEngine(p)
	return nil
}

// SetTimeout bounds every subsequent FindOptimalPath call.
func (s *Solver) SetTimeout(d time.Duration) { s.engine.SetTimeout(d) }

// ClearTimeout removes any previously set timeout.
func (s *Solver) ClearTimeout() { s.engine.ClearTimeout() }

// Heuristic returns the current heuristic stack's estimate for b, or -1
// if b is unsolvable.
func (s *Solver) Heuristic(b *Board) int {
	if !b.IsSolvable() {
		return -1
	}
	v, _ := s.engine.provider.Initial(b)
	return v
}

// FindOptimalPath runs the search for b, in "advanced" mode against
// s.opts.Oracle when one is configured: a prior stored solution that
// matches the heuristic lower bound exactly is known-optimal and is
// returned without searching; a prior partial-move prefix is applied
// before resuming the search for the remainder; a newly confirmed
// solution is always submitted back (the Oracle itself decides whether
// it improves on anything already stored).
func (s *Solver) FindOptimalPath(ctx context.Context, b *Board) (Result, error) {
	if b == nil {
		return Result{}, ErrInvalidInput
	}
	if !b.IsSolvable() {
		return Result{}, nil
	}

	prefix, searchRoot, lowerBound := s.consultOracle(b)
	if searchRoot == nil {
		return Result{Steps: len(prefix), Moves: prefix}, nil
	}

	result, err := s.engine.Solve(ctx, searchRoot)
	if err != nil || result.Timeout {
		return result, err
	}

	full := append(append([]Direction{}, prefix...), result.Moves...)
	result.Moves = full
	result.Steps = len(full)
	_ = lowerBound

	if s.opts.Oracle != nil && len(full) > 0 {
		_ = s.opts.Oracle.Submit(b, full)
	}
	return result, nil
}

// consultOracle returns (prefix, remainingRoot, lowerBound): if the
// oracle has an exact match it returns (moves, nil, lowerBound) meaning
// no search is needed; otherwise remainingRoot is the board to search
// from (b itself if there was no usable oracle entry).
func (s *Solver) consultOracle(b *Board) ([]Direction, *Board, int) {
	lowerBound := s.Heuristic(b)
	if s.opts.Oracle == nil {
		return nil, b, lowerBound
	}
	res, found, err := s.opts.Oracle.Lookup(b)
	if err != nil || !found {
		return nil, b, lowerBound
	}
	if res.Estimate == lowerBound && len(res.PartialMoves) == res.Estimate {
		return res.PartialMoves, nil, lowerBound
	}
	cur := b
	for _, m := range res.PartialMoves {
		next, ok := cur.Shift(m)
		if !ok {
			return nil, b, lowerBound
		}
		cur = next
	}
	return res.PartialMoves, cur, lowerBound
}

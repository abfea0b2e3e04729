package puzzle

import (
	"context"
	"time"
)

// maxSearchDepth is the known diameter bound for the 15-puzzle: no
// solvable board needs more moves than this, so iterative deepening
// never needs to probe past it.
const maxSearchDepth = 80

// rotation codes used by the swirl-pruning rolling key below.
const (
	rotNone = 0
	rotCW   = 1
	rotCCW  = 2
)

// swirlAllCW / swirlAllCCW are the rolling 2-bit-per-step swirlKey values
// meaning "the last three turns all rotated the same way": the last four
// moves have already carried the blank once around a 2x2 block back to
// the cell it started from, and a further same-direction turn, which
// would keep circling, is pruned as one that can never shorten an
// optimal path.
const (
	swirlAllCW  = rotCW<<4 | rotCW<<2 | rotCW
	swirlAllCCW = rotCCW<<4 | rotCCW<<2 | rotCCW
)

// rotationOf classifies the turn from `from` to `to` as clockwise,
// counter-clockwise, or neither (straight continuation), using the
// fixed cyclic order Right, Down, Left, Up.
func rotationOf(from, to Direction) int {
	switch (int(to) - int(from) + directionCount) % directionCount {
	case 1:
		return rotCW
	case 3:
		return rotCCW
	default:
		return rotNone
	}
}

// depthSummary is the per-direction estimate/node-count pair used to
// order the top-level branches of the next iterative-deepening pass
// for the next iterative-deepening pass.
type depthSummary struct {
	estimate int
	nodes    uint64
	tried    bool
}

// Result is the outcome of FindOptimalPath.
type Result struct {
	Moves         []Direction
	Steps         int
	NodesSearched uint64
	Timeout       bool
}

// Engine is the IDA* search engine. It is built once
// around a Provider and can run many independent searches; all
// per-search mutable state lives on search's stack, never on Engine, so
// one Engine is safe to reuse sequentially (not concurrently — see
// doc.go's concurrency contract).
type Engine struct {
	provider Provider
	timeout  time.Duration
}

// NewEngine returns an Engine that searches using provider.
func NewEngine(provider Provider) *Engine {
	return &Engine{provider: provider}
}

// SetTimeout bounds every subsequent Solve call to d wall-clock time.
func (e *Engine) SetTimeout(d time.Duration) { e.timeout = d }

// ClearTimeout removes any previously set timeout.
func (e *Engine) ClearTimeout() { e.timeout = 0 }

// Solve runs IDA* from root and returns the optimal move sequence, or an
// empty Result with Timeout set if ctx (or the Engine's own timeout)
// expires first. An unsolvable root yields an empty Result, nil error.
func (e *Engine) Solve(ctx context.Context, root *Board) (Result, error) {
	if root == nil {
		return Result{}, ErrInvalidInput
	}
	if !root.IsSolvable() {
		return Result{}, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rootValue, rootState := e.provider.Initial(root)
	if rootValue == 0 {
		return Result{Steps: 0}, nil
	}

	s := &search{ctx: ctx, provider: e.provider}

	for limit := rootValue; limit <= maxSearchDepth; limit += 2 {
		s.limit = limit
		s.solutionMoves = s.solutionMoves[:0]
		s.solved = false
		s.timedOut = false

		s.dfs(root, rootState, rootValue, 0, false, Direction(0), 0, true)

		if s.timedOut {
			return Result{NodesSearched: s.nodes, Timeout: true}, nil
		}
		if s.solved {
			moves := make([]Direction, len(s.solutionMoves))
			copy(moves, s.solutionMoves)
			return Result{Moves: moves, Steps: len(moves), NodesSearched: s.nodes}, nil
		}
	}
	return Result{NodesSearched: s.nodes, Timeout: false}, nil
}

// search carries all per-call mutable state for one Solve invocation.
// Board successors are produced by Board.Shift, which allocates a new
// immutable value rather than mutating in place (see board.go); depth
// and the move/estimate bookkeeping below are search's own scratch state
// and are never shared across calls, so Solve needs no explicit
// restore-on-return step.
type search struct {
	ctx      context.Context
	provider Provider

	limit         int
	nodes         uint64
	solved        bool
	timedOut      bool
	solutionMoves []Direction

	summary [directionCount]depthSummary
}

// dfs explores from board b with provider state st and heuristic value
// `value`, at recursion depth `depth` (the moves already paid to reach
// b). lastValid/lastMove name
// the move that produced b (unset at the root); swirlKey is the rolling
// 2-bit-per-step rotation record of the moves leading here.
func (s *search) dfs(b *Board, st State, value, depth int, lastValid bool, lastMove Direction, swirlKey int, isRoot bool) {
	s.nodes++
	select {
	case <-s.ctx.Done():
		s.timedOut = true
		return
	default:
	}

	if value == 0 {
		s.solved = true
		return
	}
	if depth+value > s.limit {
		return
	}

	for _, d := range s.moveOrder(lastValid, lastMove, isRoot) {
		if !b.CanMove(d) {
			continue
		}
		if lastValid && d == lastMove.Opposite() {
			continue
		}
		swirl := rotNone
		if lastValid {
			swirl = rotationOf(lastMove, d)
			if (swirlKey == swirlAllCW && swirl == rotCW) || (swirlKey == swirlAllCCW && swirl == rotCCW) {
				continue
			}
		}

		next, ok := b.Shift(d)
		if !ok {
			continue
		}
		nextValue, nextState := s.provider.Update(st, next, d)
		newSwirl := ((swirlKey << 2) | swirl) & 0x3F

		nodesBefore := s.nodes
		s.dfs(next, nextState, nextValue, depth+1, true, d, newSwirl, false)
		if isRoot {
			s.summary[d] = depthSummary{estimate: nextValue, nodes: s.nodes - nodesBefore, tried: true}
		}

		if s.timedOut {
			return
		}
		if s.solved {
			s.solutionMoves = append([]Direction{d}, s.solutionMoves...)
			return
		}
	}
}

// moveOrder returns the candidate directions to try from the board that
// produced lastMove, with the previous direction first (straight
// continuation), then the two perpendiculars; the reverse direction is
// filtered by the caller. At the root, the per-direction summary from
// the prior iteration reorders by ascending estimate with a node-count
// tie-break (both comparisons read the same estimate field).
func (s *search) moveOrder(lastValid bool, lastMove Direction, isRoot bool) []Direction {
	if isRoot {
		order := []Direction{Right, Down, Left, Up}
		sortBySummary(order, s.summary)
		return order
	}
	if !lastValid {
		return []Direction{Right, Down, Left, Up}
	}
	perp := perpendiculars(lastMove)
	return []Direction{lastMove, perp[0], perp[1]}
}

func perpendiculars(d Direction) [2]Direction {
	if d.isVertical() {
		return [2]Direction{Right, Left}
	}
	return [2]Direction{Down, Up}
}

// sortBySummary insertion-sorts order ascending by estimate, breaking
// ties by fewer nodes searched in the previous deepening pass.
// Directions never tried yet sort last.
func sortBySummary(order []Direction, summary [directionCount]depthSummary) {
	less := func(a, b Direction) bool {
		sa, sb := summary[a], summary[b]
		if !sa.tried {
			return false
		}
		if !sb.tried {
			return true
		}
		if sa.estimate != sb.estimate {
			return sa.estimate < sb.estimate
		}
		return sa.nodes < sb.nodes
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && less(order[j], order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
}

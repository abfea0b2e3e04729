package puzzle

// WalkingDistanceTable is a BFS-built lookup over the row-occupancy
// state space: a 4-vector of how many tiles of each goal row are
// currently present in the physical row, plus the row holding the
// blank. One instance serves both the horizontal projection (over
// tiles) and the vertical projection (over tiles_sym), built once and
// reused via a single hash-consed index.
type WalkingDistanceTable struct {
	// Value[idx] is the walking distance of state idx from goal.
	Value []byte
	// Next[idx*boardSize*directionCount + goalRow*directionCount + dir]
	// is the index reached by moving, in the given direction, the tile
	// belonging to goalRow — not the physical row the tile currently sits
	// in, since a physical row generally holds tiles from several goal
	// rows and only the goal row picks out a single one of them — or -1
	// if no tile of that goal row can move that way from idx.
	Next []int32

	index map[wdState]int
	// states[idx] is the decoded state for idx, kept for transition
	// lookups during construction and incremental updates at search time.
	states []wdState
}

// wdState is one row-occupancy vector plus the blank's row.
// counts[physicalRow][goalRow] is how many tiles belonging to goalRow sit
// in physicalRow, as computed by RowCounts.
type wdState struct {
	counts   [boardSize][boardSize]byte // counts[physicalRow][goalRow]
	blankRow byte
}

// BuildWalkingDistanceTable runs a BFS starting from the goal
// configuration (every tile already in its own
// row, blank in the last row) and expanding every single-tile vertical
// crossing between adjacent physical rows.
func BuildWalkingDistanceTable() *WalkingDistanceTable {
	t := &WalkingDistanceTable{index: make(map[wdState]int)}

	goal := wdState{blankRow: boardSize - 1}
	for r := 0; r < boardSize; r++ {
		goal.counts[r][r] = boardSize
	}
	goal.counts[boardSize-1][boardSize-1] = boardSize - 1 // blank occupies one cell of the last row

	t.push(goal, 0)
	queue := []int{0}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		st := t.states[idx]
		dist := t.Value[idx]

		// A single blank-move only swaps the blank with a tile in the row
		// physically adjacent to it; fromRow must be blankRow-1 or +1.
		for _, fromRow := range []int{int(st.blankRow) - 1, int(st.blankRow) + 1} {
			if fromRow < 0 || fromRow >= boardSize {
				continue
			}
			// The tile slides from fromRow into the blank's cell, so the
			// blank ends up at fromRow: if that is a smaller row index
			// the blank moved Up, otherwise Down.
			dir := Down
			if fromRow < int(st.blankRow) {
				dir = Up
			}
			for goalRow := 0; goalRow < boardSize; goalRow++ {
				if st.counts[fromRow][goalRow] == 0 {
					continue
				}
				next := st
				next.counts[fromRow][goalRow]--
				next.counts[st.blankRow][goalRow]++
				next.blankRow = byte(fromRow)

				nextIdx, existed := t.index[next]
				if !existed {
					nextIdx = t.push(next, int(dist)+1)
					queue = append(queue, nextIdx)
				}
				t.setTransition(idx, goalRow, dir, nextIdx)
			}
		}
	}
	return t
}

func (t *WalkingDistanceTable) push(st wdState, dist int) int {
	idx := len(t.states)
	t.states = append(t.states, st)
	t.Value = append(t.Value, byte(dist))
	t.Next = append(t.Next, make([]int32, boardSize*directionCount)...)
	for i := len(t.Next) - boardSize*directionCount; i < len(t.Next); i++ {
		t.Next[i] = -1
	}
	t.index[st] = idx
	return idx
}

func (t *WalkingDistanceTable) setTransition(idx, goalRow int, dir Direction, next int) {
	t.Next[idx*boardSize*directionCount+goalRow*directionCount+int(dir)] = int32(next)
}

// IndexOf returns the table index for a row-occupancy vector built from
// a board's tiles (rowCounts[physicalRow][goalRow] = tiles of goalRow
// found in physicalRow) and the blank's physical row, or (-1, false) if
// the state was never reached by the BFS (should not happen for any
// legal board).
func (t *WalkingDistanceTable) IndexOf(rowCounts [boardSize][boardSize]byte, blankRow int) (int, bool) {
	st := wdState{counts: rowCounts, blankRow: byte(blankRow)}
	idx, ok := t.index[st]
	return idx, ok
}

// Lookup returns the walking distance of idx from goal.
func (t *WalkingDistanceTable) Lookup(idx int) int { return int(t.Value[idx]) }

// RowCounts computes the row-occupancy vector and blank row for a flat
// 16-tile array, used to derive the horizontal WD index directly from a
// board's tiles and the vertical WD index from its tiles_sym.
func RowCounts(tiles [boardLen]byte) (counts [boardSize][boardSize]byte, blankRow int) {
	for p, v := range tiles {
		row := p / boardSize
		if v == 0 {
			blankRow = row
			continue
		}
		goalRow := int(v-1) / boardSize
		counts[row][goalRow]++
	}
	return counts, blankRow
}

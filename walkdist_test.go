package puzzle

import "testing"

func TestBuildWalkingDistanceTableGoalIsZero(t *testing.T) {
	wd := BuildWalkingDistanceTable()
	counts, blankRow := RowCounts(goalTiles)
	idx, ok := wd.IndexOf(counts, blankRow)
	if !ok {
		t.Fatal("goal row-occupancy state not found in table")
	}
	if wd.Lookup(idx) != 0 {
		t.Errorf("goal walking distance = %d, want 0", wd.Lookup(idx))
	}
}

func TestWalkingDistanceTableOneMoveFromGoal(t *testing.T) {
	wd := BuildWalkingDistanceTable()
	b, err := NewBoard(goalTiles[:])
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	moved := false
	for _, d := range []Direction{Right, Down, Left, Up} {
		next, ok := b.Shift(d)
		if !ok {
			continue
		}
		moved = true
		counts, blankRow := RowCounts(next.tiles)
		idx, ok := wd.IndexOf(counts, blankRow)
		if !ok {
			t.Fatalf("state one move (%s) from goal not found in table", d)
		}
		// A horizontal move never changes row occupancy, so its WD
		// distance stays 0; only a vertical move can increase it.
		want := 0
		if d.isVertical() {
			want = 1
		}
		if got := wd.Lookup(idx); got != want {
			t.Errorf("move %s: walking distance = %d, want %d", d, got, want)
		}
	}
	if !moved {
		t.Fatal("no legal move found from goal board")
	}
}

func TestRowCountsSumsToBoardSizePerRow(t *testing.T) {
	counts, blankRow := RowCounts(goalTiles)
	if blankRow != boardSize-1 {
		t.Errorf("blankRow = %d, want %d", blankRow, boardSize-1)
	}
	for r := 0; r < boardSize; r++ {
		var sum byte
		for _, c := range counts[r] {
			sum += c
		}
		want := byte(boardSize)
		if r == boardSize-1 {
			want--
		}
		if sum != want {
			t.Errorf("row %d: counts sum to %d, want %d", r, sum, want)
		}
	}
}

// When a physical row holds tiles from two different goal rows, Next
// must distinguish a move of one from a move of the other: keying the
// transition by physical row instead of goal row would let the second
// BFS transition silently overwrite the first.
func TestWalkingDistanceNextTableDistinguishesGoalRowsSharingAPhysicalRow(t *testing.T) {
	wd := BuildWalkingDistanceTable()
	dirFor := func(blankRow, fromRow int) Direction {
		if fromRow < blankRow {
			return Up
		}
		return Down
	}

	found := false
	for idx, st := range wd.states {
		for _, fromRow := range []int{int(st.blankRow) - 1, int(st.blankRow) + 1} {
			if fromRow < 0 || fromRow >= boardSize {
				continue
			}
			var present []int
			for goalRow := 0; goalRow < boardSize; goalRow++ {
				if st.counts[fromRow][goalRow] > 0 {
					present = append(present, goalRow)
				}
			}
			if len(present) < 2 {
				continue
			}
			dir := dirFor(int(st.blankRow), fromRow)
			n0 := wd.Next[idx*boardSize*directionCount+present[0]*directionCount+int(dir)]
			n1 := wd.Next[idx*boardSize*directionCount+present[1]*directionCount+int(dir)]
			if n0 < 0 || n1 < 0 {
				t.Fatalf("state %d: missing transition for goal row %d or %d in direction %s", idx, present[0], present[1], dir)
			}
			if n0 == n1 {
				t.Fatalf("state %d: goal rows %d and %d in direction %s collapsed onto the same next state %d", idx, present[0], present[1], dir, n0)
			}
			next0 := wd.states[n0]
			if next0.counts[fromRow][present[0]] != st.counts[fromRow][present[0]]-1 {
				t.Errorf("state %d -> %d: goal row %d count did not decrement as expected by moving that tile", idx, n0, present[0])
			}
			if next0.counts[fromRow][present[1]] != st.counts[fromRow][present[1]] {
				t.Errorf("state %d -> %d: goal row %d count changed even though a different tile moved", idx, n0, present[1])
			}
			found = true
			break
		}
		if found {
			break
		}
	}
	if !found {
		t.Fatal("no reachable state had two distinct goal rows sharing a physical row adjacent to the blank; test setup assumption failed")
	}
}

func TestWalkingDistanceGoalStateHasOutgoingTransitions(t *testing.T) {
	wd := BuildWalkingDistanceTable()
	goalCounts, goalBlankRow := RowCounts(goalTiles)
	goalIdx, ok := wd.IndexOf(goalCounts, goalBlankRow)
	if !ok {
		t.Fatal("goal state missing from table")
	}
	found := false
	for fromRow := 0; fromRow < boardSize; fromRow++ {
		for d := Direction(0); d < directionCount; d++ {
			next := wd.Next[goalIdx*boardSize*directionCount+fromRow*directionCount+int(d)]
			if next >= 0 {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("goal state has no outgoing transitions in Next table")
	}
}

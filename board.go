package puzzle

import (
	"fmt"
	"strings"
)

// boardSize is the side length of the puzzle; only 4x4 (15-puzzle) is in
// scope.
const boardSize = 4
const boardLen = boardSize * boardSize // 16

// symPos and symVal implement the diagonal reflection symmetry: for
// every position p, tilesSym[symPos[p]] = symVal[tiles[p]].
var symPos = [boardLen]int{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}
var symVal = [boardLen]byte{0, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15, 4, 8, 12}

// goalHash1, goalHash2 are the packed-nibble hash of the canonical goal
// board [1..15,0]; see Board.hashCode for the packing scheme.
const (
	goalHash1 uint32 = 0x12345678
	goalHash2 uint32 = 0x9ABCDEF0
)

// Board is an immutable 15-puzzle configuration. Once constructed it is
// never mutated; Shift produces a new Board rather than mutating the
// receiver.
type Board struct {
	tiles    [boardLen]byte
	tilesSym [boardLen]byte

	zeroX, zeroY int

	hash1, hash2 uint32
	hashCode     uint32

	isSolvable          bool
	isIdenticalSymmetry bool

	validMoves [directionCount]bool
}

// NewBoard constructs a Board from 16 raw tile values in row-major order,
// where 0 denotes the blank. It returns ErrInvalidInput if tiles is not a
// permutation of 0..15.
func NewBoard(tiles []byte) (*Board, error) {
	if len(tiles) != boardLen {
		return nil, fmt.Errorf("%w: expected %d tiles, got %d", ErrInvalidInput, boardLen, len(tiles))
	}
	var seen [boardLen]bool
	for _, v := range tiles {
		if int(v) >= boardLen || seen[v] {
			return nil, fmt.Errorf("%w: tiles must be a permutation of 0..%d", ErrInvalidInput, boardLen-1)
		}
		seen[v] = true
	}

	b := &Board{isSolvable: true}
	copy(b.tiles[:], tiles)
	b.computeDerived()
	b.isSolvable = b.computeSolvable()
	return b, nil
}

// computeDerived fills in every field derivable from b.tiles: the blank
// position, the symmetry twin, the packed hash, the identical-symmetry
// flag, and which moves are legal. It does not touch isSolvable, since
// shift() must skip that recomputation.
func (b *Board) computeDerived() {
	for p, v := range b.tiles {
		if v == 0 {
			b.zeroX = p % boardSize
			b.zeroY = p / boardSize
			break
		}
	}

	for p, v := range b.tiles {
		b.tilesSym[symPos[p]] = symVal[v]
	}
	b.isIdenticalSymmetry = b.tilesSym == b.tiles

	b.hash1 = packNibbles(b.tiles[0:8])
	b.hash2 = packNibbles(b.tiles[8:16])
	b.hashCode = b.hash1 * (b.hash2 + 0x1111)

	b.validMoves[Right] = b.zeroX < boardSize-1
	b.validMoves[Left] = b.zeroX > 0
	b.validMoves[Down] = b.zeroY < boardSize-1 && !b.isIdenticalSymmetry
	b.validMoves[Up] = b.zeroY > 0 && !b.isIdenticalSymmetry
}

// packNibbles packs 8 nibbles (values 0..15) into a 32-bit word, most
// significant nibble first, as used for hash1/hash2.
func packNibbles(vals []byte) uint32 {
	var w uint32
	for _, v := range vals {
		w = w<<4 | uint32(v)
	}
	return w
}

// computeSolvable applies the 4x4 parity rule.
func (b *Board) computeSolvable() bool {
	inv := 0
	for i := 0; i < boardLen; i++ {
		vi := b.tiles[i]
		if vi == 0 {
			continue
		}
		for j := i + 1; j < boardLen; j++ {
			vj := b.tiles[j]
			if vj != 0 && vj < vi {
				inv++
			}
		}
	}
	rowFromBottom := boardSize - 1 - b.zeroY
	return (inv+rowFromBottom)%2 == 0
}

// IsSolvable reports whether b is reachable from the goal by legal moves.
func (b *Board) IsSolvable() bool { return b.isSolvable }

// IsIdenticalSymmetry reports whether b equals its own diagonal twin, in
// which case vertical moves duplicate horizontal ones and are pruned.
func (b *Board) IsIdenticalSymmetry() bool { return b.isIdenticalSymmetry }

// IsGoal reports whether b is the canonical goal configuration.
func (b *Board) IsGoal() bool {
	return b.hash1 == goalHash1 && b.hash2 == goalHash2
}

// ZeroPos returns the column and row (0..3) of the blank.
func (b *Board) ZeroPos() (x, y int) { return b.zeroX, b.zeroY }

// CanMove reports whether d is legal from the current position, already
// accounting for identical-symmetry pruning of vertical moves.
func (b *Board) CanMove(d Direction) bool { return b.validMoves[d] }

// Tile returns the value at row-major position p (0-based).
func (b *Board) Tile(p int) byte { return b.tiles[p] }

// Shift returns the board reached by moving the blank in direction d, and
// true, or (nil, false) if d would move the blank off the board. Shift
// skips the parity recomputation of NewBoard: every legal move preserves
// solvability, so the result inherits isSolvable from the receiver.
func (b *Board) Shift(d Direction) (*Board, bool) {
	nx, ny := b.zeroX+dx[d], b.zeroY+dy[d]
	if nx < 0 || nx >= boardSize || ny < 0 || ny >= boardSize {
		return nil, false
	}
	zeroPos := b.zeroY*boardSize + b.zeroX
	targetPos := ny*boardSize + nx

	next := &Board{tiles: b.tiles, isSolvable: b.isSolvable}
	next.tiles[zeroPos], next.tiles[targetPos] = next.tiles[targetPos], next.tiles[zeroPos]
	next.computeDerived()
	return next, true
}

// Neighbors returns the successor boards reachable in one move, in the
// fixed order Right, Down, Left, Up, omitting any direction that is
// off-board or pruned by identical symmetry.
func (b *Board) Neighbors() []*Board {
	out := make([]*Board, 0, directionCount)
	for d := Direction(0); d < directionCount; d++ {
		if !b.validMoves[d] {
			continue
		}
		n, ok := b.Shift(d)
		if ok {
			out = append(out, n)
		}
	}
	return out
}

// Equal reports whether b and o represent the same configuration. It
// checks the composite hashCode first and then the two packed halves,
// rather than comparing tiles directly.
func (b *Board) Equal(o *Board) bool {
	if o == nil {
		return false
	}
	return b.hashCode == o.hashCode && b.hash1 == o.hash1 && b.hash2 == o.hash2
}

// HashCode returns the composite hash used for equality and for external
// collaborators such as the reference oracle's lookup key.
func (b *Board) HashCode() uint32 { return b.hashCode }

// String renders b as 4 lines of 4 right-aligned decimal numbers.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%2d", b.tiles[row*boardSize+col])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// symmetryTwin returns the board obtained from b's internal tilesSym
// array: the diagonal reflection used as a second admissible lower bound
// throughout heuristic.go.
func (b *Board) symmetryTwin() *Board {
	t := &Board{tiles: b.tilesSym, isSolvable: b.isSolvable}
	t.computeDerived()
	return t
}

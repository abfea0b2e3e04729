package puzzle

import "sort"

// ElementTable holds every precomputed structure needed to do constant-time
// pattern-database lookups for one group size: the key set, the format
// set, the key-rotation table, and the two format-link views (generator
// and solver). See element_persist.go for the on-disk layout and
// pdb_values.go for how these feed the actual distance values.
type ElementTable struct {
	Group int

	// Keys2Combo[k] is the packed-nibble permutation for key index k.
	Keys2Combo []uint32
	keyIndex   map[uint32]int

	// RotateKeyByPos is flattened as [keyIdx*Group*2*maxShift + slot*2*maxShift + (code-1)].
	// code ranges over 1..2*maxShift(Group); see keyShiftMagnitude doc below.
	RotateKeyByPos []int32

	// Formats2Combo[f] is the 16-bit occupied-position bitmap for format index f.
	Formats2Combo []uint32
	formatIndex   map[uint32]int

	// LinkFormatCombo[f*Group*4 + slot*4 + dir] = nextFormatBitmap<<4 | shiftCode.
	LinkFormatCombo []int32

	// LinkFormatMove[f*64 + srcBlankPos*4 + dir] = nextFormatIdx<<8 | slot<<4 | shiftCode.
	LinkFormatMove []int32
}

// maxShift returns the largest vertical slot-shift magnitude a group of
// size g can ever require: a moving tile can cross at most its g-1 other
// group members, but no tile can ever cross more than 3 others in a
// single vertical move on a 4-wide board, so the magnitude caps at 3
// regardless of how large the group is.
func maxShift(g int) int {
	if g-1 < 3 {
		return g - 1
	}
	return 3
}

// keyShiftMagnitude packs a crossing count and a vertical direction into
// the single code stored in LinkFormatCombo/LinkFormatMove and consumed
// by RotateKeyByPos: 0 means "no crossing, key unchanged"; odd codes
// 1,3,5 mean "crossed n group-tiles moving toward a lower row index"
// (Down, since the tile vacates a cell entered from below); even codes
// 2,4,6 mean the same crossing count moving toward a higher row index
// (Up). This parity is load-bearing: RotateKeyByPos is indexed by
// code-1 and must be generated with the identical convention it is read
// with.
func keyShiftMagnitude(crossed int, down bool) int {
	if crossed == 0 {
		return 0
	}
	if down {
		return crossed*2 - 1
	}
	return crossed * 2
}

func factorial(n int) int {
	r := 1
	for i := 2; i <= n; i++ {
		r *= i
	}
	return r
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 0; i < k; i++ {
		r = r * (n - i) / (i + 1)
	}
	return r
}

// genKeys enumerates all g! permutations of 0..g-1, packed as g nibbles
// (slot 0 in the most significant nibble), by expanding every permutation
// of size g-1 with the new top value (g-1) inserted at each of the g
// possible slots. The result is sorted ascending by packed value and
// reindexed, so the same group always gets the same key indexing
// regardless of build order.
func genKeys(g int) []uint32 {
	combos := []uint32{0}
	for size := 1; size <= g; size++ {
		next := make([]uint32, 0, len(combos)*size)
		newVal := uint32(size - 1)
		for _, c := range combos {
			for pos := 0; pos < size; pos++ {
				next = append(next, insertNibble(c, size-1, pos, newVal))
			}
		}
		combos = next
	}
	sort.Slice(combos, func(i, j int) bool { return combos[i] < combos[j] })
	return combos
}

// insertNibble inserts value v as the nibble at slot `pos` of a packed
// permutation that previously held `oldLen` nibbles, shifting the nibbles
// at pos..oldLen-1 one slot to the right (toward lower significance).
func insertNibble(packed uint32, oldLen, pos int, v uint32) uint32 {
	nibbles := make([]uint32, oldLen+1)
	for i := oldLen - 1; i >= 0; i-- {
		nibbles[i] = (packed >> uint(4*(oldLen-1-i))) & 0xF
	}
	nibbles = append(nibbles[:pos], append([]uint32{v}, nibbles[pos:oldLen]...)...)
	var out uint32
	for _, n := range nibbles {
		out = out<<4 | n
	}
	return out
}

func unpackNibbles(packed uint32, g int) []uint32 {
	out := make([]uint32, g)
	for i := g - 1; i >= 0; i-- {
		out[i] = (packed >> uint(4*(g-1-i))) & 0xF
	}
	return out
}

func packNibbles32(vals []uint32) uint32 {
	var out uint32
	for _, v := range vals {
		out = out<<4 | v
	}
	return out
}

// rotateByRemoveReinsert removes the nibble at slot `pos` of `vals` and
// reinserts it `shift` slots away in the direction given by `down`: this
// is the key-space effect of a group-tile crossing `shift` other group
// members while moving vertically past slot `pos`.
func rotateByRemoveReinsert(vals []uint32, pos, shift int, down bool) []uint32 {
	g := len(vals)
	v := vals[pos]
	rest := make([]uint32, 0, g-1)
	rest = append(rest, vals[:pos]...)
	rest = append(rest, vals[pos+1:]...)

	dest := pos
	if down {
		dest = pos + shift
	} else {
		dest = pos - shift
	}
	if dest < 0 {
		dest = 0
	}
	if dest > g-1 {
		dest = g - 1
	}
	out := make([]uint32, 0, g)
	out = append(out, rest[:dest]...)
	out = append(out, v)
	out = append(out, rest[dest:]...)
	return out
}

// genRotateKeyByPos fills RotateKeyByPos for every (key, slot, code)
// triple by direct remove-and-reinsert on the unpacked key, rather than
// the fixpoint BFS an element-by-element traversal would need: the
// operation is already a closed bijection on the g! permutations, so
// each entry can be computed independently.
func genRotateKeyByPos(g int, keys []uint32, keyIndex map[uint32]int) []int32 {
	ms := maxShift(g)
	codes := 2 * ms
	out := make([]int32, len(keys)*g*codes)
	for ki, key := range keys {
		vals := unpackNibbles(key, g)
		for slot := 0; slot < g; slot++ {
			for code := 1; code <= codes; code++ {
				shift := (code + 1) / 2
				// Odd codes (blank moved Down) carry the tile up the board
				// to a lower slot; even codes (blank moved Up) carry it down
				// the board to a higher slot.
				down := code%2 == 0
				rotated := rotateByRemoveReinsert(vals, slot, shift, down)
				dest := keyIndex[packNibbles32(rotated)]
				out[ki*g*codes+slot*codes+(code-1)] = int32(dest)
			}
		}
	}
	return out
}

// genFormats enumerates all C(16,g) bitmaps of g set bits among 16
// positions, sorted ascending, assigning each a sequential index.
func genFormats(g int) []uint32 {
	var out []uint32
	var rec func(start int, chosen uint32, count int)
	rec = func(start int, chosen uint32, count int) {
		if count == g {
			out = append(out, chosen)
			return
		}
		for p := start; p < boardLen; p++ {
			rec(p+1, chosen|(1<<uint(p)), count+1)
		}
	}
	rec(0, 0, 0)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// genLinkFormats builds both format-link views for group size g. For
// every format, it scans occupied positions in ascending order (the scan
// rank is the "slot" used for rotateKeyByPos) and, for each of the four
// blank-move directions, determines whether the adjacent cell holds the
// blank and, if so, the resulting format and key-shift code.
func genLinkFormats(g int, formats []uint32, formatIndex map[uint32]int) (linkCombo, linkMove []int32) {
	linkCombo = make([]int32, len(formats)*g*directionCount)
	linkMove = make([]int32, len(formats)*64)
	for i := range linkMove {
		linkMove[i] = -1 // no transition recorded for this (format, blank pos, dir)
	}

	for fi, fmtBits := range formats {
		slot := -1
		for pos := 0; pos < boardLen; pos++ {
			if fmtBits&(1<<uint(pos)) == 0 {
				continue
			}
			slot++
			for d := Direction(0); d < directionCount; d++ {
				nextFmt, code, srcBlankPos, ok := linkTransition(fmtBits, pos, d)
				if !ok {
					continue
				}
				nextIdx, known := formatIndex[nextFmt]
				if !known {
					continue
				}
				linkCombo[fi*g*directionCount+slot*directionCount+int(d)] = int32(nextFmt)<<4 | int32(code)
				linkMove[fi*64+srcBlankPos*4+int(d)] = int32(nextIdx)<<8 | int32(slot)<<4 | int32(code)
			}
		}
	}
	return linkCombo, linkMove
}

// linkTransition computes the effect of one blank-move direction on the
// group tile occupying `pos`. It returns ok=false if the adjacent cell in
// that direction is off-board or itself occupied by another group tile
// (no move of pos's tile is possible in that direction). srcBlankPos is
// the blank's position before the move, which is how linkFormatMove is
// indexed throughout.
func linkTransition(fmtBits uint32, pos int, d Direction) (nextFmt uint32, code int, srcBlankPos int, ok bool) {
	switch d {
	case Right:
		if pos%boardSize == 0 {
			return 0, 0, 0, false
		}
		blank := pos - 1
		if fmtBits&(1<<uint(blank)) != 0 {
			return 0, 0, 0, false
		}
		return clearSet(fmtBits, pos, blank), 0, blank, true
	case Left:
		if pos%boardSize == boardSize-1 {
			return 0, 0, 0, false
		}
		blank := pos + 1
		if fmtBits&(1<<uint(blank)) != 0 {
			return 0, 0, 0, false
		}
		return clearSet(fmtBits, pos, blank), 0, blank, true
	case Down:
		if pos < boardSize {
			return 0, 0, 0, false
		}
		blank := pos - boardSize
		if fmtBits&(1<<uint(blank)) != 0 {
			return 0, 0, 0, false
		}
		crossed := 0
		for s := pos - 1; s > blank; s-- {
			if fmtBits&(1<<uint(s)) != 0 {
				crossed++
			}
		}
		return clearSet(fmtBits, pos, blank), keyShiftMagnitude(crossed, true), blank, true
	case Up:
		if pos >= boardLen-boardSize {
			return 0, 0, 0, false
		}
		blank := pos + boardSize
		if fmtBits&(1<<uint(blank)) != 0 {
			return 0, 0, 0, false
		}
		crossed := 0
		for s := pos + 1; s < blank; s++ {
			if fmtBits&(1<<uint(s)) != 0 {
				crossed++
			}
		}
		return clearSet(fmtBits, pos, blank), keyShiftMagnitude(crossed, false), blank, true
	default:
		return 0, 0, 0, false
	}
}

func clearSet(bits uint32, clear, set int) uint32 {
	bits &^= 1 << uint(clear)
	bits |= 1 << uint(set)
	return bits
}

// GenerateElementTable builds every table for group size g from scratch.
// It does not touch disk; element_persist.go wraps this with a
// load-or-regenerate discipline so generation only happens once per
// group size.
func GenerateElementTable(g int) (*ElementTable, error) {
	if !supportedGroupSizes[g] {
		return nil, ErrInvalidInput
	}
	keys := genKeys(g)
	keyIndex := make(map[uint32]int, len(keys))
	for i, k := range keys {
		keyIndex[k] = i
	}

	formats := genFormats(g)
	formatIndex := make(map[uint32]int, len(formats))
	for i, f := range formats {
		formatIndex[f] = i
	}

	rotate := genRotateKeyByPos(g, keys, keyIndex)
	linkCombo, linkMove := genLinkFormats(g, formats, formatIndex)

	return &ElementTable{
		Group:           g,
		Keys2Combo:      keys,
		keyIndex:        keyIndex,
		RotateKeyByPos:  rotate,
		Formats2Combo:   formats,
		formatIndex:     formatIndex,
		LinkFormatCombo: linkCombo,
		LinkFormatMove:  linkMove,
	}, nil
}

// KeyIndex returns the key index for a packed-nibble permutation, or
// (-1,false) if it is not one of the g! valid keys.
func (t *ElementTable) KeyIndex(combo uint32) (int, bool) {
	i, ok := t.keyIndex[combo]
	return i, ok
}

// FormatIndex returns the format index for a 16-bit occupied-position
// bitmap, or (-1,false) if it has the wrong popcount for this table.
func (t *ElementTable) FormatIndex(bits uint32) (int, bool) {
	i, ok := t.formatIndex[bits]
	return i, ok
}

// rebuildIndexes recomputes keyIndex/formatIndex after a table has been
// loaded from disk (the maps themselves are never persisted).
func (t *ElementTable) rebuildIndexes() {
	t.keyIndex = make(map[uint32]int, len(t.Keys2Combo))
	for i, k := range t.Keys2Combo {
		t.keyIndex[k] = i
	}
	t.formatIndex = make(map[uint32]int, len(t.Formats2Combo))
	for i, f := range t.Formats2Combo {
		t.formatIndex[f] = i
	}
}

package puzzle

import "fmt"

// supportedGroupSizes mirrors the standardGroups table in the component
// this generator is grounded on: only these sizes get key/format tables.
var supportedGroupSizes = map[int]bool{3: true, 5: true, 6: true, 7: true, 8: true}

// GroupSpec is a disjoint subset of tile labels (1..15) whose combined
// contribution to the optimal path length is precomputed into a PDB.
type GroupSpec struct {
	Tiles []byte
}

// NewGroupSpec validates and returns a GroupSpec. Tiles must be in 1..15
// and unique, and the group size must be a supported one; the returned
// GroupSpec holds the tiles sorted ascending.
func NewGroupSpec(tiles []byte) (GroupSpec, error) {
	if !supportedGroupSizes[len(tiles)] {
		return GroupSpec{}, fmt.Errorf("%w: group size %d not in {3,5,6,7,8}", ErrInvalidInput, len(tiles))
	}
	seen := make(map[byte]bool, len(tiles))
	sorted := make([]byte, len(tiles))
	copy(sorted, tiles)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	for _, v := range sorted {
		if v < 1 || v > 15 {
			return GroupSpec{}, fmt.Errorf("%w: tile label %d out of range 1..15", ErrInvalidInput, v)
		}
		if seen[v] {
			return GroupSpec{}, fmt.Errorf("%w: duplicate tile label %d", ErrInvalidInput, v)
		}
		seen[v] = true
	}
	return GroupSpec{Tiles: sorted}, nil
}

// Size returns the number of tiles in the group.
func (g GroupSpec) Size() int { return len(g.Tiles) }

// Decomposition is a partition of the 15 non-blank tiles into disjoint
// groups, each independently pattern-database-indexed. Name identifies the
// decomposition for table persistence and lookup (e.g. "663"); it is not
// inferred from the number or size of groups, since two decompositions can
// share a group count (555 and 663 both have 3 groups) while needing
// distinct, non-colliding table files and map keys.
type Decomposition struct {
	Name   string
	Groups []GroupSpec
}

// NewDecomposition validates that the groups are pairwise disjoint, every
// tile label 1..15 is covered, and sizes sum to 15.
func NewDecomposition(name string, groups []GroupSpec) (Decomposition, error) {
	var total int
	seen := make(map[byte]bool, 15)
	for _, g := range groups {
		total += g.Size()
		for _, v := range g.Tiles {
			if seen[v] {
				return Decomposition{}, fmt.Errorf("%w: tile %d assigned to more than one group", ErrInvalidInput, v)
			}
			seen[v] = true
		}
	}
	if total != 15 {
		return Decomposition{}, fmt.Errorf("%w: group sizes sum to %d, want 15", ErrInvalidInput, total)
	}
	return Decomposition{Name: name, Groups: groups}, nil
}

func mustDecomposition(name string, sizes ...[]byte) Decomposition {
	groups := make([]GroupSpec, len(sizes))
	for i, s := range sizes {
		g, err := NewGroupSpec(s)
		if err != nil {
			panic(err)
		}
		groups[i] = g
	}
	d, err := NewDecomposition(name, groups)
	if err != nil {
		panic(err)
	}
	return d
}

// Decomposition663, Decomposition555, and Decomposition78 are the three
// standard disjoint-pattern-database partitions of the 15 numbered tiles.
var (
	Decomposition663 = mustDecomposition("663",
		[]byte{1, 2, 3, 4, 5, 6},
		[]byte{7, 8, 9, 10, 11, 12},
		[]byte{13, 14, 15},
	)
	Decomposition555 = mustDecomposition("555",
		[]byte{1, 2, 3, 4, 5},
		[]byte{6, 7, 8, 9, 10},
		[]byte{11, 12, 13, 14, 15},
	)
	Decomposition78 = mustDecomposition("78",
		[]byte{1, 2, 3, 4, 5, 6, 7},
		[]byte{8, 9, 10, 11, 12, 13, 14, 15},
	)
)

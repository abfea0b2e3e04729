package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// pdbFileName returns the on-disk file name for one decomposition's
// group value table, e.g. "pattern_pdb_663_0.db" for the first group of
// the "663" decomposition. It is keyed by the group's position within
// the decomposition rather than its size, since a decomposition such as
// "663" contains two same-size groups whose goal arrangements (and
// therefore whose value tables) differ.
func pdbFileName(decompName string, idx int) string {
	return fmt.Sprintf("pattern_pdb_%s_%d.db", decompName, idx)
}

// LoadOrBuildPDBValueTable loads a flat byte-per-state value table from
// dir, or builds it from et/group and saves it, using the same
// load-or-regenerate discipline as element tables. idx identifies the
// group's position within its decomposition for file-naming purposes.
func LoadOrBuildPDBValueTable(dir, decompName string, idx int, et *ElementTable, group GroupSpec) (*PDBValueTable, error) {
	path := filepath.Join(dir, pdbFileName(decompName, idx))
	want := len(et.Formats2Combo) * len(et.Keys2Combo)

	if data, err := readPDBFile(path, want); err == nil {
		return &PDBValueTable{Group: et.Group, KeySize: len(et.Keys2Combo), Values: data}, nil
	} else {
		log.Printf("puzzle: %v: regenerating PDB value table for group %d (%s index %d)", err, group.Size(), decompName, idx)
	}

	pv, err := BuildPDBValueTable(et, group)
	if err != nil {
		return nil, err
	}
	if err := savePDBFile(dir, path, pv.Values); err != nil {
		log.Printf("puzzle: failed to persist PDB value table for group %d (%s index %d): %v", group.Size(), decompName, idx, err)
	}
	return pv, nil
}

func readPDBFile(path string, want int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	defer f.Close()
	buf := make([]byte, want)
	if _, err := io.ReadFull(bufio.NewReader(f), buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	return buf, nil
}

func savePDBFile(dir, path string, values []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	tmp, err := os.CreateTemp(dir, "pattern_pdb_*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(values); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	return nil
}

// BuildTables loads (or generates) the element tables for every group
// size used by decomp, then the matching PDB value tables, bundling
// everything a Provider needs alongside a freshly built WD table. The
// PDB map is keyed by decomp.Name, not inferred from decomp's shape, so
// two decompositions with equal group counts (555 and 663 both have 3
// groups) never collide.
func BuildTables(dir string, decomp Decomposition) (*Tables, error) {
	sizes := make([]int, 0, len(decomp.Groups))
	for _, g := range decomp.Groups {
		sizes = append(sizes, g.Size())
	}
	elements, err := LoadOrGenerateAllElementTables(dir, sizes)
	if err != nil {
		return nil, err
	}

	pdb := make(map[int]*PDBValueTable, len(decomp.Groups))
	for i, g := range decomp.Groups {
		pv, err := LoadOrBuildPDBValueTable(dir, decomp.Name, i, elements[g.Size()], g)
		if err != nil {
			return nil, err
		}
		pdb[i] = pv
	}

	return &Tables{
		WD:       BuildWalkingDistanceTable(),
		Elements: elements,
		PDB:      map[string]map[int]*PDBValueTable{decomp.Name: pdb},
	}, nil
}

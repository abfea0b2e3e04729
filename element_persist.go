package puzzle

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// tableDir is the default persistence directory, auto-created if
// absent.
const tableDir = "database"

// elementFileName returns the on-disk file name for group g's tables.
func elementFileName(g int) string {
	return fmt.Sprintf("pattern_element_%d.db", g)
}

// LoadOrGenerateElementTable loads group g's tables from dir, falling
// back to GenerateElementTable and an atomic re-save on any read error
// or short read (ErrTableIO), in a read-existing-or-rebuild discipline.
func LoadOrGenerateElementTable(dir string, g int) (*ElementTable, error) {
	path := filepath.Join(dir, elementFileName(g))
	t, err := loadElementTable(path, g)
	if err == nil {
		return t, nil
	}
	log.Printf("puzzle: %v: regenerating element table for group %d", err, g)

	t, genErr := GenerateElementTable(g)
	if genErr != nil {
		return nil, genErr
	}
	if saveErr := saveElementTable(dir, path, t); saveErr != nil {
		log.Printf("puzzle: failed to persist element table for group %d: %v", g, saveErr)
	}
	return t, nil
}

func loadElementTable(path string, g int) (*ElementTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	ms := maxShift(g)
	keySize := factorial(g)
	formatSize := binomial(boardLen, g)

	keys, err := readInt32Section(r, keySize)
	if err != nil {
		return nil, fmt.Errorf("%w: keys2combo: %v", ErrTableIO, err)
	}
	rotate, err := readInt32Section(r, keySize*g*2*ms)
	if err != nil {
		return nil, fmt.Errorf("%w: rotateKeyByPos: %v", ErrTableIO, err)
	}
	formats, err := readInt32Section(r, formatSize)
	if err != nil {
		return nil, fmt.Errorf("%w: formats2combo: %v", ErrTableIO, err)
	}
	linkMove, err := readInt32Section(r, formatSize*64)
	if err != nil {
		return nil, fmt.Errorf("%w: linkFormatMove: %v", ErrTableIO, err)
	}
	linkCombo, err := readInt32Section(r, formatSize*g*directionCount)
	if err != nil {
		return nil, fmt.Errorf("%w: linkFormatCombo: %v", ErrTableIO, err)
	}

	t := &ElementTable{
		Group:           g,
		Keys2Combo:      keys,
		RotateKeyByPos:  toInt32(rotate),
		Formats2Combo:   formats,
		LinkFormatMove:  toInt32(linkMove),
		LinkFormatCombo: toInt32(linkCombo),
	}
	t.rebuildIndexes()
	return t, nil
}

func readInt32Section(r io.Reader, count int) ([]uint32, error) {
	buf := make([]byte, 4*count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(buf[i*4:])
	}
	return out, nil
}

// saveElementTable writes every section for t into a temp file in dir and
// renames it over path only on full success, so a crash mid-write never
// leaves a truncated table that a later load would mistake for valid.
func saveElementTable(dir, path string, t *ElementTable) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	tmp, err := os.CreateTemp(dir, "pattern_element_*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTableIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := bufio.NewWriter(tmp)
	sections := [][]int32{
		toInt32(t.Keys2Combo), t.RotateKeyByPos,
		toInt32(t.Formats2Combo), t.LinkFormatMove, t.LinkFormatCombo,
	}
	for _, sec := range sections {
		if err := writeInt32Section(w, sec); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: %v", ErrTableIO, err)
		}
	}
	if err := w.Flush(); err != nil {
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

func toInt32(vals []uint32) []int32 {
	out := make([]int32, len(vals))
	for i, v := range vals {
		out[i] = int32(v)
	}
	return out
}

func writeInt32Section(w io.Writer, vals []int32) error {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(v))
	}
	_, err := w.Write(buf)
	return err
}

// LoadOrGenerateAllElementTables loads (or regenerates) every table in
// groups, returning a map keyed by group size.
func LoadOrGenerateAllElementTables(dir string, groups []int) (map[int]*ElementTable, error) {
	if dir == "" {
		dir = tableDir
	}
	out := make(map[int]*ElementTable, len(groups))
	for _, g := range groups {
		t, err := LoadOrGenerateElementTable(dir, g)
		if err != nil {
			return nil, err
		}
		out[g] = t
	}
	return out, nil
}

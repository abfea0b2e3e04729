package puzzle

import "testing"

func TestBuildPDBValueTableGoalIsZero(t *testing.T) {
	group, err := NewGroupSpec([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("NewGroupSpec: %v", err)
	}
	et, err := GenerateElementTable(group.Size())
	if err != nil {
		t.Fatalf("GenerateElementTable: %v", err)
	}
	pdb, err := BuildPDBValueTable(et, group)
	if err != nil {
		t.Fatalf("BuildPDBValueTable: %v", err)
	}
	if pdb.Lookup(pdb.goalComp/pdb.KeySize, pdb.goalComp%pdb.KeySize) != 0 {
		t.Error("goal composite state should have distance 0")
	}
}

func TestBuildPDBValueTableRejectsSizeMismatch(t *testing.T) {
	group3, err := NewGroupSpec([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("NewGroupSpec: %v", err)
	}
	et5, err := GenerateElementTable(5)
	if err != nil {
		t.Fatalf("GenerateElementTable: %v", err)
	}
	if _, err := BuildPDBValueTable(et5, group3); err == nil {
		t.Error("expected error for group size mismatch against element table")
	}
}

func TestBuildPDBValueTableAllFormatsReachable(t *testing.T) {
	group, err := NewGroupSpec([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("NewGroupSpec: %v", err)
	}
	et, err := GenerateElementTable(group.Size())
	if err != nil {
		t.Fatalf("GenerateElementTable: %v", err)
	}
	pdb, err := BuildPDBValueTable(et, group)
	if err != nil {
		t.Fatalf("BuildPDBValueTable: %v", err)
	}
	unreached := 0
	for _, v := range pdb.Values {
		if v == pdbUnreached {
			unreached++
		}
	}
	if unreached != 0 {
		t.Errorf("%d of %d composite states unreached, want all reachable", unreached, len(pdb.Values))
	}
}

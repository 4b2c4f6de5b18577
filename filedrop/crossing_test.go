package filedrop

import "testing"

func TestWalkTable_IDsAreUniqueAndNonZero(t *testing.T) {
	var tbl walkTable
	tbl.walks = make(map[uintptr]childWalk)
	tbl.next = ^uintptr(0)

	a := tbl.add(childWalk{root: 1})
	b := tbl.add(childWalk{root: 2})
	if a == 0 || b == 0 {
		t.Fatalf("zero id handed out: %d %d", a, b)
	}
	if a == b {
		t.Fatalf("duplicate id %d", a)
	}
}

func TestWalkTable_VisitChild(t *testing.T) {
	var tbl walkTable
	tbl.walks = make(map[uintptr]childWalk)

	var seen []Handle
	id := tbl.add(childWalk{root: 0x10, visit: func(child Handle) bool {
		seen = append(seen, child)
		return child != 0x23
	}})

	if got := tbl.visitChild(id, 0x21, 0x10); got != 1 {
		t.Errorf("direct child: expected continue, got %d", got)
	}
	if got := tbl.visitChild(id, 0x31, 0x21); got != 1 {
		t.Errorf("grandchild: expected continue, got %d", got)
	}
	if got := tbl.visitChild(id, 0x23, 0x10); got != 0 {
		t.Errorf("visitor stop: expected 0, got %d", got)
	}
	if len(seen) != 2 || seen[0] != 0x21 || seen[1] != 0x23 {
		t.Errorf("expected only direct children visited, got %v", seen)
	}

	tbl.remove(id)
	if got := tbl.visitChild(id, 0x22, 0x10); got != 0 {
		t.Errorf("removed walk: expected 0, got %d", got)
	}
	if len(seen) != 2 {
		t.Errorf("removed walk still visited: %v", seen)
	}
}

func TestWalkTable_UnknownID(t *testing.T) {
	if got := walks.visitChild(0, 0x21, 0x10); got != 0 {
		t.Errorf("expected 0 for an unknown walk, got %d", got)
	}
}

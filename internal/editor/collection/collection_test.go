package collection

import "testing"

func TestAppendAssignsDenseIndices(t *testing.T) {
	e := New[string]()
	for i, v := range []string{"a", "b", "c"} {
		if got := e.Append(v); got != i {
			t.Fatalf("Append(%q) = %d, want %d", v, got, i)
		}
	}
	if e.Len() != 3 {
		t.Fatalf("Len = %d, want 3", e.Len())
	}
}

func TestRemoveAtReindexesSurvivors(t *testing.T) {
	e := New[string]()
	for _, v := range []string{"a", "b", "c", "d"} {
		e.Append(v)
	}

	e.RemoveAt(1)

	rows := e.Rows()
	wantValues := []string{"a", "c", "d"}
	wantLabels := []string{"#1", "#2", "#3"}
	if len(rows) != len(wantValues) {
		t.Fatalf("got %d rows, want %d", len(rows), len(wantValues))
	}
	for i, r := range rows {
		if r.Index != i {
			t.Errorf("row %d: Index = %d, want %d", i, r.Index, i)
		}
		if r.Label != wantLabels[i] {
			t.Errorf("row %d: Label = %q, want %q", i, r.Label, wantLabels[i])
		}
		if r.Value != wantValues[i] {
			t.Errorf("row %d: Value = %q, want %q", i, r.Value, wantValues[i])
		}
	}
}

// Indices must stay a gapless 0..n-1 relabeling through any sequence of
// appends and removals.
func TestReindexDensityUnderMixedOps(t *testing.T) {
	e := New[int]()
	next := 0
	ops := []struct {
		remove bool
		at     int
	}{
		{false, 0}, {false, 0}, {false, 0}, {true, 1},
		{false, 0}, {true, 0}, {true, 5}, // out of range: no-op
		{false, 0}, {false, 0}, {true, 2}, {true, 0},
	}
	for _, op := range ops {
		if op.remove {
			e.RemoveAt(op.at)
		} else {
			e.Append(next)
			next++
		}
		for i, r := range e.Rows() {
			if r.Index != i {
				t.Fatalf("after op %+v: row %d has index %d", op, i, r.Index)
			}
		}
	}
}

func TestRemoveAtOutOfRangeIsNoop(t *testing.T) {
	e := New[string]()
	e.Append("only")
	e.RemoveAt(-1)
	e.RemoveAt(3)
	if e.Len() != 1 {
		t.Fatalf("Len = %d, want 1", e.Len())
	}
}

func TestCollectFiltersInDisplayOrder(t *testing.T) {
	e := New[int]()
	for _, v := range []int{3, 0, 7, 0, 9} {
		e.Append(v)
	}
	got := e.Collect(func(v int) bool { return v != 0 })
	want := []int{3, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("Collect returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Collect returned %v, want %v", got, want)
		}
	}
	// filtered rows remain in the working copy
	if e.Len() != 5 {
		t.Fatalf("Len after Collect = %d, want 5", e.Len())
	}
}

func TestUpdateAndAt(t *testing.T) {
	e := New[string]()
	e.Append("old")
	e.Update(0, "new")
	if v, ok := e.At(0); !ok || v != "new" {
		t.Fatalf("At(0) = %q, %v", v, ok)
	}
	if _, ok := e.At(1); ok {
		t.Fatal("At(1) should report missing row")
	}
}

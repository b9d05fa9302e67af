package op

import (
	"testing"

	"github.com/tensora-ml/tensora/internal/tensor"
)

func TestBuildRollIndex(t *testing.T) {
	// 2x3, shift 1 along the last axis: destination column j reads
	// source column (j + 2) % 3.
	shape := tensor.Shape{2, 3}
	table := make([]int, 6)
	buildRollIndex(shape, []int{0, 1}, table)

	want := []int{2, 0, 1, 5, 3, 4}
	for i := range want {
		if table[i] != want[i] {
			t.Errorf("table[%d] = %d, want %d", i, table[i], want[i])
		}
	}
}

func TestBuildRollIndex_IsPermutation(t *testing.T) {
	shape := tensor.Shape{3, 4, 5}
	table := make([]int, shape.NumElements())
	buildRollIndex(shape, []int{2, 3, 1}, table)

	seen := make([]bool, len(table))
	for i, src := range table {
		if src < 0 || src >= len(table) {
			t.Fatalf("table[%d] = %d out of range", i, src)
		}
		if seen[src] {
			t.Fatalf("source offset %d referenced twice", src)
		}
		seen[src] = true
	}
}

func TestWorkspaceIndexTable(t *testing.T) {
	w := &Workspace{}

	a := w.IndexTable(10)
	if len(a) != 10 {
		t.Fatalf("len = %d, want 10", len(a))
	}

	// A smaller request reuses the backing array.
	b := w.IndexTable(5)
	if len(b) != 5 {
		t.Fatalf("len = %d, want 5", len(b))
	}
	if &a[0] != &b[0] {
		t.Error("smaller table should reuse scratch memory")
	}
}

func TestWorkspaceIndexTable_NilWorkspace(t *testing.T) {
	var w *Workspace
	table := w.IndexTable(4)
	if len(table) != 4 {
		t.Fatalf("len = %d, want 4", len(table))
	}
}

package toolbox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBatchFromRows(t *testing.T) {
	b := BatchFromRows([][]float32{{1, 2, 3}, {4, 5, 6}})

	want := &Batch{
		V:     []float32{1, 2, 3, 4, 5, 6},
		Shape: []int{2, 3},
	}
	if diff := cmp.Diff(b, want); diff != "" {
		t.Fatalf("Wrong batch; diff (-got +want)\n%s", diff)
	}

	if got := b.At2(1, 0); got != 4 {
		t.Errorf("At2(1, 0) got %v, want 4", got)
	}
}

func TestBatchRowSharesStorage(t *testing.T) {
	b := MakeBatch(2, 2)
	b.Row(1)[0] = 7
	b.Set2(0, 1, 3)

	if diff := cmp.Diff(b.V, []float32{0, 3, 7, 0}); diff != "" {
		t.Errorf("Wrong storage; diff (-got +want)\n%s", diff)
	}

	// Appending to a row must not spill into the next one.
	_ = append(b.Row(0), 9)
	if b.At2(1, 0) != 7 {
		t.Errorf("append to row 0 overwrote row 1")
	}
}

func TestBatchShapePanics(t *testing.T) {
	require.Panics(t, func() { MakeBatch(-1, 2) })
	require.Panics(t, func() { BatchFromRows([][]float32{{1, 2}, {3}}) })
	require.Panics(t, func() { (&Batch{V: []float32{1}, Shape: []int{1}}).Rows() })
}

func TestEmptyBatch(t *testing.T) {
	b := BatchFromRows(nil)
	if b.Rows() != 0 || b.Cols() != 0 {
		t.Errorf("got shape %v, want [0 0]", b.Shape)
	}
}

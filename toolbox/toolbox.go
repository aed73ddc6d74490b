// Package toolbox evaluates feed-forward neural networks.
//
// A Network is assembled with a NetworkBuilder, either layer by layer or from
// a JSON topology description, and then evaluated with Network.Calc:
//
//	b, err := toolbox.NewNetworkBuilder().ParseJSONSource(src)
//	if err != nil { ... }
//	net, err := b.WithActivation(toolbox.SoftSign{}).Build()
//	if err != nil { ... }
//	out, err := net.Calc([]float32{3, 1})
package toolbox

import "fmt"

// Batch is a row-major 2-D array of float32, one sample per row.
type Batch struct {
	V     []float32
	Shape []int
}

func MakeBatch(rows, cols int) *Batch {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("invalid shape: [%d %d]", rows, cols))
	}

	return &Batch{
		V:     make([]float32, rows*cols),
		Shape: []int{rows, cols},
	}
}

// BatchFromRows copies rows into a new Batch.  All rows must have the same
// length.
func BatchFromRows(rows [][]float32) *Batch {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}

	b := MakeBatch(len(rows), cols)
	for k, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("row %d has length %d, want %d", k, len(row), cols))
		}
		copy(b.Row(k), row)
	}
	return b
}

func (b *Batch) Rows() int {
	b.checkShape()
	return b.Shape[0]
}

func (b *Batch) Cols() int {
	b.checkShape()
	return b.Shape[1]
}

func (b *Batch) checkShape() {
	if len(b.Shape) != 2 {
		panic("Batch must have len(shape) == 2")
	}
	if len(b.V) != b.Shape[0]*b.Shape[1] {
		panic("len(V) != shape[0] * shape[1]")
	}
}

// Row returns row k.  The result shares storage with the batch.
func (b *Batch) Row(k int) []float32 {
	cols := b.Cols()
	return b.V[k*cols : k*cols+cols : k*cols+cols]
}

func (b *Batch) At2(idx0, idx1 int) float32 {
	return b.V[idx0*b.Cols()+idx1]
}

func (b *Batch) Set2(idx0, idx1 int, v float32) {
	b.V[idx0*b.Cols()+idx1] = v
}

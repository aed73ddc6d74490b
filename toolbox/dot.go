package toolbox

// denseDot sums x[i]*w[i] left to right with a single accumulator.  Callers
// check lengths.
func denseDot(x []float32, w []float32) float32 {
	var sum float32
	for i := range len(x) {
		sum += x[i] * w[i]
	}
	return sum
}

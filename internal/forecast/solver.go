package forecast

import (
	"errors"
	"math"
)

// solveLinear solves a·x = b by Gaussian elimination with partial
// pivoting. The ridge terms on the diagonal keep the system away from
// singularity for any sane input.
func solveLinear(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, errors.New("mismatched system dimensions")
	}

	// augmented working copy
	work := make([][]float64, n)
	for i := range work {
		work[i] = make([]float64, n+1)
		copy(work[i], a[i])
		work[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(work[row][col]) > math.Abs(work[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(work[pivot][col]) < 1e-12 {
			return nil, errors.New("singular system")
		}
		work[col], work[pivot] = work[pivot], work[col]

		for row := col + 1; row < n; row++ {
			factor := work[row][col] / work[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				work[row][k] -= factor * work[col][k]
			}
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := work[row][n]
		for col := row + 1; col < n; col++ {
			sum -= work[row][col] * x[col]
		}
		x[row] = sum / work[row][row]
	}
	return x, nil
}

package estimator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SelectColumns returns a new matrix holding the columns of X whose mask entry is true.
func SelectColumns(X mat.Matrix, mask []bool) (mat.Matrix, error) {
	rows, cols := X.Dims()
	if cols != len(mask) {
		return nil, fmt.Errorf("X has %d features, but the selector was fitted with %d", cols, len(mask))
	}
	keep := make([]int, 0, cols)
	for j, retained := range mask {
		if retained {
			keep = append(keep, j)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("no features were selected: either the data is too noisy or the selection test too strict")
	}
	out := mat.NewDense(rows, len(keep), nil)
	for i := 0; i < rows; i++ {
		for k, j := range keep {
			out.Set(i, k, X.At(i, j))
		}
	}
	return out, nil
}

func columnMeans(X mat.Matrix) []float64 {
	rows, cols := X.Dims()
	means := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += X.At(i, j)
		}
		means[j] = sum / float64(rows)
	}
	return means
}

// columnVariances returns the population variance of every column.
func columnVariances(X mat.Matrix) []float64 {
	rows, cols := X.Dims()
	means := columnMeans(X)
	vars := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var ss float64
		for i := 0; i < rows; i++ {
			d := X.At(i, j) - means[j]
			ss += d * d
		}
		vars[j] = ss / float64(rows)
	}
	return vars
}

// target extracts the first column of y as a slice.
func target(y mat.Matrix, rows int) ([]float64, error) {
	if y == nil {
		return nil, fmt.Errorf("target y is required")
	}
	yr, _ := y.Dims()
	if yr != rows {
		return nil, fmt.Errorf("X has %d samples, but y has %d", rows, yr)
	}
	out := make([]float64, yr)
	for i := range out {
		out[i] = y.At(i, 0)
	}
	return out, nil
}

func pearson(X mat.Matrix, j int, y []float64) float64 {
	rows, _ := X.Dims()
	var mx, my float64
	for i := 0; i < rows; i++ {
		mx += X.At(i, j)
		my += y[i]
	}
	mx /= float64(rows)
	my /= float64(rows)
	var sxy, sxx, syy float64
	for i := 0; i < rows; i++ {
		dx, dy := X.At(i, j)-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

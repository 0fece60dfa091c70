package estimator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// StandardScaler centers every column on its mean and scales it to unit variance.
// Constant columns are only centered.
type StandardScaler struct {
	Mean  []float64 `json:"mean_,omitempty"`
	Scale []float64 `json:"scale_,omitempty"`
}

func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

func (s *StandardScaler) ClassName() string {
	return "sklearn.preprocessing._data.StandardScaler"
}

func (s *StandardScaler) Fit(X, _ mat.Matrix, _ FitParams) error {
	if rows, _ := X.Dims(); rows == 0 {
		return fmt.Errorf("StandardScaler: cannot fit on an empty matrix")
	}
	s.Mean = columnMeans(X)
	variances := columnVariances(X)
	s.Scale = make([]float64, len(variances))
	for j, v := range variances {
		if v == 0 {
			s.Scale[j] = 1
		} else {
			s.Scale[j] = math.Sqrt(v)
		}
	}
	return nil
}

func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if s.Mean == nil {
		return nil, ErrNotFitted
	}
	rows, cols := X.Dims()
	if cols != len(s.Mean) {
		return nil, fmt.Errorf("StandardScaler: X has %d features, but was fitted with %d", cols, len(s.Mean))
	}
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)
	return out, nil
}

func (s *StandardScaler) Attribute(name string) (interface{}, error) {
	if s.Mean == nil {
		return nil, ErrNotFitted
	}
	switch name {
	case "mean_":
		return cloneFloats(s.Mean), nil
	case "scale_":
		return cloneFloats(s.Scale), nil
	}
	return nil, ErrNoAttribute
}

var _ Transformer = (*StandardScaler)(nil)

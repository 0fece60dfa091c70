package estimator

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression is an ordinary least squares model with an intercept.
type LinearRegression struct {
	Coef      []float64 `json:"coef_,omitempty"`
	Intercept float64   `json:"intercept_"`
	fitted    bool
}

func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

func (l *LinearRegression) ClassName() string {
	return "sklearn.linear_model._base.LinearRegression"
}

func (l *LinearRegression) Fit(X, y mat.Matrix, _ FitParams) error {
	rows, cols := X.Dims()
	yv, err := target(y, rows)
	if err != nil {
		return fmt.Errorf("LinearRegression: %w", err)
	}
	if rows <= cols {
		return fmt.Errorf("LinearRegression: need more samples (%d) than features (%d)", rows, cols)
	}
	design := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		design.Set(i, 0, 1)
		for j := 0; j < cols; j++ {
			design.Set(i, j+1, X.At(i, j))
		}
	}
	var beta mat.Dense
	if err := beta.Solve(design, mat.NewVecDense(rows, yv)); err != nil {
		return fmt.Errorf("LinearRegression: least squares solve failed: %w", err)
	}
	l.Intercept = beta.At(0, 0)
	l.Coef = make([]float64, cols)
	for j := range l.Coef {
		l.Coef[j] = beta.At(j+1, 0)
	}
	l.fitted = true
	return nil
}

func (l *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !l.fitted {
		return nil, ErrNotFitted
	}
	rows, cols := X.Dims()
	if cols != len(l.Coef) {
		return nil, fmt.Errorf("LinearRegression: X has %d features, but was fitted with %d", cols, len(l.Coef))
	}
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		v := l.Intercept
		for j, c := range l.Coef {
			v += c * X.At(i, j)
		}
		out.Set(i, 0, v)
	}
	return out, nil
}

func (l *LinearRegression) Attribute(name string) (interface{}, error) {
	if !l.fitted {
		return nil, ErrNotFitted
	}
	switch name {
	case "coef_":
		return cloneFloats(l.Coef), nil
	case "intercept_":
		return l.Intercept, nil
	}
	return nil, ErrNoAttribute
}

// DummyRegressor always predicts the training mean of the target.
type DummyRegressor struct {
	Constant float64 `json:"constant_"`
	fitted   bool
}

func NewDummyRegressor() *DummyRegressor {
	return &DummyRegressor{}
}

func (d *DummyRegressor) ClassName() string {
	return "sklearn.dummy.DummyRegressor"
}

func (d *DummyRegressor) Params() map[string]interface{} {
	return map[string]interface{}{"strategy": "mean"}
}

func (d *DummyRegressor) Fit(X, y mat.Matrix, _ FitParams) error {
	rows, _ := X.Dims()
	yv, err := target(y, rows)
	if err != nil {
		return fmt.Errorf("DummyRegressor: %w", err)
	}
	if len(yv) == 0 {
		return fmt.Errorf("DummyRegressor: cannot fit on an empty target")
	}
	var sum float64
	for _, v := range yv {
		sum += v
	}
	d.Constant = sum / float64(len(yv))
	d.fitted = true
	return nil
}

func (d *DummyRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !d.fitted {
		return nil, ErrNotFitted
	}
	rows, _ := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, d.Constant)
	}
	return out, nil
}

func (d *DummyRegressor) Attribute(name string) (interface{}, error) {
	if !d.fitted {
		return nil, ErrNotFitted
	}
	if name == "constant_" {
		return d.Constant, nil
	}
	return nil, ErrNoAttribute
}

var (
	_ Predictor         = (*LinearRegression)(nil)
	_ AttributeProvider = (*LinearRegression)(nil)
	_ Predictor         = (*DummyRegressor)(nil)
)

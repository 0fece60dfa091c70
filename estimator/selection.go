package estimator

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// VarianceThreshold drops every column whose training variance does not exceed Threshold.
type VarianceThreshold struct {
	Threshold float64   `json:"threshold"`
	Variances []float64 `json:"variances_,omitempty"`
}

func NewVarianceThreshold(threshold float64) *VarianceThreshold {
	return &VarianceThreshold{Threshold: threshold}
}

func (v *VarianceThreshold) ClassName() string {
	return "sklearn.feature_selection._variance_threshold.VarianceThreshold"
}

func (v *VarianceThreshold) Params() map[string]interface{} {
	return map[string]interface{}{"threshold": v.Threshold}
}

func (v *VarianceThreshold) Fit(X, _ mat.Matrix, _ FitParams) error {
	if rows, _ := X.Dims(); rows == 0 {
		return fmt.Errorf("VarianceThreshold: cannot fit on an empty matrix")
	}
	variances := columnVariances(X)
	for _, value := range variances {
		if value > v.Threshold {
			v.Variances = variances
			return nil
		}
	}
	return fmt.Errorf("VarianceThreshold: no feature in X meets the variance threshold %.5f", v.Threshold)
}

func (v *VarianceThreshold) SupportMask() ([]bool, error) {
	if v.Variances == nil {
		return nil, ErrNotFitted
	}
	mask := make([]bool, len(v.Variances))
	for j, value := range v.Variances {
		mask[j] = value > v.Threshold
	}
	return mask, nil
}

func (v *VarianceThreshold) Transform(X mat.Matrix) (mat.Matrix, error) {
	mask, err := v.SupportMask()
	if err != nil {
		return nil, err
	}
	return SelectColumns(X, mask)
}

// SelectKBest keeps the K columns with the highest absolute correlation to the target.
// Ties are broken in favour of the lower column index.
type SelectKBest struct {
	K      int       `json:"k"`
	Scores []float64 `json:"scores_,omitempty"`
}

func NewSelectKBest(k int) *SelectKBest {
	return &SelectKBest{K: k}
}

func (s *SelectKBest) ClassName() string {
	return "sklearn.feature_selection._univariate_selection.SelectKBest"
}

func (s *SelectKBest) Params() map[string]interface{} {
	return map[string]interface{}{"k": s.K}
}

func (s *SelectKBest) Fit(X, y mat.Matrix, _ FitParams) error {
	rows, cols := X.Dims()
	if s.K <= 0 || s.K > cols {
		return fmt.Errorf("SelectKBest: k should be in [1, %d]; got %d", cols, s.K)
	}
	yv, err := target(y, rows)
	if err != nil {
		return fmt.Errorf("SelectKBest: %w", err)
	}
	scores := make([]float64, cols)
	for j := range scores {
		scores[j] = math.Abs(pearson(X, j, yv))
	}
	s.Scores = scores
	return nil
}

func (s *SelectKBest) SupportMask() ([]bool, error) {
	if s.Scores == nil {
		return nil, ErrNotFitted
	}
	order := make([]int, len(s.Scores))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return s.Scores[order[a]] > s.Scores[order[b]] })
	mask := make([]bool, len(s.Scores))
	for _, j := range order[:s.K] {
		mask[j] = true
	}
	return mask, nil
}

func (s *SelectKBest) Transform(X mat.Matrix) (mat.Matrix, error) {
	mask, err := s.SupportMask()
	if err != nil {
		return nil, err
	}
	return SelectColumns(X, mask)
}

var (
	_ Selector = (*VarianceThreshold)(nil)
	_ Selector = (*SelectKBest)(nil)
)

// Package estimator is the object model the rewriter and the converter operate
// on. It mirrors the fit/transform/predict contracts of the scoring library the
// external converter understands, over gonum matrices.
package estimator

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotFitted is returned when fitted state is requested before Fit.
	ErrNotFitted = errors.New("estimator is not fitted yet")
	// ErrNoAttribute is returned for attribute names an estimator does not expose.
	ErrNoAttribute = errors.New("estimator has no such attribute")
)

// FitParams carries optional estimator-specific fit arguments.
type FitParams map[string]interface{}

// Component is any element that can appear in a pipeline. ClassName is the
// fully qualified identifier the external converter knows the element by.
type Component interface {
	ClassName() string
}

// Estimator is a Component that learns from data.
type Estimator interface {
	Component
	Fit(X, y mat.Matrix, params FitParams) error
}

// Transformer maps an input matrix to an output matrix.
type Transformer interface {
	Estimator
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// Predictor produces one prediction row per input row.
type Predictor interface {
	Estimator
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// ProbabilisticPredictor also produces class membership probabilities.
type ProbabilisticPredictor interface {
	Predictor
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// Selector is a Transformer that keeps a subset of its input columns.
// SupportMask has one entry per input column seen at fit time, true meaning
// the column is retained.
type Selector interface {
	Transformer
	SupportMask() ([]bool, error)
}

// AttributeProvider exposes fitted attributes by their conventional names
// (coef_, intercept_, feature_importances_ and so on).
type AttributeProvider interface {
	Attribute(name string) (interface{}, error)
}

// ModelDownloader is implemented by estimators that delegate to an engine
// whose fitted model must be exported as a separate packaged artifact.
// DownloadModel writes the artifact into dir and returns its path;
// SetModelPath records where the converter will find it.
type ModelDownloader interface {
	DownloadModel(dir string) (string, error)
	SetModelPath(path string)
}

// Params is implemented by components that expose their hyper-parameters,
// used for textual representations.
type Params interface {
	Params() map[string]interface{}
}

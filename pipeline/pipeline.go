package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/mensylisir/pmmlkit/estimator"
)

// Pipeline chains transformers and a final estimator. Step order is execution
// order; the last step is the final estimator.
type Pipeline struct {
	Steps []Step `json:"steps"`
}

// New validates the steps and builds a Pipeline.
func New(steps ...Step) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("pipeline: at least one step is required")
	}
	if err := validateStepNames("pipeline", steps); err != nil {
		return nil, err
	}
	s := make([]Step, len(steps))
	copy(s, steps)
	return &Pipeline{Steps: s}, nil
}

func (p *Pipeline) ClassName() string {
	return "sklearn.pipeline.Pipeline"
}

// FinalEstimator returns the component of the last step, or nil for an empty pipeline.
func (p *Pipeline) FinalEstimator() estimator.Component {
	if len(p.Steps) == 0 {
		return nil
	}
	return p.Steps[len(p.Steps)-1].Component
}

// Step looks a step up by name.
func (p *Pipeline) Step(name string) (estimator.Component, bool) {
	for _, s := range p.Steps {
		if s.Name == name {
			return s.Component, true
		}
	}
	return nil, false
}

func (p *Pipeline) Children() []estimator.Component {
	return stepChildren(p.Steps)
}

func (p *Pipeline) WithChildren(children []estimator.Component) estimator.Component {
	mustHaveChildren(p, len(p.Steps), children)
	return &Pipeline{Steps: withStepChildren(p.Steps, children)}
}

// Fit fits every intermediate step on the output of the previous one, then the
// final estimator. Nil intermediate steps pass data through unchanged.
func (p *Pipeline) Fit(X, y mat.Matrix, params estimator.FitParams) error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("pipeline: nothing to fit")
	}
	Xt, err := p.fitTransformIntermediates(X, y, params)
	if err != nil {
		return err
	}
	last := p.Steps[len(p.Steps)-1]
	if last.Component == nil {
		return nil
	}
	est, ok := last.Component.(estimator.Estimator)
	if !ok {
		return fmt.Errorf("pipeline: final step %q (%s) is not an estimator", last.Name, last.Component.ClassName())
	}
	return errors.Wrapf(est.Fit(Xt, y, params), "failed to fit step %q", last.Name)
}

func (p *Pipeline) fitTransformIntermediates(X, y mat.Matrix, params estimator.FitParams) (mat.Matrix, error) {
	Xt := X
	for _, s := range p.Steps[:len(p.Steps)-1] {
		if s.Component == nil {
			continue
		}
		tr, ok := s.Component.(estimator.Transformer)
		if !ok {
			return nil, fmt.Errorf("pipeline: intermediate step %q (%s) is not a transformer", s.Name, s.Component.ClassName())
		}
		if err := tr.Fit(Xt, y, params); err != nil {
			return nil, errors.Wrapf(err, "failed to fit step %q", s.Name)
		}
		out, err := tr.Transform(Xt)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to transform at step %q", s.Name)
		}
		Xt = out
	}
	return Xt, nil
}

func (p *Pipeline) transformIntermediates(X mat.Matrix) (mat.Matrix, error) {
	Xt := X
	for _, s := range p.Steps[:len(p.Steps)-1] {
		if s.Component == nil {
			continue
		}
		tr, ok := s.Component.(estimator.Transformer)
		if !ok {
			return nil, fmt.Errorf("pipeline: intermediate step %q (%s) is not a transformer", s.Name, s.Component.ClassName())
		}
		out, err := tr.Transform(Xt)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to transform at step %q", s.Name)
		}
		Xt = out
	}
	return Xt, nil
}

// Transform applies every step, the final one included, as a transformer.
func (p *Pipeline) Transform(X mat.Matrix) (mat.Matrix, error) {
	if len(p.Steps) == 0 {
		return X, nil
	}
	Xt, err := p.transformIntermediates(X)
	if err != nil {
		return nil, err
	}
	last := p.Steps[len(p.Steps)-1]
	if last.Component == nil {
		return Xt, nil
	}
	tr, ok := last.Component.(estimator.Transformer)
	if !ok {
		return nil, fmt.Errorf("pipeline: final step %q (%s) is not a transformer", last.Name, last.Component.ClassName())
	}
	return tr.Transform(Xt)
}

// Predict transforms X through the intermediate steps and predicts with the final one.
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("pipeline: nothing to predict with")
	}
	Xt, err := p.transformIntermediates(X)
	if err != nil {
		return nil, err
	}
	last := p.Steps[len(p.Steps)-1]
	pr, ok := last.Component.(estimator.Predictor)
	if !ok {
		return nil, fmt.Errorf("pipeline: final step %q is not a predictor", last.Name)
	}
	return pr.Predict(Xt)
}

var (
	_ Composite           = (*Pipeline)(nil)
	_ estimator.Predictor = (*Pipeline)(nil)
)

package rewrite

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mensylisir/pmmlkit/estimator"
	"github.com/mensylisir/pmmlkit/pipeline"
)

// SelectorProxy wraps a fitted selector and keeps a copy of its support mask,
// which is all the converter needs to reproduce the selection.
//
// The proxy is itself a Transformer but not a Selector, so a second Normalize
// pass leaves it alone.
type SelectorProxy struct {
	Selector estimator.Selector
	mask     []bool
}

// NewSelectorProxy wraps s. An unfitted selector yields a proxy without a mask.
func NewSelectorProxy(s estimator.Selector) *SelectorProxy {
	p := &SelectorProxy{Selector: s}
	p.copyMask()
	return p
}

func (p *SelectorProxy) copyMask() {
	mask, err := p.Selector.SupportMask()
	if err != nil {
		return
	}
	p.mask = append([]bool(nil), mask...)
}

func (p *SelectorProxy) ClassName() string {
	return "sklearn2pmml.SelectorProxy"
}

// Fit fits the wrapped selector and refreshes the stored mask.
func (p *SelectorProxy) Fit(X, y mat.Matrix, params estimator.FitParams) error {
	if err := p.Selector.Fit(X, y, params); err != nil {
		return err
	}
	p.copyMask()
	return nil
}

func (p *SelectorProxy) Transform(X mat.Matrix) (mat.Matrix, error) {
	return p.Selector.Transform(X)
}

// Mask returns a copy of the stored support mask. The second result is false
// while the proxy has not seen a fitted selector.
func (p *SelectorProxy) Mask() ([]bool, bool) {
	if p.mask == nil {
		return nil, false
	}
	return append([]bool(nil), p.mask...), true
}

func (p *SelectorProxy) Params() map[string]interface{} {
	return map[string]interface{}{"selector": p.Selector}
}

func (p *SelectorProxy) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Selector    interface{} `json:"selector"`
		SupportMask []bool      `json:"support_mask_,omitempty"`
	}{
		Selector:    pipeline.Wrap(p.Selector),
		SupportMask: p.mask,
	})
}

// DefaultProxyAttributes are the attributes an EstimatorProxy copies when none
// are named.
var DefaultProxyAttributes = []string{"feature_importances_"}

// EstimatorProxy wraps an estimator whose fit runs elsewhere and copies the
// named fitted attributes onto itself after every Fit, so they can be exported
// as if the proxy had computed them.
type EstimatorProxy struct {
	Estimator estimator.Estimator
	AttrNames []string
	attrs     map[string]interface{}
}

func NewEstimatorProxy(est estimator.Estimator, attrNames ...string) *EstimatorProxy {
	if len(attrNames) == 0 {
		attrNames = DefaultProxyAttributes
	}
	p := &EstimatorProxy{
		Estimator: est,
		AttrNames: append([]string(nil), attrNames...),
	}
	p.copyAttrs()
	return p
}

// copyAttrs replaces the snapshot with every named attribute the estimator
// currently exposes. Missing or unfitted attributes are skipped.
func (p *EstimatorProxy) copyAttrs() {
	attrs := make(map[string]interface{}, len(p.AttrNames))
	if provider, ok := p.Estimator.(estimator.AttributeProvider); ok {
		for _, name := range p.AttrNames {
			value, err := provider.Attribute(name)
			if err != nil {
				continue
			}
			attrs[name] = value
		}
	}
	p.attrs = attrs
}

func (p *EstimatorProxy) ClassName() string {
	return "sklearn2pmml.EstimatorProxy"
}

func (p *EstimatorProxy) Fit(X, y mat.Matrix, params estimator.FitParams) error {
	if err := p.Estimator.Fit(X, y, params); err != nil {
		return err
	}
	p.copyAttrs()
	return nil
}

func (p *EstimatorProxy) Predict(X mat.Matrix) (mat.Matrix, error) {
	pr, ok := p.Estimator.(estimator.Predictor)
	if !ok {
		return nil, errNotCapable(p.Estimator, "predict")
	}
	return pr.Predict(X)
}

func (p *EstimatorProxy) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	pr, ok := p.Estimator.(estimator.ProbabilisticPredictor)
	if !ok {
		return nil, errNotCapable(p.Estimator, "predict_proba")
	}
	return pr.PredictProba(X)
}

// Attribute serves the copied attributes only.
func (p *EstimatorProxy) Attribute(name string) (interface{}, error) {
	value, ok := p.attrs[name]
	if !ok {
		return nil, estimator.ErrNoAttribute
	}
	return value, nil
}

// Unwrap returns the wrapped estimator.
func (p *EstimatorProxy) Unwrap() estimator.Component {
	return p.Estimator
}

func (p *EstimatorProxy) Params() map[string]interface{} {
	return map[string]interface{}{"estimator": p.Estimator}
}

func (p *EstimatorProxy) MarshalJSON() ([]byte, error) {
	state := make(map[string]interface{}, len(p.attrs)+2)
	for name, value := range p.attrs {
		state[name] = value
	}
	state["estimator"] = pipeline.Wrap(p.Estimator)
	state["attr_names"] = p.AttrNames
	return json.Marshal(state)
}

func errNotCapable(c estimator.Component, method string) error {
	return fmt.Errorf("%s has no %s method", c.ClassName(), method)
}

var (
	_ estimator.Transformer            = (*SelectorProxy)(nil)
	_ estimator.ProbabilisticPredictor = (*EstimatorProxy)(nil)
	_ estimator.AttributeProvider      = (*EstimatorProxy)(nil)
)

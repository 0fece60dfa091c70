package pipeline

import (
	"github.com/mensylisir/pmmlkit/estimator"
)

// PMMLPipeline is the canonical pipeline the converter accepts. ActiveFields
// and TargetFields are kept in the caller's order; when absent the converter
// assumes x1..xn inputs and a single y target. Repr holds an optional textual
// snapshot of the pipeline structure.
type PMMLPipeline struct {
	Pipeline
	ActiveFields []string `json:"active_fields,omitempty"`
	TargetFields []string `json:"target_fields,omitempty"`
	Repr         string   `json:"repr_,omitempty"`
}

// NewPMMLPipeline validates the steps the same way New does.
func NewPMMLPipeline(steps ...Step) (*PMMLPipeline, error) {
	p, err := New(steps...)
	if err != nil {
		return nil, err
	}
	return &PMMLPipeline{Pipeline: *p}, nil
}

func (p *PMMLPipeline) ClassName() string {
	return "sklearn2pmml.pipeline.PMMLPipeline"
}

func (p *PMMLPipeline) WithChildren(children []estimator.Component) estimator.Component {
	mustHaveChildren(p, len(p.Steps), children)
	return &PMMLPipeline{
		Pipeline:     Pipeline{Steps: withStepChildren(p.Steps, children)},
		ActiveFields: p.ActiveFields,
		TargetFields: p.TargetFields,
		Repr:         p.Repr,
	}
}

var _ Composite = (*PMMLPipeline)(nil)

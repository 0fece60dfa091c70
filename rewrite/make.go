package rewrite

import (
	"github.com/pkg/errors"

	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/errdefs"
	"github.com/mensylisir/pmmlkit/estimator"
	"github.com/mensylisir/pmmlkit/pipeline"
)

// MakePMMLPipeline builds the canonical pipeline for obj.
//
// A Pipeline contributes its steps; any other estimator, or a composite such
// as a ColumnTransformer, becomes a single step named "estimator". The steps
// are normalized and activeFields/targetFields are attached as given; nil
// leaves the converter's defaults (x1..xn and y) in effect.
func MakePMMLPipeline(obj interface{}, activeFields, targetFields []string) (*pipeline.PMMLPipeline, error) {
	steps, err := stepsOf(obj)
	if err != nil {
		return nil, err
	}
	p, err := pipeline.NewPMMLPipeline(normalizeSteps(steps)...)
	if err != nil {
		return nil, errors.Wrapf(errdefs.ErrInvalidInput, "failed to build the PMML pipeline: %v", err)
	}
	p.ActiveFields = copyFields(activeFields)
	p.TargetFields = copyFields(targetFields)
	return p, nil
}

func stepsOf(obj interface{}) ([]pipeline.Step, error) {
	switch v := obj.(type) {
	case *pipeline.PMMLPipeline:
		if v != nil {
			return v.Steps, nil
		}
	case *pipeline.Pipeline:
		if v != nil {
			return v.Steps, nil
		}
	case pipeline.Sequence:
	case estimator.Estimator:
		return []pipeline.Step{pipeline.NewStep(common.DefaultEstimatorStepName, v)}, nil
	case pipeline.Composite:
		return []pipeline.Step{pipeline.NewStep(common.DefaultEstimatorStepName, v)}, nil
	}
	return nil, errors.Wrapf(errdefs.ErrInvalidInput, "%T is neither a pipeline nor an estimator", obj)
}

func copyFields(fields []string) []string {
	if fields == nil {
		return nil
	}
	return append([]string(nil), fields...)
}

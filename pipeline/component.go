// Package pipeline holds the composite component shapes a fitted model can be
// assembled from, and the canonical PMMLPipeline wrapper the converter accepts.
//
// Every composite exposes its direct children through Composite so that tree
// rewrites stay a single generic walk: Children lists them in a stable order and
// WithChildren returns a shallow copy with those children replaced, leaving the
// receiver untouched.
package pipeline

import (
	"fmt"

	"github.com/mensylisir/pmmlkit/estimator"
)

// Composite is implemented by every component that contains other components.
type Composite interface {
	estimator.Component
	// Children returns the direct child components, nil entries included.
	Children() []estimator.Component
	// WithChildren returns a copy of the receiver holding children in place of
	// the ones returned by Children. It panics if the length differs.
	WithChildren(children []estimator.Component) estimator.Component
}

// Step is a named pipeline element.
type Step struct {
	Name      string
	Component estimator.Component
}

// NewStep is a convenience constructor.
func NewStep(name string, c estimator.Component) Step {
	return Step{Name: name, Component: c}
}

// Sequence is a plain ordered list of components found in a list-valued slot,
// such as the transformer chain of a data frame mapper feature.
type Sequence []estimator.Component

func (s Sequence) ClassName() string {
	return "builtins.list"
}

func (s Sequence) Children() []estimator.Component {
	out := make([]estimator.Component, len(s))
	copy(out, s)
	return out
}

func (s Sequence) WithChildren(children []estimator.Component) estimator.Component {
	mustHaveChildren(s, len(s), children)
	out := make(Sequence, len(children))
	copy(out, children)
	return out
}

func stepChildren(steps []Step) []estimator.Component {
	out := make([]estimator.Component, len(steps))
	for i, s := range steps {
		out[i] = s.Component
	}
	return out
}

func withStepChildren(steps []Step, children []estimator.Component) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = Step{Name: s.Name, Component: children[i]}
	}
	return out
}

func mustHaveChildren(owner estimator.Component, want int, children []estimator.Component) {
	if len(children) != want {
		panic(fmt.Sprintf("pipeline: %s expects %d children, got %d", owner.ClassName(), want, len(children)))
	}
}

func validateStepNames(kind string, steps []Step) error {
	seen := make(map[string]struct{}, len(steps))
	for i, s := range steps {
		if s.Name == "" {
			return fmt.Errorf("%s: step %d has an empty name", kind, i)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%s: names provided are not unique: %q appears more than once", kind, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

var _ Composite = Sequence(nil)

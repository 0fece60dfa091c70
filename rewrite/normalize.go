// Package rewrite turns an arbitrary fitted pipeline into the canonical shape
// the converter accepts: every selector wrapped in a SelectorProxy, and the
// whole tree held by a PMMLPipeline.
package rewrite

import (
	"github.com/mensylisir/pmmlkit/estimator"
	"github.com/mensylisir/pmmlkit/pipeline"
)

// Normalize returns c with every Selector in its tree replaced by a
// SelectorProxy. Children are rewritten before their parent, and composites
// are rebuilt through WithChildren so the input tree is never modified. Leaves
// that are not selectors, proxies included, are returned as they are.
func Normalize(c estimator.Component) estimator.Component {
	switch v := c.(type) {
	case nil:
		return nil
	case pipeline.Composite:
		children := v.Children()
		rewritten := make([]estimator.Component, len(children))
		for i, child := range children {
			rewritten[i] = Normalize(child)
		}
		return v.WithChildren(rewritten)
	case estimator.Selector:
		return NewSelectorProxy(v)
	default:
		return c
	}
}

// normalizeSteps rewrites the component of every step, keeping names and order.
func normalizeSteps(steps []pipeline.Step) []pipeline.Step {
	out := make([]pipeline.Step, len(steps))
	for i, s := range steps {
		out[i] = pipeline.Step{Name: s.Name, Component: Normalize(s.Component)}
	}
	return out
}

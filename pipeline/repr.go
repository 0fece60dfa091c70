package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mensylisir/pmmlkit/estimator"
)

// ShortName returns the last dotted segment of the component's class name.
func ShortName(c estimator.Component) string {
	name := c.ClassName()
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Repr renders c the way the scoring library prints its objects, for
// example PMMLPipeline(steps=[('estimator', LinearRegression())]).
// Hyper-parameters come from estimator.Params and are sorted by name.
func Repr(c estimator.Component) string {
	if c == nil {
		return "None"
	}
	switch v := c.(type) {
	case Sequence:
		parts := make([]string, len(v))
		for i, child := range v {
			parts[i] = Repr(child)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *PMMLPipeline:
		return call(v, "steps="+reprSteps(v.Steps))
	case *Pipeline:
		return call(v, "steps="+reprSteps(v.Steps))
	case *FeatureUnion:
		return call(v, "transformer_list="+reprSteps(v.Transformers))
	case *ColumnTransformer:
		remainder := reprValue(v.Remainder.Sentinel())
		if rc := v.Remainder.Component(); rc != nil {
			remainder = Repr(rc)
		}
		entries := make([]string, len(v.Transformers))
		for i, e := range v.Transformers {
			entries[i] = fmt.Sprintf("(%s, %s, %s)", reprValue(e.Name), Repr(e.Transformer), reprValue(e.Columns))
		}
		return call(v, "remainder="+remainder, "transformers=["+strings.Join(entries, ", ")+"]")
	case *DataFrameMapper:
		features := make([]string, len(v.Features))
		for i, f := range v.Features {
			if f.Alias != "" {
				features[i] = fmt.Sprintf("(%s, %s, {'alias': %s})", reprValue(f.Columns), Repr(f.Transformer), reprValue(f.Alias))
			} else {
				features[i] = fmt.Sprintf("(%s, %s)", reprValue(f.Columns), Repr(f.Transformer))
			}
		}
		return call(v, "features=["+strings.Join(features, ", ")+"]")
	}
	p, ok := c.(estimator.Params)
	if !ok {
		return call(c)
	}
	params := p.Params()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, len(keys))
	for i, k := range keys {
		args[i] = k + "=" + reprValue(params[k])
	}
	return call(c, args...)
}

func call(c estimator.Component, args ...string) string {
	return ShortName(c) + "(" + strings.Join(args, ", ") + ")"
}

func reprSteps(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = fmt.Sprintf("(%s, %s)", reprValue(s.Name), Repr(s.Component))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func reprValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case estimator.Component:
		return Repr(x)
	case string:
		return "'" + strings.ReplaceAll(x, "'", "\\'") + "'"
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case []string:
		parts := make([]string, len(x))
		for i, s := range x {
			parts[i] = reprValue(s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}

package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/estimator"
)

// FeatureUnion applies a named list of transformers in parallel and
// concatenates their outputs column-wise.
type FeatureUnion struct {
	Transformers []Step `json:"transformer_list"`
}

func NewFeatureUnion(transformers ...Step) (*FeatureUnion, error) {
	if err := validateStepNames("feature union", transformers); err != nil {
		return nil, err
	}
	t := make([]Step, len(transformers))
	copy(t, transformers)
	return &FeatureUnion{Transformers: t}, nil
}

func (u *FeatureUnion) ClassName() string {
	return "sklearn.pipeline.FeatureUnion"
}

func (u *FeatureUnion) Children() []estimator.Component {
	return stepChildren(u.Transformers)
}

func (u *FeatureUnion) WithChildren(children []estimator.Component) estimator.Component {
	mustHaveChildren(u, len(u.Transformers), children)
	return &FeatureUnion{Transformers: withStepChildren(u.Transformers, children)}
}

// Fit fits every non-nil transformer on X.
func (u *FeatureUnion) Fit(X, y mat.Matrix, params estimator.FitParams) error {
	for _, s := range u.Transformers {
		if s.Component == nil {
			continue
		}
		tr, ok := s.Component.(estimator.Transformer)
		if !ok {
			return fmt.Errorf("feature union: %q (%s) is not a transformer", s.Name, s.Component.ClassName())
		}
		if err := tr.Fit(X, y, params); err != nil {
			return errors.Wrapf(err, "failed to fit transformer %q", s.Name)
		}
	}
	return nil
}

// Transform stacks the outputs of every non-nil transformer horizontally.
func (u *FeatureUnion) Transform(X mat.Matrix) (mat.Matrix, error) {
	var parts []mat.Matrix
	for _, s := range u.Transformers {
		if s.Component == nil {
			continue
		}
		tr, ok := s.Component.(estimator.Transformer)
		if !ok {
			return nil, fmt.Errorf("feature union: %q (%s) is not a transformer", s.Name, s.Component.ClassName())
		}
		out, err := tr.Transform(X)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to transform with %q", s.Name)
		}
		parts = append(parts, out)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("feature union: no transformers to apply")
	}
	return hstack(parts), nil
}

func hstack(parts []mat.Matrix) mat.Matrix {
	rows, _ := parts[0].Dims()
	total := 0
	for _, p := range parts {
		_, c := p.Dims()
		total += c
	}
	out := mat.NewDense(rows, total, nil)
	offset := 0
	for _, p := range parts {
		_, c := p.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < c; j++ {
				out.Set(i, offset+j, p.At(i, j))
			}
		}
		offset += c
	}
	return out
}

// ColumnEntry is one (name, transformer, columns) tuple of a column transformer.
type ColumnEntry struct {
	Name        string
	Transformer estimator.Component
	Columns     []string
}

// Remainder says what happens to columns no entry selected: one of the
// "drop"/"passthrough" sentinels, or a transformer of its own.
// The zero value means "drop".
type Remainder struct {
	sentinel    string
	transformer estimator.Component
}

func RemainderDrop() Remainder { return Remainder{sentinel: common.RemainderDrop} }

func RemainderPassthrough() Remainder { return Remainder{sentinel: common.RemainderPassthrough} }

// RemainderTransformer routes the remaining columns through c.
func RemainderTransformer(c estimator.Component) Remainder {
	if c == nil {
		return RemainderDrop()
	}
	return Remainder{transformer: c}
}

// Component returns the remainder transformer, or nil for a sentinel.
func (r Remainder) Component() estimator.Component { return r.transformer }

// Sentinel returns "drop" or "passthrough", or "" when the remainder is a transformer.
func (r Remainder) Sentinel() string {
	if r.transformer != nil {
		return ""
	}
	if r.sentinel == "" {
		return common.RemainderDrop
	}
	return r.sentinel
}

// ColumnTransformer applies transformers to column subsets. FittedTransformers
// mirrors the post-fit transformer list and is nil until the model is fitted.
type ColumnTransformer struct {
	Transformers       []ColumnEntry `json:"transformers"`
	Remainder          Remainder     `json:"remainder"`
	FittedTransformers []ColumnEntry `json:"transformers_,omitempty"`
}

func NewColumnTransformer(remainder Remainder, entries ...ColumnEntry) (*ColumnTransformer, error) {
	steps := make([]Step, len(entries))
	for i, e := range entries {
		steps[i] = Step{Name: e.Name}
	}
	if err := validateStepNames("column transformer", steps); err != nil {
		return nil, err
	}
	t := make([]ColumnEntry, len(entries))
	copy(t, entries)
	return &ColumnTransformer{Transformers: t, Remainder: remainder}, nil
}

func (ct *ColumnTransformer) ClassName() string {
	return "sklearn.compose._column_transformer.ColumnTransformer"
}

// Children lists the transformers, then the remainder when it is a component,
// then the fitted transformers.
func (ct *ColumnTransformer) Children() []estimator.Component {
	out := make([]estimator.Component, 0, len(ct.Transformers)+1+len(ct.FittedTransformers))
	for _, e := range ct.Transformers {
		out = append(out, e.Transformer)
	}
	if rc := ct.Remainder.Component(); rc != nil {
		out = append(out, rc)
	}
	for _, e := range ct.FittedTransformers {
		out = append(out, e.Transformer)
	}
	return out
}

func (ct *ColumnTransformer) WithChildren(children []estimator.Component) estimator.Component {
	mustHaveChildren(ct, len(ct.Children()), children)
	out := &ColumnTransformer{Remainder: ct.Remainder}
	n := len(ct.Transformers)
	out.Transformers = withEntryChildren(ct.Transformers, children[:n])
	rest := children[n:]
	if ct.Remainder.Component() != nil {
		out.Remainder = RemainderTransformer(rest[0])
		rest = rest[1:]
	}
	out.FittedTransformers = withEntryChildren(ct.FittedTransformers, rest)
	return out
}

func withEntryChildren(entries []ColumnEntry, children []estimator.Component) []ColumnEntry {
	if entries == nil {
		return nil
	}
	out := make([]ColumnEntry, len(entries))
	for i, e := range entries {
		out[i] = ColumnEntry{Name: e.Name, Transformer: children[i], Columns: e.Columns}
	}
	return out
}

// Feature is one entry of a data frame mapper: the input columns, the
// transformer (or Sequence of transformers, or nil) applied to them, and an
// optional output alias.
type Feature struct {
	Columns     []string
	Transformer estimator.Component
	Alias       string
}

// DataFrameMapper maps named data frame columns through per-feature
// transformers. BuiltFeatures is the post-fit copy of Features; it is nil
// until the mapper is fitted and need not share objects with Features.
type DataFrameMapper struct {
	Features      []Feature `json:"features"`
	BuiltFeatures []Feature `json:"built_features,omitempty"`
}

func NewDataFrameMapper(features ...Feature) *DataFrameMapper {
	f := make([]Feature, len(features))
	copy(f, features)
	return &DataFrameMapper{Features: f}
}

func (m *DataFrameMapper) ClassName() string {
	return "sklearn_pandas.dataframe_mapper.DataFrameMapper"
}

func (m *DataFrameMapper) Children() []estimator.Component {
	out := make([]estimator.Component, 0, len(m.Features)+len(m.BuiltFeatures))
	for _, f := range m.Features {
		out = append(out, f.Transformer)
	}
	for _, f := range m.BuiltFeatures {
		out = append(out, f.Transformer)
	}
	return out
}

func (m *DataFrameMapper) WithChildren(children []estimator.Component) estimator.Component {
	mustHaveChildren(m, len(m.Features)+len(m.BuiltFeatures), children)
	n := len(m.Features)
	return &DataFrameMapper{
		Features:      withFeatureChildren(m.Features, children[:n]),
		BuiltFeatures: withFeatureChildren(m.BuiltFeatures, children[n:]),
	}
}

func withFeatureChildren(features []Feature, children []estimator.Component) []Feature {
	if features == nil {
		return nil
	}
	out := make([]Feature, len(features))
	for i, f := range features {
		out[i] = Feature{Columns: f.Columns, Transformer: children[i], Alias: f.Alias}
	}
	return out
}

var (
	_ Composite             = (*FeatureUnion)(nil)
	_ estimator.Transformer = (*FeatureUnion)(nil)
	_ Composite             = (*ColumnTransformer)(nil)
	_ Composite             = (*DataFrameMapper)(nil)
)

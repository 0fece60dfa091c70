package pipeline

import (
	"encoding/json"

	"github.com/mensylisir/pmmlkit/estimator"
)

// Envelope tags a component's state with its class name so that the decoder
// on the converter side can rebuild the right type. Every slot that holds a
// component is encoded through Wrap.
type Envelope struct {
	Class string      `json:"class"`
	State interface{} `json:"state"`
}

// Wrap returns the envelope for c, or nil for a nil component.
func Wrap(c estimator.Component) interface{} {
	if c == nil {
		return nil
	}
	return Envelope{Class: c.ClassName(), State: c}
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{s.Name, Wrap(s.Component)})
}

func (s Sequence) MarshalJSON() ([]byte, error) {
	out := make([]interface{}, len(s))
	for i, c := range s {
		out[i] = Wrap(c)
	}
	return json.Marshal(out)
}

func (e ColumnEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Name, Wrap(e.Transformer), e.Columns})
}

func (r Remainder) MarshalJSON() ([]byte, error) {
	if c := r.Component(); c != nil {
		return json.Marshal(Wrap(c))
	}
	return json.Marshal(r.Sentinel())
}

func (f Feature) MarshalJSON() ([]byte, error) {
	tuple := []interface{}{f.Columns, Wrap(f.Transformer)}
	if f.Alias != "" {
		tuple = append(tuple, map[string]string{"alias": f.Alias})
	}
	return json.Marshal(tuple)
}

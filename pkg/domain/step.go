package domain

// Step is one immutable, self-contained snapshot produced by a runner.
//
// Exactly one of Array, Graph or Table is set, depending on the algorithm kind.
// A Step owns its container: nothing else holds a reference to it, so earlier
// steps stay valid while later ones are computed and the list can be replayed
// or seeked without re-running the algorithm.
type Step struct {
	Array       []Element      `json:"array,omitempty"`
	Graph       *GraphSnapshot `json:"graph,omitempty"`
	Table       Table          `json:"table,omitempty"`
	Comparisons int            `json:"comparisons"`
	Swaps       int            `json:"swaps"`
	Operation   string         `json:"operation"`
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := s
	out.Array = cloneArray(s.Array)
	out.Graph = s.Graph.clone()
	out.Table = s.Table.Clone()
	return out
}

// CloneSteps deep-copies a step list. Stores use it so callers cannot alias stored steps.
func CloneSteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s.Clone()
	}
	return out
}

package domain

import (
	"fmt"
	"unicode/utf8"
)

// FibonacciProblem asks for F(0)..F(N).
type FibonacciProblem struct {
	N int `json:"n" mapstructure:"n"`
}

// KnapsackProblem is a 0/1 knapsack instance. Weights and Values are parallel slices.
type KnapsackProblem struct {
	Capacity int   `json:"capacity" mapstructure:"capacity"`
	Weights  []int `json:"weights" mapstructure:"weights"`
	Values   []int `json:"values" mapstructure:"values"`
}

// LCSProblem compares two sequences.
type LCSProblem struct {
	First  string `json:"first" mapstructure:"first"`
	Second string `json:"second" mapstructure:"second"`
}

// Input is the snapshot of data handed to a runner.
// Only the fields relevant to the algorithm's Kind are read.
type Input struct {
	Array []Element `json:"array,omitempty" mapstructure:"array"`

	Graph  *Graph `json:"graph,omitempty" mapstructure:"graph"`
	Start  string `json:"start,omitempty" mapstructure:"start"`
	Target string `json:"target,omitempty" mapstructure:"target"`

	Fibonacci *FibonacciProblem `json:"fibonacci,omitempty" mapstructure:"fibonacci"`
	Knapsack  *KnapsackProblem  `json:"knapsack,omitempty" mapstructure:"knapsack"`
	LCS       *LCSProblem       `json:"lcs,omitempty" mapstructure:"lcs"`
}

// Input limits. Every step holds its own copy of the container, so memory
// grows with steps times container size.
const (
	// MaxFibonacci bounds N so that F(N) fits comfortably in an int and the table stays small.
	MaxFibonacci = 40
	// MaxArrayLen bounds sorting input.
	MaxArrayLen = 200
	// MaxGraphNodes and MaxGraphEdges bound graph input.
	MaxGraphNodes = 26
	MaxGraphEdges = 100
	// MaxKnapsackCapacity and MaxKnapsackItems bound a knapsack instance.
	MaxKnapsackCapacity = 100
	MaxKnapsackItems    = 20
	// MaxSequenceLength bounds each LCS sequence, in runes.
	MaxSequenceLength = 20
	// MaxTableCells bounds any DP table, header row and column included.
	MaxTableCells = 441
)

// Validate checks that the input carries what algorithm id needs.
// Runners may assume validated input.
func (in Input) Validate(id AlgorithmID) error {
	info, err := Lookup(id)
	if err != nil {
		return err
	}

	switch info.Kind {
	case KindSorting:
		if len(in.Array) > MaxArrayLen {
			return fmt.Errorf("%w: array has %d elements, limit is %d", ErrInvalidInput, len(in.Array), MaxArrayLen)
		}
		return ValidateArray(in.Array)

	case KindGraph:
		if err := in.Graph.Validate(); err != nil {
			return err
		}
		if n := len(in.Graph.Nodes); n > MaxGraphNodes {
			return fmt.Errorf("%w: graph has %d nodes, limit is %d", ErrInvalidInput, n, MaxGraphNodes)
		}
		if n := len(in.Graph.Edges); n > MaxGraphEdges {
			return fmt.Errorf("%w: graph has %d edges, limit is %d", ErrInvalidInput, n, MaxGraphEdges)
		}
		if !in.Graph.HasNode(in.Start) {
			return fmt.Errorf("%w: start node %q not in graph", ErrInvalidInput, in.Start)
		}
		if in.Target != "" && !in.Graph.HasNode(in.Target) {
			return fmt.Errorf("%w: target node %q not in graph", ErrInvalidInput, in.Target)
		}
		return nil
	}

	switch id {
	case AlgorithmFibonacci:
		if in.Fibonacci == nil {
			return fmt.Errorf("%w: fibonacci problem missing", ErrInvalidInput)
		}
		if in.Fibonacci.N < 0 || in.Fibonacci.N > MaxFibonacci {
			return fmt.Errorf("%w: n must be between 0 and %d, got %d", ErrInvalidInput, MaxFibonacci, in.Fibonacci.N)
		}
	case AlgorithmKnapsack:
		p := in.Knapsack
		if p == nil {
			return fmt.Errorf("%w: knapsack problem missing", ErrInvalidInput)
		}
		if p.Capacity < 0 || p.Capacity > MaxKnapsackCapacity {
			return fmt.Errorf("%w: capacity must be between 0 and %d, got %d", ErrInvalidInput, MaxKnapsackCapacity, p.Capacity)
		}
		if len(p.Weights) != len(p.Values) {
			return fmt.Errorf("%w: %d weights but %d values", ErrInvalidInput, len(p.Weights), len(p.Values))
		}
		if len(p.Weights) > MaxKnapsackItems {
			return fmt.Errorf("%w: %d items, limit is %d", ErrInvalidInput, len(p.Weights), MaxKnapsackItems)
		}
		if err := checkTableSize(len(p.Weights)+1, p.Capacity+1); err != nil {
			return err
		}
		for i := range p.Weights {
			if p.Weights[i] <= 0 || p.Values[i] < 0 {
				return fmt.Errorf("%w: item %d has weight %d and value %d", ErrInvalidInput, i, p.Weights[i], p.Values[i])
			}
		}
	case AlgorithmLCS:
		if in.LCS == nil {
			return fmt.Errorf("%w: lcs problem missing", ErrInvalidInput)
		}
		for _, seq := range []string{in.LCS.First, in.LCS.Second} {
			if err := ValidateSequence(seq); err != nil {
				return err
			}
		}
		return checkTableSize(utf8.RuneCountInString(in.LCS.First)+1, utf8.RuneCountInString(in.LCS.Second)+1)
	}
	return nil
}

// ValidateSequence checks that s is valid UTF-8 and at most MaxSequenceLength runes.
func ValidateSequence(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: sequence is not valid UTF-8", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(s); n > MaxSequenceLength {
		return fmt.Errorf("%w: sequence has %d characters, limit is %d", ErrInvalidInput, n, MaxSequenceLength)
	}
	return nil
}

func checkTableSize(rows, cols int) error {
	if rows*cols > MaxTableCells {
		return fmt.Errorf("%w: %dx%d table exceeds %d cells", ErrInvalidInput, rows, cols, MaxTableCells)
	}
	return nil
}

package cli

import (
	"math/rand/v2"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/dsl"
	"github.com/aretw0/stepwise/pkg/generator"
)

// InputFlags are the command-line knobs that shape a run's input.
// Fields that do not apply to the algorithm are ignored.
type InputFlags struct {
	Values string // custom array, e.g. "5, 3 8 1"
	Size   int    // random array length
	Edges  string // custom graph, e.g. "A-B:4, A-D:2"
	Start  string
	Target string
	N      int // fibonacci
	First  string
	Second string
}

// BuildInput produces the input for id from flags, falling back to the
// samples for anything left unset. A nil rng uses the global source.
func BuildInput(id domain.AlgorithmID, flags InputFlags, rng *rand.Rand) (domain.Input, error) {
	info, err := domain.Lookup(id)
	if err != nil {
		return domain.Input{}, err
	}

	switch info.Kind {
	case domain.KindSorting:
		if flags.Values != "" {
			arr, err := generator.ParseCustom(flags.Values)
			if err != nil {
				return domain.Input{}, err
			}
			return domain.Input{Array: arr}, nil
		}
		size := flags.Size
		if size == 0 {
			size = generator.DefaultSize
		}
		arr, err := generator.RandomArray(rng, size)
		if err != nil {
			return domain.Input{}, err
		}
		return domain.Input{Array: arr}, nil

	case domain.KindGraph:
		in := domain.Input{Graph: generator.SampleGraph(), Start: generator.SampleStart, Target: flags.Target}
		if flags.Edges != "" {
			g, err := dsl.Parse(flags.Edges)
			if err != nil {
				return domain.Input{}, err
			}
			in.Graph, in.Start = g, g.Nodes[0].ID
		}
		if flags.Start != "" {
			in.Start = flags.Start
		}
		return in, nil
	}

	switch id {
	case domain.AlgorithmFibonacci:
		return domain.Input{Fibonacci: &domain.FibonacciProblem{N: flags.N}}, nil
	case domain.AlgorithmKnapsack:
		return domain.Input{Knapsack: generator.SampleKnapsack()}, nil
	default:
		p := generator.SampleLCS()
		for _, f := range []struct {
			flag string
			dst  *string
		}{{flags.First, &p.First}, {flags.Second, &p.Second}} {
			if f.flag == "" {
				continue
			}
			seq, err := generator.SanitizeSequence(f.flag)
			if err != nil {
				return domain.Input{}, err
			}
			*f.dst = seq
		}
		return domain.Input{LCS: p}, nil
	}
}

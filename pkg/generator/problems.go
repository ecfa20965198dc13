package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/stepwise/pkg/domain"
)

// DefaultFibonacci is the n used when none is requested.
const DefaultFibonacci = 5

// Fibonacci validates n and returns the problem.
func Fibonacci(n int) (*domain.FibonacciProblem, error) {
	if n < 0 || n > domain.MaxFibonacci {
		return nil, fmt.Errorf("%w: n must be between 0 and %d, got %d", domain.ErrInvalidInput, domain.MaxFibonacci, n)
	}
	return &domain.FibonacciProblem{N: n}, nil
}

// SampleKnapsack is the canonical instance; its optimum is 15.
func SampleKnapsack() *domain.KnapsackProblem {
	return &domain.KnapsackProblem{
		Capacity: 10,
		Weights:  []int{3, 4, 5, 8},
		Values:   []int{4, 5, 10, 11},
	}
}

// SampleLCS is the canonical instance; its answer is "GTAB".
func SampleLCS() *domain.LCSProblem {
	return &domain.LCSProblem{First: "AGGTAB", Second: "GXTXAYB"}
}

// SampleInput returns a ready-to-run input for id: a random array of
// DefaultSize for sorts, the sample graph for traversals and the canonical
// problem for DP. A nil rng uses the global source.
func SampleInput(id domain.AlgorithmID, rng *rand.Rand) (domain.Input, error) {
	info, err := domain.Lookup(id)
	if err != nil {
		return domain.Input{}, err
	}

	switch info.Kind {
	case domain.KindSorting:
		arr, err := RandomArray(rng, DefaultSize)
		if err != nil {
			return domain.Input{}, err
		}
		return domain.Input{Array: arr}, nil
	case domain.KindGraph:
		return domain.Input{Graph: SampleGraph(), Start: SampleStart}, nil
	}

	switch id {
	case domain.AlgorithmFibonacci:
		return domain.Input{Fibonacci: &domain.FibonacciProblem{N: DefaultFibonacci}}, nil
	case domain.AlgorithmKnapsack:
		return domain.Input{Knapsack: SampleKnapsack()}, nil
	default:
		return domain.Input{LCS: SampleLCS()}, nil
	}
}

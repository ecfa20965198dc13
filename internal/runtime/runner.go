package runtime

import (
	"fmt"
	"sort"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Runner executes an algorithm to completion over a snapshot of input and
// returns every intermediate step. Runners are synchronous, deterministic and
// never touch the caller's input.
type Runner func(in domain.Input) ([]domain.Step, error)

var runners = map[domain.AlgorithmID]Runner{}

func register(id domain.AlgorithmID, r Runner) {
	if _, dup := runners[id]; dup {
		panic(fmt.Sprintf("runtime: runner %q registered twice", id))
	}
	if _, err := domain.Lookup(id); err != nil {
		panic(fmt.Sprintf("runtime: runner %q has no catalog entry", id))
	}
	runners[id] = r
}

func init() {
	register(domain.AlgorithmBubble, BubbleSort)
	register(domain.AlgorithmSelection, SelectionSort)
	register(domain.AlgorithmQuick, QuickSort)
	register(domain.AlgorithmMerge, MergeSort)
	register(domain.AlgorithmBFS, BFS)
	register(domain.AlgorithmDFS, DFS)
	register(domain.AlgorithmDijkstra, Dijkstra)
	register(domain.AlgorithmFibonacci, Fibonacci)
	register(domain.AlgorithmKnapsack, Knapsack)
	register(domain.AlgorithmLCS, LCS)
}

// Lookup returns the runner registered for id.
func Lookup(id domain.AlgorithmID) (Runner, error) {
	r, ok := runners[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAlgorithm, id)
	}
	return r, nil
}

// Registered lists the IDs that have a runner, sorted.
func Registered() []domain.AlgorithmID {
	ids := make([]domain.AlgorithmID, 0, len(runners))
	for id := range runners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

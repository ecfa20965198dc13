package runtime_test

import (
	"testing"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFibonacci(t *testing.T) {
	steps, err := runtime.Fibonacci(domain.Input{Fibonacci: &domain.FibonacciProblem{N: 10}})
	require.NoError(t, err)
	require.Len(t, steps, 2*9+1)

	final := steps[len(steps)-1]
	require.Equal(t, 1, final.Table.Rows())
	require.Equal(t, 11, final.Table.Cols())
	assert.Equal(t, 55, final.Table[0][10].Int())
	assert.Equal(t, domain.CellOptimal, final.Table[0][10].State)
	assert.Zero(t, final.Comparisons, "fibonacci evaluates no max")

	announce := steps[0].Table
	assert.Equal(t, domain.CellCurrent, announce[0][2].State)
	assert.Nil(t, announce[0][2].Value)
	assert.Equal(t, domain.CellComputed, steps[1].Table[0][2].State)
	assert.Equal(t, 1, steps[1].Table[0][2].Int())
}

func TestFibonacci_SmallN(t *testing.T) {
	for _, n := range []int{0, 1} {
		steps, err := runtime.Fibonacci(domain.Input{Fibonacci: &domain.FibonacciProblem{N: n}})
		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, n, steps[0].Table[0][n].Int())
	}
}

func TestKnapsack_Canonical(t *testing.T) {
	p := generator.SampleKnapsack()
	steps, err := runtime.Knapsack(domain.Input{Knapsack: p})
	require.NoError(t, err)
	require.Len(t, steps, 2*4*10+1)

	final := steps[len(steps)-1].Table
	assert.Equal(t, 15, final[4][10].Int())
	assert.Equal(t, domain.CellOptimal, final[4][10].State)
	for i := range final {
		assert.Equal(t, 0, final[i][0].Int(), "column 0 stays zero")
		assert.Equal(t, domain.CellDefault, final[i][0].State)
	}
	assert.Contains(t, steps[len(steps)-1].Operation, "[2 3]")
	// items of weight 3, 4, 5 and 8 fit at 8, 7, 6 and 3 capacities
	assert.Equal(t, 24, steps[len(steps)-1].Comparisons)
	assert.Zero(t, steps[1].Comparisons, "item 1 is too heavy at capacity 1")
}

func TestLCS_Canonical(t *testing.T) {
	steps, err := runtime.LCS(domain.Input{LCS: generator.SampleLCS()})
	require.NoError(t, err)
	require.Len(t, steps, 2*6*7+1)

	final := steps[len(steps)-1]
	assert.Equal(t, 4, final.Table[6][7].Int())
	assert.Contains(t, final.Operation, `"GTAB"`)
	// 42 cells, 6 of them character matches
	assert.Equal(t, 36, final.Comparisons)

	optimal := 0
	for _, row := range final.Table {
		for _, c := range row {
			if c.State == domain.CellOptimal {
				optimal++
			}
		}
	}
	assert.Equal(t, 4, optimal)
}

func TestLCS_EmptyString(t *testing.T) {
	steps, err := runtime.LCS(domain.Input{LCS: &domain.LCSProblem{First: "", Second: "ABC"}})
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Contains(t, steps[0].Operation, "length 0")
}

func TestDP_CellsAreNeverRewrittenAfterComputed(t *testing.T) {
	steps, err := runtime.Knapsack(domain.Input{Knapsack: generator.SampleKnapsack()})
	require.NoError(t, err)

	seen := map[[2]int]int{}
	for _, s := range steps[:len(steps)-1] {
		for i, row := range s.Table {
			for j, c := range row {
				if c.State != domain.CellComputed {
					continue
				}
				key := [2]int{i, j}
				if v, ok := seen[key]; ok {
					assert.Equal(t, v, c.Int(), "cell %v changed", key)
				}
				seen[key] = c.Int()
			}
		}
	}
}

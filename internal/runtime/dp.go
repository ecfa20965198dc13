package runtime

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
)

// tableRecorder owns the working table of a DP run.
// Filled cells stay "computed" in the working table; "current" only ever
// appears on the snapshot of the step that announces the cell.
// comparisons counts the max evaluations of the recurrence.
type tableRecorder struct {
	table       domain.Table
	steps       []domain.Step
	comparisons int
}

func (r *tableRecorder) announce(i, j int, op string) {
	snap := r.table.Clone()
	snap[i][j].State = domain.CellCurrent
	r.steps = append(r.steps, domain.Step{Table: snap, Comparisons: r.comparisons, Operation: op})
}

func (r *tableRecorder) fill(i, j, v int, op string, compared bool) {
	if compared {
		r.comparisons++
	}
	r.table[i][j] = domain.DPCell{Value: domain.IntPtr(v), State: domain.CellComputed}
	r.steps = append(r.steps, domain.Step{Table: r.table.Clone(), Comparisons: r.comparisons, Operation: op})
}

// finish marks the given cells optimal and records the final step.
func (r *tableRecorder) finish(op string, optimal [][2]int) []domain.Step {
	snap := r.table.Clone()
	for _, c := range optimal {
		snap[c[0]][c[1]].State = domain.CellOptimal
	}
	r.steps = append(r.steps, domain.Step{Table: snap, Comparisons: r.comparisons, Operation: op})
	return r.steps
}

// Fibonacci fills F(0)..F(n) bottom-up in a single-row table.
func Fibonacci(in domain.Input) ([]domain.Step, error) {
	if in.Fibonacci == nil || in.Fibonacci.N < 0 {
		return nil, fmt.Errorf("%w: fibonacci runner called without a problem", domain.ErrRunnerInternal)
	}
	n := in.Fibonacci.N

	r := &tableRecorder{table: domain.NewTable(1, n+1, false)}
	row := r.table[0]
	row[0].Value = domain.IntPtr(0)
	if n >= 1 {
		row[1].Value = domain.IntPtr(1)
	}

	for i := 2; i <= n; i++ {
		r.announce(0, i, fmt.Sprintf("Computing F(%d) = F(%d) + F(%d)", i, i-1, i-2))
		v := row[i-1].Int() + row[i-2].Int()
		r.fill(0, i, v, fmt.Sprintf("F(%d) = %d + %d = %d", i, row[i-1].Int(), row[i-2].Int(), v), false)
	}

	return r.finish(fmt.Sprintf("F(%d) = %d", n, row[n].Int()), [][2]int{{0, n}}), nil
}

// Knapsack solves the 0/1 knapsack problem. Row 0 and column 0 stay zero.
// The final step traces back the chosen items and marks their cells optimal.
func Knapsack(in domain.Input) ([]domain.Step, error) {
	p := in.Knapsack
	if p == nil || p.Capacity < 0 || len(p.Weights) != len(p.Values) {
		return nil, fmt.Errorf("%w: knapsack runner called with a malformed problem", domain.ErrRunnerInternal)
	}
	n, capacity := len(p.Weights), p.Capacity

	r := &tableRecorder{table: domain.NewTable(n+1, capacity+1, true)}
	t := r.table

	for i := 1; i <= n; i++ {
		wi, vi := p.Weights[i-1], p.Values[i-1]
		for w := 1; w <= capacity; w++ {
			r.announce(i, w, fmt.Sprintf("Item %d (weight %d, value %d) at capacity %d", i, wi, vi, w))

			skip := t[i-1][w].Int()
			if wi <= w {
				take := vi + t[i-1][w-wi].Int()
				r.fill(i, w, max(take, skip), fmt.Sprintf("dp[%d][%d] = max(%d, %d) = %d", i, w, take, skip, max(take, skip)), true)
			} else {
				r.fill(i, w, skip, fmt.Sprintf("dp[%d][%d] = %d (item too heavy)", i, w, skip), false)
			}
		}
	}

	optimal := [][2]int{{n, capacity}}
	var chosen []int
	for i, w := n, capacity; i > 0 && w > 0; i-- {
		if t[i][w].Int() != t[i-1][w].Int() {
			optimal = append(optimal, [2]int{i, w})
			chosen = append([]int{i}, chosen...)
			w -= p.Weights[i-1]
		}
	}

	return r.finish(fmt.Sprintf("Maximum value %d using items %v", t[n][capacity].Int(), chosen), optimal), nil
}

// LCS computes the longest common subsequence table of two strings and traces
// back one optimal subsequence on the final step.
func LCS(in domain.Input) ([]domain.Step, error) {
	if in.LCS == nil {
		return nil, fmt.Errorf("%w: lcs runner called without a problem", domain.ErrRunnerInternal)
	}
	a, b := []rune(in.LCS.First), []rune(in.LCS.Second)
	m, n := len(a), len(b)

	r := &tableRecorder{table: domain.NewTable(m+1, n+1, true)}
	t := r.table

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			r.announce(i, j, fmt.Sprintf("Comparing '%c' and '%c'", a[i-1], b[j-1]))
			if a[i-1] == b[j-1] {
				v := t[i-1][j-1].Int() + 1
				r.fill(i, j, v, fmt.Sprintf("Match '%c': dp[%d][%d] = %d", a[i-1], i, j, v), false)
			} else {
				v := max(t[i-1][j].Int(), t[i][j-1].Int())
				r.fill(i, j, v, fmt.Sprintf("No match: dp[%d][%d] = %d", i, j, v), true)
			}
		}
	}

	var optimal [][2]int
	var seq []rune
	for i, j := m, n; i > 0 && j > 0; {
		switch {
		case a[i-1] == b[j-1]:
			optimal = append(optimal, [2]int{i, j})
			seq = append([]rune{a[i-1]}, seq...)
			i--
			j--
		case t[i-1][j].Int() >= t[i][j-1].Int():
			i--
		default:
			j--
		}
	}

	return r.finish(fmt.Sprintf("LCS length %d: %q", t[m][n].Int(), string(seq)), optimal), nil
}

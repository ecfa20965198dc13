package domain

import "fmt"

// AlgorithmID is the closed set of algorithms the engine can run.
type AlgorithmID string

const (
	AlgorithmBubble    AlgorithmID = "bubble"
	AlgorithmSelection AlgorithmID = "selection"
	AlgorithmQuick     AlgorithmID = "quick"
	AlgorithmMerge     AlgorithmID = "merge"
	AlgorithmBFS       AlgorithmID = "bfs"
	AlgorithmDFS       AlgorithmID = "dfs"
	AlgorithmDijkstra  AlgorithmID = "dijkstra"
	AlgorithmFibonacci AlgorithmID = "fibonacci"
	AlgorithmKnapsack  AlgorithmID = "knapsack"
	AlgorithmLCS       AlgorithmID = "lcs"
)

// Kind groups algorithms by the container they operate on.
type Kind string

const (
	KindSorting Kind = "sorting"
	KindGraph   Kind = "graph"
	KindDP      Kind = "dp"
)

// AlgorithmInfo describes an algorithm for listings and explanation prompts.
type AlgorithmInfo struct {
	ID          AlgorithmID `json:"id"`
	Name        string      `json:"name"`
	Kind        Kind        `json:"kind"`
	Complexity  string      `json:"complexity"`
	Description string      `json:"description"`
}

var catalog = []AlgorithmInfo{
	{AlgorithmBubble, "Bubble Sort", KindSorting, "O(n²)", "Adjacent elements bubble up to their correct position"},
	{AlgorithmSelection, "Selection Sort", KindSorting, "O(n²)", "Find minimum element and place it in correct position"},
	{AlgorithmQuick, "Quick Sort", KindSorting, "O(n log n)", "Choose pivot, partition around it, then sort sub-arrays"},
	{AlgorithmMerge, "Merge Sort", KindSorting, "O(n log n)", "Divide array into halves, sort, then merge back together"},
	{AlgorithmBFS, "Breadth-First Search", KindGraph, "O(V + E)", "Explore nodes level by level"},
	{AlgorithmDFS, "Depth-First Search", KindGraph, "O(V + E)", "Explore as far as possible along each branch"},
	{AlgorithmDijkstra, "Dijkstra's Algorithm", KindGraph, "O((V + E) log V)", "Find shortest path with weights"},
	{AlgorithmFibonacci, "Fibonacci Sequence", KindDP, "O(n²) → O(n)", "Classic DP problem showing optimization from recursion"},
	{AlgorithmKnapsack, "0/1 Knapsack", KindDP, "O(nW)", "Maximize value within weight constraint"},
	{AlgorithmLCS, "Longest Common Subsequence", KindDP, "O(mn)", "Find longest subsequence common to two sequences"},
}

// Catalog lists every known algorithm in display order.
func Catalog() []AlgorithmInfo {
	out := make([]AlgorithmInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id AlgorithmID) (AlgorithmInfo, error) {
	for _, info := range catalog {
		if info.ID == id {
			return info, nil
		}
	}
	return AlgorithmInfo{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, id)
}

// ParseAlgorithm converts a user-supplied name into an AlgorithmID.
func ParseAlgorithm(name string) (AlgorithmID, error) {
	info, err := Lookup(AlgorithmID(name))
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

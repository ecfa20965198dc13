package tui

import "github.com/aretw0/stepwise/pkg/domain"

// Colours follow the web palette: grey for untouched, yellow for comparisons,
// red for swaps, green for finished.
var elementColors = map[domain.ElementState]string{
	domain.ElementDefault:        "#d1d5db",
	domain.ElementComparing:      "#facc15",
	domain.ElementSwapping:       "#ef4444",
	domain.ElementSorted:         "#22c55e",
	domain.ElementPivot:          "#9333ea",
	domain.ElementMerging:        "#3b82f6",
	domain.ElementSelected:       "#f97316",
	domain.ElementMinimum:        "#ec4899",
	domain.ElementPartitionLeft:  "#22d3ee",
	domain.ElementPartitionRight: "#fbbf24",
}

var nodeColors = map[domain.NodeState]string{
	domain.NodeDefault: "#3b82f6",
	domain.NodeVisited: "#10b981",
	domain.NodeCurrent: "#f59e0b",
	domain.NodePath:    "#ef4444",
}

var cellColors = map[domain.CellState]string{
	domain.CellDefault:  "#9ca3af",
	domain.CellCurrent:  "#fef08a",
	domain.CellComputed: "#bfdbfe",
	domain.CellOptimal:  "#bbf7d0",
}

// LegendEntry pairs a state with its caption for one algorithm.
type LegendEntry struct {
	Color string
	Label string
}

// Legend returns the colour key relevant to algorithm id.
func Legend(id domain.AlgorithmID) []LegendEntry {
	el := func(s domain.ElementState, label string) LegendEntry {
		return LegendEntry{Color: elementColors[s], Label: label}
	}
	switch id {
	case domain.AlgorithmBubble:
		return []LegendEntry{
			el(domain.ElementDefault, "Unsorted"),
			el(domain.ElementComparing, "Comparing"),
			el(domain.ElementSwapping, "Swapping"),
			el(domain.ElementSorted, "Sorted"),
		}
	case domain.AlgorithmSelection:
		return []LegendEntry{
			el(domain.ElementDefault, "Unsorted"),
			el(domain.ElementSelected, "Current Position"),
			el(domain.ElementComparing, "Comparing"),
			el(domain.ElementMinimum, "Current Minimum"),
			el(domain.ElementSwapping, "Swapping"),
			el(domain.ElementSorted, "Sorted"),
		}
	case domain.AlgorithmQuick:
		return []LegendEntry{
			el(domain.ElementDefault, "Unsorted"),
			el(domain.ElementPivot, "Pivot"),
			el(domain.ElementComparing, "Comparing"),
			el(domain.ElementPartitionLeft, "Left Partition (< pivot)"),
			el(domain.ElementPartitionRight, "Right Partition (> pivot)"),
			el(domain.ElementSwapping, "Swapping"),
			el(domain.ElementSorted, "Sorted"),
		}
	case domain.AlgorithmMerge:
		return []LegendEntry{
			el(domain.ElementDefault, "Unsorted"),
			el(domain.ElementPartitionLeft, "Left Subarray"),
			el(domain.ElementPartitionRight, "Right Subarray"),
			el(domain.ElementMerging, "Merging"),
			el(domain.ElementSorted, "Sorted"),
		}
	case domain.AlgorithmBFS, domain.AlgorithmDFS, domain.AlgorithmDijkstra:
		return []LegendEntry{
			{nodeColors[domain.NodeDefault], "Unvisited"},
			{nodeColors[domain.NodeCurrent], "Current"},
			{nodeColors[domain.NodeVisited], "Visited"},
			{nodeColors[domain.NodePath], "Path"},
		}
	}
	return []LegendEntry{
		{cellColors[domain.CellDefault], "Not computed"},
		{cellColors[domain.CellCurrent], "Computing"},
		{cellColors[domain.CellComputed], "Computed"},
		{cellColors[domain.CellOptimal], "Optimal"},
	}
}

package generator

import "github.com/aretw0/stepwise/pkg/domain"

// SampleStart is the start node of SampleGraph.
const SampleStart = "A"

// SampleGraph returns the five-node weighted demo graph. It contains a cycle
// (B, C, E) so traversals must cope with revisits.
func SampleGraph() *domain.Graph {
	return &domain.Graph{
		Nodes: []domain.GraphNode{
			{ID: "A", X: 100, Y: 100, State: domain.NodeDefault},
			{ID: "B", X: 300, Y: 100, State: domain.NodeDefault},
			{ID: "C", X: 500, Y: 100, State: domain.NodeDefault},
			{ID: "D", X: 200, Y: 250, State: domain.NodeDefault},
			{ID: "E", X: 400, Y: 250, State: domain.NodeDefault},
		},
		Edges: []domain.GraphEdge{
			{From: "A", To: "B", Weight: 4},
			{From: "A", To: "D", Weight: 2},
			{From: "B", To: "C", Weight: 3},
			{From: "B", To: "E", Weight: 1},
			{From: "D", To: "E", Weight: 5},
			{From: "C", To: "E", Weight: 2},
		},
	}
}

// DisconnectedGraph has an isolated node (Z) and an edge stored as Y→X, which
// is only reachable from X when edges are followed backwards.
func DisconnectedGraph() *domain.Graph {
	return &domain.Graph{
		Nodes: []domain.GraphNode{
			{ID: "X", X: 100, Y: 100, State: domain.NodeDefault},
			{ID: "Y", X: 250, Y: 100, State: domain.NodeDefault},
			{ID: "Z", X: 400, Y: 250, State: domain.NodeDefault},
		},
		Edges: []domain.GraphEdge{
			{From: "Y", To: "X", Weight: 1},
		},
	}
}

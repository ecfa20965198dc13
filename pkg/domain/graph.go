package domain

import (
	"fmt"
	"math"
)

// NodeState is the visual annotation of a graph node.
type NodeState string

const (
	NodeDefault NodeState = "default"
	NodeVisited NodeState = "visited"
	NodeCurrent NodeState = "current"
	NodePath    NodeState = "path"
)

// GraphNode is a vertex with a layout position.
// X and Y are presentation hints only; algorithms never read them.
type GraphNode struct {
	ID    string    `json:"id" mapstructure:"id"`
	X     float64   `json:"x" mapstructure:"x"`
	Y     float64   `json:"y" mapstructure:"y"`
	State NodeState `json:"state" mapstructure:"state"`
}

// GraphEdge is stored as a directed pair but traversed in both directions.
type GraphEdge struct {
	From   string  `json:"from" mapstructure:"from"`
	To     string  `json:"to" mapstructure:"to"`
	Weight float64 `json:"weight" mapstructure:"weight"`
}

// Graph is the container for traversal algorithms.
type Graph struct {
	Nodes []GraphNode `json:"nodes" mapstructure:"nodes"`
	Edges []GraphEdge `json:"edges" mapstructure:"edges"`
}

// Validate checks that node ids are unique and non-empty, that every edge
// references existing nodes, and that weights are non-negative numbers.
func (g *Graph) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: graph is nil", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node with empty id", ErrInvalidInput)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate node id %q", ErrInvalidInput, n.ID)
		}
		seen[n.ID] = true
	}
	for i, e := range g.Edges {
		if !seen[e.From] || !seen[e.To] {
			return fmt.Errorf("%w: edge %d (%s-%s) references an unknown node", ErrInvalidInput, i, e.From, e.To)
		}
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return fmt.Errorf("%w: edge %d (%s-%s) has invalid weight %v", ErrInvalidInput, i, e.From, e.To, e.Weight)
		}
	}
	return nil
}

// HasNode reports whether id names a node of the graph.
func (g *Graph) HasNode(id string) bool {
	return g.IndexOf(id) >= 0
}

// IndexOf returns the position of node id in Nodes, or -1.
func (g *Graph) IndexOf(id string) int {
	for i, n := range g.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Neighbor is one reachable endpoint of an edge incident to a node.
type Neighbor struct {
	ID     string
	Weight float64
}

// Neighbors lists the nodes adjacent to id, interpreting every edge as undirected.
// The result follows edge-list order, so traversals are stable for a given graph.
func (g *Graph) Neighbors(id string) []Neighbor {
	var out []Neighbor
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, Neighbor{ID: e.To, Weight: e.Weight})
		}
		if e.To == id {
			out = append(out, Neighbor{ID: e.From, Weight: e.Weight})
		}
	}
	return out
}

// GraphSnapshot is the graph container recorded in a Step.
type GraphSnapshot struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	// Distances holds settled shortest-path distances. Only weighted runners fill it.
	Distances map[string]float64 `json:"distances,omitempty"`
}

// StateOf returns the recorded state of node id, or NodeDefault when absent.
func (s *GraphSnapshot) StateOf(id string) NodeState {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n.State
		}
	}
	return NodeDefault
}

func (s *GraphSnapshot) clone() *GraphSnapshot {
	if s == nil {
		return nil
	}
	out := &GraphSnapshot{
		Nodes: make([]GraphNode, len(s.Nodes)),
		Edges: make([]GraphEdge, len(s.Edges)),
	}
	copy(out.Nodes, s.Nodes)
	copy(out.Edges, s.Edges)
	if s.Distances != nil {
		out.Distances = make(map[string]float64, len(s.Distances))
		for k, v := range s.Distances {
			out.Distances[k] = v
		}
	}
	return out
}

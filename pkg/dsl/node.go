package dsl

import "github.com/aretw0/stepwise/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.GraphNode
	placed  bool
	builder *Builder
}

// At fixes the layout position of the node.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.node.X, n.node.Y = x, y
	n.placed = true
	return n
}

// To adds a weighted edge to target, creating the target node if needed.
// Edges are traversed in both directions.
func (n *NodeBuilder) To(target string, weight float64) *NodeBuilder {
	n.builder.Add(target)
	n.builder.edges = append(n.builder.edges, domain.GraphEdge{
		From:   n.node.ID,
		To:     target,
		Weight: weight,
	})
	return n
}

// Build returns the underlying domain.GraphNode.
func (n *NodeBuilder) Build() domain.GraphNode {
	return n.node
}

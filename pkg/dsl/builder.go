package dsl

import (
	"fmt"
	"math"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Layout constants for nodes placed automatically.
const (
	layoutCenterX = 300
	layoutCenterY = 200
	layoutRadius  = 150
)

// Builder manages the graph construction. Nodes keep their insertion order.
type Builder struct {
	order []string
	nodes map[string]*NodeBuilder
	edges []domain.GraphEdge
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.GraphNode{ID: id, State: domain.NodeDefault},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build returns the graph after checking it with domain.Graph.Validate.
func (b *Builder) Build() (*domain.Graph, error) {
	g := &domain.Graph{
		Nodes: make([]domain.GraphNode, 0, len(b.order)),
		Edges: append([]domain.GraphEdge(nil), b.edges...),
	}
	for i, id := range b.order {
		nb := b.nodes[id]
		node := nb.node
		if !nb.placed {
			angle := 2*math.Pi*float64(i)/float64(len(b.order)) - math.Pi/2
			node.X = math.Round(layoutCenterX + layoutRadius*math.Cos(angle))
			node.Y = math.Round(layoutCenterY + layoutRadius*math.Sin(angle))
		}
		g.Nodes = append(g.Nodes, node)
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	return g, nil
}

// MustBuild is like Build but panics on error. It is meant for fixed graphs.
func (b *Builder) MustBuild() *domain.Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

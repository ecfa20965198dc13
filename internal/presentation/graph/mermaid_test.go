package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/stepwise/internal/presentation/graph"
	"github.com/aretw0/stepwise/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		snapshot    *domain.GraphSnapshot
		contains    []string
		notContains []string
	}{
		{
			name: "Nodes And Weighted Edges",
			snapshot: &domain.GraphSnapshot{
				Nodes: []domain.GraphNode{{ID: "A"}, {ID: "B"}},
				Edges: []domain.GraphEdge{{From: "A", To: "B", Weight: 4}},
			},
			contains:    []string{"graph LR", `A(("A"))`, `B(("B"))`, "A ---|4| B"},
			notContains: []string{"classDef"},
		},
		{
			name: "ID Sanitization",
			snapshot: &domain.GraphSnapshot{
				Nodes: []domain.GraphNode{{ID: "node-1"}, {ID: "x.y"}},
				Edges: []domain.GraphEdge{{From: "node-1", To: "x.y", Weight: 0.5}},
			},
			contains: []string{`node_1(("node-1"))`, "node_1 ---|0.5| x_y"},
		},
		{
			name: "State Classes",
			snapshot: &domain.GraphSnapshot{
				Nodes: []domain.GraphNode{
					{ID: "A", State: domain.NodeVisited},
					{ID: "B", State: domain.NodeCurrent},
					{ID: "C", State: domain.NodePath},
					{ID: "D", State: domain.NodeDefault},
				},
			},
			contains:    []string{"class A visited;", "class B current;", "class C path;", "classDef path"},
			notContains: []string{"class D"},
		},
		{
			name: "Distances In Labels",
			snapshot: &domain.GraphSnapshot{
				Nodes:     []domain.GraphNode{{ID: "A"}, {ID: "B"}},
				Distances: map[string]float64{"A": 0, "B": 2.5},
			},
			contains: []string{`A(("A <br/> d=0"))`, `B(("B <br/> d=2.5"))`},
		},
		{
			name:     "Nil Snapshot",
			snapshot: nil,
			contains: []string{"graph LR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.snapshot)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q, got:\n%s", unwanted, got)
				}
			}
		})
	}
}

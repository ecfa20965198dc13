package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart for a graph snapshot.
// Nodes are circles, edges are undirected links labelled with their weight,
// and node states map onto classDefs (visited, current, path).
// Settled distances, when present, are appended to the node label.
func GenerateMermaid(g *domain.GraphSnapshot) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if g == nil {
		return sb.String()
	}

	for _, n := range g.Nodes {
		label := n.ID
		if d, ok := g.Distances[n.ID]; ok {
			label = fmt.Sprintf("%s <br/> d=%s", n.ID, strconv.FormatFloat(d, 'f', -1, 64))
		}
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", sanitizeMermaidID(n.ID), label))
	}

	for _, e := range g.Edges {
		sb.WriteString(fmt.Sprintf("    %s ---|%s| %s\n",
			sanitizeMermaidID(e.From),
			strconv.FormatFloat(e.Weight, 'f', -1, 64),
			sanitizeMermaidID(e.To)))
	}

	var styled []string
	for _, n := range g.Nodes {
		if n.State != domain.NodeDefault && n.State != "" {
			styled = append(styled, fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(n.ID), n.State))
		}
	}
	if len(styled) > 0 {
		sb.WriteString("\n    %% State Styles\n")
		// Force black text (color:#000) so labels stay readable on light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef path fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		for _, line := range styled {
			sb.WriteString(line)
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}

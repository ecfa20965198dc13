package runtime

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// graphRecorder tracks node annotations for a traversal and snapshots the graph.
type graphRecorder struct {
	graph       *domain.Graph
	visited     map[string]bool
	order       []string
	steps       []domain.Step
	comparisons int
}

func newGraphRecorder(in domain.Input) (*graphRecorder, error) {
	if in.Graph == nil {
		return nil, fmt.Errorf("%w: graph runner called without a graph", domain.ErrRunnerInternal)
	}
	if !in.Graph.HasNode(in.Start) {
		return nil, fmt.Errorf("%w: start node %q not in graph", domain.ErrRunnerInternal, in.Start)
	}
	return &graphRecorder{graph: in.Graph, visited: map[string]bool{}}, nil
}

func (r *graphRecorder) visit(id string) {
	r.visited[id] = true
	r.order = append(r.order, id)
}

// emit snapshots the graph. current is painted "current", members of path
// "path", visited nodes "visited" and everything else "default".
func (r *graphRecorder) emit(op, current string, path map[string]bool, distances map[string]float64) {
	snap := &domain.GraphSnapshot{
		Nodes: make([]domain.GraphNode, len(r.graph.Nodes)),
		Edges: append([]domain.GraphEdge(nil), r.graph.Edges...),
	}
	for i, n := range r.graph.Nodes {
		switch {
		case n.ID == current:
			n.State = domain.NodeCurrent
		case path[n.ID]:
			n.State = domain.NodePath
		case r.visited[n.ID]:
			n.State = domain.NodeVisited
		default:
			n.State = domain.NodeDefault
		}
		snap.Nodes[i] = n
	}
	if distances != nil {
		snap.Distances = make(map[string]float64, len(distances))
		for k, v := range distances {
			snap.Distances[k] = v
		}
	}
	r.steps = append(r.steps, domain.Step{
		Graph:       snap,
		Comparisons: r.comparisons,
		Operation:   op,
	})
}

// BFS explores the graph level by level from in.Start. Edges are followed in
// both directions; a node may be queued more than once but is visited once.
// Comparisons counts edge inspections.
func BFS(in domain.Input) ([]domain.Step, error) {
	r, err := newGraphRecorder(in)
	if err != nil {
		return nil, err
	}

	queue := []string{in.Start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if r.visited[current] {
			continue
		}
		r.visit(current)
		r.emit(fmt.Sprintf("Visiting %s", current), current, nil, nil)

		for _, nb := range r.graph.Neighbors(current) {
			r.comparisons++
			if !r.visited[nb.ID] {
				queue = append(queue, nb.ID)
			}
		}
	}

	r.emit(fmt.Sprintf("BFS complete: %s", strings.Join(r.order, " → ")), "", nil, nil)
	return r.steps, nil
}

// DFS explores as deep as possible before backtracking, using an explicit stack.
// Neighbours are pushed in reverse so they are explored in edge-list order.
func DFS(in domain.Input) ([]domain.Step, error) {
	r, err := newGraphRecorder(in)
	if err != nil {
		return nil, err
	}

	stack := []string{in.Start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r.visited[current] {
			continue
		}
		r.visit(current)
		r.emit(fmt.Sprintf("Visiting %s", current), current, nil, nil)

		nbs := r.graph.Neighbors(current)
		for i := len(nbs) - 1; i >= 0; i-- {
			r.comparisons++
			if !r.visited[nbs[i].ID] {
				stack = append(stack, nbs[i].ID)
			}
		}
	}

	r.emit(fmt.Sprintf("DFS complete: %s", strings.Join(r.order, " → ")), "", nil, nil)
	return r.steps, nil
}

// Dijkstra settles nodes in order of distance from in.Start and finally
// highlights the shortest path to in.Target (the last node when unset).
// Node selection is a linear scan; ties go to the node listed first.
// Comparisons counts attempted relaxations.
func Dijkstra(in domain.Input) ([]domain.Step, error) {
	r, err := newGraphRecorder(in)
	if err != nil {
		return nil, err
	}
	target := in.Target
	if target == "" {
		target = r.graph.Nodes[len(r.graph.Nodes)-1].ID
	}

	dist := map[string]float64{in.Start: 0}
	prev := map[string]string{}

	for {
		current, best := "", math.Inf(1)
		for _, n := range r.graph.Nodes {
			d, ok := dist[n.ID]
			if ok && !r.visited[n.ID] && d < best {
				current, best = n.ID, d
			}
		}
		if current == "" {
			break
		}

		r.visit(current)
		r.emit(fmt.Sprintf("Settled %s at distance %g", current, best), current, nil, dist)

		for _, nb := range r.graph.Neighbors(current) {
			if r.visited[nb.ID] {
				continue
			}
			r.comparisons++
			alt := best + nb.Weight
			if d, ok := dist[nb.ID]; !ok || alt < d {
				dist[nb.ID] = alt
				prev[nb.ID] = current
			}
		}
	}

	d, reachable := dist[target]
	if !reachable {
		r.emit(fmt.Sprintf("%s is unreachable from %s", target, in.Start), "", nil, dist)
		return r.steps, nil
	}

	var path []string
	for at := target; ; at = prev[at] {
		path = append([]string{at}, path...)
		if at == in.Start {
			break
		}
	}
	onPath := make(map[string]bool, len(path))
	for _, id := range path {
		onPath[id] = true
	}
	r.emit(fmt.Sprintf("Shortest path to %s: %s (distance %g)", target, strings.Join(path, " → "), d), "", onPath, dist)
	return r.steps, nil
}

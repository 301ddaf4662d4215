package prereq

import (
	"fmt"
	"sort"
)

// TopologicalOrder runs Kahn's algorithm, always taking the smallest ready id.
// It fails with ErrUnresolvedCycle when g has a cycle.
func TopologicalOrder(g *CourseGraph) ([]string, error) {
	indeg := make(map[string]int, len(g.nodes))
	for _, v := range g.nodes {
		indeg[v] = len(g.pred[v])
	}
	var ready []string
	for _, v := range g.nodes {
		if indeg[v] == 0 {
			ready = append(ready, v)
		}
	}
	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)
		for _, w := range g.succ[v] {
			indeg[w]--
			if indeg[w] == 0 {
				i := sort.SearchStrings(ready, w)
				ready = append(ready, "")
				copy(ready[i+1:], ready[i:])
				ready[i] = w
			}
		}
	}
	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("%w: %d of %d courses ordered", ErrUnresolvedCycle, len(order), len(g.nodes))
	}
	return order, nil
}

// SynthesizePath orders an acyclic course graph and places the target last.
// Any output that would list the target twice, or put something after it
// that depends on it, is rejected with ErrInvariantViolated.
func SynthesizePath(g *CourseGraph) ([]string, error) {
	order, err := TopologicalOrder(g)
	if err != nil {
		return nil, err
	}
	target := g.Target()
	if len(g.succ[target]) > 0 {
		return nil, fmt.Errorf("%w: target %q has outgoing edges", ErrInvariantViolated, target)
	}
	path := make([]string, 0, len(order))
	seen := 0
	for _, id := range order {
		if id == target {
			seen++
			continue
		}
		path = append(path, id)
	}
	if seen != 1 {
		return nil, fmt.Errorf("%w: target %q ordered %d times", ErrInvariantViolated, target, seen)
	}
	path = append(path, target)

	pos := make(map[string]int, len(path))
	for i, id := range path {
		pos[id] = i
	}
	for _, e := range g.edges {
		if pos[e.From] >= pos[e.To] {
			return nil, fmt.Errorf("%w: edge %s -> %s out of order", ErrInvariantViolated, e.From, e.To)
		}
	}
	return path, nil
}

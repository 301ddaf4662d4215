package prereq

// Ancestors returns every concept reachable from seeds by walking prerequisite
// edges backwards, excluding the seeds themselves. One traversal covers the
// whole seed set. A seed unknown to g yields a *ConceptNotDefinedError.
func Ancestors(g *ConceptGraph, seeds []string) (Set, error) {
	for _, s := range seeds {
		if !g.Has(s) {
			return nil, &ConceptNotDefinedError{ConceptID: s}
		}
	}
	visited := make(Set, len(seeds))
	queue := make([]string, 0, len(seeds))
	for _, s := range seeds {
		if visited.Has(s) {
			continue
		}
		visited.add(s)
		queue = append(queue, s)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range g.parents[cur] {
			if visited.Has(p) {
				continue
			}
			visited.add(p)
			queue = append(queue, p)
		}
	}
	for _, s := range seeds {
		delete(visited, s)
	}
	return visited, nil
}

// ancestorMemo caches single-concept closures for one request.
type ancestorMemo struct {
	g     *ConceptGraph
	cache map[string]Set
}

func newAncestorMemo(g *ConceptGraph) *ancestorMemo {
	return &ancestorMemo{g: g, cache: map[string]Set{}}
}

func (m *ancestorMemo) of(id string) (Set, error) {
	if s, ok := m.cache[id]; ok {
		return s, nil
	}
	s, err := Ancestors(m.g, []string{id})
	if err != nil {
		return nil, err
	}
	m.cache[id] = s
	return s, nil
}

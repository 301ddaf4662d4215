package prereq

import (
	"sort"
)

// CourseGraph is a course-level dependency graph. Values are never mutated
// after construction; the cycle resolver derives new graphs from old ones.
type CourseGraph struct {
	target        string
	nodes         []string
	succ          map[string][]string
	pred          map[string][]string
	edges         map[string]CourseEdge
	conceptCounts map[string]int
}

// NewCourseGraph builds a graph from explicit edges. conceptCounts carries the
// membership size of each course and is used as the edge weight of incoming
// edges. Every course named by conceptCounts or an edge becomes a node.
func NewCourseGraph(target string, conceptCounts map[string]int, edges []CourseEdge) *CourseGraph {
	g := &CourseGraph{
		target:        target,
		succ:          map[string][]string{},
		pred:          map[string][]string{},
		edges:         make(map[string]CourseEdge, len(edges)),
		conceptCounts: make(map[string]int, len(conceptCounts)),
	}
	nodes := Set{}
	if target != "" {
		nodes.add(target)
	}
	for id, n := range conceptCounts {
		nodes.add(id)
		g.conceptCounts[id] = n
	}
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		if _, dup := g.edges[e.key()]; dup {
			continue
		}
		nodes.add(e.From)
		nodes.add(e.To)
		g.edges[e.key()] = e
		g.succ[e.From] = append(g.succ[e.From], e.To)
		g.pred[e.To] = append(g.pred[e.To], e.From)
	}
	g.nodes = nodes.Sorted()
	for id := range g.succ {
		sortStrings(g.succ[id])
	}
	for id := range g.pred {
		sortStrings(g.pred[id])
	}
	return g
}

func (g *CourseGraph) Target() string { return g.target }

// Nodes returns course ids in ascending order, target included.
func (g *CourseGraph) Nodes() []string { return append([]string(nil), g.nodes...) }

func (g *CourseGraph) Successors(id string) []string {
	return append([]string(nil), g.succ[id]...)
}

func (g *CourseGraph) HasEdge(from, to string) bool {
	_, ok := g.edges[CourseEdge{From: from, To: to}.key()]
	return ok
}

func (g *CourseGraph) EdgeCount() int { return len(g.edges) }

// Edges returns every edge sorted by (From, To).
func (g *CourseGraph) Edges() []CourseEdge {
	out := make([]CourseEdge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	return out
}

// Weight is the number of concepts carried by the edge's destination course.
func (g *CourseGraph) Weight(e CourseEdge) int { return g.conceptCounts[e.To] }

// withoutEdges returns a copy of g minus the given edges.
func (g *CourseGraph) withoutEdges(drop []CourseEdge) *CourseGraph {
	skip := make(map[string]struct{}, len(drop))
	for _, e := range drop {
		skip[e.key()] = struct{}{}
	}
	kept := make([]CourseEdge, 0, len(g.edges))
	for k, e := range g.edges {
		if _, ok := skip[k]; ok {
			continue
		}
		kept = append(kept, e)
	}
	counts := make(map[string]int, len(g.nodes))
	for _, id := range g.nodes {
		counts[id] = g.conceptCounts[id]
	}
	return NewCourseGraph(g.target, counts, kept)
}

// SelectCandidates returns, sorted by id, every course other than the target
// whose membership intersects required. A candidate member concept unknown to
// g is a data-integrity failure.
func SelectCandidates(g *ConceptGraph, required Set, targetID string, courses []Course, membership map[string][]string) ([]string, error) {
	var out []string
	for _, c := range courses {
		if c.ID == targetID {
			continue
		}
		hit := false
		for _, k := range membership[c.ID] {
			if required.Has(k) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for _, k := range membership[c.ID] {
			if !g.Has(k) {
				return nil, &ConceptNotDefinedError{ConceptID: k, CourseID: c.ID}
			}
		}
		out = append(out, c.ID)
	}
	sortStrings(out)
	return dedupeSorted(out), nil
}

// DeriveCourseGraph projects concept ancestry onto the candidates. An edge
// c1 -> c2 exists when an ancestor of some concept of c2 is a member of c1.
// Every candidate points at the target.
func DeriveCourseGraph(g *ConceptGraph, targetID string, targetConcepts []string, candidates []string, membership map[string][]string) (*CourseGraph, error) {
	memo := newAncestorMemo(g)
	memberSets := make(map[string]Set, len(candidates))
	ancestorSets := make(map[string]Set, len(candidates))
	counts := make(map[string]int, len(candidates)+1)
	counts[targetID] = len(setOf(targetConcepts))

	for _, c := range candidates {
		members := setOf(membership[c])
		memberSets[c] = members
		counts[c] = len(members)
		union := Set{}
		for k := range members {
			if !g.Has(k) {
				return nil, &ConceptNotDefinedError{ConceptID: k, CourseID: c}
			}
			anc, err := memo.of(k)
			if err != nil {
				return nil, err
			}
			for a := range anc {
				union.add(a)
			}
		}
		ancestorSets[c] = union
	}

	var edges []CourseEdge
	for _, c1 := range candidates {
		for _, c2 := range candidates {
			if c1 == c2 {
				continue
			}
			if intersects(ancestorSets[c2], memberSets[c1]) {
				edges = append(edges, CourseEdge{From: c1, To: c2})
			}
		}
		edges = append(edges, CourseEdge{From: c1, To: targetID})
	}
	return NewCourseGraph(targetID, counts, edges), nil
}

func intersects(a, b Set) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if b.Has(k) {
			return true
		}
	}
	return false
}

func dedupeSorted(s []string) []string {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

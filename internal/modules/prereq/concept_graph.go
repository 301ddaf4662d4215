package prereq

import (
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

const (
	DropUnknownPrerequisite = "unknown_prerequisite"
	DropUnknownTarget       = "unknown_target"
	DropSelfLoop            = "self_loop"
	DropDuplicate           = "duplicate"
)

// DroppedEdge is a prerequisite edge left out of the concept graph.
type DroppedEdge struct {
	PrerequisiteEdge
	Reason string `json:"reason"`
}

// ConceptGraph is the directed prerequisite graph over every known concept.
// It is read-only once built and safe to share between goroutines.
type ConceptGraph struct {
	nodes    Set
	order    []string
	parents  map[string][]string
	children map[string][]string
	edges    int
	dropped  []DroppedEdge
}

// BuildConceptGraph adds every concept as a node, isolated or not, and every
// edge whose endpoints are both known. Unknown endpoints and self-loops are
// dropped with a warning; the build itself never fails.
func BuildConceptGraph(concepts []Concept, edges []PrerequisiteEdge, log *logger.Logger) *ConceptGraph {
	g := &ConceptGraph{
		nodes:    make(Set, len(concepts)),
		parents:  map[string][]string{},
		children: map[string][]string{},
	}
	for _, c := range concepts {
		if c.ID == "" || g.nodes.Has(c.ID) {
			continue
		}
		g.nodes.add(c.ID)
		g.order = append(g.order, c.ID)
	}
	sortStrings(g.order)

	seen := make(map[PrerequisiteEdge]struct{}, len(edges))
	for _, e := range edges {
		reason := ""
		switch {
		case !g.nodes.Has(e.Prerequisite):
			reason = DropUnknownPrerequisite
		case !g.nodes.Has(e.Target):
			reason = DropUnknownTarget
		case e.Prerequisite == e.Target:
			reason = DropSelfLoop
		}
		if reason == "" {
			if _, dup := seen[e]; dup {
				g.dropped = append(g.dropped, DroppedEdge{PrerequisiteEdge: e, Reason: DropDuplicate})
				continue
			}
			seen[e] = struct{}{}
			g.parents[e.Target] = append(g.parents[e.Target], e.Prerequisite)
			g.children[e.Prerequisite] = append(g.children[e.Prerequisite], e.Target)
			g.edges++
			continue
		}
		g.dropped = append(g.dropped, DroppedEdge{PrerequisiteEdge: e, Reason: reason})
		if log != nil {
			log.Warn("prerequisite edge references invalid concept, ignored",
				"prerequisite_id", e.Prerequisite,
				"target_id", e.Target,
				"reason", reason,
			)
		}
	}
	for id := range g.parents {
		sortStrings(g.parents[id])
	}
	for id := range g.children {
		sortStrings(g.children[id])
	}
	return g
}

func (g *ConceptGraph) Has(id string) bool { return g != nil && g.nodes.Has(id) }

func (g *ConceptGraph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

func (g *ConceptGraph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return g.edges
}

// Nodes returns concept ids in ascending order.
func (g *ConceptGraph) Nodes() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.order...)
}

// Prerequisites returns the direct prerequisites of id.
func (g *ConceptGraph) Prerequisites(id string) []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.parents[id]...)
}

// Dependents returns the concepts that list id as a direct prerequisite.
func (g *ConceptGraph) Dependents(id string) []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.children[id]...)
}

func (g *ConceptGraph) Dropped() []DroppedEdge {
	if g == nil {
		return nil
	}
	return append([]DroppedEdge(nil), g.dropped...)
}

// GraphStats summarizes a concept graph for operators.
type GraphStats struct {
	Concepts        int            `json:"concepts"`
	Edges           int            `json:"edges"`
	Isolated        int            `json:"isolated"`
	Roots           int            `json:"roots"`
	DroppedEdges    int            `json:"dropped_edges"`
	DroppedByReason map[string]int `json:"dropped_by_reason"`
}

func (g *ConceptGraph) Stats() GraphStats {
	st := GraphStats{DroppedByReason: map[string]int{}}
	if g == nil {
		return st
	}
	st.Concepts = len(g.order)
	st.Edges = g.edges
	st.DroppedEdges = len(g.dropped)
	for _, d := range g.dropped {
		st.DroppedByReason[d.Reason]++
	}
	for _, id := range g.order {
		hasParents := len(g.parents[id]) > 0
		if !hasParents {
			st.Roots++
			if len(g.children[id]) == 0 {
				st.Isolated++
			}
		}
	}
	return st
}

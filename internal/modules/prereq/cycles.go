package prereq

import (
	"sort"

	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

// CycleResolution is the outcome of ResolveCycles. Graph is the last graph
// produced; when Acyclic is false, Remaining lists its cyclic components.
type CycleResolution struct {
	Graph     *CourseGraph
	Removed   []RemovedEdge
	Rounds    int
	Acyclic   bool
	Remaining [][]string
}

// ResolveCycles removes, per round, the lowest-weight edge inside every
// strongly connected component with more than one member. It stops as soon
// as the graph is acyclic or after maxRounds rounds.
func ResolveCycles(g *CourseGraph, maxRounds int, log *logger.Logger) CycleResolution {
	res := CycleResolution{Graph: g}
	for {
		cyclic := CyclicComponents(res.Graph)
		if len(cyclic) == 0 {
			res.Acyclic = true
			return res
		}
		if res.Rounds >= maxRounds {
			res.Remaining = cyclic
			if log != nil {
				log.Warn("course graph still cyclic after retry budget",
					"target_id", g.Target(),
					"rounds", res.Rounds,
					"components", len(cyclic),
				)
			}
			return res
		}
		res.Rounds++

		drop := make([]CourseEdge, 0, len(cyclic))
		for _, comp := range cyclic {
			e, w := weakestEdge(res.Graph, comp)
			drop = append(drop, e)
			res.Removed = append(res.Removed, RemovedEdge{CourseEdge: e, Weight: w, Round: res.Rounds})
			if log != nil {
				log.Info("removed course edge to break cycle",
					"from", e.From,
					"to", e.To,
					"weight", w,
					"round", res.Rounds,
				)
			}
		}
		res.Graph = res.Graph.withoutEdges(drop)
	}
}

// weakestEdge picks the internal edge of comp whose destination carries the
// fewest concepts, ties broken by edge key.
func weakestEdge(g *CourseGraph, comp []string) (CourseEdge, int) {
	in := setOf(comp)
	var (
		best  CourseEdge
		bestW int
		found bool
	)
	for _, from := range comp {
		for _, to := range g.succ[from] {
			if !in.Has(to) {
				continue
			}
			e := CourseEdge{From: from, To: to}
			w := g.Weight(e)
			if !found || w < bestW || (w == bestW && e.key() < best.key()) {
				best, bestW, found = e, w, true
			}
		}
	}
	return best, bestW
}

// CyclicComponents returns the strongly connected components of g with more
// than one member. Members are sorted and components are ordered by their
// first member.
func CyclicComponents(g *CourseGraph) [][]string {
	t := &tarjan{
		g:       g,
		index:   map[string]int{},
		low:     map[string]int{},
		onStack: map[string]bool{},
	}
	for _, v := range g.nodes {
		if _, seen := t.index[v]; !seen {
			t.connect(v)
		}
	}
	sort.Slice(t.out, func(i, j int) bool { return t.out[i][0] < t.out[j][0] })
	return t.out
}

type tarjan struct {
	g       *CourseGraph
	next    int
	index   map[string]int
	low     map[string]int
	onStack map[string]bool
	stack   []string
	out     [][]string
}

func (t *tarjan) connect(v string) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.succ[v] {
		if _, seen := t.index[w]; !seen {
			t.connect(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}
	var comp []string
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	if len(comp) > 1 {
		sortStrings(comp)
		t.out = append(t.out, comp)
	}
}

package prereq

import "testing"

func TestBuildConceptGraphDropsInvalidEdges(t *testing.T) {
	g := BuildConceptGraph(
		concepts("k1", "k2", "k3", "lonely"),
		[]PrerequisiteEdge{
			edge("k1", "k2"),
			edge("k2", "k3"),
			edge("k1", "k2"),
			edge("k2", "k2"),
			edge("ghost", "k3"),
			edge("k3", "missing"),
		},
		nil,
	)

	if g.Len() != 4 {
		t.Fatalf("expected 4 concepts got %d", g.Len())
	}
	if !g.Has("lonely") {
		t.Fatalf("isolated concept must still be a node")
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("expected 2 edges got %d", g.EdgeCount())
	}
	assertStrings(t, "prerequisites of k2", g.Prerequisites("k2"), []string{"k1"})
	assertStrings(t, "dependents of k2", g.Dependents("k2"), []string{"k3"})

	st := g.Stats()
	if st.DroppedEdges != 4 {
		t.Fatalf("expected 4 dropped edges got %d", st.DroppedEdges)
	}
	for reason, want := range map[string]int{
		DropDuplicate:           1,
		DropSelfLoop:            1,
		DropUnknownPrerequisite: 1,
		DropUnknownTarget:       1,
	} {
		if st.DroppedByReason[reason] != want {
			t.Fatalf("dropped[%s]: expected %d got %d", reason, want, st.DroppedByReason[reason])
		}
	}
	if st.Isolated != 1 || st.Roots != 2 {
		t.Fatalf("expected 1 isolated and 2 roots, got %+v", st)
	}
}

func TestNilConceptGraphIsEmpty(t *testing.T) {
	var g *ConceptGraph
	if g.Has("x") || g.Len() != 0 || g.EdgeCount() != 0 {
		t.Fatalf("nil graph should behave as empty")
	}
	if st := g.Stats(); st.Concepts != 0 {
		t.Fatalf("expected empty stats got %+v", st)
	}
}

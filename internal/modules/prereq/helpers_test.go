package prereq

import (
	"reflect"
	"testing"
)

func concepts(ids ...string) []Concept {
	out := make([]Concept, 0, len(ids))
	for _, id := range ids {
		out = append(out, Concept{ID: id, Name: id})
	}
	return out
}

func edge(p, t string) PrerequisiteEdge { return PrerequisiteEdge{Prerequisite: p, Target: t} }

func course(id string) Course { return Course{ID: id, Name: id} }

func difficulty(v float64) *float64 { return &v }

func assertStrings(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s: expected %v got %v", label, want, got)
	}
}

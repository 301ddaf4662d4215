package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
)

// Memory is an in-process EntityStore. It does not implement
// MembershipBatcher, so callers exercise the per-course fetch path.
type Memory struct {
	mu         sync.RWMutex
	concepts   []prereq.Concept
	edges      []prereq.PrerequisiteEdge
	courses    map[string]prereq.Course
	membership map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		courses:    map[string]prereq.Course{},
		membership: map[string][]string{},
	}
}

func (m *Memory) AddConcepts(cs ...prereq.Concept) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.concepts = append(m.concepts, cs...)
	return m
}

func (m *Memory) AddEdges(es ...prereq.PrerequisiteEdge) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, es...)
	return m
}

// AddCourse registers c with the given concept membership, replacing any
// previous course with the same id.
func (m *Memory) AddCourse(c prereq.Course, conceptIDs ...string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[c.ID] = c
	m.membership[c.ID] = append([]string(nil), conceptIDs...)
	return m
}

func (m *Memory) ListConcepts(ctx context.Context) ([]prereq.Concept, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]prereq.Concept(nil), m.concepts...), nil
}

func (m *Memory) ListPrerequisiteEdges(ctx context.Context) ([]prereq.PrerequisiteEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]prereq.PrerequisiteEdge(nil), m.edges...), nil
}

func (m *Memory) GetCourse(ctx context.Context, id string) (prereq.Course, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[id]
	return c, ok, nil
}

func (m *Memory) FindCourseByName(ctx context.Context, name string) (prereq.Course, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name = strings.TrimSpace(name)
	var (
		best  prereq.Course
		found bool
	)
	for _, c := range m.courses {
		if c.Name == name && (!found || c.ID < best.ID) {
			best, found = c, true
		}
	}
	return best, found, nil
}

func (m *Memory) ListCandidateCourses(ctx context.Context, excluding string) ([]prereq.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]prereq.Course, 0, len(m.courses))
	for id, c := range m.courses {
		if id != excluding {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetCourseConcepts(ctx context.Context, courseID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.membership[courseID]...), nil
}

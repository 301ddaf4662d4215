package prereq

// Concept is an atomic unit of knowledge. Ancestry is derived only from
// prerequisite edges.
type Concept struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Explanation string `json:"explanation,omitempty"`
}

// Course is a learning unit. Prerequisites is the unstructured free-text
// description carried by the dataset; Difficulty is only a tie-break.
type Course struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Prerequisites string   `json:"prerequisites,omitempty"`
	Difficulty    *float64 `json:"difficulty,omitempty"`
}

// PrerequisiteEdge means Prerequisite must be learned before Target.
type PrerequisiteEdge struct {
	Prerequisite string `json:"prerequisite"`
	Target       string `json:"target"`
}

const (
	ReasonBasicCourse           = "basic-course"
	ReasonNoQualifyingCandidate = "no-qualifying-candidate"
	ReasonUnresolvedCycle       = "unresolved-cycle"
	ReasonTargetNotFound        = "target-not-found"
)

const (
	StrategyTextPrerequisites = "text_prerequisites"
	StrategyConceptGraph      = "concept_graph"
	StrategyCoverageFallback  = "coverage_fallback"
)

// CourseEdge is a directed course dependency: From must precede To.
type CourseEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e CourseEdge) key() string { return e.From + "\x00" + e.To }

// RemovedEdge records an edge dropped by the cycle resolver.
type RemovedEdge struct {
	CourseEdge
	Weight int `json:"weight"`
	Round  int `json:"round"`
}

// Recommendation is one ranked coverage-fallback candidate.
type Recommendation struct {
	CourseID   string   `json:"course_id"`
	Name       string   `json:"name"`
	Covered    int      `json:"covered"`
	Required   int      `json:"required"`
	Ratio      float64  `json:"ratio"`
	Difficulty *float64 `json:"difficulty,omitempty"`
}

// ResolvedPath is the uniform result of a resolution. When Valid, Path lists
// course ids with prerequisites first and the target last; Names is parallel
// to Path. When not Valid, Reason says why.
type ResolvedPath struct {
	Valid           bool             `json:"valid"`
	TargetID        string           `json:"target_id"`
	TargetName      string           `json:"target_name"`
	Path            []string         `json:"path"`
	Names           []string         `json:"names"`
	Reason          string           `json:"reason,omitempty"`
	Strategy        string           `json:"strategy,omitempty"`
	RemovedEdges    []RemovedEdge    `json:"removed_edges,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	CycleMembers    [][]string       `json:"cycle_members,omitempty"`
}

// Prerequisites returns every path element except the target.
func (p ResolvedPath) Prerequisites() []string {
	if len(p.Path) == 0 {
		return nil
	}
	return append([]string(nil), p.Path[:len(p.Path)-1]...)
}

func invalid(targetID, reason string) ResolvedPath {
	return ResolvedPath{Valid: false, TargetID: targetID, Reason: reason, Path: []string{}, Names: []string{}}
}

// Set is a string set.
type Set map[string]struct{}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) add(id string) { s[id] = struct{}{} }

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sortStrings(out)
	return out
}

func setOf(ids []string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.add(id)
	}
	return s
}

package prereq

import (
	"fmt"

	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

// Input is the snapshot a single resolution works on. Courses are the
// candidate courses (the target may be present and is ignored); Membership
// maps their ids to concept ids. Graph may carry a prebuilt concept graph over
// Concepts and Edges, in which case those two fields are not read.
type Input struct {
	Target         Course
	TargetConcepts []string
	Concepts       []Concept
	Edges          []PrerequisiteEdge
	Graph          *ConceptGraph
	Courses        []Course
	Membership     map[string][]string
}

// Resolve computes the learning path for in.Target. Outcomes that are not
// data-integrity failures (basic course, no qualifying candidate, unresolved
// cycle) come back as an invalid ResolvedPath with a nil error.
func Resolve(in Input, p Policy, log *logger.Logger) (ResolvedPath, error) {
	rp, err := resolve(in, p, log)
	if err == nil {
		rp.TargetName = in.Target.Name
	}
	return rp, err
}

func resolve(in Input, p Policy, log *logger.Logger) (ResolvedPath, error) {
	if err := p.Validate(); err != nil {
		return ResolvedPath{}, fmt.Errorf("resolve: %w", err)
	}
	targetID := in.Target.ID
	if targetID == "" {
		return invalid("", ReasonTargetNotFound), ErrCourseNotFound
	}
	if log != nil {
		log = log.With("target_id", targetID)
	}
	courses := make([]Course, 0, len(in.Courses))
	for _, c := range in.Courses {
		if c.ID != targetID {
			courses = append(courses, c)
		}
	}

	if ids := MatchTextPrerequisites(in.Target.Prerequisites, targetID, courses, p); len(ids) > 0 {
		if log != nil {
			log.Debug("resolved from text prerequisites", "matches", len(ids))
		}
		return withNames(ResolvedPath{
			Valid:    true,
			TargetID: targetID,
			Path:     append(ids, targetID),
			Strategy: StrategyTextPrerequisites,
		}, in.Target, courses), nil
	}

	seeds := setOf(in.TargetConcepts).Sorted()
	if len(seeds) == 0 {
		return invalid(targetID, ReasonBasicCourse), nil
	}

	g := in.Graph
	if g == nil {
		g = BuildConceptGraph(in.Concepts, in.Edges, log)
	}
	required, err := Ancestors(g, seeds)
	if err != nil {
		if cnd, ok := err.(*ConceptNotDefinedError); ok {
			cnd.CourseID = targetID
		}
		return ResolvedPath{}, err
	}
	if len(required) == 0 {
		// The seeds stand in for the required set; members of overlapping
		// courses must still be defined.
		if _, err := SelectCandidates(g, setOf(seeds), targetID, courses, in.Membership); err != nil {
			return ResolvedPath{}, err
		}
		return withNames(coverageFallback(targetID, setOf(seeds), courses, in.Membership, p), in.Target, courses), nil
	}

	candidates, err := SelectCandidates(g, required, targetID, courses, in.Membership)
	if err != nil {
		return ResolvedPath{}, err
	}
	if len(candidates) == 0 {
		return withNames(coverageFallback(targetID, required, courses, in.Membership, p), in.Target, courses), nil
	}

	cg, err := DeriveCourseGraph(g, targetID, seeds, candidates, in.Membership)
	if err != nil {
		return ResolvedPath{}, err
	}
	cr := ResolveCycles(cg, p.MaxCycleRetry, log)
	if !cr.Acyclic {
		out := invalid(targetID, ReasonUnresolvedCycle)
		out.RemovedEdges = cr.Removed
		out.CycleMembers = cr.Remaining
		return out, nil
	}
	path, err := SynthesizePath(cr.Graph)
	if err != nil {
		return ResolvedPath{}, err
	}
	return withNames(ResolvedPath{
		Valid:        true,
		TargetID:     targetID,
		Path:         path,
		Strategy:     StrategyConceptGraph,
		RemovedEdges: cr.Removed,
	}, in.Target, courses), nil
}

func withNames(rp ResolvedPath, target Course, courses []Course) ResolvedPath {
	names := make(map[string]string, len(courses)+1)
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	names[target.ID] = target.Name
	rp.Names = make([]string, len(rp.Path))
	for i, id := range rp.Path {
		rp.Names[i] = names[id]
	}
	return rp
}

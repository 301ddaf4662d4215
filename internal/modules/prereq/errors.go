package prereq

import (
	"errors"
	"fmt"
)

var (
	// ErrCourseNotFound is returned when the target id or name does not resolve.
	ErrCourseNotFound = errors.New("course not found")
	// ErrConceptNotDefined marks a concept reference missing from the concept graph.
	ErrConceptNotDefined = errors.New("concept not defined")
	// ErrUnresolvedCycle marks a course graph still cyclic after the retry budget.
	ErrUnresolvedCycle = errors.New("unresolved cycle")
	// ErrInvariantViolated is raised when synthesized output breaks the target-last rule.
	ErrInvariantViolated = errors.New("path invariant violated")
)

// ConceptNotDefinedError names the missing concept and, when known, the course
// whose membership referenced it.
type ConceptNotDefinedError struct {
	ConceptID string
	CourseID  string
}

func (e *ConceptNotDefinedError) Error() string {
	if e.CourseID != "" {
		return fmt.Sprintf("concept %q (member of course %q) is not defined in the knowledge graph", e.ConceptID, e.CourseID)
	}
	return fmt.Sprintf("concept %q is not defined in the knowledge graph", e.ConceptID)
}

func (e *ConceptNotDefinedError) Is(target error) bool { return target == ErrConceptNotDefined }

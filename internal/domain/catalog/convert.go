package catalog

import "github.com/yungbote/prereqpath-backend/internal/modules/prereq"

func (c *Concept) ToPrereq() prereq.Concept {
	return prereq.Concept{ID: c.ID, Name: c.Name, Explanation: c.Explanation}
}

func (c *Course) ToPrereq() prereq.Course {
	out := prereq.Course{ID: c.ID, Name: c.Name, Prerequisites: c.Prerequisites}
	if c.Difficulty != nil {
		d := *c.Difficulty
		out.Difficulty = &d
	}
	return out
}

func (r *PrerequisiteDependency) ToPrereq() prereq.PrerequisiteEdge {
	return prereq.PrerequisiteEdge{Prerequisite: r.PrerequisiteID, Target: r.TargetID}
}

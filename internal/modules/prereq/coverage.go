package prereq

import (
	"sort"
)

// RankCoverage scores every non-target course by the share of required it
// covers and keeps those strictly above threshold, best first: higher ratio,
// then lower difficulty (unknown last), then id. At most topK are returned.
func RankCoverage(targetID string, required Set, courses []Course, membership map[string][]string, threshold float64, topK int) []Recommendation {
	if len(required) == 0 {
		return nil
	}
	var out []Recommendation
	for _, c := range courses {
		if c.ID == targetID {
			continue
		}
		covered := 0
		for k := range setOf(membership[c.ID]) {
			if required.Has(k) {
				covered++
			}
		}
		ratio := float64(covered) / float64(len(required))
		if !(ratio > threshold) {
			continue
		}
		out = append(out, Recommendation{
			CourseID:   c.ID,
			Name:       c.Name,
			Covered:    covered,
			Required:   len(required),
			Ratio:      ratio,
			Difficulty: c.Difficulty,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Ratio != b.Ratio {
			return a.Ratio > b.Ratio
		}
		switch {
		case a.Difficulty != nil && b.Difficulty == nil:
			return true
		case a.Difficulty == nil && b.Difficulty != nil:
			return false
		case a.Difficulty != nil && b.Difficulty != nil && *a.Difficulty != *b.Difficulty:
			return *a.Difficulty < *b.Difficulty
		}
		return a.CourseID < b.CourseID
	})
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// coverageFallback turns a ranking into a result. An empty ranking is the
// no-qualifying-candidate outcome.
func coverageFallback(targetID string, required Set, courses []Course, membership map[string][]string, p Policy) ResolvedPath {
	recs := RankCoverage(targetID, required, courses, membership, p.CoverageThreshold, p.FallbackTopK)
	if len(recs) == 0 {
		return invalid(targetID, ReasonNoQualifyingCandidate)
	}
	path := make([]string, 0, len(recs)+1)
	for _, r := range recs {
		path = append(path, r.CourseID)
	}
	path = append(path, targetID)
	return ResolvedPath{
		Valid:           true,
		TargetID:        targetID,
		Path:            path,
		Strategy:        StrategyCoverageFallback,
		Recommendations: recs,
	}
}

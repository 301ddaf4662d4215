package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
	"github.com/yungbote/prereqpath-backend/internal/platform/neo4jdb"
)

// SyncStats reports what one UpsertConceptGraph call wrote.
type SyncStats struct {
	Concepts      int
	Prerequisites int
	Courses       int
	Memberships   int
}

// CourseMembership is a course node plus the concepts it covers.
type CourseMembership struct {
	Course     prereq.Course
	ConceptIDs []string
}

// UpsertConceptGraph MERGEs every concept as (:Concept {id}) and every
// prerequisite edge as [:CONCEPT_PREREQ]. Courses, when given, become
// (:Course {id}) nodes linked to their concepts with [:COVERS]. Edges whose
// endpoints are missing are skipped by the MATCH.
func UpsertConceptGraph(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, concepts []prereq.Concept, edges []prereq.PrerequisiteEdge, courses []CourseMembership) (SyncStats, error) {
	var st SyncStats
	if client == nil || client.Driver == nil {
		return st, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	nodes := make([]map[string]any, 0, len(concepts))
	for _, c := range concepts {
		if c.ID == "" {
			continue
		}
		nodes = append(nodes, map[string]any{
			"id":          c.ID,
			"name":        c.Name,
			"explanation": c.Explanation,
			"synced_at":   now,
		})
	}
	rels := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		if e.Prerequisite == "" || e.Target == "" || e.Prerequisite == e.Target {
			continue
		}
		rels = append(rels, map[string]any{
			"from_id":   e.Prerequisite,
			"to_id":     e.Target,
			"synced_at": now,
		})
	}
	courseNodes := make([]map[string]any, 0, len(courses))
	covers := make([]map[string]any, 0, len(courses))
	for _, cm := range courses {
		if cm.Course.ID == "" {
			continue
		}
		rec := map[string]any{
			"id":            cm.Course.ID,
			"name":          cm.Course.Name,
			"prerequisites": cm.Course.Prerequisites,
			"synced_at":     now,
		}
		if cm.Course.Difficulty != nil {
			rec["difficulty"] = *cm.Course.Difficulty
		}
		courseNodes = append(courseNodes, rec)
		for _, k := range cm.ConceptIDs {
			covers = append(covers, map[string]any{"course_id": cm.Course.ID, "concept_id": k, "synced_at": now})
		}
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	// Schema helpers are best-effort; restricted users may not create them.
	for _, stmt := range []string{
		`CREATE CONSTRAINT concept_id_unique IF NOT EXISTS FOR (c:Concept) REQUIRE c.id IS UNIQUE`,
		`CREATE CONSTRAINT course_id_unique IF NOT EXISTS FOR (c:Course) REQUIRE c.id IS UNIQUE`,
	} {
		if res, err := session.Run(ctx, stmt, nil); err != nil {
			if log != nil {
				log.Warn("neo4j schema init failed (continuing)", "error", err)
			}
		} else {
			_, _ = res.Consume(ctx)
		}
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if len(nodes) > 0 {
			if err := runConsume(ctx, tx, `
UNWIND $nodes AS n
MERGE (c:Concept {id: n.id})
SET c += n
`, map[string]any{"nodes": nodes}); err != nil {
				return nil, err
			}
		}
		if len(rels) > 0 {
			if err := runConsume(ctx, tx, `
UNWIND $rels AS r
MATCH (a:Concept {id: r.from_id})
MATCH (b:Concept {id: r.to_id})
MERGE (a)-[e:CONCEPT_PREREQ]->(b)
SET e.synced_at = r.synced_at
`, map[string]any{"rels": rels}); err != nil {
				return nil, err
			}
		}
		if len(courseNodes) > 0 {
			if err := runConsume(ctx, tx, `
UNWIND $nodes AS n
MERGE (c:Course {id: n.id})
SET c += n
`, map[string]any{"nodes": courseNodes}); err != nil {
				return nil, err
			}
		}
		if len(covers) > 0 {
			if err := runConsume(ctx, tx, `
UNWIND $rels AS r
MATCH (c:Course {id: r.course_id})
MATCH (k:Concept {id: r.concept_id})
MERGE (c)-[e:COVERS]->(k)
SET e.synced_at = r.synced_at
`, map[string]any{"rels": covers}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return st, fmt.Errorf("neo4j concept graph sync: %w", err)
	}

	st = SyncStats{Concepts: len(nodes), Prerequisites: len(rels), Courses: len(courseNodes), Memberships: len(covers)}
	if log != nil {
		log.Info("neo4j concept graph synced",
			"concepts", st.Concepts,
			"prerequisites", st.Prerequisites,
			"courses", st.Courses,
			"memberships", st.Memberships,
		)
	}
	return st, nil
}

func runConsume(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) error {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
	"github.com/yungbote/prereqpath-backend/internal/platform/neo4jdb"
)

// ConceptGraphReader reads the concept nodes and prerequisite relationships
// written by UpsertConceptGraph.
type ConceptGraphReader struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewConceptGraphReader(client *neo4jdb.Client, log *logger.Logger) *ConceptGraphReader {
	return &ConceptGraphReader{client: client, log: log.With("reader", "Neo4jConceptGraph")}
}

func (r *ConceptGraphReader) ListConcepts(ctx context.Context) ([]prereq.Concept, error) {
	recs, err := r.read(ctx, `
MATCH (c:Concept)
RETURN c.id AS id, coalesce(c.name, '') AS name, coalesce(c.explanation, '') AS explanation
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("neo4j list concepts: %w", err)
	}
	out := make([]prereq.Concept, 0, len(recs))
	for _, rec := range recs {
		out = append(out, prereq.Concept{
			ID:          recordString(rec, "id"),
			Name:        recordString(rec, "name"),
			Explanation: recordString(rec, "explanation"),
		})
	}
	return out, nil
}

func (r *ConceptGraphReader) ListPrerequisiteEdges(ctx context.Context) ([]prereq.PrerequisiteEdge, error) {
	recs, err := r.read(ctx, `
MATCH (a:Concept)-[:CONCEPT_PREREQ]->(b:Concept)
RETURN a.id AS from_id, b.id AS to_id
ORDER BY to_id, from_id
`)
	if err != nil {
		return nil, fmt.Errorf("neo4j list prerequisite edges: %w", err)
	}
	out := make([]prereq.PrerequisiteEdge, 0, len(recs))
	for _, rec := range recs {
		out = append(out, prereq.PrerequisiteEdge{
			Prerequisite: recordString(rec, "from_id"),
			Target:       recordString(rec, "to_id"),
		})
	}
	return out, nil
}

func (r *ConceptGraphReader) read(ctx context.Context, cypher string) ([]*neo4j.Record, error) {
	if r == nil || r.client == nil || r.client.Driver == nil {
		return nil, fmt.Errorf("neo4j client not configured")
	}
	session := r.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: r.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, nil)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	recs, _ := out.([]*neo4j.Record)
	return recs, nil
}

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/prereqpath-backend/internal/app"
	"github.com/yungbote/prereqpath-backend/internal/data/graph"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/dbctx"
)

func main() {
	var withCourses bool
	var timeout time.Duration
	flag.BoolVar(&withCourses, "courses", true, "also sync course nodes and COVERS relationships")
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "overall sync timeout")
	flag.Parse()
	os.Exit(run(withCourses, timeout))
}

// run returns the exit code once the app has been closed.
func run(withCourses bool, timeout time.Duration) int {

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		return 1
	}
	defer application.Close()

	if application.Clients.Neo4j == nil {
		fmt.Println("NEO4J_URI is not set; nothing to sync")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	dbc := dbctx.Context{Ctx: ctx}
	r := application.Repos

	conceptRows, err := r.Concepts.ListAll(dbc)
	if err != nil {
		fmt.Printf("load concepts: %v\n", err)
		return 1
	}
	concepts := make([]prereq.Concept, 0, len(conceptRows))
	for _, row := range conceptRows {
		concepts = append(concepts, row.ToPrereq())
	}

	edgeRows, err := r.Prerequisites.ListAll(dbc)
	if err != nil {
		fmt.Printf("load prerequisite edges: %v\n", err)
		return 1
	}
	edges := make([]prereq.PrerequisiteEdge, 0, len(edgeRows))
	for _, row := range edgeRows {
		edges = append(edges, row.ToPrereq())
	}

	var courses []graph.CourseMembership
	if withCourses {
		courseRows, err := r.Courses.ListExcluding(dbc, "")
		if err != nil {
			fmt.Printf("load courses: %v\n", err)
			return 1
		}
		ids := make([]string, 0, len(courseRows))
		for _, row := range courseRows {
			ids = append(ids, row.ID)
		}
		members, err := r.Memberships.GetConceptIDsByCourseIDs(dbc, ids)
		if err != nil {
			fmt.Printf("load memberships: %v\n", err)
			return 1
		}
		for _, row := range courseRows {
			courses = append(courses, graph.CourseMembership{Course: row.ToPrereq(), ConceptIDs: members[row.ID]})
		}
	}

	stats, err := graph.UpsertConceptGraph(ctx, application.Clients.Neo4j, application.Log, concepts, edges, courses)
	if err != nil {
		fmt.Printf("sync concept graph: %v\n", err)
		return 1
	}
	if err := application.Services.Snapshots.Invalidate(ctx); err != nil {
		application.Log.Warn("Snapshot invalidation after sync failed", "error", err)
	}
	fmt.Printf("synced concepts=%d prerequisites=%d courses=%d memberships=%d\n",
		stats.Concepts, stats.Prerequisites, stats.Courses, stats.Memberships)
	return 0
}

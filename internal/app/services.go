package app

import (
	"fmt"

	"github.com/yungbote/prereqpath-backend/internal/data/graph"
	"github.com/yungbote/prereqpath-backend/internal/data/repos"
	"github.com/yungbote/prereqpath-backend/internal/data/store"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
	"github.com/yungbote/prereqpath-backend/internal/services"
)

type Services struct {
	Store     store.EntityStore
	Snapshots *services.SnapshotLoader
	Path      services.PathService
}

func wireServices(log *logger.Logger, cfg Config, reposet repos.Set, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	policy, err := prereq.LoadPolicyFile(cfg.PolicyFile)
	if err != nil {
		return Services{}, fmt.Errorf("load prereq policy: %w", err)
	}

	var entityStore store.EntityStore = store.NewGorm(reposet, log)
	if cfg.GraphSource == GraphSourceNeo4j {
		entityStore = store.WithConceptSource(entityStore, graph.NewConceptGraphReader(clients.Neo4j, log))
		log.Info("Concept graph served from Neo4j")
	}

	var remote services.RemoteSnapshotCache
	if clients.SnapshotCache != nil {
		remote = clients.SnapshotCache
	}
	snapshots := services.NewSnapshotLoader(entityStore, remote, cfg.SnapshotCacheTTL, log)

	path := services.NewPathService(log, entityStore, snapshots, services.PathServiceConfig{
		Policy:                policy,
		MembershipConcurrency: cfg.MembershipConcurrency,
		ResolveTimeout:        cfg.ResolveTimeout,
	})

	return Services{Store: entityStore, Snapshots: snapshots, Path: path}, nil
}

package app

import (
	"context"
	"fmt"

	"github.com/yungbote/prereqpath-backend/internal/clients/redis"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
	"github.com/yungbote/prereqpath-backend/internal/platform/neo4jdb"
)

type Clients struct {
	Neo4j         *neo4jdb.Client
	SnapshotCache redis.SnapshotCache
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Neo4j
	var n4j *neo4jdb.Client
	if cfg.Neo4jURI != "" {
		c, err := neo4jdb.New(neo4jdb.Config{
			URI:      cfg.Neo4jURI,
			User:     cfg.Neo4jUser,
			Password: cfg.Neo4jPassword,
			Database: cfg.Neo4jDatabase,
			Timeout:  cfg.Neo4jTimeout,
		}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init neo4j: %w", err)
		}
		n4j = c
	}
	if cfg.GraphSource == GraphSourceNeo4j && n4j == nil {
		return Clients{}, fmt.Errorf("CONCEPT_GRAPH_SOURCE=neo4j requires NEO4J_URI")
	}

	// Redis
	var cache redis.SnapshotCache
	if cfg.RedisAddr != "" {
		c, err := redis.NewSnapshotCache(redis.SnapshotCacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisSnapshotTTL,
		}, log)
		if err != nil {
			_ = n4j.Close(context.Background())
			return Clients{}, fmt.Errorf("init redis snapshot cache: %w", err)
		}
		cache = c
	}

	return Clients{Neo4j: n4j, SnapshotCache: cache}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SnapshotCache != nil {
		_ = c.SnapshotCache.Close()
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(context.Background())
	}
}

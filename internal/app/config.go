package app

import (
	"strings"
	"time"

	"github.com/yungbote/prereqpath-backend/internal/data/db"
	"github.com/yungbote/prereqpath-backend/internal/observability"
	"github.com/yungbote/prereqpath-backend/internal/platform/envutil"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

const (
	GraphSourcePostgres = "postgres"
	GraphSourceNeo4j    = "neo4j"
)

type Config struct {
	Port    string
	LogMode string

	DB db.Config

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string
	Neo4jTimeout  time.Duration
	GraphSource   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SnapshotCacheTTL      time.Duration
	RedisSnapshotTTL      time.Duration
	MembershipConcurrency int
	ResolveTimeout        time.Duration

	MetricsEnabled bool
	OtelEnabled    bool
	OtelEndpoint   string
	OtelInsecure   bool
	OtelHeaders    map[string]string
	OtelSampling   float64
	ServiceName    string
	Environment    string
	AllowedOrigins []string

	PolicyFile string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:    envutil.String("PORT", "8080", log),
		LogMode: envutil.String("LOG_MODE", "development", log),
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres, log),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", log),
			PostgresName:     envutil.String("POSTGRES_NAME", "prereqpath", log),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath:       envutil.String("SQLITE_PATH", "", log),
		},
		Neo4jURI:      envutil.String("NEO4J_URI", "", log),
		Neo4jUser:     envutil.String("NEO4J_USER", "neo4j", log),
		Neo4jPassword: envutil.String("NEO4J_PASSWORD", "", log),
		Neo4jDatabase: envutil.String("NEO4J_DATABASE", "", log),
		Neo4jTimeout:  envutil.Duration("NEO4J_TIMEOUT", 10*time.Second, log),
		GraphSource:   strings.ToLower(envutil.String("CONCEPT_GRAPH_SOURCE", GraphSourcePostgres, log)),

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),

		SnapshotCacheTTL:      envutil.Seconds("SNAPSHOT_CACHE_TTL_SECONDS", 300*time.Second, log),
		RedisSnapshotTTL:      envutil.Seconds("REDIS_SNAPSHOT_TTL_SECONDS", 300*time.Second, log),
		MembershipConcurrency: envutil.Int("MEMBERSHIP_FETCH_CONCURRENCY", 8, log),
		ResolveTimeout:        envutil.Seconds("RESOLVE_TIMEOUT_SECONDS", 15*time.Second, log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true),
		OtelEnabled:    envutil.Bool("OTEL_ENABLED", false),
		OtelEndpoint:   envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
		OtelInsecure:   envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		OtelHeaders:    observability.ParseOTLPHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
		OtelSampling:   envutil.Float("OTEL_SAMPLER_RATIO", 0.1, log),
		ServiceName:    envutil.String("OTEL_SERVICE_NAME", "prereqpath-backend", log),
		Environment:    envutil.String("APP_ENV", "development", log),
		AllowedOrigins: splitCSV(envutil.String("CORS_ALLOWED_ORIGINS", "", log)),

		PolicyFile: envutil.String("PREREQ_POLICY_FILE", "", log),
	}
	if cfg.GraphSource != GraphSourceNeo4j {
		cfg.GraphSource = GraphSourcePostgres
	}
	if cfg.ResolveTimeout <= 0 {
		cfg.ResolveTimeout = 15 * time.Second
	}
	if cfg.MembershipConcurrency <= 0 {
		cfg.MembershipConcurrency = 8
	}
	return cfg
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

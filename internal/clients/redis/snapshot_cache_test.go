package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/prereqpath-backend/internal/data/store"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

func TestNewSnapshotCacheRequiresAddr(t *testing.T) {
	if _, err := NewSnapshotCache(SnapshotCacheConfig{}, logger.Nop()); err == nil {
		t.Fatalf("expected error for missing addr")
	}
	if _, err := NewSnapshotCache(SnapshotCacheConfig{Addr: "x"}, nil); err == nil {
		t.Fatalf("expected error for missing logger")
	}
}

func TestSnapshotTTLNeverDisablesExpiry(t *testing.T) {
	if got := snapshotTTL(0); got != defaultSnapshotTTL {
		t.Fatalf("ttl 0: got %v", got)
	}
	if got := snapshotTTL(-time.Second); got != defaultSnapshotTTL {
		t.Fatalf("negative ttl: got %v", got)
	}
	if got := snapshotTTL(90 * time.Second); got != 90*time.Second {
		t.Fatalf("explicit ttl: got %v", got)
	}
}

func TestSnapshotCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	cache, err := NewSnapshotCache(SnapshotCacheConfig{
		Addr: addr,
		Key:  "prereqpath:test:" + uuid.NewString(),
		TTL:  time.Minute,
	}, logger.Nop())
	if err != nil {
		t.Fatalf("NewSnapshotCache: %v", err)
	}
	defer cache.Close()
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	snap := &store.ConceptSnapshot{
		Concepts: []prereq.Concept{{ID: "k1", Name: "K1"}},
		Edges:    []prereq.PrerequisiteEdge{{Prerequisite: "k0", Target: "k1"}},
		LoadedAt: time.Now().UTC(),
	}
	if err := cache.Set(ctx, snap); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := cache.Get(ctx)
	if err != nil || !ok || len(got.Concepts) != 1 || got.Edges[0].Target != "k1" {
		t.Fatalf("Get: got=%+v ok=%v err=%v", got, ok, err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, _ := cache.Get(ctx); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

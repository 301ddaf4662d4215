package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/prereqpath-backend/internal/data/store"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/observability"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

const (
	SnapshotSourceMemory = "memory"
	SnapshotSourceRedis  = "redis"
	SnapshotSourceStore  = "store"
)

// RemoteSnapshotCache is a shared cache of concept snapshots, e.g. Redis.
type RemoteSnapshotCache interface {
	Get(ctx context.Context) (*store.ConceptSnapshot, bool, error)
	Set(ctx context.Context, snap *store.ConceptSnapshot) error
	Invalidate(ctx context.Context) error
}

// SnapshotLoader hands out the concept graph built from the latest snapshot.
// Graphs are immutable so one instance is shared by concurrent resolutions.
// A zero ttl disables the in-process copy.
type SnapshotLoader struct {
	log         *logger.Logger
	source      store.ConceptSource
	remote      RemoteSnapshotCache
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	graph   *prereq.ConceptGraph
	expires time.Time
}

func NewSnapshotLoader(source store.ConceptSource, remote RemoteSnapshotCache, ttl time.Duration, baseLog *logger.Logger) *SnapshotLoader {
	return &SnapshotLoader{
		log:         baseLog.With("service", "SnapshotLoader"),
		source:      source,
		remote:      remote,
		ttl:         ttl,
		loadTimeout: defaultSnapshotLoadTimeout,
		now:         time.Now,
	}
}

const defaultSnapshotLoadTimeout = 30 * time.Second

type loadResult struct {
	graph  *prereq.ConceptGraph
	source string
}

// Load returns the current concept graph and where it came from. Concurrent
// misses share one store read. The shared read is detached from any single
// caller's cancellation; each caller still stops waiting when its own ctx ends.
func (l *SnapshotLoader) Load(ctx context.Context) (*prereq.ConceptGraph, string, error) {
	if g := l.cached(); g != nil {
		observability.ObserveSnapshotLoad(SnapshotSourceMemory)
		return g, SnapshotSourceMemory, nil
	}
	ch := l.group.DoChan("snapshot", func() (any, error) {
		if g := l.cached(); g != nil {
			return loadResult{graph: g, source: SnapshotSourceMemory}, nil
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.loadTimeout)
		defer cancel()
		snap, source, err := l.fetch(fctx)
		if err != nil {
			return nil, err
		}
		g := prereq.BuildConceptGraph(snap.Concepts, snap.Edges, l.log)
		l.keep(g)
		return loadResult{graph: g, source: source}, nil
	})
	select {
	case <-ctx.Done():
		return nil, "", ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, "", r.Err
		}
		res := r.Val.(loadResult)
		observability.ObserveSnapshotLoad(res.source)
		return res.graph, res.source, nil
	}
}

func (l *SnapshotLoader) fetch(ctx context.Context) (*store.ConceptSnapshot, string, error) {
	if l.remote != nil {
		snap, ok, err := l.remote.Get(ctx)
		if err != nil {
			l.log.Warn("remote snapshot cache read failed (continuing)", "error", err)
		} else if ok && snap != nil {
			return snap, SnapshotSourceRedis, nil
		}
	}

	concepts, err := l.source.ListConcepts(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list concepts: %w", err)
	}
	edges, err := l.source.ListPrerequisiteEdges(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list prerequisite edges: %w", err)
	}
	snap := &store.ConceptSnapshot{Concepts: concepts, Edges: edges, LoadedAt: l.now().UTC()}
	if l.remote != nil {
		if err := l.remote.Set(ctx, snap); err != nil {
			l.log.Warn("remote snapshot cache write failed (continuing)", "error", err)
		}
	}
	l.log.Debug("concept snapshot loaded from store", "concepts", len(concepts), "edges", len(edges))
	return snap, SnapshotSourceStore, nil
}

func (l *SnapshotLoader) cached() *prereq.ConceptGraph {
	if l.ttl <= 0 {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.graph == nil || !l.now().Before(l.expires) {
		return nil
	}
	return l.graph
}

func (l *SnapshotLoader) keep(g *prereq.ConceptGraph) {
	if l.ttl <= 0 {
		return
	}
	l.mu.Lock()
	l.graph = g
	l.expires = l.now().Add(l.ttl)
	l.mu.Unlock()
}

// Invalidate drops the in-process graph and the remote snapshot.
func (l *SnapshotLoader) Invalidate(ctx context.Context) error {
	l.mu.Lock()
	l.graph = nil
	l.expires = time.Time{}
	l.mu.Unlock()
	l.group.Forget("snapshot")
	if l.remote != nil {
		if err := l.remote.Invalidate(ctx); err != nil {
			return fmt.Errorf("invalidate remote snapshot: %w", err)
		}
	}
	return nil
}

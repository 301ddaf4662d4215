package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/prereqpath-backend/internal/data/store"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/observability"
	"github.com/yungbote/prereqpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

type PathService interface {
	ResolvePrerequisitePath(ctx context.Context, courseID string) (prereq.ResolvedPath, error)
	ResolvePrerequisitePathByName(ctx context.Context, name string) (prereq.ResolvedPath, error)
	InvalidateSnapshot(ctx context.Context) error
	GraphStats(ctx context.Context) (prereq.GraphStats, error)
}

type PathServiceConfig struct {
	Policy                prereq.Policy
	MembershipConcurrency int
	ResolveTimeout        time.Duration
}

type pathService struct {
	log       *logger.Logger
	store     store.EntityStore
	snapshots *SnapshotLoader
	cfg       PathServiceConfig
	tracer    trace.Tracer
}

func NewPathService(
	baseLog *logger.Logger,
	entityStore store.EntityStore,
	snapshots *SnapshotLoader,
	cfg PathServiceConfig,
) PathService {
	serviceLog := baseLog.With("service", "PathService")
	if cfg.MembershipConcurrency <= 0 {
		cfg.MembershipConcurrency = 8
	}
	return &pathService{
		log:       serviceLog,
		store:     entityStore,
		snapshots: snapshots,
		cfg:       cfg,
		tracer:    observability.Tracer(),
	}
}

func (s *pathService) ResolvePrerequisitePath(ctx context.Context, courseID string) (prereq.ResolvedPath, error) {
	courseID = strings.TrimSpace(courseID)
	ctx, cancel := ctxutil.WithDefaultTimeout(ctx, s.cfg.ResolveTimeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "PathService.ResolvePrerequisitePath",
		trace.WithAttributes(attribute.String("course.id", courseID)))
	defer span.End()

	target, ok, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return s.fail(span, prereq.ResolvedPath{}, fmt.Errorf("load course %s: %w", courseID, err))
	}
	if !ok {
		return s.notFound(span, courseID)
	}
	return s.resolve(ctx, span, target)
}

func (s *pathService) ResolvePrerequisitePathByName(ctx context.Context, name string) (prereq.ResolvedPath, error) {
	name = strings.TrimSpace(name)
	ctx, cancel := ctxutil.WithDefaultTimeout(ctx, s.cfg.ResolveTimeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "PathService.ResolvePrerequisitePathByName",
		trace.WithAttributes(attribute.String("course.name", name)))
	defer span.End()

	target, ok, err := s.store.FindCourseByName(ctx, name)
	if err != nil {
		return s.fail(span, prereq.ResolvedPath{}, fmt.Errorf("find course %q: %w", name, err))
	}
	if !ok {
		return s.notFound(span, name)
	}
	span.SetAttributes(attribute.String("course.id", target.ID))
	return s.resolve(ctx, span, target)
}

func (s *pathService) resolve(ctx context.Context, span trace.Span, target prereq.Course) (prereq.ResolvedPath, error) {
	start := time.Now()
	log := s.log.With("target_id", target.ID)
	if td := ctxutil.GetTraceData(ctx); td != nil {
		log = log.With("request_id", td.RequestID, "trace_id", td.TraceID)
	}

	targetConcepts, err := s.store.GetCourseConcepts(ctx, target.ID)
	if err != nil {
		return s.fail(span, prereq.ResolvedPath{}, fmt.Errorf("target concepts: %w", err))
	}
	graph, source, err := s.snapshots.Load(ctx)
	if err != nil {
		return s.fail(span, prereq.ResolvedPath{}, fmt.Errorf("concept snapshot: %w", err))
	}
	courses, err := s.store.ListCandidateCourses(ctx, target.ID)
	if err != nil {
		return s.fail(span, prereq.ResolvedPath{}, fmt.Errorf("candidate courses: %w", err))
	}
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	membership, err := fetchMembership(ctx, s.store, ids, s.cfg.MembershipConcurrency)
	if err != nil {
		return s.fail(span, prereq.ResolvedPath{}, fmt.Errorf("candidate membership: %w", err))
	}
	if err := ctx.Err(); err != nil {
		return s.fail(span, prereq.ResolvedPath{}, err)
	}

	out, err := prereq.Resolve(prereq.Input{
		Target:         target,
		TargetConcepts: targetConcepts,
		Graph:          graph,
		Courses:        courses,
		Membership:     membership,
	}, s.cfg.Policy, log)
	elapsed := time.Since(start)
	if err != nil {
		observability.ObserveResolution(out.Strategy, "error", elapsed)
		return s.fail(span, out, err)
	}

	outcome := "valid"
	if !out.Valid {
		outcome = out.Reason
	} else {
		observability.ObservePath(len(out.Path), len(out.RemovedEdges))
	}
	observability.ObserveResolution(out.Strategy, outcome, elapsed)
	span.SetAttributes(
		attribute.Bool("path.valid", out.Valid),
		attribute.String("path.strategy", out.Strategy),
		attribute.String("path.reason", out.Reason),
		attribute.Int("path.length", len(out.Path)),
		attribute.Int("path.removed_edges", len(out.RemovedEdges)),
		attribute.String("snapshot.source", source),
	)
	log.Info("Prerequisite path resolved",
		"valid", out.Valid,
		"strategy", out.Strategy,
		"reason", out.Reason,
		"path_len", len(out.Path),
		"candidates", len(courses),
		"snapshot_source", source,
		"duration_ms", elapsed.Milliseconds(),
	)
	return out, nil
}

func (s *pathService) notFound(span trace.Span, ref string) (prereq.ResolvedPath, error) {
	out := prereq.ResolvedPath{TargetID: ref, Reason: prereq.ReasonTargetNotFound, Path: []string{}, Names: []string{}}
	observability.ObserveResolution("", prereq.ReasonTargetNotFound, 0)
	span.SetStatus(codes.Error, prereq.ReasonTargetNotFound)
	return out, fmt.Errorf("%w: %s", prereq.ErrCourseNotFound, ref)
}

func (s *pathService) fail(span trace.Span, out prereq.ResolvedPath, err error) (prereq.ResolvedPath, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errors.Is(err, prereq.ErrConceptNotDefined) {
		s.log.Warn("Resolution failed on inconsistent knowledge base", "error", err)
	} else {
		s.log.Error("Resolution failed", "error", err)
	}
	return out, err
}

func (s *pathService) InvalidateSnapshot(ctx context.Context) error {
	if err := s.snapshots.Invalidate(ctxutil.Default(ctx)); err != nil {
		return err
	}
	s.log.Info("Concept snapshot invalidated")
	return nil
}

func (s *pathService) GraphStats(ctx context.Context) (prereq.GraphStats, error) {
	ctx, cancel := ctxutil.WithDefaultTimeout(ctx, s.cfg.ResolveTimeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "PathService.GraphStats")
	defer span.End()

	graph, _, err := s.snapshots.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return prereq.GraphStats{}, fmt.Errorf("concept snapshot: %w", err)
	}
	return graph.Stats(), nil
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

const dashboardStatsCacheKey = "dashboard:stats"

// DashboardService produces the teacher overview counts.
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStats, error)
	Invalidate(ctx context.Context)
}

// StatsInvalidator drops cached dashboard counts after a write that changes them.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type dashboardService struct {
	repo     repository.StatsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewDashboardService builds the stats aggregator. cache may be nil.
func NewDashboardService(repo repository.StatsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/tutoring-api/internal/service/dashboard"),
	}
}

// Stats runs the four counts concurrently; the first failure fails the whole result.
func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardStats, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.stats")
	defer span.End()

	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	var stats dto.DashboardStats
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		stats.TotalStudents, err = s.repo.CountStudents(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		stats.ActiveStudents, err = s.repo.CountActiveStudents(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		stats.TotalLessons, err = s.repo.CountLessons(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		stats.PendingAssignments, err = s.repo.CountPendingAssignments(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count failed")
		return dto.DashboardStats{}, err
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *dashboardService) fromCache(ctx context.Context) (dto.DashboardStats, bool) {
	if s.cache == nil {
		return dto.DashboardStats{}, false
	}

	cached, err := s.cache.Get(ctx, dashboardStatsCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
		return dto.DashboardStats{}, false
	}

	var stats dto.DashboardStats
	if err := json.Unmarshal([]byte(cached), &stats); err != nil {
		return dto.DashboardStats{}, false
	}
	s.logger.Debug().Msg("dashboard cache hit")
	return stats, true
}

func (s *dashboardService) toCache(ctx context.Context, stats dto.DashboardStats) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardStatsCacheKey, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
	}
}

// Invalidate removes the cached counts so the next Stats call recounts.
func (s *dashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardStatsCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
}

func invalidateStats(ctx context.Context, stats StatsInvalidator) {
	if stats != nil {
		stats.Invalidate(ctx)
	}
}

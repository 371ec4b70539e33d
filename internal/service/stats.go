package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nira-system/backend/internal/config"
	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/repository"
	"github.com/nira-system/backend/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsCacheKey = "nira:stats:snapshot"

type statsService struct {
	repos    *repository.Repositories
	cache    redis.UniversalClient
	cacheTTL time.Duration
}

func newStatsService(repos *repository.Repositories, cache redis.UniversalClient, cfg config.Stats) *statsService {
	return &statsService{
		repos:    repos,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
	}
}

type StatsSnapshot struct {
	TotalCitizens        int64                     `json:"total_citizens"`
	TotalIDs             int64                     `json:"total_ids"`
	TotalVerifications   int64                     `json:"total_verifications"`
	ActiveRegions        int64                     `json:"active_regions"`
	PendingApplications  int64                     `json:"pending_applications"`
	ApprovedCitizens     int64                     `json:"approved_citizens"`
	RejectedApplications int64                     `json:"rejected_applications"`
	RegionalDistribution []repository.RegionCount `json:"regional_distribution"`
	MonthlyRegistrations []repository.MonthCount  `json:"monthly_registrations"`
	GenderDistribution   []repository.GenderCount `json:"gender_distribution"`
	RecentVerifications  []RecentVerification     `json:"recent_verifications"`
}

type RecentVerification struct {
	NIN       string    `json:"nin"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot returns current aggregate counts. The snapshot reflects store
// state at query time; no transactional consistency between counters. A
// Redis copy is kept for the cache TTL; cache failures fall through to the
// database.
func (s *statsService) Snapshot(ctx context.Context) (*StatsSnapshot, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	snapshot, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, snapshot)

	return snapshot, nil
}

func (s *statsService) compute(ctx context.Context) (*StatsSnapshot, error) {
	var (
		snapshot StatsSnapshot
		err      error
	)

	if snapshot.TotalCitizens, err = s.repos.Citizens.Count(ctx); err != nil {
		return nil, fmt.Errorf("count citizens failed: %w", err)
	}

	if snapshot.TotalIDs, err = s.repos.IDCardLogs.Count(ctx); err != nil {
		return nil, fmt.Errorf("count id cards failed: %w", err)
	}

	if snapshot.TotalVerifications, err = s.repos.VerificationLogs.CountToday(ctx); err != nil {
		return nil, fmt.Errorf("count today's verifications failed: %w", err)
	}

	if snapshot.ActiveRegions, err = s.repos.Citizens.CountDistinctApprovedRegions(ctx); err != nil {
		return nil, fmt.Errorf("count active regions failed: %w", err)
	}

	if snapshot.PendingApplications, err = s.repos.Citizens.CountByStatus(ctx, domain.StatusPending); err != nil {
		return nil, fmt.Errorf("count pending failed: %w", err)
	}

	if snapshot.ApprovedCitizens, err = s.repos.Citizens.CountByStatus(ctx, domain.StatusApproved); err != nil {
		return nil, fmt.Errorf("count approved failed: %w", err)
	}

	if snapshot.RejectedApplications, err = s.repos.Citizens.CountByStatus(ctx, domain.StatusRejected); err != nil {
		return nil, fmt.Errorf("count rejected failed: %w", err)
	}

	if snapshot.RegionalDistribution, err = s.repos.Citizens.RegionDistribution(ctx); err != nil {
		return nil, fmt.Errorf("region distribution failed: %w", err)
	}

	if snapshot.MonthlyRegistrations, err = s.repos.Citizens.MonthlyRegistrations(ctx, 12); err != nil {
		return nil, fmt.Errorf("monthly registrations failed: %w", err)
	}

	if snapshot.GenderDistribution, err = s.repos.Citizens.GenderDistribution(ctx); err != nil {
		return nil, fmt.Errorf("gender distribution failed: %w", err)
	}

	recent, err := s.repos.VerificationLogs.Recent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("recent verifications failed: %w", err)
	}
	snapshot.RecentVerifications = make([]RecentVerification, 0, len(recent))
	for _, entry := range recent {
		snapshot.RecentVerifications = append(snapshot.RecentVerifications, RecentVerification{
			NIN:       entry.NIN,
			Result:    string(entry.Result),
			CreatedAt: entry.CreatedAt,
		})
	}

	return &snapshot, nil
}

func (s *statsService) fromCache(ctx context.Context) *StatsSnapshot {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil
	}

	var snapshot StatsSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Warn("stats cache decode failed", zap.Error(err))
		return nil
	}

	return &snapshot
}

func (s *statsService) toCache(ctx context.Context, snapshot *StatsSnapshot) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		logger.Warn("stats cache encode failed", zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, statsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		logger.Warn("stats cache write failed", zap.Error(err))
	}
}

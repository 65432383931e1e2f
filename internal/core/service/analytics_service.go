package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/talentbridge/referral-system/internal/core/access"
	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

// AnalyticsService computes read-only rollups over the candidates visible
// to the caller. It holds no state between calls.
type AnalyticsService struct {
	repo   ports.CandidateRepository
	logger zerolog.Logger
}

func NewAnalyticsService(repo ports.CandidateRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, logger: logger}
}

// StatusDistribution counts candidates per status: globally for admins,
// over their own referrals for recruiters.
func (s *AnalyticsService) StatusDistribution(ctx context.Context, caller domain.Identity) (*ports.StatusDistribution, error) {
	if err := access.Enforce(caller, access.ViewStatusDistribution); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByStatus(ctx, access.ScopeFor(caller))
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	return &ports.StatusDistribution{
		Pending:  counts[domain.StatusPending],
		Reviewed: counts[domain.StatusReviewed],
		Hired:    counts[domain.StatusHired],
	}, nil
}

// PersonalStats summarises the caller's own referrals, whatever their role.
func (s *AnalyticsService) PersonalStats(ctx context.Context, caller domain.Identity) (*ports.PersonalStats, error) {
	if err := access.Enforce(caller, access.ViewPersonalStats); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByStatus(ctx, access.PersonalScope(caller))
	if err != nil {
		return nil, fmt.Errorf("personal stats: %w", err)
	}

	stats := &ports.PersonalStats{
		Pending:  counts[domain.StatusPending],
		Reviewed: counts[domain.StatusReviewed],
		Hired:    counts[domain.StatusHired],
	}
	stats.Total = stats.Pending + stats.Reviewed + stats.Hired
	return stats, nil
}

// RecruiterPerformance ranks every referrer by number of candidates,
// highest first. Ties are ordered by name, then id. Admin only.
func (s *AnalyticsService) RecruiterPerformance(ctx context.Context, caller domain.Identity) ([]ports.RecruiterPerformance, error) {
	if err := access.Enforce(caller, access.ViewRecruiterPerformance); err != nil {
		return nil, err
	}

	rows, err := s.repo.CountByOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("recruiter performance: %w", err)
	}

	out := make([]ports.RecruiterPerformance, 0, len(rows))
	for _, r := range rows {
		out = append(out, ports.RecruiterPerformance{
			RecruiterID:    r.OwnerID,
			RecruiterName:  r.OwnerName,
			CandidateCount: r.Count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CandidateCount != out[j].CandidateCount {
			return out[i].CandidateCount > out[j].CandidateCount
		}
		if out[i].RecruiterName != out[j].RecruiterName {
			return out[i].RecruiterName < out[j].RecruiterName
		}
		return out[i].RecruiterID < out[j].RecruiterID
	})
	return out, nil
}

package ports

import (
	"context"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

// StatusDistribution counts candidates per status. All three statuses are
// always present.
type StatusDistribution struct {
	Pending  int64 `json:"Pending"`
	Reviewed int64 `json:"Reviewed"`
	Hired    int64 `json:"Hired"`
}

// PersonalStats is the caller's own rollup. Total == Pending+Reviewed+Hired.
type PersonalStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Reviewed int64 `json:"reviewed"`
	Hired    int64 `json:"hired"`
}

// RecruiterPerformance is one row of the org-wide referral leaderboard.
type RecruiterPerformance struct {
	RecruiterID    string `json:"recruiterId"`
	RecruiterName  string `json:"recruiterName"`
	CandidateCount int64  `json:"candidateCount"`
}

// AnalyticsService computes role-scoped rollups over candidates.
type AnalyticsService interface {
	StatusDistribution(ctx context.Context, caller domain.Identity) (*StatusDistribution, error)
	PersonalStats(ctx context.Context, caller domain.Identity) (*PersonalStats, error)
	RecruiterPerformance(ctx context.Context, caller domain.Identity) ([]RecruiterPerformance, error)
}

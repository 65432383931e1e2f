package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

func TestAnalytics_EmptyStoreHasZeroCounts(t *testing.T) {
	svc := NewAnalyticsService(newStubCandidateRepo(), zerolog.Nop())

	dist, err := svc.StatusDistribution(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, ports.StatusDistribution{Pending: 0, Reviewed: 0, Hired: 0}, *dist)
}

func scenarioB() *stubCandidateRepo {
	repo := newStubCandidateRepo()
	repo.seed(recruiterR.ID, domain.StatusPending)
	repo.seed(recruiterR.ID, domain.StatusPending)
	repo.seed(recruiterR.ID, domain.StatusHired)
	for i := 0; i < 5; i++ {
		repo.seed(recruiterS.ID, domain.StatusReviewed)
	}
	return repo
}

func TestAnalytics_RecruiterSeesOnlyOwnScope(t *testing.T) {
	svc := NewAnalyticsService(scenarioB(), zerolog.Nop())

	stats, err := svc.PersonalStats(context.Background(), recruiterR)
	require.NoError(t, err)
	assert.Equal(t, ports.PersonalStats{Total: 3, Pending: 2, Reviewed: 0, Hired: 1}, *stats)

	dist, err := svc.StatusDistribution(context.Background(), recruiterR)
	require.NoError(t, err)
	assert.Equal(t, ports.StatusDistribution{Pending: 2, Reviewed: 0, Hired: 1}, *dist)
}

func TestAnalytics_AdminDistributionIsGlobal(t *testing.T) {
	svc := NewAnalyticsService(scenarioB(), zerolog.Nop())

	dist, err := svc.StatusDistribution(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, ports.StatusDistribution{Pending: 2, Reviewed: 5, Hired: 1}, *dist)
}

func TestAnalytics_AdminPersonalStatsAreOwnReferrals(t *testing.T) {
	repo := scenarioB()
	repo.seed(admin.ID, domain.StatusHired)
	svc := NewAnalyticsService(repo, zerolog.Nop())

	stats, err := svc.PersonalStats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, ports.PersonalStats{Total: 1, Hired: 1}, *stats)
}

func TestAnalytics_PersonalStatsTotalInvariant(t *testing.T) {
	repo := newStubCandidateRepo()
	statuses := []domain.CandidateStatus{domain.StatusPending, domain.StatusReviewed, domain.StatusHired}
	for i := 0; i < 17; i++ {
		repo.seed(recruiterS.ID, statuses[i%len(statuses)])
	}
	svc := NewAnalyticsService(repo, zerolog.Nop())

	stats, err := svc.PersonalStats(context.Background(), recruiterS)
	require.NoError(t, err)
	assert.Equal(t, stats.Pending+stats.Reviewed+stats.Hired, stats.Total)
	assert.EqualValues(t, 17, stats.Total)
}

func TestAnalytics_DistributionIsIdempotent(t *testing.T) {
	svc := NewAnalyticsService(scenarioB(), zerolog.Nop())

	first, err := svc.StatusDistribution(context.Background(), admin)
	require.NoError(t, err)
	second, err := svc.StatusDistribution(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalytics_RecruiterPerformanceForbiddenForRecruiters(t *testing.T) {
	repo := scenarioB()
	svc := NewAnalyticsService(repo, zerolog.Nop())

	_, err := svc.RecruiterPerformance(context.Background(), recruiterR)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.RecruiterPerformance(context.Background(), recruiterS)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAnalytics_RecruiterPerformanceOrdering(t *testing.T) {
	repo := newStubCandidateRepo()
	repo.addUser(recruiterR.ID, "Rita")
	repo.addUser(recruiterS.ID, "Sam")
	repo.seed(recruiterR.ID, domain.StatusPending)
	repo.seed(recruiterR.ID, domain.StatusPending)
	repo.seed(recruiterS.ID, domain.StatusHired)
	svc := NewAnalyticsService(repo, zerolog.Nop())

	rows, err := svc.RecruiterPerformance(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, []ports.RecruiterPerformance{
		{RecruiterID: recruiterR.ID, RecruiterName: "Rita", CandidateCount: 2},
		{RecruiterID: recruiterS.ID, RecruiterName: "Sam", CandidateCount: 1},
	}, rows)
}

func TestAnalytics_RecruiterPerformanceTieBreak(t *testing.T) {
	repo := newStubCandidateRepo()
	repo.addUser("u-z", "Zoe")
	repo.addUser("u-a", "Adam")
	repo.addUser("u-b", "Adam")
	repo.addUser("u-top", "Mia")
	for _, owner := range []string{"u-z", "u-a", "u-b", "u-top", "u-top"} {
		repo.seed(owner, domain.StatusPending)
	}
	// Referrer with no user record is dropped.
	repo.seed("ghost", domain.StatusHired)
	svc := NewAnalyticsService(repo, zerolog.Nop())

	rows, err := svc.RecruiterPerformance(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.RecruiterID)
	}
	assert.Equal(t, []string{"u-top", "u-a", "u-b", "u-z"}, ids)
}

func TestAnalytics_Unauthenticated(t *testing.T) {
	svc := NewAnalyticsService(newStubCandidateRepo(), zerolog.Nop())

	_, err := svc.StatusDistribution(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.PersonalStats(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.RecruiterPerformance(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAnalytics_StoreErrorPropagates(t *testing.T) {
	repo := newStubCandidateRepo()
	repo.storeErr = errors.New("socket closed")
	svc := NewAnalyticsService(repo, zerolog.Nop())

	_, err := svc.StatusDistribution(context.Background(), admin)
	assert.ErrorIs(t, err, repo.storeErr)
}

func TestAnalytics_ConcurrentReads(t *testing.T) {
	svc := NewAnalyticsService(scenarioB(), zerolog.Nop())

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caller := admin
			if i%2 == 0 {
				caller = recruiterR
			}
			if _, err := svc.StatusDistribution(context.Background(), caller); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

func TestCheck_RuleTable(t *testing.T) {
	want := map[Action]map[domain.Role]bool{
		ListCandidates:           {domain.RoleAdmin: true, domain.RoleRecruiter: true},
		CreateCandidate:          {domain.RoleAdmin: true, domain.RoleRecruiter: true},
		UpdateCandidateStatus:    {domain.RoleAdmin: true, domain.RoleRecruiter: true},
		DeleteCandidate:          {domain.RoleAdmin: true, domain.RoleRecruiter: true},
		ViewStatusDistribution:   {domain.RoleAdmin: true, domain.RoleRecruiter: true},
		ViewPersonalStats:        {domain.RoleAdmin: true, domain.RoleRecruiter: true},
		ViewRecruiterPerformance: {domain.RoleAdmin: true, domain.RoleRecruiter: false},
	}

	assert.Len(t, Actions, len(want))
	for _, action := range Actions {
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleRecruiter} {
			d := Check(role, action)
			assert.Equal(t, want[action][role], d.Allowed, "%s/%s", role, action)
			if !d.Allowed {
				assert.NotEmpty(t, d.Reason)
			}
		}
	}
}

func TestCheck_AdminNeverDenied(t *testing.T) {
	for _, a := range Actions {
		assert.True(t, Check(domain.RoleAdmin, a).Allowed, a)
	}
	assert.Equal(t, Actions, AllowedActions(domain.RoleAdmin))
}

func TestCheck_RecruiterNeverSeesPerformance(t *testing.T) {
	assert.False(t, Check(domain.RoleRecruiter, ViewRecruiterPerformance).Allowed)
	assert.NotContains(t, AllowedActions(domain.RoleRecruiter), ViewRecruiterPerformance)
	assert.Len(t, AllowedActions(domain.RoleRecruiter), len(Actions)-1)
}

func TestCheck_UnknownRoleAndAction(t *testing.T) {
	assert.False(t, Check("manager", ListCandidates).Allowed)
	assert.False(t, Check("", ListCandidates).Allowed)
	assert.False(t, Check(domain.RoleAdmin, "drop_database").Allowed)
	assert.Empty(t, AllowedActions("manager"))
}

func TestEnforce(t *testing.T) {
	recruiter := domain.Identity{ID: "r1", Role: domain.RoleRecruiter}
	admin := domain.Identity{ID: "a1", Role: domain.RoleAdmin}

	assert.NoError(t, Enforce(recruiter, ListCandidates))
	assert.NoError(t, Enforce(admin, ViewRecruiterPerformance))
	assert.ErrorIs(t, Enforce(recruiter, ViewRecruiterPerformance), domain.ErrForbidden)
	assert.NotErrorIs(t, Enforce(recruiter, ViewRecruiterPerformance), domain.ErrNotOwner)
	assert.ErrorIs(t, Enforce(domain.Identity{}, ListCandidates), domain.ErrUnauthenticated)
	assert.ErrorIs(t, Enforce(domain.Identity{Role: domain.RoleAdmin}, ListCandidates), domain.ErrUnauthenticated)
	assert.ErrorIs(t, Enforce(domain.Identity{ID: "x", Role: "guest"}, ListCandidates), domain.ErrForbidden)
}

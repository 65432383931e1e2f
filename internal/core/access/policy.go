// Package access holds the authorization and data-visibility rules for
// candidate referrals: which role may perform which action, who owns a
// record, and which records a caller may read or aggregate.
//
// Everything here is a pure function of the caller's verified identity and
// the requested action. Nothing is cached between requests.
package access

import (
	"fmt"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

// Action is a class of operation subject to authorization.
type Action string

const (
	ListCandidates           Action = "list_candidates"
	CreateCandidate          Action = "create_candidate"
	UpdateCandidateStatus    Action = "update_candidate_status"
	DeleteCandidate          Action = "delete_candidate"
	ViewStatusDistribution   Action = "view_status_distribution"
	ViewPersonalStats        Action = "view_personal_stats"
	ViewRecruiterPerformance Action = "view_recruiter_performance"
)

// Actions lists every known action.
var Actions = []Action{
	ListCandidates,
	CreateCandidate,
	UpdateCandidateStatus,
	DeleteCandidate,
	ViewStatusDistribution,
	ViewPersonalStats,
	ViewRecruiterPerformance,
}

// rules maps each action to the roles allowed to attempt it. Record-level
// restrictions for recruiters are applied afterwards by CheckOwnership and
// ScopeFor.
var rules = map[Action]map[domain.Role]bool{
	ListCandidates:           {domain.RoleAdmin: true, domain.RoleRecruiter: true},
	CreateCandidate:          {domain.RoleAdmin: true, domain.RoleRecruiter: true},
	UpdateCandidateStatus:    {domain.RoleAdmin: true, domain.RoleRecruiter: true},
	DeleteCandidate:          {domain.RoleAdmin: true, domain.RoleRecruiter: true},
	ViewStatusDistribution:   {domain.RoleAdmin: true, domain.RoleRecruiter: true},
	ViewPersonalStats:        {domain.RoleAdmin: true, domain.RoleRecruiter: true},
	ViewRecruiterPerformance: {domain.RoleAdmin: true},
}

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Check looks up role and action in the rule table. Unknown roles and
// unknown actions are denied.
func Check(role domain.Role, action Action) Decision {
	roles, ok := rules[action]
	if !ok {
		return Decision{Reason: fmt.Sprintf("unknown action %q", action)}
	}
	if !roles[role] {
		return Decision{Reason: fmt.Sprintf("role %q may not %s", role, action)}
	}
	return Decision{Allowed: true}
}

// Enforce returns nil when the identity may perform action. A missing
// identity yields domain.ErrUnauthenticated; a denied one yields an error
// wrapping domain.ErrForbidden.
func Enforce(id domain.Identity, action Action) error {
	if id.IsZero() || id.ID == "" {
		return domain.ErrUnauthenticated
	}
	d := Check(id.Role, action)
	if !d.Allowed {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
	}
	return nil
}

// AllowedActions returns the actions role may attempt, in Actions order.
func AllowedActions(role domain.Role) []Action {
	out := make([]Action, 0, len(Actions))
	for _, a := range Actions {
		if Check(role, a).Allowed {
			out = append(out, a)
		}
	}
	return out
}

package access

import "github.com/talentbridge/referral-system/internal/core/domain"

// ScopeFor computes the candidate scope for a caller. Admins see every
// record; everyone else only the records they referred. A zero identity
// gets the empty scope.
func ScopeFor(id domain.Identity) domain.Scope {
	if id.IsAdmin() {
		return domain.AllCandidates()
	}
	return domain.OwnedBy(id.ID)
}

// PersonalScope is always restricted to the caller's own referrals,
// whatever their role.
func PersonalScope(id domain.Identity) domain.Scope {
	return domain.OwnedBy(id.ID)
}

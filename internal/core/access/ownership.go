package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

// CandidateLookup fetches a candidate by id. Implementations must return
// domain.ErrCandidateNotFound for absent or malformed ids.
type CandidateLookup interface {
	FindByID(ctx context.Context, id string) (*domain.Candidate, error)
}

// CheckOwnership gates a record-scoped mutation. Admins pass without a
// lookup. For everyone else the candidate must exist (domain.ErrCandidateNotFound)
// and have been referred by the caller (domain.ErrNotOwner, which wraps
// domain.ErrForbidden).
func CheckOwnership(ctx context.Context, lookup CandidateLookup, id domain.Identity, candidateID string) error {
	if id.IsZero() || id.ID == "" {
		return domain.ErrUnauthenticated
	}
	if id.IsAdmin() {
		return nil
	}

	c, err := lookup.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			return domain.ErrCandidateNotFound
		}
		return fmt.Errorf("ownership lookup: %w", err)
	}
	if !c.OwnedBy(id.ID) {
		return domain.ErrNotOwner
	}
	return nil
}

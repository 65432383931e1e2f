package ports

import (
	"context"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

// OwnerCount is one row of the per-referrer rollup.
type OwnerCount struct {
	OwnerID   string
	OwnerName string
	Count     int64
}

// CandidateRepository defines persistence operations for candidates. Every
// read or aggregate over more than one record takes a scope; mutations take
// one too so the store can apply the ownership predicate atomically.
type CandidateRepository interface {
	Create(ctx context.Context, c *domain.Candidate) error
	// Find returns the candidates inside scope, newest first, with Referrer populated.
	Find(ctx context.Context, scope domain.Scope) ([]*domain.Candidate, error)
	// FindByID returns domain.ErrCandidateNotFound for absent or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.Candidate, error)
	// UpdateStatus sets the status of the candidate only if it lies inside
	// scope, returning the updated record or domain.ErrCandidateNotFound.
	UpdateStatus(ctx context.Context, id string, status domain.CandidateStatus, scope domain.Scope) (*domain.Candidate, error)
	// Delete removes the candidate only if it lies inside scope, returning
	// the removed record or domain.ErrCandidateNotFound.
	Delete(ctx context.Context, id string, scope domain.Scope) (*domain.Candidate, error)
	// CountByStatus returns the number of candidates per status inside scope.
	// Statuses with no candidates may be absent from the map.
	CountByStatus(ctx context.Context, scope domain.Scope) (map[domain.CandidateStatus]int64, error)
	// CountByOwner returns one row per referrer that still exists as a user.
	CountByOwner(ctx context.Context) ([]OwnerCount, error)
}

// IdempotencyStore reserves client-supplied idempotency keys per owner so
// that at most one create runs for a key.
type IdempotencyStore interface {
	// Claim atomically reserves key. When it is already held, claimed is
	// false and candidateID is the stored result, empty while the holder is
	// still running.
	Claim(ctx context.Context, ownerID, key string) (claimed bool, candidateID string, err error)
	// Complete records the candidate a claimed key produced.
	Complete(ctx context.Context, ownerID, key, candidateID string) error
	// Release drops key if it still holds candidateID ("" for a pending claim).
	Release(ctx context.Context, ownerID, key, candidateID string) error
}

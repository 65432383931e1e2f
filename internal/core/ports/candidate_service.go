package ports

import (
	"context"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

// CreateCandidateInput carries the fields of a new referral. The owner is
// never part of the input; it is always the caller.
type CreateCandidateInput struct {
	Name           string
	Email          string
	Phone          string
	JobTitle       string
	IdempotencyKey string
}

// CreateCandidateResult is returned after creating a candidate.
type CreateCandidateResult struct {
	Candidate *domain.Candidate
	// AlreadyExisted is true when the idempotency key matched an earlier create.
	AlreadyExisted bool
}

// CandidateService defines use-case operations for candidates.
type CandidateService interface {
	List(ctx context.Context, caller domain.Identity) ([]*domain.Candidate, error)
	Create(ctx context.Context, caller domain.Identity, in CreateCandidateInput) (*CreateCandidateResult, error)
	UpdateStatus(ctx context.Context, caller domain.Identity, candidateID, status string) (*domain.Candidate, error)
	Delete(ctx context.Context, caller domain.Identity, candidateID string) error
}

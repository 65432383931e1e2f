package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/referral-system/internal/core/access"
	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

type CandidateService struct {
	repo     ports.CandidateRepository
	idem     ports.IdempotencyStore
	activity ports.ActivityPublisher
	logger   zerolog.Logger
	now      func() time.Time
}

// NewCandidateService wires the candidate use cases. idem and activity may
// be nil, in which case idempotency keys are ignored and no audit trail is
// written.
func NewCandidateService(repo ports.CandidateRepository, idem ports.IdempotencyStore, activity ports.ActivityPublisher, logger zerolog.Logger) *CandidateService {
	return &CandidateService{repo: repo, idem: idem, activity: activity, logger: logger, now: time.Now}
}

// List returns the candidates visible to caller, newest first.
func (s *CandidateService) List(ctx context.Context, caller domain.Identity) ([]*domain.Candidate, error) {
	if err := access.Enforce(caller, access.ListCandidates); err != nil {
		return nil, err
	}

	scope := access.ScopeFor(caller)
	out, err := s.repo.Find(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return out, nil
}

// Create stores a new Pending referral owned by caller. If an idempotency
// key was already used by the same caller, the earlier candidate is returned
// without side effects; while that earlier create is still running the call
// fails with domain.ErrIdempotencyInFlight.
func (s *CandidateService) Create(ctx context.Context, caller domain.Identity, in ports.CreateCandidateInput) (*ports.CreateCandidateResult, error) {
	if err := access.Enforce(caller, access.CreateCandidate); err != nil {
		return nil, err
	}
	if err := validateCandidateInput(&in); err != nil {
		return nil, err
	}

	key := in.IdempotencyKey
	claimed := false
	if key != "" && s.idem != nil {
		existing, ok, err := s.claim(ctx, caller, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.CreateCandidateResult{Candidate: existing, AlreadyExisted: true}, nil
		}
		claimed = ok
	}

	now := s.now().UTC()
	c := &domain.Candidate{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		JobTitle:   in.JobTitle,
		Status:     domain.StatusPending,
		ReferredBy: caller.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("referred_by", caller.ID).Msg("failed to create candidate")
		if claimed {
			if rerr := s.idem.Release(ctx, caller.ID, key, ""); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	if claimed {
		if err := s.idem.Complete(ctx, caller.ID, key, c.ID); err != nil {
			s.logger.Warn().Err(err).Str("candidate_id", c.ID).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("candidate_id", c.ID).Str("referred_by", caller.ID).Msg("candidate created")
	s.publish(domain.ActivityEvent{
		CandidateID: c.ID,
		Kind:        domain.ActivityCreated,
		ActorID:     caller.ID,
		ActorRole:   caller.Role,
		ToStatus:    c.Status,
		OccurredAt:  now,
	})

	return &ports.CreateCandidateResult{Candidate: c}, nil
}

// claim reserves key for this create. It returns the earlier candidate when
// the key already resolved to one, or claimed=true when this call owns the
// key. A store outage degrades to a plain create with claimed=false.
func (s *CandidateService) claim(ctx context.Context, caller domain.Identity, key string) (*domain.Candidate, bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		ok, id, err := s.idem.Claim(ctx, caller.ID, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency claim failed, creating anyway")
			return nil, false, nil
		}
		if ok {
			return nil, true, nil
		}
		if id == "" {
			return nil, false, domain.ErrIdempotencyInFlight
		}

		existing, err := s.repo.FindByID(ctx, id)
		if err == nil && existing.OwnedBy(caller.ID) {
			s.logger.Info().Str("idempotency_key", key).Str("candidate_id", existing.ID).Msg("idempotent replay")
			return existing, false, nil
		}
		if err != nil && !errors.Is(err, domain.ErrCandidateNotFound) {
			return nil, false, fmt.Errorf("idempotent replay: %w", err)
		}

		// The key points at a candidate that is gone; free it and claim again.
		if err := s.idem.Release(ctx, caller.ID, key, id); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release stale idempotency key")
			return nil, false, nil
		}
	}
	return nil, false, domain.ErrIdempotencyInFlight
}

// UpdateStatus moves a candidate to status. Recruiters may only update
// their own referrals.
func (s *CandidateService) UpdateStatus(ctx context.Context, caller domain.Identity, candidateID, status string) (*domain.Candidate, error) {
	if err := access.Enforce(caller, access.UpdateCandidateStatus); err != nil {
		return nil, err
	}
	// Ownership before the status literal: a foreign or missing record
	// answers Forbidden or NotFound whatever status was sent.
	if err := access.CheckOwnership(ctx, s.repo, caller, candidateID); err != nil {
		return nil, err
	}
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	// The store re-applies the caller's scope so a record deleted or
	// reassigned since the ownership check is reported as not found.
	updated, err := s.repo.UpdateStatus(ctx, candidateID, next, access.ScopeFor(caller))
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("update candidate status: %w", err)
	}

	s.logger.Info().
		Str("candidate_id", candidateID).
		Str("status", string(next)).
		Str("actor", caller.ID).
		Msg("candidate status updated")
	s.publish(domain.ActivityEvent{
		CandidateID: candidateID,
		Kind:        domain.ActivityStatusChanged,
		ActorID:     caller.ID,
		ActorRole:   caller.Role,
		ToStatus:    next,
		OccurredAt:  s.now().UTC(),
	})

	return updated, nil
}

// Delete removes a candidate. Recruiters may only delete their own referrals.
func (s *CandidateService) Delete(ctx context.Context, caller domain.Identity, candidateID string) error {
	if err := access.Enforce(caller, access.DeleteCandidate); err != nil {
		return err
	}
	if err := access.CheckOwnership(ctx, s.repo, caller, candidateID); err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, candidateID, access.ScopeFor(caller))
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			return domain.ErrCandidateNotFound
		}
		return fmt.Errorf("delete candidate: %w", err)
	}

	s.logger.Info().Str("candidate_id", candidateID).Str("actor", caller.ID).Msg("candidate deleted")
	s.publish(domain.ActivityEvent{
		CandidateID: candidateID,
		Kind:        domain.ActivityDeleted,
		ActorID:     caller.ID,
		ActorRole:   caller.Role,
		FromStatus:  removed.Status,
		OccurredAt:  s.now().UTC(),
	})
	return nil
}

func (s *CandidateService) publish(ev domain.ActivityEvent) {
	if s.activity != nil {
		s.activity.Publish(ev)
	}
}

func validateCandidateInput(in *ports.CreateCandidateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.JobTitle = strings.TrimSpace(in.JobTitle)

	if in.Name == "" || in.Email == "" || in.Phone == "" || in.JobTitle == "" {
		return fmt.Errorf("%w: name, email, phone and job title are required", domain.ErrValidation)
	}
	if !validEmail(in.Email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if !domain.ValidPhone(in.Phone) {
		return fmt.Errorf("%w: phone number must contain at least 10 digits", domain.ErrValidation)
	}
	return nil
}

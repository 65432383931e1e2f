package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that persists audit events.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record assigns an id and timestamp when missing and stores the event.
func (s *activityService) Record(ctx context.Context, ev domain.ActivityEvent) error {
	if ev.CandidateID == "" || ev.Kind == "" {
		return fmt.Errorf("record activity: %w: candidate id and kind are required", domain.ErrValidation)
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("candidate_id", ev.CandidateID).
		Str("kind", string(ev.Kind)).
		Str("actor", ev.ActorID).
		Msg("activity recorded")
	return nil
}

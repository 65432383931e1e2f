package ports

import (
	"context"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

// ActivityRepository persists the candidate audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}

// ActivityService records a single audit event.
type ActivityService interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
}

// ActivityPublisher hands audit events off without blocking the request.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}

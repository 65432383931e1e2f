package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

const collectionActivity = "candidate_activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

// Insert persists an event to the candidate_activity audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, ev *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"event_id":     ev.ID,
		"candidate_id": ev.CandidateID,
		"kind":         string(ev.Kind),
		"actor_id":     ev.ActorID,
		"actor_role":   string(ev.ActorRole),
		"occurred_at":  ev.OccurredAt.UTC(),
		"recorded_at":  time.Now().UTC(),
	}
	if ev.FromStatus != "" {
		doc["from_status"] = string(ev.FromStatus)
	}
	if ev.ToStatus != "" {
		doc["to_status"] = string(ev.ToStatus)
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

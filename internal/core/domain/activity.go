package domain

import "time"

// ActivityKind names a change recorded in the candidate activity trail.
type ActivityKind string

const (
	ActivityCreated       ActivityKind = "created"
	ActivityStatusChanged ActivityKind = "status_changed"
	ActivityDeleted       ActivityKind = "deleted"
)

// ActivityEvent is one entry in the candidate audit trail.
type ActivityEvent struct {
	ID          string
	CandidateID string
	Kind        ActivityKind
	ActorID     string
	ActorRole   Role
	FromStatus  CandidateStatus // set for deletions
	ToStatus    CandidateStatus
	OccurredAt  time.Time
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

const collectionCandidates = "candidates"

// CandidateRepository implements ports.CandidateRepository using MongoDB.
type CandidateRepository struct {
	col *mongo.Collection
}

func NewCandidateRepository(db *mongo.Database) *CandidateRepository {
	return &CandidateRepository{col: db.Collection(collectionCandidates)}
}

type mongoReferrer struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
	Role  string             `bson:"role"`
}

type mongoCandidate struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Phone      string             `bson:"phone"`
	JobTitle   string             `bson:"job_title"`
	Status     string             `bson:"status"`
	ReferredBy primitive.ObjectID `bson:"referred_by"`
	Referrer   *mongoReferrer     `bson:"referrer,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (m mongoCandidate) toDomain() *domain.Candidate {
	c := &domain.Candidate{
		ID:         m.ID.Hex(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		JobTitle:   m.JobTitle,
		Status:     domain.CandidateStatus(m.Status),
		ReferredBy: m.ReferredBy.Hex(),
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
	if m.Referrer != nil {
		c.Referrer = &domain.Referrer{
			ID:    m.Referrer.ID.Hex(),
			Name:  m.Referrer.Name,
			Email: m.Referrer.Email,
			Role:  domain.Role(m.Referrer.Role),
		}
	}
	return c
}

// scopeFilter translates a scope into a query filter. ok is false when the
// scope can match no document, in which case the caller should not query.
func scopeFilter(scope domain.Scope) (filter bson.M, ok bool) {
	if scope.Empty() {
		return nil, false
	}
	if scope.Unrestricted() {
		return bson.M{}, true
	}
	owner, err := primitive.ObjectIDFromHex(scope.OwnerID())
	if err != nil {
		return nil, false
	}
	return bson.M{"referred_by": owner}, true
}

// Create inserts a candidate and sets its ID.
func (r *CandidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(c.ReferredBy)
	if err != nil {
		return fmt.Errorf("insert candidate: invalid referrer id %q", c.ReferredBy)
	}

	doc := mongoCandidate{
		ID:         primitive.NewObjectID(),
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		JobTitle:   c.JobTitle,
		Status:     string(c.Status),
		ReferredBy: owner,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

// Find returns the candidates in scope, newest first, with the referrer
// joined from the users collection.
func (r *CandidateRepository) Find(ctx context.Context, scope domain.Scope) ([]*domain.Candidate, error) {
	filter, ok := scopeFilter(scope)
	if !ok {
		return []*domain.Candidate{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, findPipeline(filter))
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCandidate
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	out := make([]*domain.Candidate, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// FindByID retrieves a candidate. Malformed ids are reported as not found.
func (r *CandidateRepository) FindByID(ctx context.Context, id string) (*domain.Candidate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCandidateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCandidate
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	return doc.toDomain(), nil
}

// mutationFilter matches id only if the document lies inside scope.
func mutationFilter(id string, scope domain.Scope) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	filter, ok := scopeFilter(scope)
	if !ok {
		return nil, false
	}
	filter["_id"] = oid
	return filter, true
}

// UpdateStatus atomically sets the status of a candidate inside scope.
func (r *CandidateRepository) UpdateStatus(ctx context.Context, id string, status domain.CandidateStatus, scope domain.Scope) (*domain.Candidate, error) {
	filter, ok := mutationFilter(id, scope)
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoCandidate
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("update candidate status: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete atomically removes a candidate inside scope.
func (r *CandidateRepository) Delete(ctx context.Context, id string, scope domain.Scope) (*domain.Candidate, error) {
	filter, ok := mutationFilter(id, scope)
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCandidate
	if err := r.col.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("delete candidate: %w", err)
	}
	return doc.toDomain(), nil
}

type statusCount struct {
	Status string `bson:"_id"`
	Count  int64  `bson:"count"`
}

// CountByStatus groups the candidates in scope by status.
func (r *CandidateRepository) CountByStatus(ctx context.Context, scope domain.Scope) (map[domain.CandidateStatus]int64, error) {
	out := make(map[domain.CandidateStatus]int64, len(domain.Statuses))
	filter, ok := scopeFilter(scope)
	if !ok {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, statusCountPipeline(filter))
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	var rows []statusCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode status counts: %w", err)
	}
	for _, row := range rows {
		out[domain.CandidateStatus(row.Status)] = row.Count
	}
	return out, nil
}

type ownerCount struct {
	OwnerID   primitive.ObjectID `bson:"_id"`
	OwnerName string             `bson:"name"`
	Count     int64              `bson:"count"`
}

// CountByOwner counts candidates per referrer across the whole collection.
// Referrers without a matching user are dropped by the inner $unwind.
func (r *CandidateRepository) CountByOwner(ctx context.Context) ([]ports.OwnerCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, ownerCountPipeline())
	if err != nil {
		return nil, fmt.Errorf("count by owner: %w", err)
	}
	defer cur.Close(ctx)

	var rows []ownerCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode owner counts: %w", err)
	}

	out := make([]ports.OwnerCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.OwnerCount{
			OwnerID:   row.OwnerID.Hex(),
			OwnerName: row.OwnerName,
			Count:     row.Count,
		})
	}
	return out, nil
}

// findPipeline selects the candidates matching filter, newest first, and
// joins the referrer without its password hash.
func findPipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "referred_by"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "referrer"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$referrer"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "referrer.password_hash", Value: 0}}}},
	}
}

func statusCountPipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

// ownerCountPipeline groups by referrer and joins the user name. The bare
// $unwind drops referrers whose user no longer exists.
func ownerCountPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$referred_by"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "recruiter"},
		}}},
		{{Key: "$unwind", Value: "$recruiter"}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: "$recruiter.name"},
			{Key: "count", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "name", Value: 1}}}},
	}
}

// DeleteAll removes every candidate. Used by the seed command.
func (r *CandidateRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete candidates: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes on the candidates collection.
func (r *CandidateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "referred_by", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

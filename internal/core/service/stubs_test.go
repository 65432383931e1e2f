package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory candidate repository
// ---------------------------------------------------------------------------

type stubCandidateRepo struct {
	mu         sync.Mutex
	byID       map[string]*domain.Candidate
	users      map[string]string // user id -> name
	seq        int
	storeErr   error // if set, every call returns this error
	updates    int
	deletes    int
	beforeMut  func() // runs between the ownership check and the mutation
	lastScopes []domain.Scope
}

func newStubCandidateRepo() *stubCandidateRepo {
	return &stubCandidateRepo{
		byID:  make(map[string]*domain.Candidate),
		users: make(map[string]string),
	}
}

func (r *stubCandidateRepo) addUser(id, name string) {
	r.users[id] = name
}

// seed stores a candidate directly, bypassing the service.
func (r *stubCandidateRepo) seed(owner string, status domain.CandidateStatus) *domain.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := &domain.Candidate{
		ID:         fmt.Sprintf("c%03d", r.seq),
		Name:       fmt.Sprintf("Candidate %d", r.seq),
		Email:      fmt.Sprintf("c%d@example.com", r.seq),
		Phone:      "5551234567",
		JobTitle:   "Engineer",
		Status:     status,
		ReferredBy: owner,
	}
	r.byID[c.ID] = c
	clone := *c
	return &clone
}

func (r *stubCandidateRepo) Create(_ context.Context, c *domain.Candidate) error {
	if r.storeErr != nil {
		return r.storeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("c%03d", r.seq)
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCandidateRepo) Find(_ context.Context, scope domain.Scope) ([]*domain.Candidate, error) {
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastScopes = append(r.lastScopes, scope)
	var out []*domain.Candidate
	for _, c := range r.byID {
		if scope.Includes(c) {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubCandidateRepo) FindByID(_ context.Context, id string) (*domain.Candidate, error) {
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCandidateRepo) UpdateStatus(_ context.Context, id string, status domain.CandidateStatus, scope domain.Scope) (*domain.Candidate, error) {
	if r.beforeMut != nil {
		r.beforeMut()
	}
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	c, ok := r.byID[id]
	if !ok || !scope.Includes(c) {
		return nil, domain.ErrCandidateNotFound
	}
	c.Status = status
	clone := *c
	return &clone, nil
}

func (r *stubCandidateRepo) Delete(_ context.Context, id string, scope domain.Scope) (*domain.Candidate, error) {
	if r.beforeMut != nil {
		r.beforeMut()
	}
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	c, ok := r.byID[id]
	if !ok || !scope.Includes(c) {
		return nil, domain.ErrCandidateNotFound
	}
	delete(r.byID, id)
	return c, nil
}

func (r *stubCandidateRepo) CountByStatus(_ context.Context, scope domain.Scope) (map[domain.CandidateStatus]int64, error) {
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastScopes = append(r.lastScopes, scope)
	out := make(map[domain.CandidateStatus]int64)
	for _, c := range r.byID {
		if scope.Includes(c) {
			out[c.Status]++
		}
	}
	return out, nil
}

func (r *stubCandidateRepo) CountByOwner(_ context.Context) ([]ports.OwnerCount, error) {
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	var order []string
	for _, c := range r.byID {
		if _, seen := counts[c.ReferredBy]; !seen {
			order = append(order, c.ReferredBy)
		}
		counts[c.ReferredBy]++
	}
	var out []ports.OwnerCount
	for _, owner := range order {
		name, ok := r.users[owner]
		if !ok {
			continue
		}
		out = append(out, ports.OwnerCount{OwnerID: owner, OwnerName: name, Count: counts[owner]})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Idempotency store and activity publisher
// ---------------------------------------------------------------------------

type stubIdempotency struct {
	mu       sync.Mutex
	keys     map[string]string // "" marks a pending claim
	claimErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Claim(_ context.Context, ownerID, key string) (bool, string, error) {
	if s.claimErr != nil {
		return false, "", s.claimErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := ownerID + ":" + key
	if id, held := s.keys[k]; held {
		return false, id, nil
	}
	s.keys[k] = ""
	return true, "", nil
}

func (s *stubIdempotency) Complete(_ context.Context, ownerID, key, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[ownerID+":"+key] = candidateID
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, ownerID, key, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := ownerID + ":" + key
	if id, held := s.keys[k]; held && id == candidateID {
		delete(s.keys, k)
	}
	return nil
}

type recordingPublisher struct {
	events []domain.ActivityEvent
}

func (p *recordingPublisher) Publish(ev domain.ActivityEvent) {
	p.events = append(p.events, ev)
}

// ---------------------------------------------------------------------------
// Identities
// ---------------------------------------------------------------------------

var (
	admin      = domain.Identity{ID: "admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	recruiterR = domain.Identity{ID: "rec-r", Email: "r@example.com", Role: domain.RoleRecruiter}
	recruiterS = domain.Identity{ID: "rec-s", Email: "s@example.com", Role: domain.RoleRecruiter}
)

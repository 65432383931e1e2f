package domain

import (
	"fmt"
	"regexp"
	"time"
)

var (
	phoneNoise  = regexp.MustCompile(`[\s\-()]`)
	phoneDigits = regexp.MustCompile(`^\d{10,}$`)
)

// ValidPhone reports whether phone has at least ten digits once spaces,
// dashes and parentheses are removed.
func ValidPhone(phone string) bool {
	return phoneDigits.MatchString(phoneNoise.ReplaceAllString(phone, ""))
}

// CandidateStatus is the pipeline position of a referral.
type CandidateStatus string

const (
	StatusPending  CandidateStatus = "Pending"
	StatusReviewed CandidateStatus = "Reviewed"
	StatusHired    CandidateStatus = "Hired"
)

// Statuses lists every recognised status in pipeline order.
var Statuses = []CandidateStatus{StatusPending, StatusReviewed, StatusHired}

// ParseStatus validates a wire-level status literal. Matching is
// case-sensitive. Any recognised status may follow any other; Hired is not
// terminal.
func ParseStatus(s string) (CandidateStatus, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidStatus, s)
}

// Referrer is the public view of the user who referred a candidate.
type Referrer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Candidate is a referral record. ReferredBy is set once at creation and
// identifies the owning user for its whole lifetime.
type Candidate struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	JobTitle   string          `json:"job_title"`
	Status     CandidateStatus `json:"status"`
	ReferredBy string          `json:"referred_by"`
	// Referrer is populated by list queries only.
	Referrer  *Referrer `json:"referrer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy reports whether userID referred the candidate.
func (c *Candidate) OwnedBy(userID string) bool {
	return c != nil && userID != "" && c.ReferredBy == userID
}

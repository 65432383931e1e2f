package domain

// Scope is the set of candidate records a caller may read or aggregate.
// The zero value matches nothing; scopes are built with AllCandidates or
// OwnedBy, never from request parameters.
type Scope struct {
	all     bool
	ownerID string
}

// AllCandidates is the unrestricted scope.
func AllCandidates() Scope {
	return Scope{all: true}
}

// OwnedBy restricts the scope to candidates referred by ownerID.
func OwnedBy(ownerID string) Scope {
	return Scope{ownerID: ownerID}
}

// Unrestricted reports whether the scope covers every candidate.
func (s Scope) Unrestricted() bool { return s.all }

// OwnerID returns the owner the scope is restricted to, or "" when unrestricted.
func (s Scope) OwnerID() string { return s.ownerID }

// Empty reports whether the scope can match no record at all.
func (s Scope) Empty() bool { return !s.all && s.ownerID == "" }

// Includes reports whether c falls inside the scope.
func (s Scope) Includes(c *Candidate) bool {
	if c == nil {
		return false
	}
	if s.all {
		return true
	}
	return c.OwnedBy(s.ownerID)
}

func (s Scope) String() string {
	if s.all {
		return "all"
	}
	return "owner:" + s.ownerID
}

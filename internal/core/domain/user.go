package domain

import "time"

// Role is the fixed authorization role of a user. It is set at registration
// and never changes afterwards.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRecruiter
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the verified caller of a request, decoded from a signed token.
// It is passed explicitly into every authorization decision.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// IsZero reports whether no identity was established for the request.
func (i Identity) IsZero() bool {
	return i.ID == "" && i.Role == ""
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

package handler

// --- Request / Response types ---

type createCandidateRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,phone"`
	JobTitle string `json:"jobTitle" validate:"required"`
}

// Status is checked by the service once ownership is settled.
type updateStatusRequest struct {
	Status string `json:"status" enums:"Pending,Reviewed,Hired"`
}

type referrerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type candidateResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	JobTitle   string            `json:"jobTitle"`
	Status     string            `json:"status"`
	ReferredBy string            `json:"referredBy"`
	Referrer   *referrerResponse `json:"referrer,omitempty"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
}

// candidateEnvelope and candidateListEnvelope document the success bodies
// for swag; handlers render Response directly.
type candidateEnvelope struct {
	Success bool              `json:"success"`
	Data    candidateResponse `json:"data"`
}

type candidateListEnvelope struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Data    []candidateResponse `json:"data"`
}

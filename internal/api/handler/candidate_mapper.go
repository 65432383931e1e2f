package handler

import (
	"time"

	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

const timeLayout = "2006-01-02T15:04:05Z"

func toCreateInput(req createCandidateRequest, idempotencyKey string) ports.CreateCandidateInput {
	return ports.CreateCandidateInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		JobTitle:       req.JobTitle,
		IdempotencyKey: idempotencyKey,
	}
}

func toCandidateResponse(c *domain.Candidate) candidateResponse {
	resp := candidateResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		JobTitle:   c.JobTitle,
		Status:     string(c.Status),
		ReferredBy: c.ReferredBy,
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
	}
	if c.Referrer != nil {
		resp.Referrer = &referrerResponse{
			ID:    c.Referrer.ID,
			Name:  c.Referrer.Name,
			Email: c.Referrer.Email,
			Role:  string(c.Referrer.Role),
		}
	}
	return resp
}

func toCandidateResponses(in []*domain.Candidate) []candidateResponse {
	out := make([]candidateResponse, 0, len(in))
	for _, c := range in {
		out = append(out, toCandidateResponse(c))
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

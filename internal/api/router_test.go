package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
	"github.com/talentbridge/referral-system/internal/pkg/token"
)

type nopAuth struct{}

func (nopAuth) Register(context.Context, string, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrUserExists
}

func (nopAuth) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

type fixedCandidates struct{}

func (fixedCandidates) List(_ context.Context, caller domain.Identity) ([]*domain.Candidate, error) {
	return []*domain.Candidate{{ID: "c1", Name: "Jane", Status: domain.StatusPending, ReferredBy: caller.ID}}, nil
}

func (fixedCandidates) Create(context.Context, domain.Identity, ports.CreateCandidateInput) (*ports.CreateCandidateResult, error) {
	return nil, domain.ErrValidation
}

func (fixedCandidates) UpdateStatus(_ context.Context, _ domain.Identity, id, status string) (*domain.Candidate, error) {
	if id != "c1" {
		return nil, domain.ErrCandidateNotFound
	}
	if _, err := domain.ParseStatus(status); err != nil {
		return nil, err
	}
	return &domain.Candidate{ID: id, Status: domain.CandidateStatus(status)}, nil
}

func (fixedCandidates) Delete(context.Context, domain.Identity, string) error {
	return domain.ErrNotOwner
}

type fixedAnalytics struct{}

func (fixedAnalytics) StatusDistribution(context.Context, domain.Identity) (*ports.StatusDistribution, error) {
	return &ports.StatusDistribution{}, nil
}

func (fixedAnalytics) PersonalStats(context.Context, domain.Identity) (*ports.PersonalStats, error) {
	return &ports.PersonalStats{}, nil
}

func (fixedAnalytics) RecruiterPerformance(context.Context, domain.Identity) ([]ports.RecruiterPerformance, error) {
	return []ports.RecruiterPerformance{{RecruiterID: "r1", RecruiterName: "Rita", CandidateCount: 3}}, nil
}

type routerFixture struct {
	e         *echo.Echo
	admin     string
	recruiter string
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	issuer := token.NewIssuer("test-secret", time.Hour)
	e := NewRouter(Dependencies{
		Auth:       nopAuth{},
		Candidates: fixedCandidates{},
		Analytics:  fixedAnalytics{},
		Tokens:     issuer,
		Log:        zerolog.Nop(),
		Registry:   prometheus.NewRegistry(),
	})

	admin, err := issuer.Issue(&domain.User{ID: "adm", Email: "admin@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	rec, err := issuer.Issue(&domain.User{ID: "rec", Email: "rec@example.com", Role: domain.RoleRecruiter})
	require.NoError(t, err)
	return routerFixture{e: e, admin: admin, recruiter: rec}
}

func (f routerFixture) do(method, path, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_Banner(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bannerMessage, envelope(t, rec)["message"])
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := envelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestRouter_StatusCodes(t *testing.T) {
	f := newRouterFixture(t)

	cases := []struct {
		name   string
		method string
		path   string
		bearer string
		body   string
		want   int
	}{
		{"list without token", http.MethodGet, "/candidates", "", "", http.StatusUnauthorized},
		{"list with bad token", http.MethodGet, "/candidates", "garbage", "", http.StatusUnauthorized},
		{"list as recruiter", http.MethodGet, "/candidates", f.recruiter, "", http.StatusOK},
		{"performance as recruiter", http.MethodGet, "/analytics/recruiter-performance", f.recruiter, "", http.StatusForbidden},
		{"performance as admin", http.MethodGet, "/analytics/recruiter-performance", f.admin, "", http.StatusOK},
		{"distribution as recruiter", http.MethodGet, "/analytics/status-distribution", f.recruiter, "", http.StatusOK},
		{"stats alias", http.MethodGet, "/candidates/stats", f.recruiter, "", http.StatusOK},
		{"update missing candidate", http.MethodPut, "/candidates/c9/status", f.recruiter, `{"status":"Hired"}`, http.StatusNotFound},
		{"update invalid status", http.MethodPut, "/candidates/c1/status", f.recruiter, `{"status":"Done"}`, http.StatusBadRequest},
		{"invalid status on missing candidate", http.MethodPut, "/candidates/c9/status", f.recruiter, `{"status":"Done"}`, http.StatusNotFound},
		{"delete foreign candidate", http.MethodDelete, "/candidates/c1", f.recruiter, "", http.StatusForbidden},
		{"login bad credentials", http.MethodPost, "/auth/login", "", `{"email":"a@example.com","password":"x"}`, http.StatusUnauthorized},
		{"register duplicate", http.MethodPost, "/auth/register", "", `{"name":"A","email":"a@example.com","password":"secret1"}`, http.StatusConflict},
		{"liveness", http.MethodGet, "/health", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(tc.method, tc.path, tc.bearer, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_ListEnvelope(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(http.MethodGet, "/candidates", f.recruiter, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := envelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
}

func TestRouter_ForbiddenMessages(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodDelete, "/candidates/c1", f.recruiter, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. You can only access your own referrals", envelope(t, rec)["message"])

	rec = f.do(http.MethodGet, "/analytics/recruiter-performance", f.recruiter, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", envelope(t, rec)["message"])
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/referral-system/internal/core/ports"
)

// AnalyticsHandler serves the role-scoped rollups.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

type distributionEnvelope struct {
	Success bool                     `json:"success"`
	Data    ports.StatusDistribution `json:"data"`
}

type personalStatsEnvelope struct {
	Success bool                `json:"success"`
	Data    ports.PersonalStats `json:"data"`
}

type performanceEnvelope struct {
	Success bool                         `json:"success"`
	Data    []ports.RecruiterPerformance `json:"data"`
}

// StatusDistribution handles GET /analytics/status-distribution.
//
// @Summary      Candidates per status
// @Description  Global for admins, own referrals for recruiters. All statuses are present.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  distributionEnvelope
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /analytics/status-distribution [get]
func (h *AnalyticsHandler) StatusDistribution(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	dist, err := h.service.StatusDistribution(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dist)
}

// MyStats handles GET /analytics/my-stats and GET /candidates/stats.
//
// @Summary      Caller's own referral statistics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  personalStatsEnvelope
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /analytics/my-stats [get]
// @Router       /candidates/stats [get]
func (h *AnalyticsHandler) MyStats(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.PersonalStats(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}

// RecruiterPerformance handles GET /analytics/recruiter-performance.
//
// @Summary      Referral leaderboard
// @Description  Admin only. Sorted by candidate count, highest first.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  performanceEnvelope
// @Failure      401  {object}  Response
// @Failure      403  {object}  Response
// @Failure      500  {object}  Response
// @Router       /analytics/recruiter-performance [get]
func (h *AnalyticsHandler) RecruiterPerformance(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	rows, err := h.service.RecruiterPerformance(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []ports.RecruiterPerformance{}
	}
	return respond(c, http.StatusOK, rows)
}

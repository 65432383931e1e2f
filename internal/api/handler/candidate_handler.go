package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/referral-system/internal/api/metrics"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

// CandidateHandler handles HTTP requests for candidate referrals.
type CandidateHandler struct {
	service ports.CandidateService
}

func NewCandidateHandler(service ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{service: service}
}

// List handles GET /candidates.
//
// @Summary      List candidates
// @Description  Admins see every referral; recruiters see only their own. Newest first.
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  candidateListEnvelope
// @Failure      401  {object}  Response
// @Failure      403  {object}  Response
// @Failure      500  {object}  Response
// @Router       /candidates [get]
func (h *CandidateHandler) List(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return respondList(c, toCandidateResponses(list), len(list))
}

// Create handles POST /candidates.
//
// @Summary      Refer a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                  false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createCandidateRequest  true   "Candidate details"
// @Success      201              {object}  candidateEnvelope
// @Success      200              {object}  candidateEnvelope  "replayed idempotent request"
// @Failure      400              {object}  Response
// @Failure      401              {object}  Response
// @Failure      409              {object}  Response
// @Failure      500              {object}  Response
// @Router       /candidates [post]
func (h *CandidateHandler) Create(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createCandidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	result, err := h.service.Create(c.Request().Context(), caller, toCreateInput(req, idempotencyKey))
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.IdempotentReplaysTotal.Inc()
		return respond(c, http.StatusOK, toCandidateResponse(result.Candidate))
	}
	metrics.CandidatesCreatedTotal.WithLabelValues(string(caller.Role)).Inc()
	return respond(c, http.StatusCreated, toCandidateResponse(result.Candidate))
}

// UpdateStatus handles PUT /candidates/:id/status.
//
// @Summary      Change a candidate's status
// @Description  Recruiters may only update their own referrals.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Candidate ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  candidateEnvelope
// @Failure      400   {object}  Response
// @Failure      401   {object}  Response
// @Failure      403   {object}  Response
// @Failure      404   {object}  Response
// @Failure      500   {object}  Response
// @Router       /candidates/{id}/status [put]
func (h *CandidateHandler) UpdateStatus(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), caller, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.CandidateStatusChangesTotal.WithLabelValues(string(updated.Status)).Inc()
	return respond(c, http.StatusOK, toCandidateResponse(updated))
}

// Delete handles DELETE /candidates/:id.
//
// @Summary      Delete a candidate
// @Description  Recruiters may only delete their own referrals.
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  Response
// @Failure      401  {object}  Response
// @Failure      403  {object}  Response
// @Failure      404  {object}  Response
// @Failure      500  {object}  Response
// @Router       /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "Candidate deleted successfully")
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roadwatch/roadwatch-api/internal/api/metrics"
	apimw "github.com/roadwatch/roadwatch-api/internal/api/middleware"
	"github.com/roadwatch/roadwatch-api/internal/core/domain"
	"github.com/roadwatch/roadwatch-api/internal/core/ports"
)

// ReportHandler handles HTTP requests for report operations. All policy
// decisions happen in the service; the handler only binds requests and
// maps results.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// List handles GET /api/reports — public, newest first.
//
// @Summary      List all reports
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.Report
// @Failure      503  {object}  errorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	reports, err := h.reports.List(c.Request().Context(), apimw.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Get handles GET /api/reports/:id — public.
//
// @Summary      Get a report by id
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  domain.Report
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	report, err := h.reports.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Create handles POST /api/reports — authenticated accounts only.
//
// @Summary      Submit a road-damage report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Report details"
// @Success      201   {object}  domain.Report
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.CreateReportInput{
		Identity:    apimw.Identity(c),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		UserName:    req.UserName,
	}
	if req.Location != nil {
		input.Location = &domain.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	report, err := h.reports.Create(c.Request().Context(), input)
	if err != nil {
		countDenial("create", err)
		return err
	}

	metrics.ReportsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, report)
}

// UpdateStatus handles PATCH /api/reports/:id/status — administrators only.
//
// @Summary      Update a report's status
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Report
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/reports/{id}/status [patch]
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	report, err := h.reports.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		Identity: apimw.Identity(c),
		ReportID: c.Param("id"),
		Status:   domain.ReportStatus(req.Status),
	})
	if err != nil {
		countDenial("update_status", err)
		return err
	}

	metrics.ReportStatusUpdatesTotal.WithLabelValues(string(report.Status)).Inc()
	return c.JSON(http.StatusOK, report)
}

// Delete handles DELETE /api/reports/:id — the report's author or an
// administrator.
//
// @Summary      Delete a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  deleteReportResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Delete(c echo.Context) error {
	identity := apimw.Identity(c)

	result, err := h.reports.Delete(c.Request().Context(), ports.DeleteReportInput{
		Identity: identity,
		ReportID: c.Param("id"),
	})
	if err != nil {
		countDenial("delete", err)
		return err
	}

	actor := "owner"
	if identity.Authenticated() && identity.Principal.Role == domain.RoleAdmin {
		actor = "admin"
	}
	metrics.ReportsDeletedTotal.WithLabelValues(actor).Inc()

	return c.JSON(http.StatusOK, deleteReportResponse{
		Message: "report deleted",
		ID:      result.ID,
	})
}

// countDenial records authorization failures; other errors are left to
// their own metrics (HTTP-level counters cover them).
func countDenial(action string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.PolicyDenialsTotal.WithLabelValues(action, "unauthenticated").Inc()
	case errors.Is(err, domain.ErrForbidden):
		metrics.PolicyDenialsTotal.WithLabelValues(action, "forbidden").Inc()
	}
}

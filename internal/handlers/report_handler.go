package handlers

import (
	"net/http"
	"strconv"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/labstack/echo/v4"
)

// ReportHandler handles user reports
type ReportHandler struct {
	relations *services.RelationshipManager
}

func NewReportHandler(relations *services.RelationshipManager) *ReportHandler {
	return &ReportHandler{relations: relations}
}

// RegisterReportRoutes registers report routes. admin is the group guarded by the
// admin role.
func (h *ReportHandler) RegisterReportRoutes(g, admin *echo.Group) {
	g.POST("/users/:id/report", h.ReportUser)
	admin.GET("/reports", h.ListPending)
}

// ReportUser files a report against another user
func (h *ReportHandler) ReportUser(c echo.Context) error {
	reporterID, err := requireUserID(c)
	if err != nil {
		return err
	}
	reportedID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	var req models.CreateReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.relations.ReportUser(c.Request().Context(), reporterID, reportedID, req)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusCreated, report)
}

// ListPending lists reports awaiting review
func (h *ReportHandler) ListPending(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}

	reports, err := h.relations.PendingReports(c.Request().Context(), limit)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"reports": reports})
}

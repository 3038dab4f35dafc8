package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"miniinventory/internal/export"
	"miniinventory/internal/service"
)

// ReportHandler serves derived views: the dashboard and file exports.
type ReportHandler struct {
	svc service.InventoryService
}

// NewReportHandler creates a report handler.
func NewReportHandler(svc service.InventoryService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GetDashboard godoc
// @Summary Inventory totals and top categories
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 503 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *ReportHandler) GetDashboard(c echo.Context) error {
	dashboard, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Export godoc
// @Summary Download the product list as CSV or XLSX
// @Tags reports
// @Produce octet-stream
// @Security BearerAuth
// @Param format path string true "csv or xlsx"
// @Param q query string false "Case-sensitive substring of name or category"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 501 {object} errors.ErrorResponse
// @Router /export/{format} [get]
func (h *ReportHandler) Export(c echo.Context) error {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		return errorResponse(err)
	}

	// Buffered so a failure still produces a JSON error instead of a truncated file.
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request().Context(), &buf, format, strings.TrimSpace(c.QueryParam("q"))); err != nil {
		return errorResponse(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.Filename(format, time.Now())))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

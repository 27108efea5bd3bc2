package handlers

import (
	"net/http"
	"time"

	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *reports.Service
}

func NewReportHandler(svc *reports.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GenerateReport renders the report workbook on demand, outside the daily
// schedule. Same contract as sync: fails only on unrecoverable conditions.
// POST /api/v1/reports/generate
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	result, err := h.svc.Generate(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "REPORT_FAILED", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: result})
}

package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/cutiefy/pos-api/internal/application/service"
	"github.com/cutiefy/pos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily returns the sales report for one calendar day. An optional
// ?date=YYYY-MM-DD selects the day; the default is today.
func (h *ReportHandler) Daily(c *gin.Context) {
	date, ok := h.reportDate(c)
	if !ok {
		return
	}

	report, err := h.reportService.DailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// ExportDaily streams the day's report as an xlsx download
func (h *ReportHandler) ExportDaily(c *gin.Context) {
	date, ok := h.reportDate(c)
	if !ok {
		return
	}

	f, err := h.reportService.ExportDaily(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("daily-sales-%s.xlsx", date.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; nothing sensible left to send.
		_ = c.Error(err)
	}
}

func (h *ReportHandler) reportDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}

	date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

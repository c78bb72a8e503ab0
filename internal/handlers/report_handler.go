package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mughal/internal/services"
)

// ReportHandler handles dashboards, statements and insights.
type ReportHandler struct {
	reportService  services.ReportServicer
	insightService services.InsightServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, insightService services.InsightServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, insightService: insightService}
}

// GetDashboard handles the operational overview
// @Summary     Dashboard
// @Description Get today's revenue, receivables, payables, net cash, stock value, low-stock alerts and the weekly sales chart
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} reports.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetSalesChart handles the daily sales series
// @Summary     Sales chart
// @Description Get daily sale totals for the last N days, oldest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Number of days (default 7, max 90)"
// @Success     200 {array}  reports.DailySales "Daily totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/sales-chart [get]
func (h *ReportHandler) GetSalesChart(c *gin.Context) {
	days, err := queryInt(c, "days", 7)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chart, err := h.reportService.SalesChart(c.Request.Context(), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": chart})
}

// GetProfitAndLoss handles the profit and loss statement
// @Summary     Profit and loss
// @Description Get revenue, cost of goods sold, expenses by category and net profit over the full history
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} reports.ProfitAndLoss "Statement"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /reports/profit-loss [get]
func (h *ReportHandler) GetProfitAndLoss(c *gin.Context) {
	pl, err := h.reportService.ProfitAndLoss(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pl)
}

// DownloadProfitAndLoss handles the CSV export of the statement
// @Summary     Download profit and loss
// @Description Download the profit and loss statement as a CSV file
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {file}   file "CSV statement"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/profit-loss.csv [get]
func (h *ReportHandler) DownloadProfitAndLoss(c *gin.Context) {
	data, filename, err := h.reportService.ProfitAndLossCSV(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// GetReconciliation handles the balance drift check
// @Summary     Reconcile balances
// @Description Replay the transaction history over opening balances and report drift per party
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  reports.BalanceCheck "Per-party checks"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /reports/reconcile [get]
func (h *ReportHandler) GetReconciliation(c *gin.Context) {
	checks, err := h.reportService.Reconcile(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parties": checks})
}

// GetInsights handles the advisory text
// @Summary     Business insights
// @Description Get short advisory insights on sales, stock and financial health. Falls back to a fixed message when the advisor is unavailable.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Insight "Insights"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /insights [get]
func (h *ReportHandler) GetInsights(c *gin.Context) {
	insight, err := h.insightService.Insights(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, insight)
}

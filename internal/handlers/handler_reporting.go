package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/trip_ledger_app/internal/dto"
	"github.com/SscSPs/trip_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for trip reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	registry         *domain.CurrencyRegistry
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade, registry *domain.CurrencyRegistry) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		registry:         registry,
	}
}

// queryCodes collects currency codes from a repeated and/or comma-separated query parameter.
func queryCodes(c *gin.Context, key string) []string {
	var codes []string
	for _, value := range c.QueryArray(key) {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				codes = append(codes, part)
			}
		}
	}
	return codes
}

// getProfitAndLoss godoc
// @Summary Get trip profit and loss
// @Description Aggregates the ledger into buckets and the waterfall, once per target currency. Without a target the trip's default currency is used.
// @Tags reports
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   target query []string false "Target currency codes" collectionFormat(multi)
// @Success 200 {object} dto.ProfitAndLossReportsResponse
// @Failure 400 {object} map[string]string "Unknown currency or invalid rate table"
// @Failure 404 {object} map[string]string "Trip not found or no exchange rates set"
// @Failure 500 {object} map[string]string "Failed to generate profit and loss report"
// @Router /trips/{tripID}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	tripID := c.Param("tripID")
	targets := queryCodes(c, "target")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("trip_id", tripID),
		slog.Any("targets", targets))
	logger.Info("Received request for profit and loss report")

	reports, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tripID, targets)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate profit and loss report")
		return
	}

	resp := dto.ProfitAndLossReportsResponse{
		TripID:  tripID,
		Reports: make([]dto.ProfitAndLossResponse, len(reports)),
	}
	for i, report := range reports {
		resp.Reports[i] = dto.ToProfitAndLossResponse(report)
	}
	c.JSON(http.StatusOK, resp)
}

// getBalances godoc
// @Summary Get trip balances
// @Description Net balance held in each native currency, converted into every display currency
// @Tags reports
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   display query []string false "Display currency codes" collectionFormat(multi)
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} map[string]string "Unknown currency or invalid rate table"
// @Failure 404 {object} map[string]string "Trip not found or no exchange rates set"
// @Failure 500 {object} map[string]string "Failed to generate balance summary"
// @Router /trips/{tripID}/reports/balances [get]
func (h *reportingHandler) getBalances(c *gin.Context) {
	tripID := c.Param("tripID")
	display := queryCodes(c, "display")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID))

	summary, err := h.reportingService.Balances(c.Request.Context(), tripID, display)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate balance summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalancesResponse(tripID, summary, h.registry))
}

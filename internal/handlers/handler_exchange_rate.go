package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/trip_ledger_app/internal/dto"
	"github.com/SscSPs/trip_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.listRateSnapshots)
		exchangeRates.GET("/current", h.getCurrentRates)
		exchangeRates.PUT("/current", h.setManualRates)
		exchangeRates.POST("/refresh", h.refreshRates)
		exchangeRates.GET("/convert", h.convert)
	}
}

// getCurrentRates godoc
// @Summary Get the current exchange rates
// @Description Retrieves the rate snapshot used for every conversion. Each rate is the value of one unit in the pivot currency.
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.RateSnapshotResponse
// @Failure 404 {object} map[string]string "No exchange rates have been set"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rates"
// @Router /exchange-rates/current [get]
func (h *exchangeRateHandler) getCurrentRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.exchangeRateService.GetCurrentSnapshot(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(snapshot))
}

// listRateSnapshots godoc
// @Summary List rate snapshots
// @Description Retrieves stored rate snapshots, newest first
// @Tags exchange rates
// @Produce  json
// @Param   limit query int false "Maximum number of snapshots" minimum(1)
// @Success 200 {array} dto.RateSnapshotResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listRateSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRateSnapshotsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListRateSnapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	snapshots, err := h.exchangeRateService.ListRateSnapshots(c.Request.Context(), params.Limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateSnapshotResponses(snapshots))
}

// setManualRates godoc
// @Summary Set exchange rates manually
// @Description Replaces the current rate table. Every registered currency needs a strictly positive rate; the pivot rate is always stored as 1.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rates body dto.SetExchangeRatesRequest true "Rates keyed by currency code"
// @Success 201 {object} dto.RateSnapshotResponse
// @Failure 400 {object} map[string]string "Incomplete or invalid rate table"
// @Failure 500 {object} map[string]string "Failed to set exchange rates"
// @Router /exchange-rates/current [put]
func (h *exchangeRateHandler) setManualRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetExchangeRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetManualRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to set exchange rates", slog.Int("rate_count", len(req.Rates)))

	snapshot, err := h.exchangeRateService.SetManualRates(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to set exchange rates")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRateSnapshotResponse(snapshot))
}

// refreshRates godoc
// @Summary Refresh exchange rates from the configured source
// @Description Pulls a new snapshot from the rate source. Depending on the fallback policy a failed refresh either errors or keeps the last stored snapshot.
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.RateSnapshotResponse
// @Failure 400 {object} map[string]string "No source configured or fetched rates are invalid"
// @Failure 500 {object} map[string]string "Failed to refresh exchange rates"
// @Router /exchange-rates/refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	snapshot, err := h.exchangeRateService.RefreshRates(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to refresh exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(snapshot))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts with the current rate table: amount * rate(from) / rate(to)
// @Tags exchange rates
// @Produce  json
// @Param   amount query string true "Amount to convert"
// @Param   from query string true "Source currency code"
// @Param   to query string true "Target currency code"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid amount or unknown currency"
// @Failure 404 {object} map[string]string "No exchange rates have been set"
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query params for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	amount, err := decimal.NewFromString(query.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + query.Amount})
		return
	}

	converted, rate, err := h.exchangeRateService.ConvertAmount(c.Request.Context(), amount, query.From, query.To)
	if err != nil {
		respondWithError(c, logger, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:        amount,
		From:          domain.NormalizeCurrencyCode(query.From).String(),
		To:            domain.NormalizeCurrencyCode(query.To).String(),
		Converted:     converted,
		EffectiveRate: rate,
	})
}

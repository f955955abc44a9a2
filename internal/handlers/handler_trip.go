package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/trip_ledger_app/internal/dto"
	"github.com/SscSPs/trip_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tripHandler handles HTTP requests for trips and their ledgers.
type tripHandler struct {
	tripService portssvc.TripSvcFacade
}

func newTripHandler(ts portssvc.TripSvcFacade) *tripHandler {
	return &tripHandler{
		tripService: ts,
	}
}

// registerTripRoutes registers trip, transaction and report routes.
func registerTripRoutes(rg *gin.RouterGroup, tripService portssvc.TripSvcFacade, reporting *reportingHandler) {
	h := newTripHandler(tripService)

	trips := rg.Group("/trips")
	{
		trips.POST("", h.createTrip)
		trips.GET("", h.listTrips)
		trips.GET("/:tripID", h.getTrip)
		trips.DELETE("/:tripID", h.deleteTrip)

		transactions := trips.Group("/:tripID/transactions")
		{
			transactions.POST("", h.addTransaction)
			transactions.GET("", h.listTransactions)
			transactions.DELETE("", h.resetLedger)
			transactions.GET("/:transactionID", h.getTransaction)
			transactions.PATCH("/:transactionID", h.updateTransaction)
			transactions.DELETE("/:transactionID", h.deleteTransaction)
		}

		reports := trips.Group("/:tripID/reports")
		{
			reports.GET("/profit-and-loss", reporting.getProfitAndLoss)
			reports.GET("/balances", reporting.getBalances)
		}
	}
}

// createTrip godoc
// @Summary Create a trip
// @Description Opens a new, empty trip ledger
// @Tags trips
// @Accept  json
// @Produce  json
// @Param   trip body dto.CreateTripRequest true "Trip details"
// @Success 201 {object} dto.TripResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create trip"
// @Router /trips [post]
func (h *tripHandler) createTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTrip", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create trip")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

// listTrips godoc
// @Summary List trips
// @Description Retrieves all trips, newest first
// @Tags trips
// @Produce  json
// @Success 200 {array} dto.TripResponse
// @Failure 500 {object} map[string]string "Failed to list trips"
// @Router /trips [get]
func (h *tripHandler) listTrips(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	trips, err := h.tripService.ListTrips(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list trips")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTripResponse(trips))
}

// getTrip godoc
// @Summary Get a trip
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} map[string]string "Trip not found"
// @Router /trips/{tripID} [get]
func (h *tripHandler) getTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", c.Param("tripID")))

	trip, err := h.tripService.GetTripByID(c.Request.Context(), c.Param("tripID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// deleteTrip godoc
// @Summary Delete a trip
// @Description Deletes a trip together with its ledger
// @Tags trips
// @Param   tripID path string true "Trip ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Trip not found"
// @Router /trips/{tripID} [delete]
func (h *tripHandler) deleteTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", c.Param("tripID")))
	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.tripService.DeleteTrip(c.Request.Context(), c.Param("tripID"), userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete trip")
		return
	}

	c.Status(http.StatusNoContent)
}

// addTransaction godoc
// @Summary Record a transaction
// @Description Appends a transaction to the trip ledger. The amount must be strictly positive and the currency registered.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown currency"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 409 {object} map[string]string "Duplicate transaction ID"
// @Router /trips/{tripID}/transactions [post]
func (h *tripHandler) addTransaction(c *gin.Context) {
	tripID := c.Param("tripID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID))
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	txn, err := h.tripService.AddTransaction(c.Request.Context(), tripID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List a trip's transactions
// @Description Retrieves the ledger sorted by date, newest first, one page at a time
// @Tags transactions
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Trip not found"
// @Router /trips/{tripID}/transactions [get]
func (h *tripHandler) listTransactions(c *gin.Context) {
	tripID := c.Param("tripID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID))
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	resp, err := h.tripService.ListTransactions(c.Request.Context(), tripID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Trip or transaction not found"
// @Router /trips/{tripID}/transactions/{transactionID} [get]
func (h *tripHandler) getTransaction(c *gin.Context) {
	tripID, transactionID := c.Param("tripID"), c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("trip_id", tripID),
		slog.String("transaction_id", transactionID))

	txn, err := h.tripService.GetTransaction(c.Request.Context(), tripID, transactionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Edit a transaction
// @Description Updates the given fields of a transaction. Its ID never changes.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Trip or transaction not found"
// @Router /trips/{tripID}/transactions/{transactionID} [patch]
func (h *tripHandler) updateTransaction(c *gin.Context) {
	tripID, transactionID := c.Param("tripID"), c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("trip_id", tripID),
		slog.String("transaction_id", transactionID))
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	txn, err := h.tripService.UpdateTransaction(c.Request.Context(), tripID, transactionID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param   tripID path string true "Trip ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Trip or transaction not found"
// @Router /trips/{tripID}/transactions/{transactionID} [delete]
func (h *tripHandler) deleteTransaction(c *gin.Context) {
	tripID, transactionID := c.Param("tripID"), c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("trip_id", tripID),
		slog.String("transaction_id", transactionID))
	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.tripService.DeleteTransaction(c.Request.Context(), tripID, transactionID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}

// resetLedger godoc
// @Summary Reset a trip ledger
// @Description Removes every transaction of the trip. The trip itself is kept.
// @Tags transactions
// @Param   tripID path string true "Trip ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Trip not found"
// @Router /trips/{tripID}/transactions [delete]
func (h *tripHandler) resetLedger(c *gin.Context) {
	tripID := c.Param("tripID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID))
	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.tripService.ResetLedger(c.Request.Context(), tripID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to reset ledger")
		return
	}

	c.Status(http.StatusNoContent)
}

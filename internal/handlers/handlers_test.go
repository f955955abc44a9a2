package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/core/services"
	"github.com/SscSPs/trip_ledger_app/internal/dto"
	"github.com/SscSPs/trip_ledger_app/internal/handlers"
	"github.com/SscSPs/trip_ledger_app/internal/middleware"
	"github.com/SscSPs/trip_ledger_app/internal/platform/config"
	"github.com/SscSPs/trip_ledger_app/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	registry, err := domain.NewCurrencyRegistry(domain.CurrenciesFromCodes([]string{"EGP", "USD", "EUR"})...)
	suite.Require().NoError(err)

	cfg := &config.Config{
		IsProduction:        false,
		PivotCurrency:       "EGP",
		SupportedCurrencies: []string{"EGP", "USD", "EUR"},
		DisplayCurrencies:   []string{"EGP", "USD"},
		RateFallbackPolicy:  config.RateFallbackFail,
		RateFetchAttempts:   1,
		RateLimit:           "1000-M",
	}
	container := services.NewServiceContainer(cfg, registry, memory.NewRepositoryProvider(), nil)

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container, registry))
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, "tester")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (suite *HandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.decode(w, &body)
	return body["error"]
}

// setRates stores 1 USD = 2 EGP and 1 EUR = 4 EGP.
func (suite *HandlerTestSuite) setRates() {
	w := suite.do(http.MethodPut, "/api/v1/exchange-rates/current", gin.H{
		"rates": gin.H{"USD": "2", "EUR": "4"},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) createTrip(defaultCurrency string) dto.TripResponse {
	w := suite.do(http.MethodPost, "/api/v1/trips", gin.H{"name": "Cairo to Aswan", "defaultCurrency": defaultCurrency})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var trip dto.TripResponse
	suite.decode(w, &trip)
	return trip
}

func (suite *HandlerTestSuite) addTransaction(tripID string, body gin.H) *httptest.ResponseRecorder {
	return suite.do(http.MethodPost, "/api/v1/trips/"+tripID+"/transactions", body)
}

func (suite *HandlerTestSuite) TestHealthAndSwagger() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	w = suite.do(http.MethodGet, "/swagger/doc.json", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "/trips/{tripID}/reports/profit-and-loss")
}

func (suite *HandlerTestSuite) TestCurrencies() {
	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var currencies []dto.CurrencyResponse
	suite.decode(w, &currencies)
	suite.Require().Len(currencies, 3)
	suite.Equal("EGP", currencies[0].CurrencyCode)

	w = suite.do(http.MethodGet, "/api/v1/currencies/usd", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var usd dto.CurrencyResponse
	suite.decode(w, &usd)
	suite.Equal("USD", usd.CurrencyCode)
	suite.Equal("$", usd.Symbol)

	w = suite.do(http.MethodGet, "/api/v1/currencies/JPY", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/transaction-types", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var types []dto.TransactionTypeResponse
	suite.decode(w, &types)
	suite.Len(types, 5)
}

func (suite *HandlerTestSuite) TestExchangeRates() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/current", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/exchange-rates/current", gin.H{"rates": gin.H{"USD": "2"}})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "EUR")

	w = suite.do(http.MethodPut, "/api/v1/exchange-rates/current", gin.H{"pivot": "JPY", "rates": gin.H{"USD": "2", "EUR": "4"}})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "unknown currency code 'JPY'")

	w = suite.do(http.MethodPut, "/api/v1/exchange-rates/current", gin.H{"rates": gin.H{"USD": "0", "EUR": "4"}})
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.setRates()

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/current", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var snapshot dto.RateSnapshotResponse
	suite.decode(w, &snapshot)
	suite.Equal("EGP", snapshot.Pivot)
	suite.Equal("MANUAL", snapshot.Source)
	suite.Equal("tester", snapshot.CreatedBy)
	suite.True(snapshot.Rates["EGP"].Equal(decimal.NewFromInt(1)))
	suite.True(snapshot.Rates["USD"].Equal(decimal.NewFromInt(2)))

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=10&from=usd&to=EGP", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var converted dto.ConvertResponse
	suite.decode(w, &converted)
	suite.Equal("USD", converted.From)
	suite.True(converted.Converted.Equal(decimal.NewFromInt(20)))
	suite.True(converted.EffectiveRate.Equal(decimal.NewFromInt(2)))

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=ten&from=USD&to=EGP", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=10&from=JPY&to=EGP", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "unknown currency code 'JPY'")

	w = suite.do(http.MethodPost, "/api/v1/exchange-rates/refresh", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates?limit=5", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var snapshots []dto.RateSnapshotResponse
	suite.decode(w, &snapshots)
	suite.Len(snapshots, 1)
}

func (suite *HandlerTestSuite) TestTrips() {
	w := suite.do(http.MethodPost, "/api/v1/trips", gin.H{"description": "no name"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/trips", gin.H{"name": "Trip", "defaultCurrency": "JPY"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "unknown currency code 'JPY'")

	trip := suite.createTrip("usd")
	suite.Equal("USD", trip.DefaultCurrency)
	suite.Equal("tester", trip.CreatedBy)

	w = suite.do(http.MethodGet, "/api/v1/trips/"+trip.TripID, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/trips", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var trips []dto.TripResponse
	suite.decode(w, &trips)
	suite.Len(trips, 1)

	w = suite.do(http.MethodDelete, "/api/v1/trips/"+trip.TripID, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	w = suite.do(http.MethodGet, "/api/v1/trips/"+trip.TripID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestAnonymousActor() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/trips", bytes.NewBufferString(`{"name":"Solo"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var trip dto.TripResponse
	suite.decode(w, &trip)
	suite.Equal(middleware.AnonymousActor, trip.CreatedBy)
}

func (suite *HandlerTestSuite) TestTransactions() {
	trip := suite.createTrip("")
	base := "/api/v1/trips/" + trip.TripID + "/transactions"

	w := suite.addTransaction(trip.TripID, gin.H{
		"transactionID": "fare", "date": "2024-03-01T00:00:00Z", "amount": "100",
		"currencyCode": "USD", "type": "REVENUE", "description": "Group fare",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.TransactionResponse
	suite.decode(w, &created)
	suite.Equal("INCOME_AND_CLIENT_CUSTODY", created.Bucket)

	w = suite.addTransaction(trip.TripID, gin.H{
		"transactionID": "fuel", "date": "2024-03-02T00:00:00Z", "amount": "50",
		"currencyCode": "egp", "type": "expense",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var fuel dto.TransactionResponse
	suite.decode(w, &fuel)
	suite.Equal("EXPENSE", fuel.Type)
	suite.Equal("EGP", fuel.CurrencyCode)
	w = suite.addTransaction(trip.TripID, gin.H{
		"transactionID": "driver", "date": "2024-03-03T00:00:00Z", "amount": "10",
		"currencyCode": "EUR", "type": "DRIVER_FEE",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	suite.Run("rejections", func() {
		w := suite.addTransaction(trip.TripID, gin.H{"date": "2024-03-01T00:00:00Z", "amount": "5", "currencyCode": "JPY", "type": "EXPENSE"})
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Contains(suite.errorMessage(w), "unknown currency code 'JPY'")

		w = suite.addTransaction(trip.TripID, gin.H{"transactionID": "fare", "date": "2024-03-01T00:00:00Z", "amount": "5", "currencyCode": "USD", "type": "EXPENSE"})
		suite.Equal(http.StatusConflict, w.Code)

		w = suite.addTransaction(trip.TripID, gin.H{"date": "2024-03-01T00:00:00Z", "amount": "0", "currencyCode": "USD", "type": "EXPENSE"})
		suite.Equal(http.StatusBadRequest, w.Code)

		w = suite.addTransaction(trip.TripID, gin.H{"date": "2024-03-01T00:00:00Z", "amount": "5", "currencyCode": "USD", "type": "GIFT"})
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Contains(suite.errorMessage(w), "Type must be one of [REVENUE CLIENT_CUSTODY EXPENSE OWNER_CUSTODY DRIVER_FEE]")

		w = suite.addTransaction("missing", gin.H{"date": "2024-03-01T00:00:00Z", "amount": "5", "currencyCode": "USD", "type": "EXPENSE"})
		suite.Equal(http.StatusNotFound, w.Code)
	})

	suite.Run("pagination newest first", func() {
		w := suite.do(http.MethodGet, base+"?limit=2", nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		var page dto.ListTransactionsResponse
		suite.decode(w, &page)
		suite.Require().Len(page.Transactions, 2)
		suite.Equal("driver", page.Transactions[0].TransactionID)
		suite.Equal("fuel", page.Transactions[1].TransactionID)
		suite.Require().NotNil(page.NextToken)

		w = suite.do(http.MethodGet, base+"?limit=2&nextToken="+url.QueryEscape(*page.NextToken), nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		var next dto.ListTransactionsResponse
		suite.decode(w, &next)
		suite.Require().Len(next.Transactions, 1)
		suite.Equal("fare", next.Transactions[0].TransactionID)
		suite.Nil(next.NextToken)

		w = suite.do(http.MethodGet, base+"?nextToken=not-a-token", nil)
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("get and update", func() {
		w := suite.do(http.MethodGet, base+"/fuel", nil)
		suite.Require().Equal(http.StatusOK, w.Code)

		w = suite.do(http.MethodPatch, base+"/fuel", gin.H{"amount": "60"})
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var updated dto.TransactionResponse
		suite.decode(w, &updated)
		suite.Equal("fuel", updated.TransactionID)
		suite.True(updated.Amount.Equal(decimal.NewFromInt(60)))
		suite.Equal("EGP", updated.CurrencyCode)

		w = suite.do(http.MethodPatch, base+"/fuel", gin.H{"currencyCode": "JPY"})
		suite.Equal(http.StatusBadRequest, w.Code)

		w = suite.do(http.MethodPatch, base+"/fuel", gin.H{"amount": "-1"})
		suite.Equal(http.StatusBadRequest, w.Code)

		w = suite.do(http.MethodPatch, base+"/missing", gin.H{"amount": "1"})
		suite.Equal(http.StatusNotFound, w.Code)
	})

	suite.Run("delete and reset", func() {
		w := suite.do(http.MethodDelete, base+"/fuel", nil)
		suite.Equal(http.StatusNoContent, w.Code)
		w = suite.do(http.MethodGet, base+"/fuel", nil)
		suite.Equal(http.StatusNotFound, w.Code)
		w = suite.do(http.MethodDelete, base+"/fuel", nil)
		suite.Equal(http.StatusNotFound, w.Code)

		w = suite.do(http.MethodDelete, base, nil)
		suite.Equal(http.StatusNoContent, w.Code)
		w = suite.do(http.MethodGet, base, nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		var page dto.ListTransactionsResponse
		suite.decode(w, &page)
		suite.Empty(page.Transactions)
	})
}

func (suite *HandlerTestSuite) TestReports() {
	trip := suite.createTrip("USD")
	reportsBase := "/api/v1/trips/" + trip.TripID + "/reports"

	for _, body := range []gin.H{
		{"date": "2024-03-01T00:00:00Z", "amount": "100", "currencyCode": "USD", "type": "REVENUE"},
		{"date": "2024-03-02T00:00:00Z", "amount": "50", "currencyCode": "EGP", "type": "EXPENSE"},
		{"date": "2024-03-03T00:00:00Z", "amount": "10", "currencyCode": "EUR", "type": "DRIVER_FEE"},
	} {
		w := suite.addTransaction(trip.TripID, body)
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w := suite.do(http.MethodGet, reportsBase+"/profit-and-loss", nil)
	suite.Equal(http.StatusNotFound, w.Code, "reports need a rate table")

	suite.setRates()

	suite.Run("profit and loss per target", func() {
		w := suite.do(http.MethodGet, reportsBase+"/profit-and-loss?target=EGP&target=usd,EGP", nil)
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var resp dto.ProfitAndLossReportsResponse
		suite.decode(w, &resp)
		suite.Require().Len(resp.Reports, 2)

		egp := resp.Reports[0]
		suite.Equal("EGP", egp.TargetCurrency)
		suite.True(egp.Waterfall.GrossInflow.Equal(decimal.NewFromInt(200)))
		suite.True(egp.Waterfall.AfterExpenses.Equal(decimal.NewFromInt(150)))
		suite.True(egp.Waterfall.AfterDriverFee.Equal(decimal.NewFromInt(110)))
		suite.True(egp.Waterfall.NetResult.Equal(decimal.NewFromInt(110)))
		suite.Len(egp.Buckets, 4)

		usd := resp.Reports[1]
		suite.Equal("USD", usd.TargetCurrency)
		suite.True(usd.Waterfall.NetResult.Equal(decimal.NewFromInt(55)))
	})

	suite.Run("default target is the trip currency", func() {
		w := suite.do(http.MethodGet, reportsBase+"/profit-and-loss", nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		var resp dto.ProfitAndLossReportsResponse
		suite.decode(w, &resp)
		suite.Require().Len(resp.Reports, 1)
		suite.Equal("USD", resp.Reports[0].TargetCurrency)
	})

	suite.Run("unknown target", func() {
		w := suite.do(http.MethodGet, reportsBase+"/profit-and-loss?target=JPY", nil)
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Contains(suite.errorMessage(w), "unknown currency code 'JPY'")
	})

	suite.Run("balances", func() {
		w := suite.do(http.MethodGet, reportsBase+"/balances?display=EGP", nil)
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var resp dto.BalancesResponse
		suite.decode(w, &resp)
		suite.Equal([]string{"EGP"}, resp.DisplayCurrencies)
		suite.Require().Len(resp.Rows, 3)

		suite.Equal("USD", resp.Rows[0].CurrencyCode)
		suite.True(resp.Rows[0].NetBalance.Equal(decimal.NewFromInt(100)))
		suite.True(resp.Rows[0].Converted[0].Amount.Equal(decimal.NewFromInt(200)))

		suite.Equal("EGP", resp.Rows[1].CurrencyCode)
		suite.True(resp.Rows[1].NetBalance.Equal(decimal.NewFromInt(-50)))

		suite.Equal("EUR", resp.Rows[2].CurrencyCode)
		suite.True(resp.Rows[2].Converted[0].Amount.Equal(decimal.NewFromInt(-40)))
	})

	suite.Run("balances use configured display currencies", func() {
		w := suite.do(http.MethodGet, reportsBase+"/balances", nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		var resp dto.BalancesResponse
		suite.decode(w, &resp)
		suite.Equal([]string{"EGP", "USD"}, resp.DisplayCurrencies)
		suite.Require().Len(resp.Rows[0].Converted, 2)
	})

	w = suite.do(http.MethodGet, "/api/v1/trips/missing/reports/balances", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

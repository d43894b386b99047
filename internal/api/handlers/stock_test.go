package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stock-analyzer/backend/internal/model"
	"github.com/stock-analyzer/backend/internal/testutil"
)

func TestStockHandler_Search(t *testing.T) {
	t.Run("returns 400 for a blank query", func(t *testing.T) {
		mock := testutil.NewMockStockClient()
		handler := NewStockHandler(mock)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/stock/search", map[string]string{"query": "   "})
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		env := testutil.DecodeEnvelope(t, w.Body)
		if env.Success {
			t.Error("Expected success=false")
		}
		if mock.SearchCount != 0 {
			t.Errorf("Expected no provider call for blank query, got %d", mock.SearchCount)
		}
	})

	t.Run("returns matches in the envelope", func(t *testing.T) {
		mock := testutil.NewMockStockClient().WithSearchResults([]model.SearchResult{
			{Symbol: "AAPL", Name: "Apple Inc", Exchange: "NASDAQ", Type: "Common Stock"},
		})
		handler := NewStockHandler(mock)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/stock/search", map[string]string{"query": "apple"})
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		env := testutil.DecodeEnvelope(t, w.Body)
		if !env.Success {
			t.Error("Expected success=true")
		}
		if env.Data == nil {
			t.Error("Expected data payload")
		}
	})
}

func TestStockHandler_Quote(t *testing.T) {
	t.Run("returns 404 for an unknown symbol", func(t *testing.T) {
		handler := NewStockHandler(testutil.NewMockStockClient())

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/quote/NOPE", map[string]string{"symbol": "NOPE"})
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
		env := testutil.DecodeEnvelope(t, w.Body)
		if env.Success {
			t.Error("Expected success=false")
		}
		if env.Message == nil || !strings.Contains(*env.Message, "NOPE") {
			t.Errorf("Expected message naming the symbol, got %v", env.Message)
		}
	})

	t.Run("returns the quote for a known symbol", func(t *testing.T) {
		mock := testutil.NewMockStockClient().WithQuote("AAPL", model.Quote{
			Symbol: "AAPL", Price: 150, Change: 2, ChangePercent: 1.35, Volume: 1000, Timestamp: time.Now().UTC(),
		})
		handler := NewStockHandler(mock)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/quote/AAPL", map[string]string{"symbol": "AAPL"})
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		env := testutil.DecodeEnvelope(t, w.Body)
		if !env.Success || env.Data == nil {
			t.Errorf("Expected successful envelope with data, got %+v", env)
		}
	})
}

func TestStockHandler_Details(t *testing.T) {
	t.Run("returns 404 when the quote is absent", func(t *testing.T) {
		handler := NewStockHandler(testutil.NewMockStockClient())

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/details/NOPE", map[string]string{"symbol": "NOPE"})
		w := httptest.NewRecorder()

		handler.Details(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns details with absent descriptive fields", func(t *testing.T) {
		mock := testutil.NewMockStockClient().WithDetails(model.StockDetails{
			Symbol: "AAPL", CurrentPrice: 150, Change: 2,
		})
		handler := NewStockHandler(mock)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/details/AAPL", map[string]string{"symbol": "AAPL"})
		w := httptest.NewRecorder()

		handler.Details(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		env := testutil.DecodeEnvelope(t, w.Body)
		data, ok := env.Data.(map[string]interface{})
		if !ok {
			t.Fatalf("Expected object payload, got %T", env.Data)
		}
		if data["currentPrice"] != 150.0 {
			t.Errorf("Expected currentPrice 150, got %v", data["currentPrice"])
		}
		if data["sector"] != nil {
			t.Errorf("Expected null sector, got %v", data["sector"])
		}
	})
}

func TestStockHandler_Quotes(t *testing.T) {
	t.Run("returns 400 for an empty symbols list", func(t *testing.T) {
		handler := NewStockHandler(testutil.NewMockStockClient())

		req := httptest.NewRequest(http.MethodPost, "/api/stock/quotes", strings.NewReader(`[]`))
		w := httptest.NewRecorder()

		handler.Quotes(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		handler := NewStockHandler(testutil.NewMockStockClient())

		req := httptest.NewRequest(http.MethodPost, "/api/stock/quotes", strings.NewReader(`{"symbols":`))
		w := httptest.NewRecorder()

		handler.Quotes(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("drops failing symbols and keeps successes", func(t *testing.T) {
		mock := testutil.NewMockStockClient().
			WithQuote("AAPL", model.Quote{Symbol: "AAPL", Price: 150}).
			WithQuote("MSFT", model.Quote{Symbol: "MSFT", Price: 400})
		handler := NewStockHandler(mock)

		req := httptest.NewRequest(http.MethodPost, "/api/stock/quotes", strings.NewReader(`["AAPL","BAD","MSFT"]`))
		w := httptest.NewRecorder()

		handler.Quotes(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		env := testutil.DecodeEnvelope(t, w.Body)
		data, ok := env.Data.([]interface{})
		if !ok {
			t.Fatalf("Expected array payload, got %T", env.Data)
		}
		if len(data) != 2 {
			t.Errorf("Expected 2 quotes, got %d", len(data))
		}
	})
}

func TestStockHandler_Historical(t *testing.T) {
	t.Run("returns 404 for an empty series", func(t *testing.T) {
		handler := NewStockHandler(testutil.NewMockStockClient())

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/historical/NOPE", map[string]string{"symbol": "NOPE"})
		w := httptest.NewRecorder()

		handler.Historical(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a non-numeric output size", func(t *testing.T) {
		handler := NewStockHandler(testutil.NewMockStockClient())

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/historical/AAPL", map[string]string{"symbol": "AAPL"})
		q := req.URL.Query()
		q.Set("outputSize", "lots")
		req.URL.RawQuery = q.Encode()
		w := httptest.NewRecorder()

		handler.Historical(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns the series in the envelope", func(t *testing.T) {
		mock := testutil.NewMockStockClient().WithBars([]model.HistoricalBar{
			{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Close: 9},
			{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Close: 10},
		})
		handler := NewStockHandler(mock)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/historical/AAPL", map[string]string{"symbol": "AAPL"})
		w := httptest.NewRecorder()

		handler.Historical(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		env := testutil.DecodeEnvelope(t, w.Body)
		data, ok := env.Data.([]interface{})
		if !ok || len(data) != 2 {
			t.Errorf("Expected 2 bars in payload, got %v", env.Data)
		}
	})
}

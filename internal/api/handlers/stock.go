package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stock-analyzer/backend/internal/api/response"
	"github.com/stock-analyzer/backend/internal/apperrors"
	"github.com/stock-analyzer/backend/internal/twelvedata"
	"github.com/stock-analyzer/backend/internal/validation"
)

// StockHandler handles market-data HTTP requests
type StockHandler struct {
	stocks twelvedata.Client
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stocks twelvedata.Client) *StockHandler {
	return &StockHandler{
		stocks: stocks,
	}
}

// Search handles GET /api/stock/search?query=
func (h *StockHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if err := validation.ValidateSearchQuery(query); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.stocks.SearchStocks(r.Context(), query)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, results)
}

// Quote handles GET /api/stock/quote/{symbol}
func (h *StockHandler) Quote(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	quote, err := h.stocks.GetStockQuote(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrSymbolNotFound) {
			response.Error(w, http.StatusNotFound, fmt.Sprintf("Stock quote not found for symbol: %s", symbol))
			return
		}
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, quote)
}

// Details handles GET /api/stock/details/{symbol}
func (h *StockHandler) Details(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	details, err := h.stocks.GetStockDetails(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrSymbolNotFound) {
			response.Error(w, http.StatusNotFound, fmt.Sprintf("Stock details not found for symbol: %s", symbol))
			return
		}
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, details)
}

// Quotes handles POST /api/stock/quotes with a JSON array of symbols
func (h *StockHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	var symbols []string
	if err := json.NewDecoder(r.Body).Decode(&symbols); err != nil {
		response.Error(w, http.StatusBadRequest, "request body must be a JSON array of symbols")
		return
	}
	if err := validation.ValidateSymbols(symbols); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	quotes, err := h.stocks.GetMultipleQuotes(r.Context(), symbols)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, quotes)
}

// Historical handles GET /api/stock/historical/{symbol}?interval=&outputSize=
func (h *StockHandler) Historical(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	interval := r.URL.Query().Get("interval")

	outputSize := 0
	if raw := r.URL.Query().Get("outputSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "outputSize must be a number")
			return
		}
		outputSize = parsed
	}

	bars, err := h.stocks.GetHistoricalData(r.Context(), symbol, interval, outputSize)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(bars) == 0 {
		response.Error(w, http.StatusNotFound, fmt.Sprintf("Historical data not found for symbol: %s", symbol))
		return
	}

	response.Success(w, bars)
}

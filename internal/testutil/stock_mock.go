package testutil

import (
	"context"
	"fmt"

	"github.com/stock-analyzer/backend/internal/apperrors"
	"github.com/stock-analyzer/backend/internal/model"
)

// MockStockClient is a mock implementation of twelvedata.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockStockClient struct {
	// SearchResults is returned from SearchStocks
	SearchResults []model.SearchResult
	// Quotes maps symbols to the quote returned for them; symbols with
	// no entry yield a not-found error, like the real provider
	Quotes map[string]model.Quote
	// QuoteErrs maps symbols to a forced error
	QuoteErrs map[string]error
	// Details is returned from GetStockDetails when set
	Details *model.StockDetails
	// Bars is returned from GetHistoricalData
	Bars []model.HistoricalBar
	// Err, when set, is returned from every call
	Err error

	// Call counters
	SearchCount  int
	QuoteCount   int
	HistoryCount int
}

// NewMockStockClient creates a mock market-data client with empty defaults.
func NewMockStockClient() *MockStockClient {
	return &MockStockClient{
		Quotes:    make(map[string]model.Quote),
		QuoteErrs: make(map[string]error),
	}
}

// SearchStocks returns the configured search results.
func (m *MockStockClient) SearchStocks(_ context.Context, _ string) ([]model.SearchResult, error) {
	m.SearchCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SearchResults, nil
}

// GetStockQuote returns the configured quote for the symbol, or a
// not-found error when no quote is configured.
func (m *MockStockClient) GetStockQuote(_ context.Context, symbol string) (model.Quote, error) {
	m.QuoteCount++
	if m.Err != nil {
		return model.Quote{}, m.Err
	}
	if err, ok := m.QuoteErrs[symbol]; ok {
		return model.Quote{}, err
	}
	if quote, ok := m.Quotes[symbol]; ok {
		return quote, nil
	}
	return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
}

// GetStockDetails returns the configured details, falling back to the
// configured quote's fields when no details are set.
func (m *MockStockClient) GetStockDetails(ctx context.Context, symbol string) (model.StockDetails, error) {
	if m.Err != nil {
		return model.StockDetails{}, m.Err
	}
	if m.Details != nil {
		return *m.Details, nil
	}
	quote, err := m.GetStockQuote(ctx, symbol)
	if err != nil {
		return model.StockDetails{}, err
	}
	return model.StockDetails{
		Symbol:        quote.Symbol,
		CurrentPrice:  quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		Volume:        quote.Volume,
	}, nil
}

// GetMultipleQuotes collects the configured quotes for the given
// symbols, dropping failures, mirroring the real client's contract.
func (m *MockStockClient) GetMultipleQuotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	quotes := make([]model.Quote, 0, len(symbols))
	for _, symbol := range symbols {
		quote, err := m.GetStockQuote(ctx, symbol)
		if err != nil {
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// GetHistoricalData returns the configured bars.
func (m *MockStockClient) GetHistoricalData(_ context.Context, _, _ string, _ int) ([]model.HistoricalBar, error) {
	m.HistoryCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars, nil
}

// WithError configures the mock to return the specified error from every call.
func (m *MockStockClient) WithError(err error) *MockStockClient {
	m.Err = err
	return m
}

// WithQuote configures the quote returned for a symbol.
func (m *MockStockClient) WithQuote(symbol string, quote model.Quote) *MockStockClient {
	m.Quotes[symbol] = quote
	return m
}

// WithSearchResults configures the search results.
func (m *MockStockClient) WithSearchResults(results []model.SearchResult) *MockStockClient {
	m.SearchResults = results
	return m
}

// WithBars configures the historical bars.
func (m *MockStockClient) WithBars(bars []model.HistoricalBar) *MockStockClient {
	m.Bars = bars
	return m
}

// WithDetails configures the stock details.
func (m *MockStockClient) WithDetails(details model.StockDetails) *MockStockClient {
	m.Details = &details
	return m
}

// Package twelvedata wraps the Twelve Data market-data API and
// normalizes its responses into internal quote, details, search and
// history records.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stock-analyzer/backend/internal/apperrors"
	"github.com/stock-analyzer/backend/internal/model"
)

// Client defines the interface for fetching market data.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	SearchStocks(ctx context.Context, query string) ([]model.SearchResult, error)
	GetStockQuote(ctx context.Context, symbol string) (model.Quote, error)
	GetStockDetails(ctx context.Context, symbol string) (model.StockDetails, error)
	GetMultipleQuotes(ctx context.Context, symbols []string) ([]model.Quote, error)
	GetHistoricalData(ctx context.Context, symbol, interval string, outputSize int) ([]model.HistoricalBar, error)
}

// Default output sizes per interval when the caller does not specify one.
var defaultOutputSizes = map[string]int{
	"1day":   30,
	"1week":  12,
	"1month": 12,
}

// Accepted datetime layouts for time-series values. Twelve Data uses
// date-only strings for daily and coarser intervals and a space-separated
// datetime for intraday ones.
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// FinanceClient provides methods for fetching market data from Twelve Data.
// It wraps an HTTP client and carries the API base URL and key.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewFinanceClient creates a new Twelve Data client for the given base
// URL and API key.
func NewFinanceClient(baseURL, apiKey string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// SearchStocks looks up symbols matching the query and returns up to
// five matches in provider order. A blank query returns an empty result
// without issuing a request.
func (c *FinanceClient) SearchStocks(ctx context.Context, query string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchResult{}, nil
	}

	params := url.Values{}
	params.Set("symbol", query)

	var result searchResponse
	if err := c.get(ctx, "/symbol_search", params, &result); err != nil {
		return nil, err
	}

	matches := result.Data
	if len(matches) > 5 {
		matches = matches[:5]
	}

	results := make([]model.SearchResult, len(matches))
	for i, item := range matches {
		results[i] = model.SearchResult{
			Symbol:   item.Symbol,
			Name:     item.InstrumentName,
			Exchange: item.Exchange,
			Type:     item.InstrumentType,
		}
	}
	return results, nil
}

// GetStockQuote fetches a single quote. A provider error status maps to
// apperrors.ErrSymbolNotFound (absence, not a fault). Change and
// change-percent are derived from the previous close when omitted, and
// the observation timestamp is stamped here rather than taken from the
// provider.
func (c *FinanceClient) GetStockQuote(ctx context.Context, symbol string) (model.Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var result quoteResponse
	if err := c.get(ctx, "/quote", params, &result); err != nil {
		return model.Quote{}, err
	}

	if result.Status == "error" {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}

	price := toFloat(result.Close, 0)
	prevClose := toFloat(result.PreviousClose, price)
	change := toFloat(result.Change, price-prevClose)

	var derivedPct float64
	if prevClose != 0 {
		derivedPct = change / prevClose * 100
	}
	changePct := toFloat(result.PercentChange, derivedPct)

	quoteSymbol := result.Symbol
	if quoteSymbol == "" {
		quoteSymbol = symbol
	}

	return model.Quote{
		Symbol:        quoteSymbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
		Volume:        toInt(result.Volume, 0),
		Timestamp:     time.Now().UTC(),
	}, nil
}

// GetStockDetails fetches a quote and enriches it with descriptive
// profile fields. A failing profile lookup is non-fatal: the result then
// carries quote fields with descriptive fields absent. When the profile
// omits both 52-week bounds they are derived from 30 days of daily
// history; failures on that fallback path are absorbed as well.
func (c *FinanceClient) GetStockDetails(ctx context.Context, symbol string) (model.StockDetails, error) {
	quote, err := c.GetStockQuote(ctx, symbol)
	if err != nil {
		return model.StockDetails{}, err
	}

	details := model.StockDetails{
		Symbol:        quote.Symbol,
		CurrentPrice:  quote.Price,
		PreviousClose: optionalFloat(quote.Price - quote.Change),
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		Volume:        quote.Volume,
	}

	c.applyProfile(ctx, symbol, &details)

	if details.High52Week == nil || details.Low52Week == nil {
		bars, err := c.GetHistoricalData(ctx, symbol, "1day", 30)
		if err != nil {
			log.Printf("failed to derive 52-week range from history for %s: %v", symbol, err)
		} else if len(bars) > 0 {
			high := bars[0].High
			low := bars[0].Low
			for _, bar := range bars[1:] {
				if bar.High > high {
					high = bar.High
				}
				if bar.Low < low {
					low = bar.Low
				}
			}
			details.High52Week = &high
			details.Low52Week = &low
		}
	}

	return details, nil
}

// applyProfile fills the descriptive fields of details from the profile
// endpoint. All failures are logged and absorbed.
func (c *FinanceClient) applyProfile(ctx context.Context, symbol string, details *model.StockDetails) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var profile profileResponse
	if err := c.get(ctx, "/profile", params, &profile); err != nil {
		log.Printf("profile request failed for %s: %v", symbol, err)
		return
	}
	if profile.Status == "error" {
		log.Printf("profile API returned error for %s: %s", symbol, profile.Message)
		return
	}

	details.Name = profile.Name
	details.Exchange = profile.Exchange
	details.Sector = optionalString(profile.Sector)
	details.Industry = optionalString(profile.Industry)
	details.Description = optionalString(profile.Description)
	details.MarketCap = optionalFloat(toFloat(profile.MarketCap, 0))
	details.PERatio = optionalFloat(toFloat(profile.PERatio, 0))
	details.DividendYield = optionalFloat(toFloat(profile.DividendYield, 0))
	details.AverageVolume = optionalInt(toInt(profile.AverageVolume, 0))

	high := profile.WeekHigh52
	if high == nil {
		high = profile.FiftyTwoWeekHigh
	}
	low := profile.WeekLow52
	if low == nil {
		low = profile.FiftyTwoWeekLow
	}
	details.High52Week = optionalFloat(toFloat(high, 0))
	details.Low52Week = optionalFloat(toFloat(low, 0))
}

// GetMultipleQuotes fetches one quote per symbol concurrently and
// collects the successes. Individual failures are logged and excluded
// from the result; the call itself never fails because of one bad
// symbol. Result order is not guaranteed.
func (c *FinanceClient) GetMultipleQuotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	quotes := make([]model.Quote, 0, len(symbols))

	var g errgroup.Group
	results := make([]*model.Quote, len(symbols))
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			quote, err := c.GetStockQuote(ctx, symbol)
			if err != nil {
				log.Printf("quote failed for %s: %v", symbol, err)
				return nil
			}
			results[i] = &quote
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()

	for _, quote := range results {
		if quote != nil {
			quotes = append(quotes, *quote)
		}
	}
	return quotes, nil
}

// GetHistoricalData fetches a time series for the symbol. Interval
// defaults to 1day; output size defaults per interval when zero or
// negative. Values with missing or malformed dates are dropped and the
// result is always sorted ascending by date.
func (c *FinanceClient) GetHistoricalData(ctx context.Context, symbol, interval string, outputSize int) ([]model.HistoricalBar, error) {
	if interval == "" {
		interval = "1day"
	}
	if outputSize <= 0 {
		outputSize = defaultOutputSizes[interval]
		if outputSize == 0 {
			outputSize = 30
		}
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("outputsize", fmt.Sprintf("%d", outputSize))

	var result timeSeriesResponse
	if err := c.get(ctx, "/time_series", params, &result); err != nil {
		return nil, err
	}

	if result.Status == "error" {
		log.Printf("time series API returned error for %s: %s", symbol, result.Message)
		return []model.HistoricalBar{}, nil
	}

	bars := make([]model.HistoricalBar, 0, len(result.Values))
	for _, value := range result.Values {
		date, ok := parseDatetime(value.Datetime)
		if !ok {
			continue
		}
		bar := model.HistoricalBar{
			Date:   date,
			Open:   toFloat(value.Open, 0),
			High:   toFloat(value.High, 0),
			Low:    toFloat(value.Low, 0),
			Close:  toFloat(value.Close, 0),
			Volume: toInt(value.Volume, 0),
		}
		if value.AdjustedClose != nil {
			adjusted := toFloat(value.AdjustedClose, 0)
			bar.AdjustedClose = &adjusted
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})
	return bars, nil
}

// get executes a GET request against the given API path and decodes the
// JSON response into target. Non-2xx statuses are returned as errors.
func (c *FinanceClient) get(ctx context.Context, path string, params url.Values, target interface{}) error {
	params.Set("apikey", c.apiKey)
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("twelve data request failed with status %d", resp.StatusCode)
	}

	return json.Unmarshal(data, target)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

func optionalInt(i int64) *int64 {
	if i == 0 {
		return nil
	}
	return &i
}

func parseDatetime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

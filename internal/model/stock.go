package model

import "time"

// SearchResult represents a single symbol-search match.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// Quote represents a normalized real-time stock quote.
// Change and ChangePercent are derived from the previous close when the
// provider omits them; Timestamp is stamped at observation time rather
// than taken from the provider.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// StockDetails is a superset of Quote with descriptive company fields.
// Every descriptive field is optional and independently nullable; quote
// fields are always populated when details exist at all.
type StockDetails struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Exchange      string   `json:"exchange"`
	Sector        *string  `json:"sector"`
	Industry      *string  `json:"industry"`
	MarketCap     *float64 `json:"marketCap"`
	CurrentPrice  float64  `json:"currentPrice"`
	PreviousClose *float64 `json:"previousClose"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"changePercent"`
	Volume        int64    `json:"volume"`
	AverageVolume *int64   `json:"averageVolume"`
	High52Week    *float64 `json:"high52Week"`
	Low52Week     *float64 `json:"low52Week"`
	PERatio       *float64 `json:"peRatio"`
	DividendYield *float64 `json:"dividendYield"`
	Description   *string  `json:"description"`
}

// HistoricalBar represents one OHLCV bar in a time series.
type HistoricalBar struct {
	Date          time.Time `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	Volume        int64     `json:"volume"`
	AdjustedClose *float64  `json:"adjustedClose"`
}

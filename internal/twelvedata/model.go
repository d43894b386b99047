package twelvedata

import "strconv"

// Twelve Data serializes most numeric fields as JSON strings, but not
// consistently across endpoints. Numeric fields are therefore decoded
// as interface{} and converted defensively.

type searchResponse struct {
	Data []searchItem `json:"data"`
}

type searchItem struct {
	Symbol         string `json:"symbol"`
	InstrumentName string `json:"instrument_name"`
	Exchange       string `json:"exchange"`
	InstrumentType string `json:"instrument_type"`
}

type quoteResponse struct {
	Status        string      `json:"status"`
	Message       string      `json:"message"`
	Symbol        string      `json:"symbol"`
	Close         interface{} `json:"close"`
	PreviousClose interface{} `json:"previous_close"`
	Change        interface{} `json:"change"`
	PercentChange interface{} `json:"percent_change"`
	Volume        interface{} `json:"volume"`
}

type profileResponse struct {
	Status             string      `json:"status"`
	Message            string      `json:"message"`
	Name               string      `json:"name"`
	Exchange           string      `json:"exchange"`
	Sector             string      `json:"sector"`
	Industry           string      `json:"industry"`
	Description        string      `json:"description"`
	MarketCap          interface{} `json:"market_capitalization"`
	PERatio            interface{} `json:"pe_ratio"`
	DividendYield      interface{} `json:"dividend_yield"`
	WeekHigh52         interface{} `json:"52_week_high"`
	WeekLow52          interface{} `json:"52_week_low"`
	FiftyTwoWeekHigh   interface{} `json:"fifty_two_week_high"`
	FiftyTwoWeekLow    interface{} `json:"fifty_two_week_low"`
	AverageVolume      interface{} `json:"average_volume"`
}

type timeSeriesResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Values  []timeSeriesValue `json:"values"`
}

type timeSeriesValue struct {
	Datetime      string      `json:"datetime"`
	Open          interface{} `json:"open"`
	High          interface{} `json:"high"`
	Low           interface{} `json:"low"`
	Close         interface{} `json:"close"`
	Volume        interface{} `json:"volume"`
	AdjustedClose interface{} `json:"adjusted_close"`
}

// toFloat converts a loosely typed provider value to a float64,
// returning def when the value is absent or unparseable.
func toFloat(v interface{}, def float64) float64 {
	switch val := v.(type) {
	case nil:
		return def
	case float64:
		return val
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// toInt converts a loosely typed provider value to an int64,
// returning def when the value is absent or unparseable.
func toInt(v interface{}, def int64) int64 {
	switch val := v.(type) {
	case nil:
		return def
	case float64:
		return int64(val)
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return def
		}
		return int64(parsed)
	default:
		return def
	}
}

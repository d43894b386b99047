package snaptrade

import "strconv"

type registerResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	UserSecret string  `json:"userSecret"`
	Email      *string `json:"email"`
	CreatedAt  *string `json:"createdAt"`
}

type brokerageListResponse struct {
	Brokerages []brokerageItem `json:"brokerages"`
}

type brokerageItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DisplayName   *string `json:"displayName"`
	Description   *string `json:"description"`
	SupportsOAuth bool    `json:"supportsOAuth"`
}

type loginResponse struct {
	LoginLink   string `json:"loginLink"`
	RedirectURI string `json:"redirectUri"`
}

// accountListResponse covers the wrapped account-list shape; the bare
// top-level list shape is handled separately in ListAccounts.
type accountListResponse struct {
	Accounts []accountItem `json:"accounts"`
}

type accountItem struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	AccountNumber string      `json:"accountNumber"`
	Type          string      `json:"type"`
	BrokerageID   string      `json:"brokerageId"`
	Balance       interface{} `json:"balance"`
	Currency      string      `json:"currency"`
}

// holdingsResponse tolerates both key names the provider has been seen
// to use for the position list.
type holdingsResponse struct {
	Holdings  []holdingItem `json:"holdings"`
	Positions []holdingItem `json:"positions"`
}

type holdingItem struct {
	Symbol               string      `json:"symbol"`
	Quantity             interface{} `json:"quantity"`
	AveragePurchasePrice interface{} `json:"averagePurchasePrice"`
	CurrentPrice         interface{} `json:"currentPrice"`
	TotalValue           interface{} `json:"totalValue"`
	Currency             string      `json:"currency"`
}

// floatValue converts a loosely typed provider value to a float64,
// returning def when the value is absent or unparseable.
func floatValue(v interface{}, def float64) float64 {
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

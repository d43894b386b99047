package model

// SnapTradeUser represents a provider-registered user combined with the
// caller-supplied internal user ID.
type SnapTradeUser struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Email     *string `json:"email"`
	CreatedAt *string `json:"createdAt"`
}

// Brokerage represents a brokerage supported by the aggregation provider.
type Brokerage struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DisplayName   *string `json:"displayName"`
	Description   *string `json:"description"`
	SupportsOAuth bool    `json:"supportsOauth"`
}

// Holding represents a single position within a brokerage account.
// TotalValue, GainLoss and GainLossPercent are computed during
// normalization when the provider omits them.
type Holding struct {
	Symbol               string  `json:"symbol"`
	Quantity             float64 `json:"quantity"`
	AveragePurchasePrice float64 `json:"averagePurchasePrice"`
	CurrentPrice         float64 `json:"currentPrice"`
	TotalValue           float64 `json:"totalValue"`
	GainLoss             float64 `json:"gainLoss"`
	GainLossPercent      float64 `json:"gainLossPercent"`
	Currency             string  `json:"currency"`
}

// Account represents a linked brokerage account. Holdings is empty until
// populated by portfolio aggregation.
type Account struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"accountNumber"`
	Type          string    `json:"type"`
	BrokerageID   string    `json:"brokerageId"`
	Balance       *float64  `json:"balance"`
	Currency      string    `json:"currency"`
	Holdings      []Holding `json:"holdings"`
}

// Portfolio is the consolidated view across all linked accounts.
type Portfolio struct {
	UserID               string    `json:"userId"`
	Accounts             []Account `json:"accounts"`
	TotalBalance         float64   `json:"totalBalance"`
	TotalGainLoss        float64   `json:"totalGainLoss"`
	TotalGainLossPercent float64   `json:"totalGainLossPercent"`
	Currency             string    `json:"currency"`
}

// Package snaptrade wraps the SnapTrade brokerage-aggregation API and
// normalizes its responses into internal account and holding records.
package snaptrade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stock-analyzer/backend/internal/model"
)

// Client defines the interface for the brokerage-aggregation provider.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	RegisterUser(ctx context.Context, userID string) (model.SnapTradeUser, string, error)
	ListBrokerages(ctx context.Context) ([]model.Brokerage, error)
	InitiateConnection(ctx context.Context, userID, userSecret, redirectURI string) (string, error)
	ListAccounts(ctx context.Context, userID, userSecret string) ([]model.Account, error)
	ListHoldings(ctx context.Context, userID, userSecret, accountID string) ([]model.Holding, error)
}

// BrokerageClient provides methods for talking to the SnapTrade API.
// It wraps an HTTP client and carries the API base URL and credentials.
type BrokerageClient struct {
	httpClient  *http.Client
	baseURL     string
	clientID    string
	consumerKey string
}

// NewBrokerageClient creates a new SnapTrade client for the given base
// URL and API credentials.
func NewBrokerageClient(baseURL, clientID, consumerKey string) *BrokerageClient {
	return &BrokerageClient{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		clientID:    clientID,
		consumerKey: consumerKey,
	}
}

// RegisterUser registers the internal user ID with the provider. The
// returned secret is the provider-issued user secret, empty when the
// provider omits one.
func (c *BrokerageClient) RegisterUser(ctx context.Context, userID string) (model.SnapTradeUser, string, error) {
	body := map[string]string{"userId": userID}
	data, err := c.post(ctx, "/snapTrade/v1/register", body)
	if err != nil {
		return model.SnapTradeUser{}, "", err
	}

	var result registerResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return model.SnapTradeUser{}, "", fmt.Errorf("failed to decode register response: %w", err)
	}

	user := model.SnapTradeUser{
		ID:        result.ID,
		UserID:    userID,
		Email:     result.Email,
		CreatedAt: result.CreatedAt,
	}
	return user, result.UserSecret, nil
}

// ListBrokerages returns the brokerages supported by the provider.
func (c *BrokerageClient) ListBrokerages(ctx context.Context) ([]model.Brokerage, error) {
	data, err := c.get(ctx, "/snapTrade/v1/brokerages", nil)
	if err != nil {
		return nil, err
	}

	var result brokerageListResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode brokerages response: %w", err)
	}

	brokerages := make([]model.Brokerage, len(result.Brokerages))
	for i, item := range result.Brokerages {
		brokerages[i] = model.Brokerage{
			ID:            item.ID,
			Name:          item.Name,
			DisplayName:   item.DisplayName,
			Description:   item.Description,
			SupportsOAuth: item.SupportsOAuth,
		}
	}
	return brokerages, nil
}

// InitiateConnection requests an OAuth-style login link for the user.
// Returns an empty string when the provider returns neither of the two
// expected link fields; the caller must treat that as failure.
func (c *BrokerageClient) InitiateConnection(ctx context.Context, userID, userSecret, redirectURI string) (string, error) {
	body := map[string]string{
		"userId":      userID,
		"userSecret":  userSecret,
		"redirectUri": redirectURI,
	}
	data, err := c.post(ctx, "/snapTrade/v1/auth/login", body)
	if err != nil {
		return "", err
	}

	var result loginResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}

	if result.LoginLink != "" {
		return result.LoginLink, nil
	}
	return result.RedirectURI, nil
}

// ListAccounts returns the user's linked brokerage accounts in provider
// order, tolerating both response shapes the provider has been seen to
// use: a list wrapped under an "accounts" key, or a bare top-level list.
func (c *BrokerageClient) ListAccounts(ctx context.Context, userID, userSecret string) ([]model.Account, error) {
	params := url.Values{}
	params.Set("userId", userID)
	params.Set("userSecret", userSecret)

	data, err := c.get(ctx, "/snapTrade/v1/accounts", params)
	if err != nil {
		return nil, err
	}

	var items []accountItem
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode accounts response: %w", err)
		}
	} else {
		var wrapped accountListResponse
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode accounts response: %w", err)
		}
		items = wrapped.Accounts
	}

	accounts := make([]model.Account, len(items))
	for i, item := range items {
		accounts[i] = parseAccount(item)
	}
	return accounts, nil
}

// ListHoldings returns the holdings of one account, tolerating both key
// names ("holdings" and "positions") for the underlying list. Total
// value, gain/loss and gain/loss-percent are computed when the provider
// omits them; a zero cost basis yields a zero percentage.
func (c *BrokerageClient) ListHoldings(ctx context.Context, userID, userSecret, accountID string) ([]model.Holding, error) {
	params := url.Values{}
	params.Set("userId", userID)
	params.Set("userSecret", userSecret)

	path := fmt.Sprintf("/snapTrade/v1/accounts/%s/holdings", url.PathEscape(accountID))
	data, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var result holdingsResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode holdings response: %w", err)
	}

	items := result.Holdings
	if len(items) == 0 {
		items = result.Positions
	}

	holdings := make([]model.Holding, len(items))
	for i, item := range items {
		holdings[i] = parseHolding(item)
	}
	return holdings, nil
}

func parseAccount(item accountItem) model.Account {
	currency := item.Currency
	if currency == "" {
		currency = "USD"
	}

	account := model.Account{
		ID:            item.ID,
		Name:          item.Name,
		AccountNumber: item.AccountNumber,
		Type:          item.Type,
		BrokerageID:   item.BrokerageID,
		Currency:      currency,
		Holdings:      []model.Holding{},
	}
	if item.Balance != nil {
		balance := floatValue(item.Balance, 0)
		account.Balance = &balance
	}
	return account
}

func parseHolding(item holdingItem) model.Holding {
	quantity := floatValue(item.Quantity, 0)
	avgPrice := floatValue(item.AveragePurchasePrice, 0)
	currentPrice := floatValue(item.CurrentPrice, 0)

	totalValue := floatValue(item.TotalValue, 0)
	if totalValue == 0 {
		totalValue = quantity * currentPrice
	}

	costBasis := quantity * avgPrice
	gainLoss := totalValue - costBasis

	var gainLossPct float64
	if costBasis != 0 {
		gainLossPct = gainLoss / costBasis * 100
	}

	currency := item.Currency
	if currency == "" {
		currency = "USD"
	}

	return model.Holding{
		Symbol:               item.Symbol,
		Quantity:             quantity,
		AveragePurchasePrice: avgPrice,
		CurrentPrice:         currentPrice,
		TotalValue:           totalValue,
		GainLoss:             gainLoss,
		GainLossPercent:      gainLossPct,
		Currency:             currency,
	}
}

// get executes a GET request against the given API path with the
// provider credential headers attached.
func (c *BrokerageClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// post executes a POST request with a JSON body against the given API path.
func (c *BrokerageClient) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *BrokerageClient) do(req *http.Request) ([]byte, error) {
	req.Header.Set("X-API-Key", c.clientID)
	req.Header.Set("X-Consumer-Key", c.consumerKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("snaptrade request failed with status %d", resp.StatusCode)
	}
	return data, nil
}

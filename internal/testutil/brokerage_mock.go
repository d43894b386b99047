package testutil

import (
	"context"
	"sync"

	"github.com/stock-analyzer/backend/internal/model"
)

// MockBrokerageClient is a mock implementation of snaptrade.Client for
// testing. It returns predefined test data instead of making actual API
// calls. All methods are safe for concurrent use; portfolio aggregation
// calls ListHoldings from multiple goroutines.
type MockBrokerageClient struct {
	mu sync.Mutex

	// User is returned from RegisterUser
	User model.SnapTradeUser
	// UserSecret is the provider-issued secret returned from RegisterUser
	UserSecret string
	// LoginLink is returned from InitiateConnection
	LoginLink string
	// Brokerages is returned from ListBrokerages
	Brokerages []model.Brokerage
	// Accounts is returned from ListAccounts
	Accounts []model.Account
	// HoldingsByAccount maps account IDs to their holdings
	HoldingsByAccount map[string][]model.Holding
	// HoldingsErrs maps account IDs to a forced error
	HoldingsErrs map[string]error
	// Err, when set, is returned from every call
	Err error

	// Call counters
	RegisterCount int
	LoginCount    int
	AccountsCount int
	HoldingsCount int
}

// NewMockBrokerageClient creates a mock brokerage client with empty defaults.
func NewMockBrokerageClient() *MockBrokerageClient {
	return &MockBrokerageClient{
		HoldingsByAccount: make(map[string][]model.Holding),
		HoldingsErrs:      make(map[string]error),
	}
}

// RegisterUser returns the configured user and provider secret.
func (m *MockBrokerageClient) RegisterUser(_ context.Context, userID string) (model.SnapTradeUser, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCount++
	if m.Err != nil {
		return model.SnapTradeUser{}, "", m.Err
	}
	user := m.User
	user.UserID = userID
	return user, m.UserSecret, nil
}

// ListBrokerages returns the configured brokerages.
func (m *MockBrokerageClient) ListBrokerages(_ context.Context) ([]model.Brokerage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Brokerages, nil
}

// InitiateConnection returns the configured login link.
func (m *MockBrokerageClient) InitiateConnection(_ context.Context, _, _, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCount++
	if m.Err != nil {
		return "", m.Err
	}
	return m.LoginLink, nil
}

// ListAccounts returns the configured accounts.
func (m *MockBrokerageClient) ListAccounts(_ context.Context, _, _ string) ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AccountsCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Accounts, nil
}

// ListHoldings returns the configured holdings for the account.
func (m *MockBrokerageClient) ListHoldings(_ context.Context, _, _, accountID string) ([]model.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HoldingsCount++
	if m.Err != nil {
		return nil, m.Err
	}
	if err, ok := m.HoldingsErrs[accountID]; ok {
		return nil, err
	}
	return m.HoldingsByAccount[accountID], nil
}

// WithError configures the mock to return the specified error from every call.
func (m *MockBrokerageClient) WithError(err error) *MockBrokerageClient {
	m.Err = err
	return m
}

// WithLoginLink configures the login link returned from InitiateConnection.
func (m *MockBrokerageClient) WithLoginLink(link string) *MockBrokerageClient {
	m.LoginLink = link
	return m
}

// WithUserSecret configures the provider secret returned from RegisterUser.
func (m *MockBrokerageClient) WithUserSecret(secret string) *MockBrokerageClient {
	m.UserSecret = secret
	return m
}

// WithAccounts configures the accounts returned from ListAccounts.
func (m *MockBrokerageClient) WithAccounts(accounts []model.Account) *MockBrokerageClient {
	m.Accounts = accounts
	return m
}

// WithHoldings configures the holdings returned for one account.
func (m *MockBrokerageClient) WithHoldings(accountID string, holdings []model.Holding) *MockBrokerageClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HoldingsByAccount[accountID] = holdings
	return m
}

// WithBrokerages configures the brokerages returned from ListBrokerages.
func (m *MockBrokerageClient) WithBrokerages(brokerages []model.Brokerage) *MockBrokerageClient {
	m.Brokerages = brokerages
	return m
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stock-analyzer/backend/internal/apperrors"
	"github.com/stock-analyzer/backend/internal/model"
	"github.com/stock-analyzer/backend/internal/secrets"
	"github.com/stock-analyzer/backend/internal/snaptrade"
)

// maxHoldingsFetches bounds the concurrent per-account holdings requests
// issued while building a consolidated portfolio.
const maxHoldingsFetches = 4

// SnapTradeService orchestrates the brokerage-aggregation provider and
// the secret store: the connect flow, account and holdings lookups, and
// consolidated portfolio aggregation.
type SnapTradeService struct {
	client  snaptrade.Client
	secrets *secrets.Store
}

// NewSnapTradeService creates a new SnapTradeService
func NewSnapTradeService(client snaptrade.Client, secretStore *secrets.Store) *SnapTradeService {
	return &SnapTradeService{
		client:  client,
		secrets: secretStore,
	}
}

// RegisterUser registers the caller with the provider.
func (s *SnapTradeService) RegisterUser(ctx context.Context, userID string) (model.SnapTradeUser, error) {
	if userID == "" {
		return model.SnapTradeUser{}, apperrors.ErrEmptyUserID
	}
	user, _, err := s.client.RegisterUser(ctx, userID)
	return user, err
}

// InitiateConnection returns a login link for the caller, registering
// the user and storing a secret first when none exists yet. The secret
// is the provider-issued one when the register response carries it, or
// a generated one otherwise; either way it lives only as long as the
// process.
func (s *SnapTradeService) InitiateConnection(ctx context.Context, userID, redirectURI string) (string, error) {
	if userID == "" {
		return "", apperrors.ErrEmptyUserID
	}

	secret, ok := s.secrets.Get(userID)
	if !ok {
		_, providerSecret, err := s.client.RegisterUser(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("failed to register user: %w", err)
		}
		secret = providerSecret
		if secret == "" {
			secret = uuid.New().String()
		}
		if err := s.secrets.Put(userID, secret); err != nil {
			return "", err
		}
	}

	link, err := s.client.InitiateConnection(ctx, userID, secret, redirectURI)
	if err != nil {
		return "", err
	}
	if link == "" {
		return "", apperrors.ErrNoRedirectURL
	}
	return link, nil
}

// GetBrokerages returns the provider's supported brokerages.
func (s *SnapTradeService) GetBrokerages(ctx context.Context) ([]model.Brokerage, error) {
	return s.client.ListBrokerages(ctx)
}

// GetAccounts returns the caller's linked accounts in provider order.
func (s *SnapTradeService) GetAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	secret, err := s.secretFor(userID)
	if err != nil {
		return nil, err
	}
	return s.client.ListAccounts(ctx, userID, secret)
}

// GetHoldings returns the holdings of one of the caller's accounts.
func (s *SnapTradeService) GetHoldings(ctx context.Context, userID, accountID string) ([]model.Holding, error) {
	secret, err := s.secretFor(userID)
	if err != nil {
		return nil, err
	}
	return s.client.ListHoldings(ctx, userID, secret, accountID)
}

// GetPortfolio builds the consolidated portfolio: one account-list call,
// then one holdings call per account, fanned out with bounded
// concurrency keyed by account index so the output order always matches
// the account-list order. Portfolio totals guard all zero denominators.
func (s *SnapTradeService) GetPortfolio(ctx context.Context, userID string) (model.Portfolio, error) {
	secret, err := s.secretFor(userID)
	if err != nil {
		return model.Portfolio{}, err
	}

	accounts, err := s.client.ListAccounts(ctx, userID, secret)
	if err != nil {
		return model.Portfolio{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxHoldingsFetches)
	for i := range accounts {
		i := i
		g.Go(func() error {
			holdings, err := s.client.ListHoldings(gctx, userID, secret, accounts[i].ID)
			if err != nil {
				return err
			}
			accounts[i].Holdings = holdings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Portfolio{}, err
	}

	var totalBalance, totalGainLoss float64
	for _, account := range accounts {
		if account.Balance != nil {
			totalBalance += *account.Balance
		}
		for _, holding := range account.Holdings {
			totalGainLoss += holding.GainLoss
		}
	}

	var totalGainLossPct float64
	if divisor := totalBalance - totalGainLoss; divisor != 0 {
		totalGainLossPct = totalGainLoss / divisor * 100
	}

	currency := "USD"
	if len(accounts) > 0 {
		currency = accounts[0].Currency
	}

	if accounts == nil {
		accounts = []model.Account{}
	}

	return model.Portfolio{
		UserID:               userID,
		Accounts:             accounts,
		TotalBalance:         totalBalance,
		TotalGainLoss:        totalGainLoss,
		TotalGainLossPercent: totalGainLossPct,
		Currency:             currency,
	}, nil
}

// secretFor resolves the stored secret for the caller, mapping absence
// to ErrUserNotConnected.
func (s *SnapTradeService) secretFor(userID string) (string, error) {
	if userID == "" {
		return "", apperrors.ErrEmptyUserID
	}
	secret, ok := s.secrets.Get(userID)
	if !ok {
		return "", apperrors.ErrUserNotConnected
	}
	return secret, nil
}

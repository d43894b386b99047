package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stock-analyzer/backend/internal/model"
)

func TestMockBrokerageClient_ConcurrentUse(t *testing.T) {
	t.Run("is safe under concurrent holdings calls", func(t *testing.T) {
		mock := NewMockBrokerageClient()
		for i := 0; i < 8; i++ {
			id := fmt.Sprintf("a%d", i)
			mock.WithHoldings(id, []model.Holding{{Symbol: id}})
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				accountID := fmt.Sprintf("a%d", i)
				holdings, err := mock.ListHoldings(context.Background(), "user123", "secret", accountID)
				if err != nil {
					t.Errorf("ListHoldings() returned unexpected error: %v", err)
					return
				}
				if len(holdings) != 1 || holdings[0].Symbol != accountID {
					t.Errorf("Expected holdings for %s, got %+v", accountID, holdings)
				}
			}()
		}
		wg.Wait()

		if mock.HoldingsCount != 8 {
			t.Errorf("Expected 8 holdings calls, got %d", mock.HoldingsCount)
		}
	})

	t.Run("counts mixed concurrent calls without losing increments", func(t *testing.T) {
		mock := NewMockBrokerageClient().
			WithAccounts([]model.Account{{ID: "a1"}}).
			WithLoginLink("https://connect.example/login")

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ctx := context.Background()
				if _, err := mock.ListAccounts(ctx, "user123", "secret"); err != nil {
					t.Errorf("ListAccounts() returned unexpected error: %v", err)
				}
				if _, err := mock.InitiateConnection(ctx, "user123", "secret", "http://localhost/callback"); err != nil {
					t.Errorf("InitiateConnection() returned unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		if mock.AccountsCount != 4 || mock.LoginCount != 4 {
			t.Errorf("Expected 4 accounts and 4 login calls, got %d and %d", mock.AccountsCount, mock.LoginCount)
		}
	})
}

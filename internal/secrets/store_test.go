package secrets

import (
	"fmt"
	"sync"
	"testing"
)

func TestStore(t *testing.T) {
	t.Run("returns absent for unknown user", func(t *testing.T) {
		store, err := NewStore("")
		if err != nil {
			t.Fatalf("NewStore() returned unexpected error: %v", err)
		}

		if _, ok := store.Get("nobody"); ok {
			t.Error("Expected absent secret for unknown user")
		}
	})

	t.Run("round-trips a stored secret", func(t *testing.T) {
		store, err := NewStore("")
		if err != nil {
			t.Fatalf("NewStore() returned unexpected error: %v", err)
		}

		if err := store.Put("user123", "s3cret"); err != nil {
			t.Fatalf("Put() returned unexpected error: %v", err)
		}

		secret, ok := store.Get("user123")
		if !ok {
			t.Fatal("Expected stored secret to be present")
		}
		if secret != "s3cret" {
			t.Errorf("Expected s3cret, got %q", secret)
		}
	})

	t.Run("overwrites unconditionally", func(t *testing.T) {
		store, err := NewStore("")
		if err != nil {
			t.Fatalf("NewStore() returned unexpected error: %v", err)
		}

		if err := store.Put("user123", "first"); err != nil {
			t.Fatalf("Put() returned unexpected error: %v", err)
		}
		if err := store.Put("user123", "second"); err != nil {
			t.Fatalf("Put() returned unexpected error: %v", err)
		}

		secret, _ := store.Get("user123")
		if secret != "second" {
			t.Errorf("Expected last write to win, got %q", secret)
		}
	})

	t.Run("rejects a malformed key", func(t *testing.T) {
		if _, err := NewStore("not-a-fernet-key"); err == nil {
			t.Error("Expected error for malformed key")
		}
	})

	t.Run("is safe under concurrent readers and writers", func(t *testing.T) {
		store, err := NewStore("")
		if err != nil {
			t.Fatalf("NewStore() returned unexpected error: %v", err)
		}

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				userID := fmt.Sprintf("user%d", i%4)
				if err := store.Put(userID, fmt.Sprintf("secret%d", i)); err != nil {
					t.Errorf("Put() returned unexpected error: %v", err)
				}
				store.Get(userID)
			}()
		}
		wg.Wait()

		for i := 0; i < 4; i++ {
			if _, ok := store.Get(fmt.Sprintf("user%d", i)); !ok {
				t.Errorf("Expected secret present for user%d", i)
			}
		}
	})
}

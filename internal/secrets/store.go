// Package secrets holds the process-lifetime mapping from internal user
// IDs to provider-issued user secrets.
//
// The store is intentionally non-durable: secrets live only as long as
// the process and are lost on restart. Callers must treat a missing
// secret as "user not connected" and re-run the connect flow.
package secrets

import (
	"fmt"
	"sync"

	"github.com/fernet/fernet-go"
)

// Store is a mutex-guarded in-memory secret map. Secrets are fernet
// encrypted at rest so plain-text provider secrets never sit in the
// heap. Concurrent writers to the same key race; last write wins.
type Store struct {
	mu      sync.RWMutex
	keys    []*fernet.Key
	secrets map[string][]byte
}

// NewStore creates a secret store. encodedKey is a base64 fernet key;
// when empty a fresh key is generated, which is fine because the store
// never outlives the process anyway.
func NewStore(encodedKey string) (*Store, error) {
	var keys []*fernet.Key
	if encodedKey == "" {
		key := &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate secret store key: %w", err)
		}
		keys = []*fernet.Key{key}
	} else {
		decoded, err := fernet.DecodeKeys(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("invalid secret store key: %w", err)
		}
		keys = decoded
	}

	return &Store{
		keys:    keys,
		secrets: make(map[string][]byte),
	}, nil
}

// Get returns the stored secret for userID, or false when none exists.
func (s *Store) Get(userID string) (string, bool) {
	s.mu.RLock()
	token, ok := s.secrets[userID]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}

	// TTL 0 disables expiry; secrets are valid for the process lifetime.
	plain := fernet.VerifyAndDecrypt(token, 0, s.keys)
	if plain == nil {
		return "", false
	}
	return string(plain), true
}

// Put stores the secret for userID, overwriting any previous value.
func (s *Store) Put(userID, secret string) error {
	token, err := fernet.EncryptAndSign([]byte(secret), s.keys[0])
	if err != nil {
		return fmt.Errorf("failed to encrypt user secret: %w", err)
	}

	s.mu.Lock()
	s.secrets[userID] = token
	s.mu.Unlock()
	return nil
}

package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSymbolNotFound indicates that the market-data provider has no
	// quote for the requested symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrUserNotConnected indicates that no provider secret is stored for
	// the caller; the account-connect flow has not been completed.
	ErrUserNotConnected = errors.New("user not connected")
)

// Business logic errors represent validation failures or constraint
// violations. These errors indicate that an operation cannot be completed
// due to business rules.
var (
	// ErrBlankQuery indicates that a required search query is empty or
	// whitespace only.
	ErrBlankQuery = errors.New("query parameter is required")

	// ErrEmptySymbols indicates that a batch-quote request carried no
	// symbols.
	ErrEmptySymbols = errors.New("symbols list is required")

	// ErrEmptyUserID indicates that a caller identity resolved to an
	// empty user ID.
	ErrEmptyUserID = errors.New("user ID cannot be empty")
)

// Upstream operation errors represent failures talking to the external
// providers, but not due to missing entities or validation issues.
var (
	// ErrNoRedirectURL indicates that the brokerage provider returned a
	// login response without any usable redirect link.
	ErrNoRedirectURL = errors.New("failed to get redirect URL from SnapTrade")
)

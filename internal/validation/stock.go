package validation

import (
	"strings"

	"github.com/stock-analyzer/backend/internal/apperrors"
)

// ValidateSearchQuery checks that a search query is non-blank after trimming.
func ValidateSearchQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return apperrors.ErrBlankQuery
	}
	return nil
}

// ValidateSymbols checks that a batch-quote request carries at least one
// non-blank symbol.
func ValidateSymbols(symbols []string) error {
	if len(symbols) == 0 {
		return apperrors.ErrEmptySymbols
	}
	for _, symbol := range symbols {
		if strings.TrimSpace(symbol) == "" {
			return apperrors.ErrEmptySymbols
		}
	}
	return nil
}

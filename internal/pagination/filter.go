package pagination

import (
	"errors"
	"fmt"
)

var ErrInvalidFilter = errors.New("invalid price filter")

// ValidatePriceRange checks optional price bounds for consistency: neither
// bound may be negative, and when both are present the maximum must not be
// below the minimum. Pure validation, no side effects.
func ValidatePriceRange(minPrice, maxPrice *float64) error {
	if minPrice != nil && *minPrice < 0 {
		return fmt.Errorf("%w: minimum price cannot be negative", ErrInvalidFilter)
	}
	if maxPrice != nil && *maxPrice < 0 {
		return fmt.Errorf("%w: maximum price cannot be negative", ErrInvalidFilter)
	}
	if minPrice != nil && maxPrice != nil && *maxPrice < *minPrice {
		return fmt.Errorf("%w: maximum price must be greater than or equal to minimum price", ErrInvalidFilter)
	}
	return nil
}

// Package pagination normalizes raw page/size/sort request parameters into a
// canonical page descriptor and validates optional price range filters.
package pagination

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultPage is the page index used when the caller does not specify one.
	DefaultPage = 0
	// DefaultSize is the page size used when the caller does not specify one.
	DefaultSize = 10
	// MaxSize is the largest page size a caller may request.
	MaxSize = 100
)

var (
	ErrInvalidPage      = errors.New("page index must be greater than or equal to 0")
	ErrInvalidPageSize  = errors.New("page size must be between 1 and 100")
	ErrInvalidSortField = errors.New("invalid sort field")
)

// SortFields is the whitelist of fields a request may sort by. It is injected
// into the normalizer rather than hardcoded so callers can vary it.
type SortFields map[string]struct{}

// NewSortFields builds a whitelist from the given field names.
func NewSortFields(fields ...string) SortFields {
	s := make(SortFields, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

// Contains reports whether field is in the whitelist.
func (s SortFields) Contains(field string) bool {
	_, ok := s[field]
	return ok
}

// ProductSortFields lists the fields product listings may sort by.
func ProductSortFields() SortFields {
	return NewSortFields("id", "name", "price", "createdAt", "updatedAt", "owner.name", "owner.email")
}

// Order is a single sort key. Ties on earlier keys are broken by later ones.
type Order struct {
	Field string
	Desc  bool
}

// PageRequest is a validated pagination and ordering descriptor.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// NewPageRequest validates raw pagination parameters and sort tokens against
// the given whitelist.
//
// Sort tokens are either "field,direction" strings, or the two-element
// positional form ["field", "direction"] where the first token carries no
// comma and the second is a direction word. Direction is case-insensitive;
// anything other than "desc" sorts ascending. An empty token list defaults
// to ascending by id.
func NewPageRequest(page, size int, sort []string, fields SortFields) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, ErrInvalidPage
	}
	if size < 1 || size > MaxSize {
		return PageRequest{}, ErrInvalidPageSize
	}

	orders, err := parseSort(sort, fields)
	if err != nil {
		return PageRequest{}, err
	}

	return PageRequest{Page: page, Size: size, Sort: orders}, nil
}

// Offset returns the row offset for the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Limit returns the requested page size.
func (p PageRequest) Limit() int {
	return p.Size
}

// TotalPages computes the page count for a given total item count.
func (p PageRequest) TotalPages(totalItems int) int {
	if totalItems == 0 {
		return 0
	}
	return (totalItems + p.Size - 1) / p.Size
}

func parseSort(sort []string, fields SortFields) ([]Order, error) {
	if len(sort) == 0 {
		return []Order{{Field: "id"}}, nil
	}

	// Positional form: ["price", "desc"] is one key, not two.
	if len(sort) == 2 && !strings.Contains(sort[0], ",") && isDirection(sort[1]) {
		if !fields.Contains(sort[0]) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSortField, sort[0])
		}
		return []Order{{Field: sort[0], Desc: isDesc(sort[1])}}, nil
	}

	orders := make([]Order, 0, len(sort))
	for _, token := range sort {
		parts := strings.Split(token, ",")
		field := parts[0]
		direction := "asc"
		if len(parts) > 1 {
			direction = parts[1]
		}

		if !fields.Contains(field) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSortField, field)
		}

		orders = append(orders, Order{Field: field, Desc: isDesc(direction)})
	}

	return orders, nil
}

func isDirection(s string) bool {
	return strings.EqualFold(s, "asc") || strings.EqualFold(s, "desc")
}

func isDesc(s string) bool {
	return strings.EqualFold(s, "desc")
}

package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Nayelic98/backend-spring-01/internal/pagination"
	"github.com/Nayelic98/backend-spring-01/internal/service"
)

// parsePageParams extracts page, size and the raw sort tokens from the query
// string, applying the documented defaults (page=0, size=10, sort=id,asc via
// the normalizer's default).
func parsePageParams(r *http.Request) (page, size int, sort []string, err error) {
	query := r.URL.Query()

	page = pagination.DefaultPage
	if raw := query.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("invalid page parameter: %q", raw)
		}
	}

	size = pagination.DefaultSize
	if raw := query.Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("invalid size parameter: %q", raw)
		}
	}

	return page, size, query["sort"], nil
}

// parseProductFilters extracts the optional search constraints from the
// query string. Absent parameters impose no constraint.
func parseProductFilters(query url.Values) (service.ProductFilters, error) {
	filters := service.ProductFilters{}

	if raw := query.Get("name"); raw != "" {
		filters.Name = &raw
	}

	minPrice, err := parseOptionalFloat(query, "minPrice")
	if err != nil {
		return filters, err
	}
	filters.MinPrice = minPrice

	maxPrice, err := parseOptionalFloat(query, "maxPrice")
	if err != nil {
		return filters, err
	}
	filters.MaxPrice = maxPrice

	categoryID, err := parseOptionalInt64(query, "categoryId")
	if err != nil {
		return filters, err
	}
	filters.CategoryID = categoryID

	return filters, nil
}

func parseOptionalFloat(query url.Values, key string) (*float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter: %q", key, raw)
	}
	return &value, nil
}

func parseOptionalInt64(query url.Values, key string) (*int64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter: %q", key, raw)
	}
	return &value, nil
}

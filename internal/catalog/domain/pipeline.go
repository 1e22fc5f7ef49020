package domain

import (
	"sort"
	"strings"
)

// Sort keys for the storefront display list.
const (
	SortNameAsc    = "name"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating"
	SortNewest     = "newest"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// FilterParams is the current category/price/search/sort selection driving
// the storefront product view. It is a value object replaced wholesale by the
// caller; MaxPrice of zero means no upper bound.
type FilterParams struct {
	Category string `json:"category"`
	MinPrice int64  `json:"min_price" validate:"gte=0"`
	MaxPrice int64  `json:"max_price" validate:"gte=0"`
	Search   string `json:"search"`
	Sort     string `json:"sort" validate:"omitempty,oneof=name price_asc price_desc rating newest"`
}

// Matches reports whether a single product passes the filter. A product is
// retained iff its category matches (or the selection is "all"/empty), its
// price falls within [MinPrice, MaxPrice] inclusive, and the search string is
// empty or a case-insensitive substring of the name, description, or category
// label.
func (p FilterParams) Matches(product Product) bool {
	if p.Category != "" && p.Category != CategoryAll && product.Category != p.Category {
		return false
	}
	if product.Price < p.MinPrice {
		return false
	}
	if p.MaxPrice > 0 && product.Price > p.MaxPrice {
		return false
	}
	if p.Search != "" {
		q := strings.ToLower(p.Search)
		if !strings.Contains(strings.ToLower(product.Name), q) &&
			!strings.Contains(strings.ToLower(product.Description), q) &&
			!strings.Contains(strings.ToLower(product.Category), q) {
			return false
		}
	}
	return true
}

// DisplayList derives the ordered list to render from the full candidate list
// and the current filter params. It is a pure function: neither input is
// mutated, and the sort is stable so ties keep their input order across
// recomputes. It is re-run wholesale on every parameter or source change;
// there is no incremental patching or memoization.
func DisplayList(products []Product, params FilterParams) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if params.Matches(p) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch params.Sort {
		case SortPriceAsc:
			return a.Price < b.Price
		case SortPriceDesc:
			return a.Price > b.Price
		case SortRatingDesc:
			return a.Rating > b.Rating
		case SortNewest:
			return a.CreatedAt.After(b.CreatedAt)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})

	return out
}

// Package catalog implements the pure, in-memory query model for the product
// catalog: conjunctive term/category/price filtering, stable sorting and
// optional pagination. It never mutates its input and never errors on
// malformed queries; bad input degrades to an empty result or a default sort.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"printshop/internal/domain"
)

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortRating    SortKey = "rating"
)

// ParseSortKey maps a raw value to a SortKey, falling back to SortName for
// anything unknown.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortName, SortPriceAsc, SortPriceDesc, SortRating:
		return SortKey(s)
	}
	return SortName
}

// Query describes one catalog view. The zero value matches everything and
// sorts by name: an empty Term matches all products, an empty Category is
// treated like domain.CategoryAll, and MaxPrice == 0 means "no upper bound".
type Query struct {
	Term     string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     SortKey
	Page     int // 1-indexed; 0 disables pagination
	PageSize int
}

// Apply returns the products matching q, ordered by q.Sort, as a fresh slice.
// Filtering is conjunctive across term, category and price bounds. Sorting is
// stable: products with equal keys keep their input order. Inverted price
// bounds or an out-of-range page yield an empty result, never an error.
func Apply(products []domain.Product, q Query) []domain.Product {
	if len(products) == 0 {
		return nil
	}
	if q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return nil
	}

	term := strings.ToLower(strings.TrimSpace(q.Term))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matchTerm(p, term) || !matchCategory(p, q.Category) || !matchPrice(p, q) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)

	if q.Page > 0 && q.PageSize > 0 {
		out = page(out, q.Page, q.PageSize)
	}
	return out
}

func matchTerm(p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

func matchCategory(p domain.Product, category string) bool {
	if category == "" || category == domain.CategoryAll {
		return true
	}
	return p.Category == category
}

func matchPrice(p domain.Product, q Query) bool {
	if p.Price < q.MinPrice {
		return false
	}
	if q.MaxPrice > 0 && p.Price > q.MaxPrice {
		return false
	}
	return true
}

func sortProducts(ps []domain.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	case SortRating:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Rating > ps[j].Rating })
	default: // SortName and anything unrecognized
		// a Collator is not safe for concurrent use, so build one per sort
		col := collate.New(language.English, collate.Loose)
		sort.SliceStable(ps, func(i, j int) bool {
			return col.CompareString(ps[i].Name, ps[j].Name) < 0
		})
	}
}

func page(ps []domain.Product, page, size int) []domain.Product {
	start := (page - 1) * size
	if start >= len(ps) {
		return nil
	}
	end := start + size
	if end > len(ps) {
		end = len(ps)
	}
	return ps[start:end]
}

// Package query turns listing parameters into a deterministic gorm filter.
package query

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const DefaultLimit = 10

// Params is the parsed form of {page, limit, search, category}.
// Category is 0 when absent or unusable.
type Params struct {
	Page     int
	Limit    int
	Search   string
	Category uint
}

// Parse coerces raw query values. Junk and missing values fall back to
// defaults, they never error. A category that is not a positive integer is
// treated as absent rather than handed to the database, where a non-numeric
// id comparison would fail outright on postgres.
func Parse(page, limit, search, category string) Params {
	p := Params{Page: 1, Limit: DefaultLimit, Search: search}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if n, err := strconv.Atoi(category); err == nil && n > 0 {
		p.Category = uint(n)
	}
	return p
}

// Filter applies the search and category predicates, combined with AND.
// Search is a case-insensitive substring match over title or content.
// LOWER/LIKE rather than ILIKE so the same predicate runs on postgres and
// sqlite.
func (p Params) Filter(tx *gorm.DB) *gorm.DB {
	if p.Search != "" {
		pattern := "%" + strings.ToLower(p.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}
	if p.Category != 0 {
		tx = tx.Where("category_id = ?", p.Category)
	}
	return tx
}

// Paginate orders newest first and applies offset/limit. The id tiebreak
// keeps the order total so a static dataset never shows one row on two
// pages.
func (p Params) Paginate(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at DESC, id DESC").
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit)
}

// TotalPages computes the page count for a full matching-set count.
func (p Params) TotalPages(total int64) int {
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

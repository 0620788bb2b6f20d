// Package repository provides gorm-backed data access for the catalog and
// account entities. Mutating operations publish lifecycle events on the
// application event bus after the write committed; the cache invalidator
// subscribes to those topics.
package repository

import (
	"strings"

	"gorm.io/gorm"
)

// ListQuery is a validated, default-substituted list request.
type ListQuery struct {
	Search      string
	ProductType string
	Page        int
	PerPage     int
	SortBy      string
	SortOrder   string
}

// Offset returns the row offset of the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// applySort orders by an allow-listed column, falling back to created_at.
// Column allow-listing happens at validation time too; this is the final
// barrier against arbitrary-field injection.
func applySort(db *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return db.Order(sortBy + " " + sortOrder)
}

// searchPattern builds a case-insensitive LIKE pattern.
func searchPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

package repository

import (
	"strings"

	"github.com/sangkips/galleauto-billing/pkg/pagination"
	"gorm.io/gorm"
)

// paginate applies the page window to a query.
func paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// containsFold matches rows whose column holds term, ignoring case.
// A blank term leaves the query unfiltered.
func containsFold(column, term string) func(db *gorm.DB) *gorm.DB {
	term = strings.TrimSpace(term)
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		return db.Where("LOWER("+column+") LIKE ?", "%"+escapeLike(strings.ToLower(term))+"%")
	}
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

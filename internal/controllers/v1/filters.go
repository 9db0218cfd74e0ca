package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// likeFilter adds a substring match for a single column. When the
// parameter is set but empty, it matches the empty string exactly so
// that "give me resources without a title" queries work.
func likeFilter(query *gorm.DB, setFields []string, field, column, value string) *gorm.DB {
	if value != "" {
		return query.Where(fmt.Sprintf("%s LIKE ?", column), fmt.Sprintf("%%%s%%", value))
	}

	if slices.Contains(setFields, field) {
		return query.Where(fmt.Sprintf("%s = ''", column))
	}

	return query
}

// searchFilter matches the search string as case-insensitive substring
// against any of the given columns.
//
// sqlite's LIKE is case-insensitive for ASCII by default; for other
// databases the explicit LOWER comparison keeps the behavior identical.
func searchFilter(db, query *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" {
		return query
	}

	needle := fmt.Sprintf("%%%s%%", search)

	var condition *gorm.DB
	for _, column := range columns {
		clause := db.Where(fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", column), needle)
		if condition == nil {
			condition = clause
			continue
		}
		condition = condition.Or(clause)
	}

	return query.Where(condition)
}

package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// allowed ordering columns; anything else falls back to created_at to keep
// user input out of the ORDER BY clause
var orderableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"code":       true,
	"number":     true,
	"entry_date": true,
	"email":      true,
}

// applyPagination applies the filter's page window and ordering
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	column := filter.OrderBy
	if !orderableColumns[column] {
		column = "created_at"
	}
	direction := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		direction = "DESC"
	}
	return query.
		Order(column + " " + direction).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}

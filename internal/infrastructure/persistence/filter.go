package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/finops/backend/internal/domain/shared"
)

// applyFilter applies ordering and pagination from a shared.Filter.
// Order column names are restricted to a known set to avoid SQL injection
// through client-supplied ordering.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if !allowedOrderColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if filter.OrderDir == "asc" {
		orderDir = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

var allowedOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"code":       true,
	"due_date":   true,
	"amount":     true,
	"paid_at":    true,
}

package repos

import (
	"strings"

	"gorm.io/gorm"
)

// ListParams carries pass-through list options from the query string.
// Sort is a field name, prefixed with '-' for descending order.
type ListParams struct {
	Skip  int
	Limit int
	Sort  string
}

func applyListParams(tx *gorm.DB, p ListParams, sortable map[string]string) *gorm.DB {
	if p.Skip > 0 {
		tx = tx.Offset(p.Skip)
	}
	if p.Limit > 0 {
		tx = tx.Limit(p.Limit)
	}
	if p.Sort != "" {
		field := p.Sort
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			dir = "DESC"
		}
		if col, ok := sortable[field]; ok {
			tx = tx.Order(col + " " + dir)
		}
	}
	return tx
}

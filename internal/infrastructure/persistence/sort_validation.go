package persistence

import (
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// PartnerSortFields contains allowed sort fields for partners
var PartnerSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"code":        true,
	"name":        true,
	"debt_amount": true,
}

// ItemSortFields contains allowed sort fields for materials and products
var ItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"order_date":     true,
	"final_amount":   true,
	"paid_amount":    true,
	"status":         true,
	"payment_status": true,
}

// DebtRecordSortFields contains allowed sort fields for debt records
var DebtRecordSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"original_amount":  true,
	"remaining_amount": true,
	"status":           true,
}

// BankAccountSortFields contains allowed sort fields for bank accounts
var BankAccountSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"account_number": true,
	"bank_name":      true,
	"balance":        true,
}

// WarehouseSortFields contains allowed sort fields for warehouses
var WarehouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"type":       true,
}

// InventoryTransactionSortFields contains allowed sort fields for inventory transactions
var InventoryTransactionSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"code":        true,
	"type":        true,
	"status":      true,
	"approved_at": true,
}

// ProductionOrderSortFields contains allowed sort fields for production orders
var ProductionOrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"current_step": true,
	"status":       true,
}

// applyPaging orders and pages query with a whitelisted sort field.
// The id tiebreaker keeps pages stable when the sort column has duplicates.
func applyPaging(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	order := ValidateSortOrder(filter.OrderDir)
	return query.
		Order(field + " " + order).
		Order("id " + order).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

// searchTerm returns the trimmed "search" filter value, if any
func searchTerm(filter shared.Filter) string {
	if filter.Filters == nil {
		return ""
	}
	s, _ := filter.Filters["search"].(string)
	return strings.TrimSpace(s)
}

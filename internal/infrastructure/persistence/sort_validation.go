package persistence

import (
	"strings"
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

// RequirementSortFields contains allowed sort fields for sourcing requirements
var RequirementSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"category":          true,
	"status":            true,
	"bid_count":         true,
	"bid_deadline":      true,
	"delivery_deadline": true,
}

// BidSortFields contains allowed sort fields for bids
var BidSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"price":      true,
	"status":     true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"status":             true,
	"current_phase":      true,
	"total_value":        true,
	"estimated_delivery": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"company_name":  true,
	"country":       true,
	"status":        true,
	"last_login_at": true,
}

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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"title":             true,
	"date_paid":         true,
	"original_currency": true,
	"original_amount":   true,
	"reporting_amount":  true,
	"status":            true,
}

// IncomeSortFields contains allowed sort fields for incomes
var IncomeSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"title":             true,
	"date_received":     true,
	"original_currency": true,
	"original_amount":   true,
	"reporting_amount":  true,
	"status":            true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"title":       true,
	"customer_id": true,
	"currency":    true,
	"amount":      true,
	"date_issued": true,
	"due_date":    true,
	"date_sent":   true,
	"date_paid":   true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// DocumentSortFields contains allowed sort fields for documents
var DocumentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"file_name":    true,
	"content_type": true,
	"size_bytes":   true,
}

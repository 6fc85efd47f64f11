package utils

import (
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// StringPtr returns nil for an empty string.
func StringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// CalculateTotalPages rounds up; zero items or a non-positive page size give zero pages.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// CalculateOffset converts a 1-based page into a row offset.
func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	return (page - 1) * perPage
}

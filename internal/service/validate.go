// Package service contains the business-rule layer: it validates input the
// way the API contract demands and delegates persistence to the
// repositories. Services know nothing about HTTP.
package service

import (
	"regexp"
	"time"

	"github.com/markwat1/feeding/internal/apperror"
)

const (
	// MaxNotesLength bounds the free-text notes on feeding records.
	MaxNotesLength = 500

	// MinWeight and MaxWeight bound a weigh-in in kilograms.
	MinWeight = 0.01
	MaxWeight = 999.99

	// DefaultRecentDays is the window for "recent maintenance" queries
	// when the caller does not supply one.
	DefaultRecentDays = 7

	dateLayout = "2006-01-02"
)

// timePattern matches 24-hour HH:MM schedule times.
var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// datetimeLayouts are the ISO-8601 shapes accepted for instants.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	dateLayout,
}

func isDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func isDateTime(s string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// validateDateRange checks optional YYYY-MM-DD range bounds. Either bound
// may be empty; a non-empty bound must parse.
func validateDateRange(startDate, endDate string) error {
	if startDate != "" && !isDate(startDate) {
		return apperror.ValidationFailed("startDate", "start date must be a valid YYYY-MM-DD date")
	}
	if endDate != "" && !isDate(endDate) {
		return apperror.ValidationFailed("endDate", "end date must be a valid YYYY-MM-DD date")
	}
	return nil
}

// requireDateRange checks mandatory range bounds for statistics queries.
func requireDateRange(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return apperror.ValidationFailed("dateRange", "both startDate and endDate are required for statistics")
	}
	return validateDateRange(startDate, endDate)
}

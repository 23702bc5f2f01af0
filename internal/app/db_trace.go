package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var whitespaceRun = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens a statement onto one line and caps its
// length so span attributes stay readable for multi-line upsert SQL.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flattened := whitespaceRun.ReplaceAllString(query, " ")
	if len(flattened) <= maxTracedQueryLength {
		return flattened
	}

	return flattened[:maxTracedQueryLength] + "..."
}

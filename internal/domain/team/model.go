package team

import "strings"

// Team is a side identified by its unique display name. Rows are created
// lazily on first reference and never modified by the pipeline.
type Team struct {
	ID   int64
	Name string
}

// NormalizeName trims the natural key. An empty result means the slot is
// skipped upstream, not an error.
func NormalizeName(value string) string {
	return strings.TrimSpace(value)
}

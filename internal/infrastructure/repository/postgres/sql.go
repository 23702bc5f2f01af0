package postgres

import (
	"database/sql"
	"strconv"
	"strings"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

func nullableInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullableInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func nullStringToPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	out := int(value.Int64)
	return &out
}

// formatOversLiteral restores the single ball digit for whole-over values the
// driver hands back without a fractional part.
func formatOversLiteral(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if _, err := strconv.Atoi(value); err == nil {
		return value + ".0"
	}
	return value
}

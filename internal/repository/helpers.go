package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// Timestamps are stored as UTC RFC 3339 text so they sort lexically.
const storedTimeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// formatNullableTime maps a nil time to SQL NULL.
func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseColumnTime(column, s string) (time.Time, error) {
	t, err := time.Parse(storedTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// parseNullableTime treats NULL, empty and unparseable values as unset.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(storedTimeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// requireAffected turns a write that matched no row into ErrNotFound.
func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}

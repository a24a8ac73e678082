package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayouts are the accepted input formats for case and record times, most
// specific first.
var TimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime reads s in the first matching layout of TimeLayouts. Values
// without a zone are read in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range TimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected RFC3339, \"YYYY-MM-DD HH:MM\" or YYYY-MM-DD)", s)
}

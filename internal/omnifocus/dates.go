package omnifocus

import (
	"fmt"
	"time"
)

// Date layouts accepted by ParseDate, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate parses a user-supplied date string. Full RFC3339 timestamps and
// the day and minute shorthands are accepted; shorthands are interpreted in
// local time, matching what OmniFocus does for dates typed into its UI.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want RFC3339, 2006-01-02T15:04, 2006-01-02 15:04, or 2006-01-02)", s)
}

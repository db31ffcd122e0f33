package mapper

import (
	"fmt"
	"time"
)

// TimestampLayout is the stored form of every timestamp: UTC with a fixed
// six-digit fraction, so string order matches time order in index sort keys.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Layouts accepted when reading. Records written by other clients may carry
// an explicit offset, a variable fraction, or no zone at all (read as UTC).
var readLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Microsecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

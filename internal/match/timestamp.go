package match

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidFormat is returned when a boundary timestamp is not valid RFC-3339.
	ErrInvalidFormat = errors.New("invalid ISO-8601 timestamp format")

	// ErrBeforeEpoch is returned together with ErrInvalidFormat for instants
	// that precede 1970-01-01T00:00:00Z and have no unsigned millisecond value.
	ErrBeforeEpoch = errors.New("timestamp is before the Unix epoch")
)

// millisLayout is RFC-3339 with exactly millisecond precision.
const millisLayout = "2006-01-02T15:04:05.000Z07:00"

// ParseISO8601ToUnixMillis parses an RFC-3339 timestamp carrying a zone
// designator and returns milliseconds since the Unix epoch.
func ParseISO8601ToUnixMillis(text string) (uint64, error) {
	s := strings.TrimSpace(text)
	// "2024-11-17 15:45:00Z" is accepted as well as the T separator.
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}

	ms := t.UnixMilli()
	if ms < 0 {
		return 0, fmt.Errorf("%w: %w: %q", ErrInvalidFormat, ErrBeforeEpoch, text)
	}
	return uint64(ms), nil
}

// FormatUnixMillis renders ms as an RFC-3339 UTC timestamp with millisecond precision.
// Values beyond the int64 range are returned as plain decimal.
func FormatUnixMillis(ms uint64) string {
	if ms > math.MaxInt64 {
		return strconv.FormatUint(ms, 10)
	}
	return time.UnixMilli(int64(ms)).UTC().Format(millisLayout)
}

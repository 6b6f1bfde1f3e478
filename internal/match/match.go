// Package match decides whether a file name belongs to a type tag and a time range.
//
// File names are expected to look like <prefix>.<timestamp>.<suffix...>, where
// the second period-delimited token is a decimal Unix millisecond timestamp.
package match

import (
	"strconv"
	"strings"
)

// TimeRange is an inclusive range of Unix millisecond timestamps.
// Start <= End is not enforced here.
type TimeRange struct {
	Start uint64
	End   uint64
}

// Contains reports whether ts lies within the range, both ends included.
func (r TimeRange) Contains(ts uint64) bool {
	return ts >= r.Start && ts <= r.End
}

// Matches reports whether name contains tag and carries a timestamp token inside r.
// Names without a parsable timestamp token never match.
func Matches(name, tag string, r TimeRange) bool {
	if !strings.Contains(name, tag) {
		return false
	}
	ts, ok := TimestampOf(name)
	if !ok {
		return false
	}
	return r.Contains(ts)
}

// TimestampOf extracts the timestamp token (index 1 after splitting on '.')
// and parses it as a base-10 uint64.
func TimestampOf(name string) (uint64, bool) {
	tokens := strings.Split(name, ".")
	if len(tokens) < 2 {
		return 0, false
	}
	ts, err := strconv.ParseUint(tokens[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

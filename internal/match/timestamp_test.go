package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO8601ToUnixMillis(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{in: "2024-11-17T15:45:00Z", want: 1731858300000},
		{in: "2024-11-17T16:45:00Z", want: 1731861900000},
		{in: "2024-11-17T17:45:00.123+02:00", want: 1731858300123},
		{in: "2024-11-17 15:45:00Z", want: 1731858300000},
		{in: "  2023-11-14T22:13:20Z\n", want: 1700000000000},
		{in: "1970-01-01T00:00:00Z", want: 0},
		{in: "1970-01-01T00:00:00.999999Z", want: 999},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseISO8601ToUnixMillis(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseISO8601ToUnixMillisInvalid(t *testing.T) {
	inputs := []string{
		"not-a-date",
		"",
		"2024-11-17",
		"2024-11-17T15:45:00",
		"2024-02-30T00:00:00Z",
		"2024-11-17T25:00:00Z",
		"1731858300000",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseISO8601ToUnixMillis(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFormat)
			assert.NotErrorIs(t, err, ErrBeforeEpoch)
		})
	}
}

func TestParseISO8601ToUnixMillisBeforeEpoch(t *testing.T) {
	_, err := ParseISO8601ToUnixMillis("1969-12-31T23:59:59Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.ErrorIs(t, err, ErrBeforeEpoch)
}

func TestParseISO8601RoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Unix(0, 0),
		time.Date(2024, 11, 17, 15, 45, 0, 0, time.UTC),
		time.Date(2000, 2, 29, 23, 59, 59, 999_000_000, time.UTC),
		time.Date(2038, 1, 19, 3, 14, 8, 1_000_000, time.FixedZone("x", -7*3600)),
	}

	for _, d := range instants {
		want := uint64(d.UnixMilli())

		got, err := ParseISO8601ToUnixMillis(d.Format(time.RFC3339Nano))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		got, err = ParseISO8601ToUnixMillis(FormatUnixMillis(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFormatUnixMillis(t *testing.T) {
	assert.Equal(t, "2024-11-17T15:45:00.000Z", FormatUnixMillis(1731858300000))
	assert.Equal(t, "18446744073709551615", FormatUnixMillis(^uint64(0)))
}

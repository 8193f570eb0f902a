package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalTime_StripsOffsets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain local time", input: "2025-03-14T10:00:00", want: "2025-03-14T10:00:00"},
		{name: "utc suffix stripped literally", input: "2025-03-14T10:00:00Z", want: "2025-03-14T10:00:00"},
		{name: "positive offset stripped literally", input: "2025-03-14T10:00:00+02:00", want: "2025-03-14T10:00:00"},
		{name: "negative offset stripped literally", input: "2025-03-14T10:00:00-07:00", want: "2025-03-14T10:00:00"},
		{name: "minutes precision", input: "2025-03-14T10:00", want: "2025-03-14T10:00:00"},
		{name: "surrounding whitespace", input: "  2025-03-14T10:00:00  ", want: "2025-03-14T10:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lt, err := ParseLocalTime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lt.String())
		})
	}
}

func TestParseLocalTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "garbage", "2025-03-14", "10:00:00"} {
		_, err := ParseLocalTime(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestLocalTime_Between_Inclusive(t *testing.T) {
	start := MustParseLocalTime("2025-03-14T09:00:00")
	end := MustParseLocalTime("2025-03-14T17:00:00")

	assert.True(t, start.Between(start, end))
	assert.True(t, end.Between(start, end))
	assert.True(t, MustParseLocalTime("2025-03-14T12:00:00").Between(start, end))
	assert.False(t, MustParseLocalTime("2025-03-14T08:59:59").Between(start, end))
	assert.False(t, MustParseLocalTime("2025-03-14T17:00:01").Between(start, end))
}

func TestLocalTime_AtHour(t *testing.T) {
	lt := MustParseLocalTime("2025-03-14T22:30:00")
	assert.Equal(t, "2025-03-14T10:00:00", lt.AtHour(10).String())
}

func TestLocalTime_JSONRoundTrip(t *testing.T) {
	type payload struct {
		Slot LocalTime `json:"slot"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"slot":"2025-03-14T10:00:00Z"}`), &p))
	assert.Equal(t, "2025-03-14T10:00:00", p.Slot.String())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"slot":"2025-03-14T10:00:00"}`, string(out))
}

func TestLocalTime_Comparisons(t *testing.T) {
	earlier := MustParseLocalTime("2025-03-14T10:00:00")
	later := MustParseLocalTime("2025-03-14T11:00:00")

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.Equal(t, time.Hour, later.Sub(earlier))
	assert.True(t, earlier.Equal(earlier.Add(0)))
}

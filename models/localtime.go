package models

import (
	"fmt"
	"strings"
	"time"
)

// LocalTime is a wall-clock timestamp with no timezone attached. Every slot
// and intent timestamp crossing this system's boundary is a local-time string
// such as "2025-03-14T10:00:00"; an offset or "Z" suffix on input is stripped
// and the numeric fields are taken literally. Two LocalTimes compare as plain
// wall-clock instants.
type LocalTime struct {
	t time.Time
}

const (
	localTimeLayout      = "2006-01-02T15:04:05"
	localTimeShortLayout = "2006-01-02T15:04"
)

// ParseLocalTime parses a local-time string, dropping any trailing UTC "Z" or
// ±hh:mm offset without applying timezone arithmetic.
func ParseLocalTime(s string) (LocalTime, error) {
	raw := stripOffset(strings.TrimSpace(s))
	for _, layout := range []string{localTimeLayout, localTimeShortLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return LocalTime{t: t}, nil
		}
	}
	return LocalTime{}, fmt.Errorf("invalid local-time value %q", s)
}

// MustParseLocalTime is ParseLocalTime for literals; it panics on bad input.
func MustParseLocalTime(s string) LocalTime {
	lt, err := ParseLocalTime(s)
	if err != nil {
		panic(err)
	}
	return lt
}

// stripOffset removes a trailing "Z" or ±hh:mm suffix from the time portion.
// The date portion contains '-' separators, so only characters after the 'T'
// are inspected.
func stripOffset(s string) string {
	s = strings.TrimSuffix(s, "Z")
	ti := strings.IndexByte(s, 'T')
	if ti < 0 {
		return s
	}
	if i := strings.IndexAny(s[ti+1:], "+-"); i >= 0 {
		s = s[:ti+1+i]
	}
	return s
}

func (lt LocalTime) IsZero() bool { return lt.t.IsZero() }

func (lt LocalTime) Hour() int { return lt.t.Hour() }

func (lt LocalTime) Before(o LocalTime) bool { return lt.t.Before(o.t) }

func (lt LocalTime) After(o LocalTime) bool { return lt.t.After(o.t) }

func (lt LocalTime) Equal(o LocalTime) bool { return lt.t.Equal(o.t) }

func (lt LocalTime) Sub(o LocalTime) time.Duration { return lt.t.Sub(o.t) }

// Add returns the local time shifted by d.
func (lt LocalTime) Add(d time.Duration) LocalTime {
	return LocalTime{t: lt.t.Add(d)}
}

// AtHour returns the same calendar day at the given hour, minutes zeroed.
func (lt LocalTime) AtHour(hour int) LocalTime {
	y, m, d := lt.t.Date()
	return LocalTime{t: time.Date(y, m, d, hour, 0, 0, 0, time.UTC)}
}

// Between reports whether lt falls inside [start, end] inclusive.
func (lt LocalTime) Between(start, end LocalTime) bool {
	return !lt.t.Before(start.t) && !lt.t.After(end.t)
}

// String renders the canonical local-time form with no offset.
func (lt LocalTime) String() string {
	return lt.t.Format(localTimeLayout)
}

// Display renders a human-readable form used in call transcripts.
func (lt LocalTime) Display() string {
	return lt.t.Format("Monday, January 2 at 3:04 PM")
}

func (lt LocalTime) MarshalJSON() ([]byte, error) {
	if lt.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + lt.String() + `"`), nil
}

func (lt *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*lt = LocalTime{}
		return nil
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}

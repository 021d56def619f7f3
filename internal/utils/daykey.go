package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/logger"
)

var dayKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Years a key can spell with four digits.
const (
	minKeyYear = 0
	maxKeyYear = 9999
)

// IsValidKey reports whether s has the YYYY-MM-DD shape. Calendar
// validity is not checked: "2024-02-31" is a valid key.
func IsValidKey(s string) bool {
	return dayKeyPattern.MatchString(s)
}

// ToKey returns the civil day of t in loc. A nil loc means the device
// zone; a zero t means now. Instants outside years 0000-9999 clamp to
// the nearest representable key.
func ToKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	if t.IsZero() {
		t = time.Now()
	}
	t = t.In(loc)
	switch {
	case t.Year() > maxKeyYear:
		return "9999-12-31"
	case t.Year() < minKeyYear:
		return "0000-01-01"
	}
	return t.Format(constants.DateFormat)
}

// ToKeyInZone is ToKey for a named zone. If the zone cannot be loaded
// (missing tzdata, bad name) the device calendar is used instead.
func ToKeyInZone(t time.Time, timezone string) string {
	loc, err := LoadLocation(timezone)
	if err != nil {
		logger.Warn("Falling back to local calendar for day key", "timezone", timezone, "error", err)
		loc = time.Local
	}
	return ToKey(t, loc)
}

// KeyFromValue normalizes a user-supplied day. "" is today, a day key
// is kept as is and an RFC 3339 timestamp is converted in loc.
func KeyFromValue(value string, loc *time.Location) (string, error) {
	if value == "" {
		return ToKey(time.Time{}, loc), nil
	}
	if IsValidKey(value) {
		return value, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", fmt.Errorf("invalid day %q (expected YYYY-MM-DD or an RFC 3339 timestamp)", value)
	}
	return ToKey(t, loc), nil
}

// ParseKey returns midnight of the key's civil day in loc. Out-of-range
// components roll over the way time.Date normalizes them.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	y, m, d, err := keyParts(key)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc), nil
}

// AddDays shifts a key by n civil days. The arithmetic runs at noon UTC
// so DST transitions never skip or repeat a day.
func AddDays(key string, n int) (string, error) {
	y, m, d, err := keyParts(key)
	if err != nil {
		return "", err
	}
	t := time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	if t.Year() < minKeyYear || t.Year() > maxKeyYear {
		return "", fmt.Errorf("day key %q shifted by %d days is out of range", key, n)
	}
	return t.Format(constants.DateFormat), nil
}

// KeysEnding returns n consecutive keys ending at end (inclusive),
// oldest first.
func KeysEnding(end string, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("window length must not be negative, got %d", n)
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		k, err := AddDays(end, i-(n-1))
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

func keyParts(key string) (int, int, int, error) {
	if !IsValidKey(key) {
		return 0, 0, 0, fmt.Errorf("invalid day key %q (expected YYYY-MM-DD)", key)
	}
	y, _ := strconv.Atoi(key[0:4])
	m, _ := strconv.Atoi(key[5:7])
	d, _ := strconv.Atoi(key[8:10])
	return y, m, d, nil
}

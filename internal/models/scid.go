package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ComputeAge returns the number of whole years between birthdate and now,
// one less when the birthday has not yet come this year.
func ComputeAge(birthdate string, now time.Time) (int, error) {
	b, err := ParseDate(birthdate)
	if err != nil {
		return 0, err
	}
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age, nil
}

// FormatSCID renders the human-facing senior code, e.g. SC-2026-007.
func FormatSCID(year, seq int) string {
	return fmt.Sprintf("SC-%d-%03d", year, seq)
}

// SCIDSequence extracts the sequence number from a code produced by
// FormatSCID. ok is false for codes in any other shape.
func SCIDSequence(scid string) (seq int, ok bool) {
	parts := strings.Split(scid, "-")
	if len(parts) != 3 || parts[0] != "SC" {
		return 0, false
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

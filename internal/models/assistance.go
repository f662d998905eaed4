package models

import (
	"fmt"
	"strconv"
	"strings"
)

// AssistanceStatus is the outcome recorded for a benefit grant.
type AssistanceStatus string

const (
	StatusReceived AssistanceStatus = "Received"
	StatusPending  AssistanceStatus = "Pending"
	StatusDenied   AssistanceStatus = "Denied"
)

// ParseAssistanceStatus matches s case-insensitively.
func ParseAssistanceStatus(s string) (AssistanceStatus, error) {
	for _, st := range []AssistanceStatus{StatusReceived, StatusPending, StatusDenied} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown assistance status %q", s)
}

// AssistanceTypes is the fixed list of benefit categories.
var AssistanceTypes = []string{
	"Social Pension",
	"Financial Assistance",
	"Medical Mission Goods",
	"Relief Goods / Food Pack",
	"Educational Grant",
	"Other Benefits",
}

// ParseAssistanceType resolves s to a category, either by its 1-based
// position in AssistanceTypes or by case-insensitive name.
func ParseAssistanceType(s string) (string, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(AssistanceTypes) {
			return AssistanceTypes[n-1], nil
		}
		return "", fmt.Errorf("assistance type %d out of range", n)
	}
	for _, t := range AssistanceTypes {
		if strings.EqualFold(s, t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown assistance type %q", s)
}

// AssistanceRecord is one benefit grant. Records are append-only and kept
// newest first in the owning senior's history.
type AssistanceRecord struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Type        string           `json:"type"`
	Status      AssistanceStatus `json:"status"`
	Description string           `json:"description"`
	EncodedBy   string           `json:"encodedBy"`
}

// OnDay reports whether the record was granted on the calendar day given as
// YYYY-MM-DD. Date may hold a full timestamp or a bare date.
func (a AssistanceRecord) OnDay(day string) bool {
	return strings.HasPrefix(a.Date, day)
}

package models

import (
	"strings"
	"time"
)

// MedicalInfo is the health profile embedded in a SeniorRecord. It has no
// identity of its own and is always replaced as a whole.
type MedicalInfo struct {
	Conditions  []string  `json:"conditions"`
	Allergies   []string  `json:"allergies"`
	Medications []string  `json:"medications"`
	Limitations string    `json:"limitations"`
	LastUpdated time.Time `json:"lastUpdated"`
	UpdatedBy   string    `json:"updatedBy"`
}

// NewMedicalInfo returns an empty profile stamped with the given user.
func NewMedicalInfo(now time.Time, updatedBy string) MedicalInfo {
	return MedicalInfo{
		Conditions:  []string{},
		Allergies:   []string{},
		Medications: []string{},
		LastUpdated: now,
		UpdatedBy:   updatedBy,
	}
}

// ParseList splits comma-separated text into trimmed, non-empty labels.
// The result is never nil.
func ParseList(text string) []string {
	out := []string{}
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

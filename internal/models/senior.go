// Package models defines the registry's persisted record types.
//
// JSON field names match the layout already written by earlier versions of
// the registry, so existing collections load unchanged.
package models

import (
	"fmt"
	"strings"
)

// Sex is the binary sex recorded on a senior profile.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// ParseSex accepts any casing of "male"/"female" and the short forms "m"/"f".
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	}
	return "", fmt.Errorf("unknown sex %q", s)
}

// CivilStatus is one of the four statuses the registry form offers.
type CivilStatus string

const (
	CivilSingle    CivilStatus = "Single"
	CivilMarried   CivilStatus = "Married"
	CivilWidowed   CivilStatus = "Widowed"
	CivilSeparated CivilStatus = "Separated"
)

var civilStatuses = []CivilStatus{CivilSingle, CivilMarried, CivilWidowed, CivilSeparated}

// ParseCivilStatus matches s case-insensitively against the known statuses.
func ParseCivilStatus(s string) (CivilStatus, error) {
	for _, cs := range civilStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(cs)) {
			return cs, nil
		}
	}
	return "", fmt.Errorf("unknown civil status %q", s)
}

// Puroks lists the neighbourhood units offered as prompt hints. Other values
// are accepted as free text.
var Puroks = []string{"Purok 1", "Purok 2", "Purok 3", "Purok 4", "Purok 5"}

// EmergencyContact is embedded in a SeniorRecord.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// SeniorRecord is one registered senior citizen. It owns its MedicalInfo and
// its assistance history; nothing else references them.
type SeniorRecord struct {
	ID               string             `json:"id"`
	SCID             string             `json:"scid"`
	FullName         string             `json:"fullName"`
	Birthdate        string             `json:"birthdate"`
	Age              int                `json:"age"`
	Sex              Sex                `json:"sex"`
	Address          string             `json:"address"`
	Purok            string             `json:"purok"`
	CivilStatus      CivilStatus        `json:"civilStatus"`
	Contact          string             `json:"contact"`
	PhotoURL         string             `json:"photoUrl,omitempty"`
	EmergencyContact EmergencyContact   `json:"emergencyContact"`
	MedicalInfo      MedicalInfo        `json:"medicalInfo"`
	Assistance       []AssistanceRecord `json:"assistance"`
	DateRegistered   string             `json:"dateRegistered"`
}

// Matches reports whether term is a case-insensitive substring of the full
// name or the SCID. An empty term matches everything.
func (s SeniorRecord) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.FullName), t) ||
		strings.Contains(strings.ToLower(s.SCID), t)
}

func (s SeniorRecord) String() string {
	return fmt.Sprintf("%s  %-28s %3d  %-6s  %s", s.SCID, s.FullName, s.Age, s.Sex, s.Purok)
}

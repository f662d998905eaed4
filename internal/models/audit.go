package models

import (
	"fmt"
	"strings"
	"time"
)

// Audit actions written by the services.
const (
	ActionLogin        = "Login"
	ActionLogout       = "Logout"
	ActionRegistration = "Registration"
	ActionUpdate       = "Update Record"
	ActionDeletion     = "Deletion"
	ActionHealthUpdate = "Health Update"
	ActionAssistance   = "Assistance Granted"
)

// AuditLogEntry records one state-changing action. Entries are correlated
// with seniors only through the free-text details.
type AuditLogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// Matches reports whether term is a case-insensitive substring of the user
// name, action or details.
func (e AuditLogEntry) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.UserName), t) ||
		strings.Contains(strings.ToLower(e.Action), t) ||
		strings.Contains(strings.ToLower(e.Details), t)
}

func (e AuditLogEntry) String() string {
	return fmt.Sprintf("%s  %-18s %-20s %s", e.Timestamp.Local().Format("2006-01-02 15:04"), e.UserName, e.Action, e.Details)
}

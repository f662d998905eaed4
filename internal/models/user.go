package models

import (
	"fmt"
	"strings"
)

// Role differentiates what a session may see and change.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleStaff        Role = "STAFF"
	RoleHealthWorker Role = "HEALTH_WORKER"
)

// Roles in the order the login screen offers them.
var Roles = []Role{RoleAdmin, RoleStaff, RoleHealthWorker}

// Label is the human name shown when choosing a role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleStaff:
		return "Barangay Staff"
	case RoleHealthWorker:
		return "Health Worker"
	}
	return string(r)
}

// ParseRole accepts the role name in any case, with '-' or ' ' in place of
// '_', or the 1-based position in Roles.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for i, r := range Roles {
		if s == fmt.Sprint(i+1) {
			return r, nil
		}
	}
	norm := strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(s))
	for _, r := range Roles {
		if norm == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// SessionUser is the active operator. It is synthesized from the role at
// every login and is not an account.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	FullName string `json:"fullName"`
}

// NewSessionUser builds the session identity for role: the lowercased role
// as id/username and "<Role> Officer" as display name, e.g. "Staff Officer".
func NewSessionUser(role Role) SessionUser {
	name := string(role)
	lower := strings.ToLower(name)
	display := name
	if len(name) > 0 {
		display = name[:1] + lower[1:]
	}
	return SessionUser{
		ID:       lower,
		Username: lower,
		Role:     role,
		FullName: display + " Officer",
	}
}

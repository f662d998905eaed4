// Package views decides which registry views a role may open and tracks the
// one currently shown.
package views

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

// View names one screen of the registry.
type View string

const (
	Dashboard  View = "DASHBOARD"
	Registry   View = "REGISTRY"
	Medical    View = "MEDICAL"
	Assistance View = "ASSISTANCE"
	Audit      View = "AUDIT"
)

// All lists every view in menu order.
var All = []View{Dashboard, Registry, Medical, Assistance, Audit}

var access = map[View][]models.Role{
	Dashboard:  {models.RoleAdmin, models.RoleStaff, models.RoleHealthWorker},
	Registry:   {models.RoleAdmin, models.RoleStaff},
	Medical:    {models.RoleAdmin, models.RoleHealthWorker},
	Assistance: {models.RoleAdmin, models.RoleStaff},
	Audit:      {models.RoleAdmin},
}

// Title is the heading printed above a view.
func (v View) Title() string {
	switch v {
	case Dashboard:
		return "Dashboard"
	case Registry:
		return "Senior Registry"
	case Medical:
		return "Medical Profiles"
	case Assistance:
		return "Assistance"
	case Audit:
		return "Audit Trail"
	}
	return string(v)
}

// Parse resolves a view by name in any case.
func Parse(s string) (View, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, v := range All {
		if s == string(v) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown view %q", common.ErrorValidation, s)
}

// Allowed reports whether role may open v.
func Allowed(role models.Role, v View) bool {
	for _, r := range access[v] {
		if r == role {
			return true
		}
	}
	return false
}

// Menu returns the views role may open, in menu order.
func Menu(role models.Role) []View {
	out := []View{}
	for _, v := range All {
		if Allowed(role, v) {
			out = append(out, v)
		}
	}
	return out
}

// Router holds the current view for a session. The zero Router shows the
// dashboard.
type Router struct {
	current View
}

func NewRouter() *Router {
	return &Router{current: Dashboard}
}

func (r *Router) Current() View {
	if r.current == "" {
		return Dashboard
	}
	return r.current
}

// Navigate switches to v if role may open it; otherwise the current view is
// kept and common.ErrorForbidden is returned.
func (r *Router) Navigate(role models.Role, v View) error {
	if !Allowed(role, v) {
		return fmt.Errorf("%w: %s cannot open %s", common.ErrorForbidden, role, v)
	}
	r.current = v
	return nil
}

// Reset returns to the dashboard, as after a fresh login.
func (r *Router) Reset() {
	r.current = Dashboard
}

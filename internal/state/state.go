// Package state holds the CLI's view of the registry between commands.
package state

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/mapatag/internal/models"
)

// Source is the store surface State reads from.
type Source interface {
	CurrentUser(ctx context.Context) (*models.SessionUser, error)
	LoadSeniors(ctx context.Context) ([]models.SeniorRecord, error)
	LoadAuditLogs(ctx context.Context) ([]models.AuditLogEntry, error)
}

// State caches the session and both collections. It is only as fresh as the
// last Refresh; mutations go through the services and are followed by a
// Refresh. Screens render from State rather than the store.
type State struct {
	src Source

	Session *models.SessionUser
	Seniors []models.SeniorRecord
	Logs    []models.AuditLogEntry
}

// New returns an empty State that refreshes from src.
func New(src Source) *State {
	return &State{src: src, Seniors: []models.SeniorRecord{}, Logs: []models.AuditLogEntry{}}
}

// Refresh re-reads the session and collections. On error the previous
// values are kept.
func (s *State) Refresh(ctx context.Context) error {
	u, err := s.src.CurrentUser(ctx)
	if err != nil {
		return err
	}
	seniors, err := s.src.LoadSeniors(ctx)
	if err != nil {
		return err
	}
	logs, err := s.src.LoadAuditLogs(ctx)
	if err != nil {
		return err
	}
	s.Session, s.Seniors, s.Logs = u, seniors, logs
	return nil
}

// SetSession records a login or logout that happened since the last
// Refresh. A nil u means logged out.
func (s *State) SetSession(u *models.SessionUser) {
	if u == nil {
		s.Session = nil
		return
	}
	c := *u
	s.Session = &c
}

// LoggedIn reports whether a session is active.
func (s *State) LoggedIn() bool {
	return s.Session != nil
}

// LoadSeniors returns a copy of the cached roster, so read-only services can
// run against the state.
func (s *State) LoadSeniors(ctx context.Context) ([]models.SeniorRecord, error) {
	return slices.Clone(s.Seniors), nil
}

// LoadAuditLogs returns a copy of the cached audit log.
func (s *State) LoadAuditLogs(ctx context.Context) ([]models.AuditLogEntry, error) {
	return slices.Clone(s.Logs), nil
}

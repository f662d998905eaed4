// Package services holds the registry's application services: the login
// gate, senior registry maintenance, medical profiles, assistance grants and
// the read-only dashboard and audit views.
//
// Every mutating operation persists the affected collection in full and then
// records an audit entry attributed to the acting session user. Services
// read the store on each call and keep no cached copy of the collections.
package services

import (
	"context"

	"github.com/dmitrijs2005/mapatag/internal/audit"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

// SeniorReader loads the roster. The store and the CLI's cached state both
// satisfy it.
type SeniorReader interface {
	LoadSeniors(ctx context.Context) ([]models.SeniorRecord, error)
}

// AuditReader loads the audit log, newest first.
type AuditReader interface {
	LoadAuditLogs(ctx context.Context) ([]models.AuditLogEntry, error)
}

// SeniorRepository is the part of the store the registry services need.
type SeniorRepository interface {
	SeniorReader
	ReplaceSeniors(ctx context.Context, seniors []models.SeniorRecord) error
	ReplaceSeniorsWithSequence(ctx context.Context, seniors []models.SeniorRecord, seq int) error
	Sequence(ctx context.Context) (int, error)
}

// SessionRepository persists the active session.
type SessionRepository interface {
	CurrentUser(ctx context.Context) (*models.SessionUser, error)
	SetCurrentUser(ctx context.Context, u models.SessionUser) error
	ClearCurrentUser(ctx context.Context) error
}

// AuditRepository reads and replaces the audit log.
type AuditRepository = audit.Repository

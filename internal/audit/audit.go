// Package audit appends user-attributed entries to the persisted audit log.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mapatag/internal/logging"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

// Repository is the part of the store the audit log needs.
type Repository interface {
	LoadAuditLogs(ctx context.Context) ([]models.AuditLogEntry, error)
	ReplaceAuditLogs(ctx context.Context, logs []models.AuditLogEntry) error
}

// Recorder records one state-changing action performed by actor.
type Recorder interface {
	Record(ctx context.Context, action, details string, actor models.SessionUser) error
}

// Logger is the persisted Recorder. New entries go to the front of the log,
// so the collection is always newest first.
type Logger struct {
	repo  Repository
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// NewLogger constructs a Logger writing to repo. A nil log discards output.
func NewLogger(repo Repository, log logging.Logger) *Logger {
	if log == nil {
		log = logging.Nop()
	}
	return &Logger{
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Record prepends an entry and rewrites the whole log. The entry is lost if
// the write fails; the error is returned to the caller.
func (l *Logger) Record(ctx context.Context, action, details string, actor models.SessionUser) error {
	logs, err := l.repo.LoadAuditLogs(ctx)
	if err != nil {
		return fmt.Errorf("load audit log: %w", err)
	}

	entry := models.AuditLogEntry{
		ID:        l.newID(),
		Timestamp: l.now(),
		UserID:    actor.ID,
		UserName:  actor.FullName,
		Action:    action,
		Details:   details,
	}

	logs = append([]models.AuditLogEntry{entry}, logs...)
	if err := l.repo.ReplaceAuditLogs(ctx, logs); err != nil {
		l.log.Error(ctx, "audit write failed", "action", action, "error", err)
		return fmt.Errorf("save audit log: %w", err)
	}

	l.log.Info(ctx, "audit", "action", action, "user", actor.Username, "details", details)
	return nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mapatag/internal/audit"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

// memStore implements every repository interface in memory.
type memStore struct {
	seniors []models.SeniorRecord
	logs    []models.AuditLogEntry
	user    *models.SessionUser
	seq     int

	loadErr  error
	saveErr  error
	auditErr error
	userErr  error
}

func (m *memStore) LoadSeniors(ctx context.Context) ([]models.SeniorRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]models.SeniorRecord, len(m.seniors))
	copy(out, m.seniors)
	return out, nil
}

func (m *memStore) ReplaceSeniors(ctx context.Context, seniors []models.SeniorRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.seniors = seniors
	return nil
}

func (m *memStore) ReplaceSeniorsWithSequence(ctx context.Context, seniors []models.SeniorRecord, seq int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.seniors = seniors
	m.seq = seq
	return nil
}

func (m *memStore) Sequence(ctx context.Context) (int, error) { return m.seq, nil }

func (m *memStore) LoadAuditLogs(ctx context.Context) ([]models.AuditLogEntry, error) {
	return append([]models.AuditLogEntry{}, m.logs...), nil
}

func (m *memStore) ReplaceAuditLogs(ctx context.Context, logs []models.AuditLogEntry) error {
	if m.auditErr != nil {
		return m.auditErr
	}
	m.logs = logs
	return nil
}

func (m *memStore) CurrentUser(ctx context.Context) (*models.SessionUser, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	return m.user, nil
}

func (m *memStore) SetCurrentUser(ctx context.Context, u models.SessionUser) error {
	if m.userErr != nil {
		return m.userErr
	}
	m.user = &u
	return nil
}

func (m *memStore) ClearCurrentUser(ctx context.Context) error {
	if m.userErr != nil {
		return m.userErr
	}
	m.user = nil
	return nil
}

var fixedNow = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newRecorder(m *memStore) audit.Recorder {
	return audit.NewLogger(m, nil)
}

var (
	admin  = models.NewSessionUser(models.RoleAdmin)
	staff  = models.NewSessionUser(models.RoleStaff)
	health = models.NewSessionUser(models.RoleHealthWorker)
)

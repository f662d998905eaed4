package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/mapatag/internal/models"
)

// AuditService reads the audit log.
type AuditService interface {
	List(ctx context.Context) ([]models.AuditLogEntry, error)
	Search(ctx context.Context, term string) ([]models.AuditLogEntry, error)
}

type auditService struct {
	repo AuditReader
}

// NewAuditService constructs an AuditService reading from repo.
func NewAuditService(repo AuditReader) AuditService {
	return &auditService{repo: repo}
}

// List returns the whole log, newest first.
func (s *auditService) List(ctx context.Context) ([]models.AuditLogEntry, error) {
	return s.repo.LoadAuditLogs(ctx)
}

// Search filters the log by a case-insensitive substring of user name,
// action or details.
func (s *auditService) Search(ctx context.Context, term string) ([]models.AuditLogEntry, error) {
	logs, err := s.repo.LoadAuditLogs(ctx)
	if err != nil {
		return nil, err
	}
	return SearchAuditLogs(logs, term), nil
}

// SearchAuditLogs is the in-memory filter behind AuditService.Search.
func SearchAuditLogs(logs []models.AuditLogEntry, term string) []models.AuditLogEntry {
	term = strings.TrimSpace(term)
	if term == "" {
		return logs
	}
	out := []models.AuditLogEntry{}
	for _, e := range logs {
		if e.Matches(term) {
			out = append(out, e)
		}
	}
	return out
}

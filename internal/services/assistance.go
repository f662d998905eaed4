package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mapatag/internal/audit"
	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

// GrantInput describes one benefit hand-out.
type GrantInput struct {
	Type        string
	Status      models.AssistanceStatus
	Description string
}

type AssistanceService interface {
	Grant(ctx context.Context, id string, in GrantInput, actor models.SessionUser) (models.AssistanceRecord, error)
	History(ctx context.Context, id string) ([]models.AssistanceRecord, error)
}

type assistanceService struct {
	repo  SeniorRepository
	audit audit.Recorder
	now   func() time.Time
	newID func() string
}

// NewAssistanceService constructs an AssistanceService persisting to repo
// and auditing through rec.
func NewAssistanceService(repo SeniorRepository, rec audit.Recorder) AssistanceService {
	return &assistanceService{repo: repo, audit: rec, now: time.Now, newID: uuid.NewString}
}

// Grant prepends a record to the senior's assistance history. Only the
// Received and Pending outcomes can be recorded; Denied exists for data
// written by other tools.
func (s *assistanceService) Grant(ctx context.Context, id string, in GrantInput, actor models.SessionUser) (models.AssistanceRecord, error) {
	typ, err := models.ParseAssistanceType(in.Type)
	if err != nil {
		return models.AssistanceRecord{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if in.Status == "" {
		in.Status = models.StatusReceived
	}
	if in.Status != models.StatusReceived && in.Status != models.StatusPending {
		return models.AssistanceRecord{}, fmt.Errorf("%w: status must be %s or %s", common.ErrorValidation, models.StatusReceived, models.StatusPending)
	}

	seniors, err := s.repo.LoadSeniors(ctx)
	if err != nil {
		return models.AssistanceRecord{}, err
	}
	i := indexByID(seniors, id)
	if i < 0 {
		return models.AssistanceRecord{}, notFound(id)
	}

	rec := models.AssistanceRecord{
		ID:          s.newID(),
		Date:        s.now().UTC().Format(time.RFC3339),
		Type:        typ,
		Status:      in.Status,
		Description: strings.TrimSpace(in.Description),
		EncodedBy:   actor.FullName,
	}
	seniors[i].Assistance = append([]models.AssistanceRecord{rec}, seniors[i].Assistance...)
	if err := s.repo.ReplaceSeniors(ctx, seniors); err != nil {
		return models.AssistanceRecord{}, err
	}

	err = s.audit.Record(ctx, models.ActionAssistance, fmt.Sprintf("Granted %s to: %s", typ, seniors[i].FullName), actor)
	return rec, err
}

// History returns the senior's assistance records, newest first.
func (s *assistanceService) History(ctx context.Context, id string) ([]models.AssistanceRecord, error) {
	seniors, err := s.repo.LoadSeniors(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByID(seniors, id)
	if i < 0 {
		return nil, notFound(id)
	}
	return nonNilAssistance(seniors[i].Assistance), nil
}

func nonNilAssistance(a []models.AssistanceRecord) []models.AssistanceRecord {
	if a == nil {
		return []models.AssistanceRecord{}
	}
	return a
}

func indexByID(seniors []models.SeniorRecord, id string) int {
	for i := range seniors {
		if seniors[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) error {
	return fmt.Errorf("%w: senior %q", common.ErrorNotFound, id)
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/mapatag/internal/audit"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

// MedicalInput is a complete replacement health profile.
type MedicalInput struct {
	Conditions  []string
	Allergies   []string
	Medications []string
	Limitations string
}

type MedicalService interface {
	Update(ctx context.Context, id string, in MedicalInput, actor models.SessionUser) (models.SeniorRecord, error)
}

type medicalService struct {
	repo  SeniorRepository
	audit audit.Recorder
	now   func() time.Time
}

// NewMedicalService constructs a MedicalService persisting to repo and
// auditing through rec.
func NewMedicalService(repo SeniorRepository, rec audit.Recorder) MedicalService {
	return &medicalService{repo: repo, audit: rec, now: time.Now}
}

// Update replaces the senior's MedicalInfo wholesale and stamps it with the
// acting user.
func (s *medicalService) Update(ctx context.Context, id string, in MedicalInput, actor models.SessionUser) (models.SeniorRecord, error) {
	seniors, err := s.repo.LoadSeniors(ctx)
	if err != nil {
		return models.SeniorRecord{}, err
	}
	i := indexByID(seniors, id)
	if i < 0 {
		return models.SeniorRecord{}, notFound(id)
	}

	info := models.NewMedicalInfo(s.now(), actor.FullName)
	info.Conditions = nonNil(in.Conditions)
	info.Allergies = nonNil(in.Allergies)
	info.Medications = nonNil(in.Medications)
	info.Limitations = strings.TrimSpace(in.Limitations)

	seniors[i].MedicalInfo = info
	if err := s.repo.ReplaceSeniors(ctx, seniors); err != nil {
		return models.SeniorRecord{}, err
	}

	err = s.audit.Record(ctx, models.ActionHealthUpdate, "Updated medical profile for: "+seniors[i].FullName, actor)
	return seniors[i], err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

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

// MinimumAge is the youngest age accepted at registration.
const MinimumAge = 60

// SeniorInput carries the editable profile fields of a senior. For Update,
// empty fields leave the stored value unchanged.
type SeniorInput struct {
	FullName         string
	Birthdate        string
	Sex              models.Sex
	Address          string
	Purok            string
	CivilStatus      models.CivilStatus
	Contact          string
	PhotoURL         string
	EmergencyContact models.EmergencyContact
}

// RegistryService maintains the senior roster.
type RegistryService interface {
	Create(ctx context.Context, in SeniorInput, actor models.SessionUser) (models.SeniorRecord, error)
	Update(ctx context.Context, id string, in SeniorInput, actor models.SessionUser) (models.SeniorRecord, error)
	Delete(ctx context.Context, id string, actor models.SessionUser) (models.SeniorRecord, error)
	Search(ctx context.Context, term string) ([]models.SeniorRecord, error)
	Find(ctx context.Context, ref string) (models.SeniorRecord, error)
	SetPhoto(ctx context.Context, id, ref string, actor models.SessionUser) (models.SeniorRecord, error)
	SeedDemoData(ctx context.Context) (bool, error)
}

type registryService struct {
	repo  SeniorRepository
	audit audit.Recorder
	now   func() time.Time
	newID func() string
}

// NewRegistryService constructs a RegistryService persisting to repo and
// auditing through rec.
func NewRegistryService(repo SeniorRepository, rec audit.Recorder) RegistryService {
	return &registryService{repo: repo, audit: rec, now: time.Now, newID: uuid.NewString}
}

// Create registers a new senior. Applicants younger than MinimumAge are
// rejected with common.ErrorUnderage and nothing is written.
func (s *registryService) Create(ctx context.Context, in SeniorInput, actor models.SessionUser) (models.SeniorRecord, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Address = strings.TrimSpace(in.Address)
	if in.FullName == "" {
		return models.SeniorRecord{}, fmt.Errorf("%w: full name is required", common.ErrorValidation)
	}
	if in.Address == "" {
		return models.SeniorRecord{}, fmt.Errorf("%w: address is required", common.ErrorValidation)
	}

	now := s.now()
	age, err := models.ComputeAge(in.Birthdate, now)
	if err != nil {
		return models.SeniorRecord{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if age < MinimumAge {
		return models.SeniorRecord{}, common.ErrorUnderage
	}

	seniors, err := s.repo.LoadSeniors(ctx)
	if err != nil {
		return models.SeniorRecord{}, err
	}
	seq, err := s.nextSequence(ctx, seniors)
	if err != nil {
		return models.SeniorRecord{}, err
	}

	rec := models.SeniorRecord{
		ID:               s.newID(),
		SCID:             models.FormatSCID(now.Year(), seq),
		FullName:         in.FullName,
		Birthdate:        strings.TrimSpace(in.Birthdate),
		Age:              age,
		Sex:              in.Sex,
		Address:          in.Address,
		Purok:            in.Purok,
		CivilStatus:      in.CivilStatus,
		Contact:          strings.TrimSpace(in.Contact),
		PhotoURL:         in.PhotoURL,
		EmergencyContact: in.EmergencyContact,
		MedicalInfo:      models.NewMedicalInfo(now, actor.FullName),
		Assistance:       []models.AssistanceRecord{},
		DateRegistered:   models.FormatDate(now),
	}
	if rec.Sex == "" {
		rec.Sex = models.SexMale
	}
	if rec.Purok == "" {
		rec.Purok = models.Puroks[0]
	}
	if rec.CivilStatus == "" {
		rec.CivilStatus = models.CivilSingle
	}

	seniors = append(seniors, rec)
	if err := s.repo.ReplaceSeniorsWithSequence(ctx, seniors, seq); err != nil {
		return models.SeniorRecord{}, err
	}

	err = s.audit.Record(ctx, models.ActionRegistration, "Registered new senior: "+rec.FullName, actor)
	return rec, err
}

// nextSequence never reuses a code: it is one past both the stored counter
// and the highest sequence present in the roster.
func (s *registryService) nextSequence(ctx context.Context, seniors []models.SeniorRecord) (int, error) {
	seq, err := s.repo.Sequence(ctx)
	if err != nil {
		return 0, err
	}
	for _, r := range seniors {
		if n, ok := models.SCIDSequence(r.SCID); ok && n > seq {
			seq = n
		}
	}
	return seq + 1, nil
}

// Update merges the non-empty fields of in into the record with the given ID
// and recomputes its age. A record whose birthdate cannot be parsed is not
// saved.
func (s *registryService) Update(ctx context.Context, id string, in SeniorInput, actor models.SessionUser) (models.SeniorRecord, error) {
	seniors, i, err := s.load(ctx, id)
	if err != nil {
		return models.SeniorRecord{}, err
	}

	rec := seniors[i]
	if b := strings.TrimSpace(in.Birthdate); b != "" {
		if _, err := models.ParseDate(b); err != nil {
			return models.SeniorRecord{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		rec.Birthdate = b
	}
	mergeString(&rec.FullName, in.FullName)
	mergeString(&rec.Address, in.Address)
	mergeString(&rec.Purok, in.Purok)
	mergeString(&rec.Contact, in.Contact)
	mergeString(&rec.PhotoURL, in.PhotoURL)
	mergeString(&rec.EmergencyContact.Name, in.EmergencyContact.Name)
	mergeString(&rec.EmergencyContact.Relationship, in.EmergencyContact.Relationship)
	mergeString(&rec.EmergencyContact.Phone, in.EmergencyContact.Phone)
	if in.Sex != "" {
		rec.Sex = in.Sex
	}
	if in.CivilStatus != "" {
		rec.CivilStatus = in.CivilStatus
	}
	age, err := models.ComputeAge(rec.Birthdate, s.now())
	if err != nil {
		return models.SeniorRecord{}, fmt.Errorf("%w: birthdate %q: %v", common.ErrorValidation, rec.Birthdate, err)
	}
	rec.Age = age

	seniors[i] = rec
	if err := s.repo.ReplaceSeniors(ctx, seniors); err != nil {
		return models.SeniorRecord{}, err
	}

	err = s.audit.Record(ctx, models.ActionUpdate, "Updated senior record: "+rec.FullName, actor)
	return rec, err
}

func (s *registryService) Delete(ctx context.Context, id string, actor models.SessionUser) (models.SeniorRecord, error) {
	seniors, i, err := s.load(ctx, id)
	if err != nil {
		return models.SeniorRecord{}, err
	}

	rec := seniors[i]
	seniors = append(seniors[:i], seniors[i+1:]...)
	if err := s.repo.ReplaceSeniors(ctx, seniors); err != nil {
		return models.SeniorRecord{}, err
	}

	err = s.audit.Record(ctx, models.ActionDeletion, "Deleted senior record: "+rec.FullName, actor)
	return rec, err
}

// Search returns the seniors whose name or SCID contains term, in stored
// order. An empty term returns everyone.
func (s *registryService) Search(ctx context.Context, term string) ([]models.SeniorRecord, error) {
	seniors, err := s.repo.LoadSeniors(ctx)
	if err != nil {
		return nil, err
	}
	return SearchSeniors(seniors, term), nil
}

// SearchSeniors is the in-memory filter behind Search.
func SearchSeniors(seniors []models.SeniorRecord, term string) []models.SeniorRecord {
	term = strings.TrimSpace(term)
	if term == "" {
		return seniors
	}
	out := []models.SeniorRecord{}
	for _, r := range seniors {
		if r.Matches(term) {
			out = append(out, r)
		}
	}
	return out
}

// Find looks a senior up by ID or, case-insensitively, by SCID.
func (s *registryService) Find(ctx context.Context, ref string) (models.SeniorRecord, error) {
	seniors, err := s.repo.LoadSeniors(ctx)
	if err != nil {
		return models.SeniorRecord{}, err
	}
	return FindSenior(seniors, ref)
}

// FindSenior is Find over an already loaded roster.
func FindSenior(seniors []models.SeniorRecord, ref string) (models.SeniorRecord, error) {
	if i := findSenior(seniors, ref); i >= 0 {
		return seniors[i], nil
	}
	return models.SeniorRecord{}, fmt.Errorf("%w: senior %q", common.ErrorNotFound, ref)
}

func (s *registryService) SetPhoto(ctx context.Context, id, ref string, actor models.SessionUser) (models.SeniorRecord, error) {
	seniors, i, err := s.load(ctx, id)
	if err != nil {
		return models.SeniorRecord{}, err
	}

	seniors[i].PhotoURL = ref
	if err := s.repo.ReplaceSeniors(ctx, seniors); err != nil {
		return models.SeniorRecord{}, err
	}

	err = s.audit.Record(ctx, models.ActionUpdate, "Updated photo for: "+seniors[i].FullName, actor)
	return seniors[i], err
}

// SeedDemoData writes one demo senior when the roster is empty. It reports
// whether anything was written. Seeding is not audited.
func (s *registryService) SeedDemoData(ctx context.Context) (bool, error) {
	seniors, err := s.repo.LoadSeniors(ctx)
	if err != nil {
		return false, err
	}
	if len(seniors) > 0 {
		return false, nil
	}
	demo := DemoSenior(s.now())
	seq, _ := models.SCIDSequence(demo.SCID)
	if err := s.repo.ReplaceSeniorsWithSequence(ctx, []models.SeniorRecord{demo}, seq); err != nil {
		return false, err
	}
	return true, nil
}

// DemoSenior is the record written by SeedDemoData.
func DemoSenior(now time.Time) models.SeniorRecord {
	return models.SeniorRecord{
		ID:          "1",
		SCID:        "SC-2024-001",
		FullName:    "Juan Dela Cruz",
		Birthdate:   "1955-05-15",
		Age:         69,
		Sex:         models.SexMale,
		Address:     "Purok 1, Mapatag",
		Purok:       "Purok 1",
		CivilStatus: models.CivilMarried,
		Contact:     "09123456789",
		EmergencyContact: models.EmergencyContact{
			Name:         "Maria Dela Cruz",
			Relationship: "Spouse",
			Phone:        "09987654321",
		},
		MedicalInfo: models.MedicalInfo{
			Conditions:  []string{"Hypertension"},
			Allergies:   []string{"Penicillin"},
			Medications: []string{"Amlodipine"},
			Limitations: "Walks with cane",
			LastUpdated: now,
			UpdatedBy:   "System Admin",
		},
		Assistance: []models.AssistanceRecord{{
			ID:          "a1",
			Date:        "2024-01-10",
			Type:        "Social Pension",
			Status:      models.StatusReceived,
			Description: "Monthly pension for Q1",
			EncodedBy:   "Staff Member",
		}},
		DateRegistered: "2023-12-01",
	}
}

func (s *registryService) load(ctx context.Context, id string) ([]models.SeniorRecord, int, error) {
	seniors, err := s.repo.LoadSeniors(ctx)
	if err != nil {
		return nil, -1, err
	}
	if i := indexByID(seniors, id); i >= 0 {
		return seniors, i, nil
	}
	return nil, -1, notFound(id)
}

func findSenior(seniors []models.SeniorRecord, ref string) int {
	ref = strings.TrimSpace(ref)
	for i := range seniors {
		if seniors[i].ID == ref || strings.EqualFold(seniors[i].SCID, ref) {
			return i
		}
	}
	return -1
}

func mergeString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

func newTestAssistance(m *memStore) *assistanceService {
	s := NewAssistanceService(m, newRecorder(m)).(*assistanceService)
	s.now = fixedClock
	s.newID = seqIDs("as")
	return s
}

func TestAssistance_GrantPrepends(t *testing.T) {
	m := &memStore{seniors: []models.SeniorRecord{DemoSenior(fixedNow)}}
	s := newTestAssistance(m)

	rec, err := s.Grant(context.Background(), "1", GrantInput{Type: "2", Status: models.StatusPending, Description: " Medicine money "}, staff)
	require.NoError(t, err)

	assert.Equal(t, "as-1", rec.ID)
	assert.Equal(t, "Financial Assistance", rec.Type)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Equal(t, "Medicine money", rec.Description)
	assert.Equal(t, "Staff Officer", rec.EncodedBy)
	assert.Equal(t, "2026-10-17T10:00:00Z", rec.Date)

	history := m.seniors[0].Assistance
	require.Len(t, history, 2)
	assert.Equal(t, rec, history[0])
	assert.Equal(t, "a1", history[1].ID)

	require.Len(t, m.logs, 1)
	assert.Equal(t, models.ActionAssistance, m.logs[0].Action)
	assert.Equal(t, "Granted Financial Assistance to: Juan Dela Cruz", m.logs[0].Details)
}

func TestAssistance_GrantLeavesOtherSeniorsUnchanged(t *testing.T) {
	maria := func() models.SeniorRecord {
		return models.SeniorRecord{
			ID:       "2",
			SCID:     "SC-2024-002",
			FullName: "Maria Santos",
			Assistance: []models.AssistanceRecord{
				{ID: "m2", Date: "2024-03-01", Type: "Relief Goods / Food Pack", Status: models.StatusReceived, Description: "Typhoon relief", EncodedBy: "Staff Officer"},
				{ID: "m1", Date: "2024-01-10", Type: "Social Pension", Status: models.StatusPending, Description: "Q1", EncodedBy: "Admin Officer"},
			},
		}
	}
	m := &memStore{seniors: []models.SeniorRecord{DemoSenior(fixedNow), maria()}}
	s := newTestAssistance(m)

	rec, err := s.Grant(context.Background(), "1", GrantInput{Type: "1", Description: "Q2"}, staff)
	require.NoError(t, err)

	require.Len(t, m.seniors, 2)
	assert.Equal(t, "1", m.seniors[0].ID)
	require.Len(t, m.seniors[0].Assistance, 2)
	assert.Equal(t, rec, m.seniors[0].Assistance[0])
	assert.Equal(t, maria(), m.seniors[1])
}

func TestAssistance_DefaultStatusIsReceived(t *testing.T) {
	m := &memStore{seniors: []models.SeniorRecord{{ID: "1", FullName: "Juan"}}}
	s := newTestAssistance(m)

	rec, err := s.Grant(context.Background(), "1", GrantInput{Type: "social pension"}, staff)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, rec.Status)
	assert.Equal(t, "Social Pension", rec.Type)
}

func TestAssistance_Validation(t *testing.T) {
	m := &memStore{seniors: []models.SeniorRecord{{ID: "1", FullName: "Juan"}}}
	s := newTestAssistance(m)
	ctx := context.Background()

	_, err := s.Grant(ctx, "1", GrantInput{Type: "Lottery"}, staff)
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Grant(ctx, "1", GrantInput{Type: "1", Status: models.StatusDenied}, staff)
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Grant(ctx, "2", GrantInput{Type: "1"}, staff)
	require.ErrorIs(t, err, common.ErrorNotFound)

	assert.Empty(t, m.logs)
	assert.Empty(t, m.seniors[0].Assistance)
}

func TestAssistance_History(t *testing.T) {
	m := &memStore{seniors: []models.SeniorRecord{DemoSenior(fixedNow), {ID: "2", FullName: "New"}}}
	s := newTestAssistance(m)
	ctx := context.Background()

	h, err := s.History(ctx, "1")
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "Monthly pension for Q1", h[0].Description)

	h, err = s.History(ctx, "2")
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.Empty(t, h)

	_, err = s.History(ctx, "3")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

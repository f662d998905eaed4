package services

import (
	"context"
	"math"
	"time"

	"github.com/dmitrijs2005/mapatag/internal/models"
)

// RecentActivityLimit is how many audit entries the dashboard shows.
const RecentActivityLimit = 5

// AgeBracket is one bar of the age distribution.
type AgeBracket struct {
	Label string
	Count int
}

// DashboardStats is the summary shown after login.
type DashboardStats struct {
	Total           int
	Males           int
	Females         int
	AverageAge      int
	AssistanceToday int
	AgeBrackets     []AgeBracket
	RecentActivity  []models.AuditLogEntry
}

type DashboardService interface {
	Stats(ctx context.Context) (DashboardStats, error)
}

type dashboardService struct {
	seniors SeniorReader
	logs    AuditReader
	now     func() time.Time
}

// NewDashboardService constructs a DashboardService over the given readers.
func NewDashboardService(seniors SeniorReader, logs AuditReader) DashboardService {
	return &dashboardService{seniors: seniors, logs: logs, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	seniors, err := s.seniors.LoadSeniors(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	logs, err := s.logs.LoadAuditLogs(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	return ComputeStats(seniors, logs, s.now()), nil
}

// ComputeStats aggregates the roster and audit log. Assistance "today" is
// matched on the UTC calendar date, the zone grant timestamps are written in.
// Ages up to 65 fall in the first bracket.
func ComputeStats(seniors []models.SeniorRecord, logs []models.AuditLogEntry, now time.Time) DashboardStats {
	st := DashboardStats{
		Total: len(seniors),
		AgeBrackets: []AgeBracket{
			{Label: "60-65"}, {Label: "66-70"}, {Label: "71-75"}, {Label: "76-80"}, {Label: "81+"},
		},
	}

	today := models.FormatDate(now.UTC())
	sum := 0
	for _, r := range seniors {
		switch r.Sex {
		case models.SexMale:
			st.Males++
		case models.SexFemale:
			st.Females++
		}
		sum += r.Age

		switch {
		case r.Age <= 65:
			st.AgeBrackets[0].Count++
		case r.Age <= 70:
			st.AgeBrackets[1].Count++
		case r.Age <= 75:
			st.AgeBrackets[2].Count++
		case r.Age <= 80:
			st.AgeBrackets[3].Count++
		default:
			st.AgeBrackets[4].Count++
		}

		for _, a := range r.Assistance {
			if a.OnDay(today) {
				st.AssistanceToday++
			}
		}
	}
	if st.Total > 0 {
		st.AverageAge = int(math.Round(float64(sum) / float64(st.Total)))
	}

	n := min(len(logs), RecentActivityLimit)
	st.RecentActivity = append([]models.AuditLogEntry{}, logs[:n]...)
	return st
}

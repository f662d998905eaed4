package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/mapatag/internal/models"
	"github.com/dmitrijs2005/mapatag/internal/services"
	"github.com/dmitrijs2005/mapatag/internal/views"
)

// clearValue typed at a medical prompt empties the field.
const clearValue = "-"

// Medical edits a senior's health profile. Each list is entered comma
// separated; Enter keeps the current list and "-" clears it.
func (a *App) Medical(ctx context.Context, ref string) error {
	if err := a.require(views.Medical); err != nil {
		return err
	}
	cur, err := a.registry.Find(ctx, ref)
	if err != nil {
		return err
	}

	a.printf("Health profile of %s (%s). Enter keeps a value, '-' clears it.\n", cur.FullName, cur.SCID)
	info := cur.MedicalInfo

	lists := []struct {
		prompt string
		cur    []string
		dst    *[]string
	}{
		{"Conditions", info.Conditions, new([]string)},
		{"Allergies", info.Allergies, new([]string)},
		{"Medications", info.Medications, new([]string)},
	}
	for _, l := range lists {
		v, err := a.askDefault(l.prompt+" (comma separated)", strings.Join(l.cur, ", "))
		if err != nil {
			return err
		}
		if v == clearValue {
			v = ""
		}
		*l.dst = models.ParseList(v)
	}

	limitations := info.Limitations
	if limitations != "" {
		a.printf("Current limitations: %s\n", limitations)
	}
	text, err := GetMultiline(a.reader, "Functional limitations (empty keeps current, '-' clears)", a.out)
	if err != nil {
		return err
	}
	switch text {
	case "":
	case clearValue:
		limitations = ""
	default:
		limitations = text
	}

	rec, err := a.medical.Update(ctx, cur.ID, services.MedicalInput{
		Conditions:  *lists[0].dst,
		Allergies:   *lists[1].dst,
		Medications: *lists[2].dst,
		Limitations: limitations,
	}, a.user())
	a.refresh(ctx)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "medical profile updated", "scid", rec.SCID)
	a.printf("Health profile saved for %s.\n", rec.FullName)
	a.printMedical(rec.MedicalInfo)
	return nil
}

func (a *App) printMedical(m models.MedicalInfo) {
	a.printf("  Conditions:       %s\n", joinOrNone(m.Conditions))
	a.printf("  Allergies:        %s\n", joinOrNone(m.Allergies))
	a.printf("  Medications:      %s\n", joinOrNone(m.Medications))
	if m.Limitations != "" {
		a.printf("  Limitations:      %s\n", m.Limitations)
	}
	if !m.LastUpdated.IsZero() {
		a.printf("  Last updated:     %s by %s\n", m.LastUpdated.Local().Format("2006-01-02 15:04"), m.UpdatedBy)
	}
}

func joinOrNone(s []string) string {
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, ", ")
}

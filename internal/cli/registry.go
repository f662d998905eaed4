package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mapatag/internal/models"
	"github.com/dmitrijs2005/mapatag/internal/services"
	"github.com/dmitrijs2005/mapatag/internal/views"
)

// rosterViews are the views that show the senior list.
var rosterViews = []views.View{views.Registry, views.Medical, views.Assistance}

func (a *App) List(ctx context.Context, term string) error {
	if err := a.requireAny(rosterViews...); err != nil {
		return err
	}
	a.refresh(ctx)
	seniors := services.SearchSeniors(a.state.Seniors, term)

	a.println("== " + a.router.Current().Title() + " ==")
	if len(seniors) == 0 {
		a.println("No seniors found.")
		return nil
	}
	for _, s := range seniors {
		a.printf("  %s\n", s)
	}
	a.printf("%d record(s)\n", len(seniors))
	return nil
}

func (a *App) Show(ctx context.Context, ref string) error {
	if err := a.requireAny(rosterViews...); err != nil {
		return err
	}
	a.refresh(ctx)
	s, err := services.FindSenior(a.state.Seniors, ref)
	if err != nil {
		return err
	}

	a.printf("%s  %s\n", s.SCID, s.FullName)
	a.printf("  ID:               %s\n", s.ID)
	a.printf("  Birthdate / Age:  %s (%d)\n", s.Birthdate, s.Age)
	a.printf("  Sex:              %s\n", s.Sex)
	a.printf("  Civil status:     %s\n", s.CivilStatus)
	a.printf("  Address:          %s (%s)\n", s.Address, s.Purok)
	a.printf("  Contact:          %s\n", s.Contact)
	a.printf("  Emergency:        %s, %s, %s\n", s.EmergencyContact.Name, s.EmergencyContact.Relationship, s.EmergencyContact.Phone)
	a.printf("  Registered:       %s\n", s.DateRegistered)
	if s.PhotoURL != "" {
		link, err := a.photos.Link(ctx, s.PhotoURL)
		if err != nil {
			a.log.Warn(ctx, "photo link failed", "ref", s.PhotoURL, "error", err)
			link = s.PhotoURL
		}
		a.printf("  Photo:            %s\n", link)
	}
	a.printMedical(s.MedicalInfo)
	a.printf("  Assistance:       %d record(s)\n", len(s.Assistance))
	return nil
}

func (a *App) Register(ctx context.Context) error {
	if err := a.require(views.Registry); err != nil {
		return err
	}

	in, err := a.readSeniorInput(nil)
	if err != nil {
		return err
	}

	rec, err := a.registry.Create(ctx, in, a.user())
	a.refresh(ctx)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "senior registered", "scid", rec.SCID, "id", rec.ID)
	a.printf("Registered %s as %s.\n", rec.FullName, rec.SCID)
	return nil
}

func (a *App) Update(ctx context.Context, ref string) error {
	if err := a.require(views.Registry); err != nil {
		return err
	}
	cur, err := a.registry.Find(ctx, ref)
	if err != nil {
		return err
	}

	a.printf("Editing %s (%s). Press Enter to keep a value.\n", cur.FullName, cur.SCID)
	in, err := a.readSeniorInput(&cur)
	if err != nil {
		return err
	}

	rec, err := a.registry.Update(ctx, cur.ID, in, a.user())
	a.refresh(ctx)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "senior updated", "scid", rec.SCID)
	a.printf("Updated %s.\n", rec.FullName)
	return nil
}

func (a *App) Delete(ctx context.Context, ref string) error {
	if err := a.require(views.Registry); err != nil {
		return err
	}
	cur, err := a.registry.Find(ctx, ref)
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s (%s)? This cannot be undone.", cur.FullName, cur.SCID), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	rec, err := a.registry.Delete(ctx, cur.ID, a.user())
	a.refresh(ctx)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "senior deleted", "scid", rec.SCID)
	a.printf("Deleted %s.\n", rec.FullName)
	return nil
}

func (a *App) Photo(ctx context.Context, ref string) error {
	if err := a.require(views.Registry); err != nil {
		return err
	}
	cur, err := a.registry.Find(ctx, ref)
	if err != nil {
		return err
	}

	path, err := a.ask("Path to photo (jpg, png or webp)")
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	photoRef, err := a.photos.Upload(ctx, cur.ID, path)
	if err != nil {
		return err
	}
	rec, err := a.registry.SetPhoto(ctx, cur.ID, photoRef, a.user())
	a.refresh(ctx)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "photo uploaded", "scid", rec.SCID, "ref", photoRef)
	a.printf("Photo saved for %s.\n", rec.FullName)
	return nil
}

// readSeniorInput prompts for the profile fields. With cur nil every field is
// asked for a new registration; otherwise current values are shown and empty
// answers keep them.
func (a *App) readSeniorInput(cur *models.SeniorRecord) (services.SeniorInput, error) {
	var in services.SeniorInput
	c := models.SeniorRecord{Sex: models.SexMale, Purok: models.Puroks[0], CivilStatus: models.CivilSingle}
	if cur != nil {
		c = *cur
	}

	var sex, civil string
	fields := []struct {
		prompt string
		def    string
		dst    *string
	}{
		{"Full name", c.FullName, &in.FullName},
		{"Birthdate (YYYY-MM-DD)", c.Birthdate, &in.Birthdate},
		{"Sex (Male/Female)", string(c.Sex), &sex},
		{"Address", c.Address, &in.Address},
		{"Purok (" + strings.Join(models.Puroks, ", ") + ")", c.Purok, &in.Purok},
		{"Civil status (Single/Married/Widowed/Separated)", string(c.CivilStatus), &civil},
		{"Contact number", c.Contact, &in.Contact},
		{"Emergency contact name", c.EmergencyContact.Name, &in.EmergencyContact.Name},
		{"Emergency contact relationship", c.EmergencyContact.Relationship, &in.EmergencyContact.Relationship},
		{"Emergency contact phone", c.EmergencyContact.Phone, &in.EmergencyContact.Phone},
	}
	for _, f := range fields {
		v, err := a.askDefault(f.prompt, f.def)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}

	if sex != "" {
		s, err := models.ParseSex(sex)
		if err != nil {
			return in, err
		}
		in.Sex = s
	}
	if civil != "" {
		cs, err := models.ParseCivilStatus(civil)
		if err != nil {
			return in, err
		}
		in.CivilStatus = cs
	}
	return in, nil
}

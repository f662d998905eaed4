package cli

import (
	"context"

	"github.com/dmitrijs2005/mapatag/internal/models"
	"github.com/dmitrijs2005/mapatag/internal/services"
	"github.com/dmitrijs2005/mapatag/internal/views"
)

func (a *App) Grant(ctx context.Context, ref string) error {
	if err := a.require(views.Assistance); err != nil {
		return err
	}
	cur, err := a.registry.Find(ctx, ref)
	if err != nil {
		return err
	}

	a.printf("Record assistance for %s (%s).\n", cur.FullName, cur.SCID)
	for i, t := range models.AssistanceTypes {
		a.printf("  %d) %s\n", i+1, t)
	}
	typ, err := a.askDefault("Assistance type (number or name)", "1")
	if err != nil {
		return err
	}
	status, err := a.askDefault("Status (Received/Pending)", string(models.StatusReceived))
	if err != nil {
		return err
	}
	st, err := models.ParseAssistanceStatus(status)
	if err != nil {
		return err
	}
	desc, err := a.ask("Description / remarks")
	if err != nil {
		return err
	}

	rec, err := a.assistance.Grant(ctx, cur.ID, services.GrantInput{Type: typ, Status: st, Description: desc}, a.user())
	a.refresh(ctx)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "assistance granted", "scid", cur.SCID, "type", rec.Type, "status", rec.Status)
	a.printf("Recorded %s (%s) for %s.\n", rec.Type, rec.Status, cur.FullName)
	return nil
}

func (a *App) History(ctx context.Context, ref string) error {
	if err := a.require(views.Assistance); err != nil {
		return err
	}
	cur, err := a.registry.Find(ctx, ref)
	if err != nil {
		return err
	}
	history, err := a.assistance.History(ctx, cur.ID)
	if err != nil {
		return err
	}

	a.printf("Assistance history of %s (%s)\n", cur.FullName, cur.SCID)
	if len(history) == 0 {
		a.println("  (none)")
		return nil
	}
	for _, h := range history {
		a.printf("  %-20.20s %-26s %-9s %s (by %s)\n", h.Date, h.Type, h.Status, h.Description, h.EncodedBy)
	}
	return nil
}

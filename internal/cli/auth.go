package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/models"
	"github.com/dmitrijs2005/mapatag/internal/services"
)

// maxPasswordAttempts bounds retries before the gate returns to role
// selection.
const maxPasswordAttempts = 3

// Login walks the gate: choose a role, then enter its password. An empty
// answer at either step cancels.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.printf("Already logged in as %s. Use 'logout' first.\n", a.user().FullName)
		return nil
	}

	a.println("Select your role:")
	for i, r := range models.Roles {
		a.printf("  %d) %s (%s)\n", i+1, r.Label(), r)
	}
	answer, err := a.ask("Role (number or name, empty to cancel)")
	if err != nil {
		return err
	}
	if answer == "" {
		return nil
	}
	role, err := models.ParseRole(answer)
	if err != nil {
		return err
	}
	if err := a.auth.SelectRole(role); err != nil {
		return err
	}

	for attempt := 1; attempt <= maxPasswordAttempts; attempt++ {
		pw, err := GetPassword(a.reader, a.out)
		if err != nil {
			a.auth.Back()
			return err
		}
		if len(pw) == 0 {
			a.auth.Back()
			return nil
		}

		u, err := a.auth.SubmitPassword(ctx, pw)
		wipe(pw)
		if errors.Is(err, common.ErrorInvalidPassword) {
			a.printf("Invalid password for %s.\n", role.Label())
			continue
		}
		if err != nil && a.auth.State() != services.StateLoggedIn {
			a.auth.Back()
			return err
		}
		if err != nil {
			a.log.Warn(ctx, "login audit failed", "error", err)
		}

		a.router.Reset()
		a.state.SetSession(&u)
		a.refresh(ctx)
		a.log.Info(ctx, "logged in", "role", u.Role)
		a.printf("Welcome, %s.\n", u.FullName)
		return a.Dashboard(ctx)
	}

	a.auth.Back()
	return common.ErrorInvalidPassword
}

func (a *App) Logout(ctx context.Context) error {
	name := a.user().FullName
	err := a.auth.Logout(ctx)
	if errors.Is(err, common.ErrorNotLoggedIn) {
		return err
	}
	a.router.Reset()
	a.refresh(ctx)
	a.state.SetSession(nil)
	a.printf("Goodbye, %s.\n", name)
	return err
}

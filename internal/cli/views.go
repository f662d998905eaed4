package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/mapatag/internal/views"
)

func (a *App) Menu(ctx context.Context) error {
	if !a.isLoggedIn() {
		return nil
	}
	cur := a.router.Current()
	for _, v := range views.Menu(a.user().Role) {
		marker := "  "
		if v == cur {
			marker = "* "
		}
		a.printf("%s%-11s %s\n", marker, strings.ToLower(string(v)), v.Title())
	}
	return nil
}

// Open switches to a view and renders its default listing.
func (a *App) Open(ctx context.Context, name string) error {
	v, err := views.Parse(name)
	if err != nil {
		return err
	}
	if err := a.require(v); err != nil {
		return err
	}

	switch v {
	case views.Dashboard:
		return a.Dashboard(ctx)
	case views.Audit:
		return a.Audit(ctx, "")
	}
	return a.List(ctx, "")
}

func (a *App) Dashboard(ctx context.Context) error {
	if err := a.require(views.Dashboard); err != nil {
		return err
	}
	a.refresh(ctx)
	st, err := a.dashboard.Stats(ctx)
	if err != nil {
		return err
	}

	a.println("== " + views.Dashboard.Title() + " ==")
	a.printf("Total seniors:     %d\n", st.Total)
	a.printf("Male / Female:     %d / %d\n", st.Males, st.Females)
	a.printf("Average age:       %d\n", st.AverageAge)
	a.printf("Assistance today:  %d\n", st.AssistanceToday)
	a.println("Age distribution:")
	for _, b := range st.AgeBrackets {
		a.printf("  %-6s %3d %s\n", b.Label, b.Count, strings.Repeat("#", b.Count))
	}
	a.println("Recent activity:")
	if len(st.RecentActivity) == 0 {
		a.println("  (none)")
	}
	for _, e := range st.RecentActivity {
		a.println("  " + e.String())
	}
	return nil
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/mapatag/internal/audit"
	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/config"
	"github.com/dmitrijs2005/mapatag/internal/filex"
	"github.com/dmitrijs2005/mapatag/internal/logging"
	"github.com/dmitrijs2005/mapatag/internal/models"
	"github.com/dmitrijs2005/mapatag/internal/photos"
	"github.com/dmitrijs2005/mapatag/internal/services"
	"github.com/dmitrijs2005/mapatag/internal/state"
	"github.com/dmitrijs2005/mapatag/internal/views"
)

// Repository is everything the CLI needs from persistence. *store.Store
// satisfies it.
type Repository interface {
	services.SeniorRepository
	services.SessionRepository
	services.AuditRepository
}

// App wires the registry services to a terminal.
type App struct {
	config     *config.Config
	log        logging.Logger
	auth       services.AuthService
	registry   services.RegistryService
	medical    services.MedicalService
	assistance services.AssistanceService
	dashboard  services.DashboardService
	audit      services.AuditService
	photos     photos.Store
	router     *views.Router
	state      *state.State
	reader     *bufio.Reader
	out        io.Writer
	now        func() time.Time
	writeFile  func(name string, data []byte, perm os.FileMode) error
}

// NewApp builds an App over repo, reading commands from in and writing to
// out. Logs go to log, which should not share out.
func NewApp(cfg *config.Config, repo Repository, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	rec := audit.NewLogger(repo, log.With("component", "audit"))
	st := state.New(repo)

	return &App{
		config:     cfg,
		log:        log,
		auth:       services.NewAuthService(repo, rec),
		registry:   services.NewRegistryService(repo, rec),
		medical:    services.NewMedicalService(repo, rec),
		assistance: services.NewAssistanceService(repo, rec),
		dashboard:  services.NewDashboardService(st, st),
		audit:      services.NewAuditService(st),
		photos:     photos.NewS3Store(cfg),
		router:     views.NewRouter(),
		state:      st,
		reader:     bufio.NewReader(in),
		out:        out,
		now:        time.Now,
		writeFile:  filex.WriteFile,
	}
}

// Run restores any persisted session, asks for a login when there is none,
// and runs the REPL until the user exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	u, err := a.auth.Restore(ctx)
	if err != nil {
		return err
	}
	a.state.SetSession(u)
	a.refresh(ctx)

	a.println("MAPATAG Senior Citizen Registry (type 'help' for commands)")

	if a.isLoggedIn() {
		a.printf("Welcome back, %s.\n", a.user().FullName)
	} else if err := a.Login(ctx); err != nil && !errors.Is(err, io.EOF) {
		printlnFn("Error:", err)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.state.LoggedIn()
}

func (a *App) user() models.SessionUser {
	if u := a.state.Session; u != nil {
		return *u
	}
	return models.SessionUser{}
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "logged out"
	}
	return fmt.Sprintf("%s@%s", a.user().Role, a.router.Current())
}

// require checks that the session may open v and makes it the current view.
func (a *App) require(v views.View) error {
	if !a.isLoggedIn() {
		return common.ErrorNotLoggedIn
	}
	return a.router.Navigate(a.user().Role, v)
}

// requireAny is require for commands shared by several views: it keeps the
// current view when it is one of vs, otherwise opens the first permitted one.
func (a *App) requireAny(vs ...views.View) error {
	if !a.isLoggedIn() {
		return common.ErrorNotLoggedIn
	}
	role := a.user().Role
	for _, v := range vs {
		if a.router.Current() == v && views.Allowed(role, v) {
			return nil
		}
	}
	for _, v := range vs {
		if views.Allowed(role, v) {
			return a.router.Navigate(role, v)
		}
	}
	return fmt.Errorf("%w: %s", common.ErrorForbidden, role)
}

// refresh reloads cached state after a mutation and before a screen renders.
// A failure is logged and the previous state kept.
func (a *App) refresh(ctx context.Context) {
	if err := a.state.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "state refresh failed", "error", err)
	}
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) askDefault(prompt, def string) (string, error) {
	return GetWithDefault(a.reader, prompt, def, a.out)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

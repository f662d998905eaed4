package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mapatag/internal/audit"
	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

// AuthState is the position of the login gate.
type AuthState int

const (
	StateLoggedOut AuthState = iota
	StateRoleSelected
	StateLoggedIn
)

func (s AuthState) String() string {
	switch s {
	case StateRoleSelected:
		return "role selected"
	case StateLoggedIn:
		return "logged in"
	}
	return "logged out"
}

// DefaultPasswords is the fixed role/password table.
var DefaultPasswords = map[models.Role]string{
	models.RoleAdmin:        "admin123",
	models.RoleStaff:        "staff123",
	models.RoleHealthWorker: "health123",
}

// AuthService is the role-and-password gate in front of the registry.
//
// Transitions:
//   - SelectRole: LoggedOut|RoleSelected -> RoleSelected.
//   - Back: RoleSelected -> LoggedOut.
//   - SubmitPassword: RoleSelected -> LoggedIn on a match; a mismatch keeps
//     RoleSelected and returns common.ErrorInvalidPassword.
//   - Logout: LoggedIn -> LoggedOut.
//   - Restore: LoggedOut -> LoggedIn when a session was persisted earlier.
type AuthService interface {
	State() AuthState
	SelectedRole() models.Role
	User() *models.SessionUser
	SelectRole(role models.Role) error
	Back()
	SubmitPassword(ctx context.Context, password []byte) (models.SessionUser, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*models.SessionUser, error)
}

type authService struct {
	sessions  SessionRepository
	audit     audit.Recorder
	passwords map[models.Role]string

	state AuthState
	role  models.Role
	user  *models.SessionUser
}

// NewAuthService constructs the gate with DefaultPasswords.
func NewAuthService(sessions SessionRepository, rec audit.Recorder) AuthService {
	return &authService{sessions: sessions, audit: rec, passwords: DefaultPasswords}
}

func (a *authService) State() AuthState          { return a.state }
func (a *authService) SelectedRole() models.Role { return a.role }

func (a *authService) User() *models.SessionUser {
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *authService) SelectRole(role models.Role) error {
	if a.state == StateLoggedIn {
		return fmt.Errorf("%w: already logged in as %s", common.ErrorInvalidState, a.user.Role)
	}
	if _, ok := a.passwords[role]; !ok {
		return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}
	a.role = role
	a.state = StateRoleSelected
	return nil
}

func (a *authService) Back() {
	if a.state == StateRoleSelected {
		a.state = StateLoggedOut
		a.role = ""
	}
}

// SubmitPassword checks password for the selected role. On success the
// session is persisted and a Login entry is recorded; the gate is logged in
// even if only the audit write fails, and that error is returned alongside
// the user.
func (a *authService) SubmitPassword(ctx context.Context, password []byte) (models.SessionUser, error) {
	if a.state != StateRoleSelected {
		return models.SessionUser{}, fmt.Errorf("%w: select a role first", common.ErrorInvalidState)
	}

	want := a.passwords[a.role]
	if subtle.ConstantTimeCompare(password, []byte(want)) != 1 {
		return models.SessionUser{}, common.ErrorInvalidPassword
	}

	u := models.NewSessionUser(a.role)
	if err := a.sessions.SetCurrentUser(ctx, u); err != nil {
		return models.SessionUser{}, fmt.Errorf("save session: %w", err)
	}

	a.user = &u
	a.state = StateLoggedIn

	if err := a.audit.Record(ctx, models.ActionLogin, fmt.Sprintf("User logged in as %s", u.Role), u); err != nil {
		return u, err
	}
	return u, nil
}

// Logout records the Logout entry and clears the persisted session. The gate
// always ends up logged out; write errors are returned joined.
func (a *authService) Logout(ctx context.Context) error {
	if a.state != StateLoggedIn || a.user == nil {
		return common.ErrorNotLoggedIn
	}

	auditErr := a.audit.Record(ctx, models.ActionLogout, "User logged out", *a.user)
	clearErr := a.sessions.ClearCurrentUser(ctx)

	a.user = nil
	a.role = ""
	a.state = StateLoggedOut

	return errors.Join(auditErr, clearErr)
}

func (a *authService) Restore(ctx context.Context) (*models.SessionUser, error) {
	u, err := a.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if u == nil {
		return nil, nil
	}
	a.user = u
	a.role = u.Role
	a.state = StateLoggedIn
	return a.User(), nil
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/models"
)

func TestAuth_LoginFlow(t *testing.T) {
	tests := []struct {
		role     models.Role
		password string
		fullName string
	}{
		{models.RoleAdmin, "admin123", "Admin Officer"},
		{models.RoleStaff, "staff123", "Staff Officer"},
		{models.RoleHealthWorker, "health123", "Health_worker Officer"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			m := &memStore{}
			a := NewAuthService(m, newRecorder(m))

			require.NoError(t, a.SelectRole(tt.role))
			assert.Equal(t, StateRoleSelected, a.State())

			u, err := a.SubmitPassword(context.Background(), []byte(tt.password))
			require.NoError(t, err)
			assert.Equal(t, StateLoggedIn, a.State())
			assert.Equal(t, tt.fullName, u.FullName)
			assert.Equal(t, tt.role, u.Role)

			require.NotNil(t, m.user)
			assert.Equal(t, u, *m.user)
			require.Len(t, m.logs, 1)
			assert.Equal(t, models.ActionLogin, m.logs[0].Action)
			assert.Equal(t, "User logged in as "+string(tt.role), m.logs[0].Details)
		})
	}
}

func TestAuth_WrongPassword(t *testing.T) {
	m := &memStore{}
	a := NewAuthService(m, newRecorder(m))

	require.NoError(t, a.SelectRole(models.RoleStaff))
	_, err := a.SubmitPassword(context.Background(), []byte("admin123"))

	require.ErrorIs(t, err, common.ErrorInvalidPassword)
	assert.Equal(t, StateRoleSelected, a.State())
	assert.Nil(t, m.user)
	assert.Empty(t, m.logs)
	assert.Nil(t, a.User())
}

func TestAuth_StateGuards(t *testing.T) {
	m := &memStore{}
	a := NewAuthService(m, newRecorder(m))
	ctx := context.Background()

	_, err := a.SubmitPassword(ctx, []byte("admin123"))
	require.ErrorIs(t, err, common.ErrorInvalidState)

	require.ErrorIs(t, a.Logout(ctx), common.ErrorNotLoggedIn)
	require.ErrorIs(t, a.SelectRole("JANITOR"), common.ErrorValidation)

	require.NoError(t, a.SelectRole(models.RoleAdmin))
	require.NoError(t, a.SelectRole(models.RoleStaff))
	assert.Equal(t, models.RoleStaff, a.SelectedRole())

	a.Back()
	assert.Equal(t, StateLoggedOut, a.State())

	require.NoError(t, a.SelectRole(models.RoleAdmin))
	_, err = a.SubmitPassword(ctx, []byte("admin123"))
	require.NoError(t, err)
	require.ErrorIs(t, a.SelectRole(models.RoleStaff), common.ErrorInvalidState)
}

func TestAuth_Logout(t *testing.T) {
	m := &memStore{}
	a := NewAuthService(m, newRecorder(m))
	ctx := context.Background()

	require.NoError(t, a.SelectRole(models.RoleAdmin))
	_, err := a.SubmitPassword(ctx, []byte("admin123"))
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, StateLoggedOut, a.State())
	assert.Nil(t, m.user)
	require.Len(t, m.logs, 2)
	assert.Equal(t, models.ActionLogout, m.logs[0].Action)
	assert.Equal(t, "User logged out", m.logs[0].Details)
	assert.Equal(t, "Admin Officer", m.logs[0].UserName)
}

func TestAuth_LogoutAuditFailureStillLogsOut(t *testing.T) {
	m := &memStore{}
	a := NewAuthService(m, newRecorder(m))
	ctx := context.Background()

	require.NoError(t, a.SelectRole(models.RoleAdmin))
	_, err := a.SubmitPassword(ctx, []byte("admin123"))
	require.NoError(t, err)

	m.auditErr = errors.New("full")
	require.Error(t, a.Logout(ctx))
	assert.Equal(t, StateLoggedOut, a.State())
	assert.Nil(t, m.user)
}

func TestAuth_SessionSaveFailure(t *testing.T) {
	m := &memStore{userErr: errors.New("locked")}
	a := NewAuthService(m, newRecorder(m))

	require.NoError(t, a.SelectRole(models.RoleAdmin))
	_, err := a.SubmitPassword(context.Background(), []byte("admin123"))
	require.Error(t, err)
	assert.Equal(t, StateRoleSelected, a.State())
	assert.Empty(t, m.logs)
}

func TestAuth_Restore(t *testing.T) {
	u := models.NewSessionUser(models.RoleHealthWorker)
	m := &memStore{user: &u}
	a := NewAuthService(m, newRecorder(m))

	got, err := a.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, *got)
	assert.Equal(t, StateLoggedIn, a.State())

	empty := &memStore{}
	b := NewAuthService(empty, newRecorder(empty))
	got, err = b.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, StateLoggedOut, b.State())
}

func TestAuthState_String(t *testing.T) {
	assert.Equal(t, "logged out", StateLoggedOut.String())
	assert.Equal(t, "role selected", StateRoleSelected.String())
	assert.Equal(t, "logged in", StateLoggedIn.String())
}

package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleAllows(t *testing.T) {
	cases := []struct {
		name     string
		held     []string
		required string
		want     bool
	}{
		{"plain user may act as user", []string{RoleUser}, RoleUser, true},
		{"plain user is not a moderator", []string{RoleUser}, RoleModerator, false},
		{"moderator implies user", []string{RoleModerator}, RoleUser, true},
		{"moderator is not an administrator", []string{RoleModerator}, RoleAdministrator, false},
		{"administrator implies moderator", []string{RoleAdministrator}, RoleModerator, true},
		{"administrator implies user", []string{RoleAdministrator}, RoleUser, true},
		{"no roles allows nothing", nil, RoleUser, false},
		{"empty requirement is open", []string{RoleUser}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, RoleAllows(tc.held, tc.required))
		})
	}
}

func TestUserGrantIsIdempotent(t *testing.T) {
	u := &User{Roles: []string{RoleUser}}
	u.Grant(RoleModerator)
	u.Grant(RoleModerator)
	require.Equal(t, []string{RoleUser, RoleModerator}, []string(u.Roles))
	require.True(t, u.Allows(RoleUser))
	require.True(t, u.Allows(RoleModerator))
	require.False(t, u.Allows(RoleAdministrator))
}

package accounts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRole("Admin")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRoleLookups(t *testing.T) {
	assert.Equal(t, "Teacher", RoleTeacher.Label())
	assert.Equal(t, "admin", RoleAdmin.Badge())
	assert.Equal(t, "muted", Role("guest").Badge())
}

func TestRoleJSON(t *testing.T) {
	var a Account
	require.NoError(t, json.Unmarshal([]byte(`{"role":"staff"}`), &a))
	assert.Equal(t, RoleStaff, a.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"janitor"}`), &a))

	data, err := json.Marshal(Account{Role: RoleTeacher})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"teacher"`)
}

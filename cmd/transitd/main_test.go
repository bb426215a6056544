package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes transitd against dataDir with stdin set to input
func run(t *testing.T, dataDir, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(input), &out)
	cmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSigninFlow(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in.\n", out)

	out, err = run(t, dir, "", "signin", "-u", "teacher1", "-p", "teacher123")
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Dr. Karim Rahman (Teacher)\n", out)

	// The session survives into the next invocation
	out, err = run(t, dir, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Dr. Karim Rahman (teacher1)")
	assert.Contains(t, out, "teacher1@cuet.ac.bd")

	out, err = run(t, dir, "", "signout")
	require.NoError(t, err)
	assert.Equal(t, "Signed out.\n", out)

	out, err = run(t, dir, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in.\n", out)
}

func TestSigninPrompts(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "student1\nstudent123\n", "signin")
	require.NoError(t, err)
	assert.Contains(t, out, "Username: ")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Welcome, Rahim Ahmed (Student)")
}

func TestSigninRejected(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "signin", "-u", "student1", "-p", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password.", err.Error())

	out, err := run(t, dir, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in.\n", out)
}

func TestSignup(t *testing.T) {
	dir := t.TempDir()

	t.Run("success then sign in", func(t *testing.T) {
		out, err := run(t, dir, "", "signup",
			"--full-name", "Nusrat Jahan", "-u", "nusrat", "-e", "nusrat@cuet.ac.bd",
			"-p", "secret1", "--confirm-password", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Account created successfully! Please sign in.\n", out)

		// Signup does not sign in
		out, err = run(t, dir, "", "whoami")
		require.NoError(t, err)
		assert.Equal(t, "Not signed in.\n", out)

		out, err = run(t, dir, "", "signin", "-u", "nusrat", "-p", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Welcome, Nusrat Jahan (Student)\n", out)
	})

	t.Run("prompted fields", func(t *testing.T) {
		input := "Tanvir Hasan\ntanvir\ntanvir@cuet.ac.bd\nsecret2\nsecret2\n"
		out, err := run(t, dir, input, "signup")
		require.NoError(t, err)
		assert.Contains(t, out, "Confirm password: ")
		assert.Contains(t, out, "Account created successfully!")
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
			want string
		}{
			{
				name: "mismatch",
				args: []string{"-u", "x1", "-e", "x1@cuet.ac.bd", "-p", "secret1", "--confirm-password", "secret2"},
				want: "Password and Confirm Password do not match.",
			},
			{
				name: "weak",
				args: []string{"-u", "x2", "-e", "x2@cuet.ac.bd", "-p", "abc", "--confirm-password", "abc"},
				want: "Password must be at least 6 characters long.",
			},
			{
				name: "username taken",
				args: []string{"-u", "admin", "-e", "x3@cuet.ac.bd", "-p", "secret1", "--confirm-password", "secret1"},
				want: "Username already exists.",
			},
			{
				name: "email taken",
				args: []string{"-u", "x4", "-e", "nusrat@cuet.ac.bd", "-p", "secret1", "--confirm-password", "secret1"},
				want: "Email already registered.",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				args := append([]string{"signup", "--full-name", "Someone"}, tt.args...)
				_, err := run(t, dir, "", args...)
				require.Error(t, err)
				assert.Equal(t, tt.want, err.Error())
			})
		}
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("signed out", func(t *testing.T) {
		out, err := run(t, dir, "", "open", "dashboard")
		require.NoError(t, err)
		assert.Equal(t, "Please sign in first (/signin).\n", out)

		out, err = run(t, dir, "", "open", "signin")
		require.NoError(t, err)
		assert.Contains(t, out, "/signin")
	})

	_, err := run(t, dir, "", "signin", "-u", "student1", "-p", "student123")
	require.NoError(t, err)

	t.Run("dashboard", func(t *testing.T) {
		out, err := run(t, dir, "", "open", "dashboard")
		require.NoError(t, err)
		assert.Contains(t, out, "Welcome back, Rahim Ahmed [Student]")
		assert.Contains(t, out, "Next departure:")
	})

	t.Run("admin screen is hidden", func(t *testing.T) {
		out, err := run(t, dir, "", "open", "admin-buses")
		require.NoError(t, err)
		assert.Equal(t, "Page not found (/not-found).\n", out)
	})

	t.Run("unknown screen", func(t *testing.T) {
		out, err := run(t, dir, "", "open", "settings")
		require.NoError(t, err)
		assert.Equal(t, "Page not found (/not-found).\n", out)
	})

	t.Run("bus details", func(t *testing.T) {
		out, err := run(t, dir, "", "open", "bus-details", "sch1")
		require.NoError(t, err)
		assert.Contains(t, out, "Padma")
		assert.Contains(t, out, "Mohammad Ali")
		assert.Contains(t, out, "CUET → Rastar Matha")

		_, err = run(t, dir, "", "open", "bus-details", "sch99")
		assert.Error(t, err)
	})
}

func TestOpenAdmin(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "", "signin", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)

	tests := []struct {
		screen string
		want   string
	}{
		{"admin-buses", "Brahmaputra"},
		{"admin-routes", "Oxygen Route"},
		{"admin-schedules", "sch16"},
		{"admin-drivers", "Fazlul Haque"},
	}
	for _, tt := range tests {
		t.Run(tt.screen, func(t *testing.T) {
			out, err := run(t, dir, "", "open", tt.screen)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestSchedules(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "schedules")
	require.NoError(t, err)
	assert.Equal(t, "Please sign in first (/signin).\n", out)

	_, err = run(t, dir, "", "signin", "-u", "staff1", "-p", "staff123")
	require.NoError(t, err)

	out, err = run(t, dir, "", "schedules")
	require.NoError(t, err)
	assert.Contains(t, out, "From CUET")
	assert.Contains(t, out, "To CUET")
	assert.Contains(t, out, "5:30 AM")
	assert.NotContains(t, out, "sch2 ")

	out, err = run(t, dir, "", "schedules", "--direction", "to_cuet")
	require.NoError(t, err)
	assert.NotContains(t, out, "From CUET")
	assert.Contains(t, out, "sch7")

	_, err = run(t, dir, "", "schedules", "--direction", "sideways")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Campus transit portal dev\n", out.String())
}

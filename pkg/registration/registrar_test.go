package registration

import (
	"strings"
	"testing"

	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/mmcdole/campus-transit/pkg/authentication"
	"github.com/mmcdole/campus-transit/pkg/kvstore"
	"github.com/mmcdole/campus-transit/pkg/secrets"
	"github.com/mmcdole/campus-transit/pkg/session"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	accounts  *accounts.Store
	sessions  *session.Store
	auth      *authentication.Authenticator
	registrar *Registrar
}

func newFixture(t *testing.T, scheme secrets.Scheme, opts ...Option) *fixture {
	t.Helper()
	kv, err := kvstore.New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	var verifier secrets.Verifier
	if scheme != nil {
		verifier = scheme
		opts = append(opts, WithHasher(scheme))
	}
	store, err := accounts.NewStore(accounts.NewSeedSource(accounts.DefaultSeeds()), accounts.NewRegistry(kv), verifier)
	require.NoError(t, err)
	sessions, err := session.NewStore(kv)
	require.NoError(t, err)
	auth, err := authentication.NewAuthenticator(store, sessions)
	require.NoError(t, err)
	registrar, err := NewRegistrar(store, opts...)
	require.NoError(t, err)

	return &fixture{accounts: store, sessions: sessions, auth: auth, registrar: registrar}
}

func (f *fixture) registered(t *testing.T) []accounts.Account {
	t.Helper()
	accts, err := f.accounts.Registered()
	require.NoError(t, err)
	return accts
}

func TestSignupThenLogin(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.registrar.Signup("Nadia Islam", "nadia", "nadia@cuet.ac.bd", "secret1"))

	t.Run("does not sign in", func(t *testing.T) {
		assert.Nil(t, f.sessions.Get())
	})

	t.Run("account is a student with an id", func(t *testing.T) {
		accts := f.registered(t)
		require.Len(t, accts, 1)
		assert.Equal(t, accounts.RoleStudent, accts[0].Role)
		assert.Equal(t, "Nadia Islam", accts[0].FullName)
		assert.NotEmpty(t, accts[0].ID)
	})

	t.Run("login works", func(t *testing.T) {
		sess, err := f.auth.Login("nadia", "secret1")
		require.NoError(t, err)
		assert.Equal(t, accounts.RoleStudent, sess.Role)
	})
}

func TestSignupIDsAreUnique(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.registrar.Signup("A", "a", "a@example.com", "secret1"))
	require.NoError(t, f.registrar.Signup("B", "b", "b@example.com", "secret1"))

	accts := f.registered(t)
	require.Len(t, accts, 2)
	assert.NotEqual(t, accts[0].ID, accts[1].ID)
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.registrar.Signup("Existing", "existing", "existing@example.com", "secret1"))

	tests := []struct {
		name     string
		username string
		email    string
		password string
		want     error
		message  string
	}{
		{"seed username", "admin", "new@example.com", "secret1", ErrUsernameTaken, "Username already exists."},
		{"registered username", "existing", "new@example.com", "secret1", ErrUsernameTaken, "Username already exists."},
		{"seed email", "newuser", "student1@cuet.ac.bd", "secret1", ErrEmailTaken, "Email already registered."},
		{"registered email", "newuser", "existing@example.com", "secret1", ErrEmailTaken, "Email already registered."},
		{"username before email", "admin", "admin@cuet.ac.bd", "secret1", ErrUsernameTaken, "Username already exists."},
		{"short password", "newuser", "new@example.com", "12345", ErrWeakPassword, "Password must be at least 6 characters long."},
		{"short password before username", "admin", "admin@cuet.ac.bd", "", ErrWeakPassword, "Password must be at least 6 characters long."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.registrar.Signup("Someone", tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.message, err.Error())
			assert.Len(t, f.registered(t), 1)
		})
	}
}

func TestSignupMinimumLength(t *testing.T) {
	f := newFixture(t, nil, WithMinPasswordLength(10))
	assert.Equal(t, 10, f.registrar.MinPasswordLength())

	err := f.registrar.Signup("X", "x", "x@example.com", "123456789")
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Equal(t, "Password must be at least 10 characters long.", err.Error())

	assert.NoError(t, f.registrar.Signup("X", "x", "x@example.com", "1234567890"))
}

func TestSignupWithHashing(t *testing.T) {
	scheme, err := secrets.ByName(secrets.SchemeArgon2ID)
	require.NoError(t, err)
	f := newFixture(t, scheme)

	require.NoError(t, f.registrar.Signup("Hashed", "hashed", "hashed@example.com", "secret1"))

	accts := f.registered(t)
	require.Len(t, accts, 1)
	assert.True(t, strings.HasPrefix(accts[0].Password, "$argon2id$"))

	_, err = f.auth.Login("hashed", "secret1")
	assert.NoError(t, err)

	// seeds are still plaintext
	_, err = f.auth.Login("teacher1", "teacher123")
	assert.NoError(t, err)
}

func TestConfirmPassword(t *testing.T) {
	assert.NoError(t, ConfirmPassword("secret1", "secret1"))

	err := ConfirmPassword("secret1", "secret2")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Equal(t, "Password and Confirm Password do not match.", err.Error())
}

func TestNewRegistrar(t *testing.T) {
	_, err := NewRegistrar(nil)
	assert.Error(t, err)
}

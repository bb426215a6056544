package authentication

import (
	"testing"

	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/mmcdole/campus-transit/pkg/kvstore"
	"github.com/mmcdole/campus-transit/pkg/secrets"
	"github.com/mmcdole/campus-transit/pkg/session"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, verifier secrets.Verifier, seeds []accounts.Account) (*Authenticator, *session.Store) {
	t.Helper()
	kv, err := kvstore.New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	store, err := accounts.NewStore(accounts.NewSeedSource(seeds), accounts.NewRegistry(kv), verifier)
	require.NoError(t, err)
	sessions, err := session.NewStore(kv)
	require.NoError(t, err)

	auth, err := NewAuthenticator(store, sessions)
	require.NoError(t, err)
	return auth, sessions
}

func TestNewAuthenticator(t *testing.T) {
	_, err := NewAuthenticator(nil, nil)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	auth, sessions := setup(t, nil, accounts.DefaultSeeds())

	t.Run("valid credentials", func(t *testing.T) {
		sess, err := auth.Login("admin", "admin123")
		require.NoError(t, err)
		assert.Equal(t, accounts.RoleAdmin, sess.Role)
		assert.Equal(t, "System Admin", sess.FullName)
		assert.Equal(t, sess, sessions.Get())
	})

	t.Run("wrong password keeps session", func(t *testing.T) {
		_, err := auth.Login("admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, "Invalid username or password.", err.Error())

		require.NotNil(t, sessions.Get())
		assert.Equal(t, "admin", sessions.Get().Username)
	})

	t.Run("unknown user keeps session", func(t *testing.T) {
		_, err := auth.Login("ghost", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, "admin", sessions.Get().Username)
	})

	t.Run("no normalisation", func(t *testing.T) {
		_, err := auth.Login(" admin", "admin123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = auth.Login("ADMIN", "admin123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("relogin replaces session", func(t *testing.T) {
		sess, err := auth.Login("student1", "student123")
		require.NoError(t, err)
		assert.Equal(t, accounts.RoleStudent, sess.Role)
		assert.Equal(t, "student1", sessions.Get().Username)
	})

	t.Run("logout", func(t *testing.T) {
		require.NoError(t, auth.Logout())
		assert.Nil(t, sessions.Get())
		assert.NoError(t, auth.Logout())
	})
}

func TestLoginFailureFromSignedOut(t *testing.T) {
	auth, sessions := setup(t, nil, accounts.DefaultSeeds())

	_, err := auth.Login("nobody", "nothing")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, sessions.Get())
}

func TestLoginWithHashedSeeds(t *testing.T) {
	scheme, err := secrets.ByName(secrets.SchemeArgon2ID)
	require.NoError(t, err)
	hashed, err := scheme.Hash("s3cret!")
	require.NoError(t, err)

	seeds := []accounts.Account{
		{ID: "h", Username: "hashed", Email: "h@example.com", Role: accounts.RoleStaff, Password: hashed},
		{ID: "p", Username: "plain", Email: "p@example.com", Role: accounts.RoleStudent, Password: "plain123"},
	}
	auth, _ := setup(t, scheme, seeds)

	t.Run("hashed record", func(t *testing.T) {
		sess, err := auth.Login("hashed", "s3cret!")
		require.NoError(t, err)
		assert.Equal(t, accounts.RoleStaff, sess.Role)

		_, err = auth.Login("hashed", hashed)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("plaintext record still verifies", func(t *testing.T) {
		_, err := auth.Login("plain", "plain123")
		assert.NoError(t, err)
	})
}

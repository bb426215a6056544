package session

import (
	"testing"

	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/mmcdole/campus-transit/pkg/kvstore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, fs afero.Fs) *Store {
	t.Helper()
	kv, err := kvstore.New(fs, "/data")
	require.NoError(t, err)
	s, err := NewStore(kv)
	require.NoError(t, err)
	return s
}

func adminSession() *Session {
	seeds := accounts.DefaultSeeds()
	return FromAccount(&seeds[3])
}

func TestStoreLifecycle(t *testing.T) {
	s := newTestStore(t, afero.NewMemMapFs())

	t.Run("starts unauthenticated", func(t *testing.T) {
		s.Load()
		assert.Nil(t, s.Get())
		assert.Equal(t, Unauthenticated, s.State())
	})

	t.Run("set", func(t *testing.T) {
		require.NoError(t, s.Set(adminSession()))
		assert.Equal(t, Authenticated, s.State())
		assert.Equal(t, "admin", s.Get().Username)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		got := s.Get()
		got.Role = accounts.RoleStudent
		assert.Equal(t, accounts.RoleAdmin, s.Get().Role)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, s.Clear())
		assert.Nil(t, s.Get())
		assert.Equal(t, Unauthenticated, s.State())

		// clearing again is fine
		assert.NoError(t, s.Clear())
	})
}

func TestRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	first := newTestStore(t, fs)
	want := adminSession()
	require.NoError(t, first.Set(want))

	// a fresh store over the same context sees the same session after Load
	second := newTestStore(t, fs)
	assert.Nil(t, second.Get())
	second.Load()
	assert.Equal(t, want, second.Get())
}

func TestPersistedFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)
	require.NoError(t, s.Set(adminSession()))

	data, err := afero.ReadFile(fs, "/data/session_record.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "4",
		"username": "admin",
		"email": "admin@cuet.ac.bd",
		"fullName": "System Admin",
		"role": "admin",
		"password": "admin123"
	}`, string(data))

	require.NoError(t, s.Clear())
	exists, err := afero.Exists(fs, "/data/session_record.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoadIgnoresBadRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{broken"},
		{"wrong shape", `["a","b"]`},
		{"unknown role", `{"username":"x","role":"superuser"}`},
		{"no username", `{"role":"admin"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			s := newTestStore(t, fs)
			require.NoError(t, afero.WriteFile(fs, "/data/session_record.json", []byte(tt.data), 0644))

			s.Load()
			assert.Nil(t, s.Get())
			assert.Equal(t, Unauthenticated, s.State())
		})
	}
}

func TestSetReplaces(t *testing.T) {
	s := newTestStore(t, afero.NewMemMapFs())
	seeds := accounts.DefaultSeeds()

	require.NoError(t, s.Set(FromAccount(&seeds[0])))
	require.NoError(t, s.Set(FromAccount(&seeds[1])))

	assert.Equal(t, "teacher1", s.Get().Username)
}

package kvstore

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, fs afero.Fs) *Store {
	t.Helper()
	s, err := New(fs, "/data")
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)

	t.Run("get absent key", func(t *testing.T) {
		_, v, err := s.Get("missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, NoVersion, v)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, s.Put("greeting", []byte(`"hello"`)))

		data, v, err := s.Get("greeting")
		require.NoError(t, err)
		assert.Equal(t, `"hello"`, string(data))
		assert.Equal(t, VersionOf([]byte(`"hello"`)), v)

		exists, err := afero.Exists(fs, "/data/greeting.json")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete("greeting"))
		_, _, err := s.Get("greeting")
		assert.ErrorIs(t, err, ErrNotFound)

		// absent key
		assert.NoError(t, s.Delete("greeting"))
	})

	t.Run("no lock or temp files left behind", func(t *testing.T) {
		require.NoError(t, s.Put("k", []byte("[]")))
		names, err := afero.Glob(fs, "/data/k*")
		require.NoError(t, err)
		assert.Equal(t, []string{"/data/k.json"}, names)
	})
}

func TestCompareAndSwap(t *testing.T) {
	s := newTestStore(t, afero.NewMemMapFs())

	t.Run("create requires absent key", func(t *testing.T) {
		require.NoError(t, s.CompareAndSwap("list", NoVersion, []byte(`[1]`)))
		assert.ErrorIs(t, s.CompareAndSwap("list", NoVersion, []byte(`[2]`)), ErrVersionConflict)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		_, v1, err := s.Get("list")
		require.NoError(t, err)

		require.NoError(t, s.CompareAndSwap("list", v1, []byte(`[1,2]`)))
		assert.ErrorIs(t, s.CompareAndSwap("list", v1, []byte(`[1,3]`)), ErrVersionConflict)

		data, _, err := s.Get("list")
		require.NoError(t, err)
		assert.Equal(t, `[1,2]`, string(data))
	})
}

func TestTwoStoresShareRecords(t *testing.T) {
	fs := afero.NewMemMapFs()
	a := newTestStore(t, fs)
	b := newTestStore(t, fs)

	require.NoError(t, a.Put("counter", []byte("0")))

	// Both read the same version; only the first writer wins
	_, va, err := a.Get("counter")
	require.NoError(t, err)
	_, vb, err := b.Get("counter")
	require.NoError(t, err)

	require.NoError(t, a.CompareAndSwap("counter", va, []byte("1")))
	assert.ErrorIs(t, b.CompareAndSwap("counter", vb, []byte("1")), ErrVersionConflict)
}

func TestConcurrentWritersSerialise(t *testing.T) {
	// O_EXCL lock files are only atomic on a real filesystem
	dir := t.TempDir()
	fs := afero.NewOsFs()
	var stores []*Store
	for i := 0; i < 2; i++ {
		s, err := New(fs, dir)
		require.NoError(t, err)
		stores = append(stores, s)
	}

	var wg sync.WaitGroup
	for _, s := range stores {
		wg.Add(1)
		go func(s *Store) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				assert.NoError(t, s.Put("shared", []byte("x")))
			}
		}(s)
	}
	wg.Wait()

	exists, err := afero.Exists(fs, filepath.Join(dir, "shared.lock"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStaleLockIsBroken(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)
	s.lockStale = 10 * time.Millisecond

	require.NoError(t, afero.WriteFile(fs, "/data/k.lock", nil, 0644))
	old := time.Now().Add(-time.Minute)
	require.NoError(t, fs.Chtimes("/data/k.lock", old, old))

	assert.NoError(t, s.Put("k", []byte("1")))
}

func TestLockTimeout(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)
	s.lockWait = 20 * time.Millisecond

	require.NoError(t, afero.WriteFile(fs, "/data/k.lock", nil, 0644))

	assert.ErrorIs(t, s.Put("k", []byte("1")), ErrLockTimeout)
}

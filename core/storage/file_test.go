package storage_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluecore/bluecore/core/config"
	"github.com/bluecore/bluecore/core/storage"
)

func TestFileStore_SaltRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.ReadSalt()
	assert.ErrorIs(t, err, storage.ErrNotFound)

	salt := []byte("0123456789abcdef0123456789abcdef")
	require.NoError(t, store.WriteSalt(salt))

	got, err := store.ReadSalt()
	require.NoError(t, err)
	assert.Equal(t, salt, got)

	// Rewrites replace the previous value.
	next := []byte("fedcba9876543210fedcba9876543210")
	require.NoError(t, store.WriteSalt(next))
	got, err = store.ReadSalt()
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestFileStore_SaltFileIsPrivate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.WriteSalt([]byte("secret")))

	info, err := os.Stat(filepath.Join(dir, "salt.bin"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_ConfigRoundTrip(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.ReadConfig()
	assert.ErrorIs(t, err, storage.ErrNotFound)

	overrides := &config.Overrides{ProfileEnabled: map[string]bool{"pan": false, "map": true}}
	require.NoError(t, store.WriteConfig(overrides))

	got, err := store.ReadConfig()
	require.NoError(t, err)
	assert.Equal(t, overrides.ProfileEnabled, got.ProfileEnabled)
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.WriteSalt([]byte("secret")))
	require.NoError(t, store.WriteConfig(&config.Overrides{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"salt.bin", "overrides.yaml"}, names)
}

func TestFileStore_CreatesDataDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

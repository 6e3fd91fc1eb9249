package identity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bluecore/bluecore/core/config"
	"github.com/bluecore/bluecore/core/identity"
	"github.com/bluecore/bluecore/core/storage"
	"github.com/bluecore/bluecore/mocks"
	"github.com/bluecore/bluecore/testutils"
)

func newFileBackedStore(t *testing.T) (*identity.SaltStore, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	s := identity.NewSaltStore(fs, testutils.NewTestLogger())
	require.NoError(t, s.Load())
	return s, dir
}

func reopen(t *testing.T, dir string) *identity.SaltStore {
	t.Helper()
	fs, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	s := identity.NewSaltStore(fs, testutils.NewTestLogger())
	require.NoError(t, s.Load())
	return s
}

func TestSaltStore_FirstBootGeneratesAndCommits(t *testing.T) {
	s, dir := newFileBackedStore(t)

	salt := s.Current()
	assert.NotEqual(t, identity.Salt{}, salt)

	// A restart reconstructs the same committed salt.
	assert.Equal(t, salt, reopen(t, dir).Current())
}

func TestSaltStore_RegenerateChangesSaltAndObfuscation(t *testing.T) {
	s, _ := newFileBackedStore(t)
	addr, err := identity.ParseAddress("00:11:22:33:44:55")
	require.NoError(t, err)

	before := s.Current()
	obfBefore := s.Obfuscate(addr)

	s1, err := s.Regenerate()
	require.NoError(t, err)
	s2, err := s.Regenerate()
	require.NoError(t, err)

	assert.NotEqual(t, before, s1)
	assert.NotEqual(t, s1, s2, "consecutive regenerations each produce a fresh salt")
	assert.NotEqual(t, obfBefore, s.Obfuscate(addr))
}

// The in-memory and committed salts have separate lifecycles: a
// regeneration is invisible to the next boot until a clean-shutdown
// Flush commits it. This divergence window is inherited behavior, kept
// deliberately rather than unified.
func TestSaltStore_RestartWithoutFlushSeesCommittedSalt(t *testing.T) {
	s, dir := newFileBackedStore(t)
	committed := s.Current()

	regenerated, err := s.Regenerate()
	require.NoError(t, err)
	require.NotEqual(t, committed, regenerated)

	// Restart without a flush: the transient in-memory salt is lost.
	assert.Equal(t, committed, reopen(t, dir).Current())

	// A clean shutdown flush makes the regenerated salt durable.
	require.NoError(t, s.Flush())
	assert.Equal(t, regenerated, reopen(t, dir).Current())
}

func TestSaltStore_PersistenceFailureKeepsInMemorySalt(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().ReadSalt().Return(nil, storage.ErrNotFound)
	store.EXPECT().WriteSalt(gomock.Any()).Return(errors.New("disk full"))

	s := identity.NewSaltStore(store, testutils.NewTestLogger())
	err := s.Load()
	require.ErrorIs(t, err, identity.ErrSaltPersistence)

	// Obfuscation keeps working on the uncommitted in-memory salt.
	assert.NotEqual(t, identity.Salt{}, s.Current())
	addr, _ := identity.ParseAddress("AA:BB:CC:DD:EE:FF")
	assert.Len(t, s.Obfuscate(addr), 32)
}

func TestSaltStore_FlushRetriesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().ReadSalt().Return(make([]byte, identity.SaltSize), nil)
	gomock.InOrder(
		store.EXPECT().WriteSalt(gomock.Any()).Return(errors.New("disk full")),
		store.EXPECT().WriteSalt(gomock.Any()).Return(nil),
	)

	s := identity.NewSaltStore(store, testutils.NewTestLogger())
	require.NoError(t, s.Load())
	_, err := s.Regenerate()
	require.NoError(t, err)

	require.ErrorIs(t, s.Flush(), identity.ErrSaltPersistence)
	require.NoError(t, s.Flush(), "the salt stays dirty until a commit succeeds")
	require.NoError(t, s.Flush(), "a committed salt is not rewritten")
}

func TestResetCoordinator_EachResetProducesFreshSalt(t *testing.T) {
	s, _ := newFileBackedStore(t)
	overrides := config.NewOverrideSet()
	overrides.SetProfileEnabled("pan", false)
	reset := identity.NewResetCoordinator(s, overrides, testutils.NewTestLogger())

	initial := s.Current()
	require.NoError(t, reset.FactoryReset())
	first := s.Current()
	require.NoError(t, reset.FactoryReset())
	second := s.Current()

	assert.NotEqual(t, initial, first)
	assert.NotEqual(t, first, second, "regeneration is unconditional, never cached")

	_, ok := overrides.ProfileEnabled("pan")
	assert.False(t, ok, "factory reset clears runtime overrides")
}

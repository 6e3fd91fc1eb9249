package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluecore/bluecore/core"
	"github.com/bluecore/bluecore/core/config"
	"github.com/bluecore/bluecore/core/identity"
	"github.com/bluecore/bluecore/core/state"
	"github.com/bluecore/bluecore/core/storage"
	"github.com/bluecore/bluecore/testutils"
)

type stateLog struct {
	mu   sync.Mutex
	seen []state.State
}

func (l *stateLog) OnAdapterStateChange(prev, next state.State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen = append(l.seen, next)
}

func (l *stateLog) states() []state.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]state.State, len(l.seen))
	copy(out, l.seen)
	return out
}

func testFile() *config.File {
	basic := false
	cfg := &config.File{Profiles: []config.Profile{
		{Name: "gatt", Enabled: true, RequiresFullRadio: &basic},
		{Name: "pan", Enabled: true},
	}}
	cfg.Normalize()
	return cfg
}

type fixture struct {
	adapter *core.Adapter
	radio   *testutils.FakeRadio
	gatt    *testutils.FakeModule
	pan     *testutils.FakeModule
	dir     string
}

func newFixture(t *testing.T, cfg *config.File) *fixture {
	t.Helper()
	dir := t.TempDir()
	return reuseFixture(t, cfg, dir)
}

func reuseFixture(t *testing.T, cfg *config.File, dir string) *fixture {
	t.Helper()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	f := &fixture{
		radio: testutils.NewFakeRadio(),
		gatt:  testutils.NewFakeModule("gatt"),
		pan:   testutils.NewFakeModule("pan"),
		dir:   dir,
	}
	f.adapter, err = core.NewAdapter(cfg, f.radio, store, testutils.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, f.adapter.RegisterProfile("gatt", f.gatt.Factory()))
	require.NoError(t, f.adapter.RegisterProfile("pan", f.pan.Factory()))
	f.adapter.Start()
	t.Cleanup(func() { _ = f.adapter.Close() })
	return f
}

func (f *fixture) waitForState(t *testing.T, want state.State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return f.adapter.State() == want
	}, testutils.TestTimeout, testutils.TestInterval, "adapter should reach %s", want)
}

func TestAdapter_EnableNotifiesObservers(t *testing.T) {
	f := newFixture(t, testFile())
	log := &stateLog{}
	f.adapter.Subscribe(log)

	require.NoError(t, f.adapter.Enable(false))
	f.waitForState(t, state.On)

	assert.Equal(t, []state.State{
		state.BleTurningOn, state.BleOn, state.TurningOn, state.On,
	}, log.states())
}

func TestAdapter_UnsubscribeStopsNotifications(t *testing.T) {
	f := newFixture(t, testFile())
	log := &stateLog{}
	f.adapter.Subscribe(log)
	f.adapter.Unsubscribe(log)

	require.NoError(t, f.adapter.Enable(false))
	f.waitForState(t, state.On)

	assert.Empty(t, log.states())
}

func TestAdapter_ToggleStormIsThrottled(t *testing.T) {
	cfg := testFile()
	cfg.Toggle = config.Toggle{RequestsPerSecond: 0.001, Burst: 2}
	f := newFixture(t, cfg)

	require.NoError(t, f.adapter.Enable(false))
	require.NoError(t, f.adapter.Disable())
	assert.ErrorIs(t, f.adapter.Enable(false), core.ErrThrottled)
}

func TestAdapter_FactoryResetLeavesPowerStateAlone(t *testing.T) {
	f := newFixture(t, testFile())
	addr, err := identity.ParseAddress("00:11:22:33:44:55")
	require.NoError(t, err)

	require.NoError(t, f.adapter.Enable(false))
	f.waitForState(t, state.On)

	before := f.adapter.ObfuscateAddress(addr)
	require.NoError(t, f.adapter.FactoryReset())

	assert.Equal(t, state.On, f.adapter.State(), "factory reset never touches the power state")
	assert.NotEqual(t, before, f.adapter.ObfuscateAddress(addr),
		"obfuscation changes immediately after a reset")
}

func TestAdapter_FactoryResetClearsOverrides(t *testing.T) {
	f := newFixture(t, testFile())

	require.NoError(t, f.adapter.SetProfileEnabled("pan", false))
	require.NoError(t, f.adapter.FactoryReset())

	require.NoError(t, f.adapter.Enable(false))
	f.waitForState(t, state.On)
	assert.Equal(t, 1, f.pan.StartCalls(), "cleared override falls back to the static config")
}

func TestAdapter_SetProfileEnabledRejectsUnknown(t *testing.T) {
	f := newFixture(t, testFile())
	assert.Error(t, f.adapter.SetProfileEnabled("nope", true))
}

func TestAdapter_OverrideSkipsProfileOnNextEnable(t *testing.T) {
	f := newFixture(t, testFile())
	require.NoError(t, f.adapter.SetProfileEnabled("pan", false))

	require.NoError(t, f.adapter.Enable(false))
	f.waitForState(t, state.On)

	assert.Equal(t, 1, f.gatt.StartCalls())
	assert.Zero(t, f.pan.StartCalls())
}

func TestAdapter_CloseCommitsSaltAndOverrides(t *testing.T) {
	cfg := testFile()
	f := newFixture(t, cfg)
	addr, err := identity.ParseAddress("00:11:22:33:44:55")
	require.NoError(t, err)

	firstBoot := f.adapter.ObfuscateAddress(addr)
	require.NoError(t, f.adapter.FactoryReset())
	afterReset := f.adapter.ObfuscateAddress(addr)
	require.NotEqual(t, firstBoot, afterReset)
	require.NoError(t, f.adapter.SetProfileEnabled("pan", false))
	require.NoError(t, f.adapter.Close())

	// The next boot over the same data directory sees the committed salt
	// and the persisted overrides.
	g := reuseFixture(t, cfg, f.dir)
	assert.Equal(t, afterReset, g.adapter.ObfuscateAddress(addr))

	require.NoError(t, g.adapter.Enable(false))
	g.waitForState(t, state.On)
	assert.Zero(t, g.pan.StartCalls(), "persisted override survives a restart")
}

func TestAdapter_ResetWithoutCloseIsInvisibleToNextBoot(t *testing.T) {
	cfg := testFile()
	f := newFixture(t, cfg)
	addr, err := identity.ParseAddress("00:11:22:33:44:55")
	require.NoError(t, err)

	committed := f.adapter.ObfuscateAddress(addr)
	require.NoError(t, f.adapter.FactoryReset())

	// Crash before Close: the regenerated salt was never committed.
	g := reuseFixture(t, cfg, f.dir)
	assert.Equal(t, committed, g.adapter.ObfuscateAddress(addr))
}

func TestAdapter_RejectsEmptyConfig(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	_, err = core.NewAdapter(&config.File{}, testutils.NewFakeRadio(), store, testutils.NewTestLogger())
	assert.Error(t, err)
}

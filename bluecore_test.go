package bluecore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluecore/bluecore"
	"github.com/bluecore/bluecore/core/identity"
	"github.com/bluecore/bluecore/core/state"
	"github.com/bluecore/bluecore/testutils"
)

const adapterYAML = `
profiles:
  - name: gatt
    enabled: true
    requires_full_radio: false
  - name: pan
    enabled: true
`

func TestNewAdapterFromFiles_FullLifecycle(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "adapter.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(adapterYAML), 0o600))

	radio := testutils.NewFakeRadio()
	gatt := testutils.NewFakeModule("gatt")
	pan := testutils.NewFakeModule("pan")

	adapter, err := bluecore.NewAdapterFromFiles(configPath, filepath.Join(dir, "data"), radio, testutils.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, adapter.RegisterProfile("gatt", gatt.Factory()))
	require.NoError(t, adapter.RegisterProfile("pan", pan.Factory()))
	adapter.Start()
	defer adapter.Close()

	require.NoError(t, adapter.Enable(false))
	require.Eventually(t, func() bool {
		return adapter.State() == state.On
	}, testutils.TestTimeout, testutils.TestInterval)
	assert.Equal(t, 1, gatt.StartCalls())
	assert.Equal(t, 1, pan.StartCalls())

	addr, err := identity.ParseAddress("00:11:22:33:44:55")
	require.NoError(t, err)
	assert.Len(t, adapter.ObfuscateAddress(addr), 32)

	require.NoError(t, adapter.Disable())
	require.Eventually(t, func() bool {
		return adapter.State() == state.Off
	}, testutils.TestTimeout, testutils.TestInterval)
	assert.Equal(t, 1, radio.DownCalls())

	require.NoError(t, adapter.Close())
}

func TestNewAdapterFromFiles_BadConfigPath(t *testing.T) {
	_, err := bluecore.NewAdapterFromFiles(
		filepath.Join(t.TempDir(), "missing.yaml"), t.TempDir(),
		testutils.NewFakeRadio(), testutils.NewTestLogger())
	assert.Error(t, err)
}

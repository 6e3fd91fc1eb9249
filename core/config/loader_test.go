package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluecore/bluecore/core/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adapter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
profiles:
  - name: gatt
    enabled: true
    requires_full_radio: false
  - name: pan
    enabled: true
  - name: map
    enabled: false
toggle:
  requests_per_second: 2
  burst: 8
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Profiles, 3)

	assert.Equal(t, "gatt", cfg.Profiles[0].Name)
	assert.False(t, *cfg.Profiles[0].RequiresFullRadio)
	assert.True(t, *cfg.Profiles[1].RequiresFullRadio, "requires_full_radio defaults to true")
	assert.False(t, cfg.Profiles[2].Enabled)
	assert.Equal(t, 2.0, cfg.Toggle.RequestsPerSecond)
	assert.Equal(t, 8, cfg.Toggle.Burst)
}

func TestLoad_ToggleDefaults(t *testing.T) {
	path := writeConfig(t, `
profiles:
  - name: gatt
    enabled: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Toggle.RequestsPerSecond)
	assert.Equal(t, 16, cfg.Toggle.Burst)
}

func TestLoad_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty profiles", "profiles: []\n"},
		{"empty name", "profiles:\n  - name: \"\"\n    enabled: true\n"},
		{"duplicate name", "profiles:\n  - name: pan\n  - name: pan\n"},
		{"malformed yaml", "profiles: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestOverrideSet_LoadAndSnapshotRoundTrip(t *testing.T) {
	set := config.NewOverrideSet()
	set.Load(&config.Overrides{ProfileEnabled: map[string]bool{"pan": false}})

	enabled, ok := set.ProfileEnabled("pan")
	require.True(t, ok)
	assert.False(t, enabled)

	set.SetProfileEnabled("map", true)
	snap := set.Snapshot()
	assert.Equal(t, map[string]bool{"pan": false, "map": true}, snap.ProfileEnabled)

	// The snapshot is a copy, not a view.
	set.Clear()
	assert.Equal(t, map[string]bool{"pan": false, "map": true}, snap.ProfileEnabled)
	_, ok = set.ProfileEnabled("pan")
	assert.False(t, ok)
}

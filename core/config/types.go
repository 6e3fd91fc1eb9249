package config

// File is the top-level adapter configuration.
type File struct {
	Profiles []Profile `yaml:"profiles"`
	Toggle   Toggle    `yaml:"toggle,omitempty"`
}

// Profile declares a single profile service known to the adapter.
type Profile struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
	// RequiresFullRadio marks profiles that need the radio fully enabled.
	// Defaults to true; only the low-energy attribute profile runs during
	// the BLE-only phase.
	RequiresFullRadio *bool `yaml:"requires_full_radio,omitempty"`
}

// Toggle bounds how fast enable/disable requests are accepted.
type Toggle struct {
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`
	Burst             int     `yaml:"burst,omitempty"`
}

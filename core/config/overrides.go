package config

import "sync"

// Overrides is the persisted form of runtime configuration overrides.
type Overrides struct {
	ProfileEnabled map[string]bool `yaml:"profile_enabled,omitempty"`
}

// OverrideSet holds runtime-mutable settings layered over the static
// profile configuration. A factory reset clears the whole set.
type OverrideSet struct {
	mu             sync.RWMutex
	profileEnabled map[string]bool
}

// NewOverrideSet returns an empty override set.
func NewOverrideSet() *OverrideSet {
	return &OverrideSet{profileEnabled: make(map[string]bool)}
}

// Load replaces the set's contents with previously persisted overrides.
func (s *OverrideSet) Load(o *Overrides) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileEnabled = make(map[string]bool)
	if o == nil {
		return
	}
	for name, enabled := range o.ProfileEnabled {
		s.profileEnabled[name] = enabled
	}
}

// SetProfileEnabled overrides whether a named profile is enabled.
func (s *OverrideSet) SetProfileEnabled(name string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileEnabled[name] = enabled
}

// ProfileEnabled reports the override for a profile, if one is set.
func (s *OverrideSet) ProfileEnabled(name string) (enabled bool, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enabled, ok = s.profileEnabled[name]
	return enabled, ok
}

// Clear drops every override.
func (s *OverrideSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileEnabled = make(map[string]bool)
}

// Snapshot returns a copy of the set suitable for persisting.
func (s *OverrideSet) Snapshot() *Overrides {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := &Overrides{ProfileEnabled: make(map[string]bool, len(s.profileEnabled))}
	for name, enabled := range s.profileEnabled {
		out.ProfileEnabled[name] = enabled
	}
	return out
}

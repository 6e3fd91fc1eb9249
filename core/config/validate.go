package config

import "fmt"

// Validate rejects configurations the adapter cannot run with.
func (f *File) Validate() error {
	if len(f.Profiles) == 0 {
		return fmt.Errorf("no profiles found in configuration")
	}
	seen := make(map[string]bool, len(f.Profiles))
	for _, p := range f.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profile with empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate profile name '%s'", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

package profile

import (
	"fmt"

	"github.com/bluecore/bluecore/core/config"
	"github.com/bluecore/bluecore/pkg/logging"
)

// Descriptor is the immutable identity of a known profile service.
type Descriptor struct {
	Name              string
	Enabled           bool
	RequiresFullRadio bool
}

// Registry enumerates the profile services the adapter knows about,
// in configuration order, and holds the factory for each. Runtime
// overrides can flip a profile's enabled flag without touching the
// static descriptors.
type Registry struct {
	order       []string
	descriptors map[string]Descriptor
	factories   map[string]Factory
	overrides   *config.OverrideSet
	logger      logging.Logger
}

// NewRegistry builds the registry from loaded configuration.
func NewRegistry(cfg *config.File, overrides *config.OverrideSet, logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.GetLogger()
	}
	r := &Registry{
		descriptors: make(map[string]Descriptor, len(cfg.Profiles)),
		factories:   make(map[string]Factory),
		overrides:   overrides,
		logger:      logger.With("component", "registry"),
	}
	for _, p := range cfg.Profiles {
		full := true
		if p.RequiresFullRadio != nil {
			full = *p.RequiresFullRadio
		}
		r.order = append(r.order, p.Name)
		r.descriptors[p.Name] = Descriptor{
			Name:              p.Name,
			Enabled:           p.Enabled,
			RequiresFullRadio: full,
		}
	}
	return r
}

// Register binds a module factory to a configured profile name.
func (r *Registry) Register(name string, factory Factory) error {
	if _, ok := r.descriptors[name]; !ok {
		return fmt.Errorf("profile '%s' is not configured", name)
	}
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("profile '%s' already has a factory registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Descriptor returns the descriptor for a named profile.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Enabled returns the enabled descriptors matching the given mode, in
// configuration order. Runtime overrides take precedence over the
// static enabled flag.
func (r *Registry) Enabled(mode Mode) []Descriptor {
	var out []Descriptor
	for _, name := range r.order {
		d := r.descriptors[name]
		enabled := d.Enabled
		if r.overrides != nil {
			if o, ok := r.overrides.ProfileEnabled(name); ok {
				enabled = o
			}
		}
		if !enabled {
			continue
		}
		if (mode == Full) != d.RequiresFullRadio {
			continue
		}
		if _, ok := r.factories[name]; !ok {
			r.logger.Warn("Enabled profile has no registered module, skipping", "profile", name)
			continue
		}
		out = append(out, d)
	}
	return out
}

func (r *Registry) factory(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

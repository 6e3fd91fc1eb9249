package bluecore

import (
	"github.com/bluecore/bluecore/core"
	"github.com/bluecore/bluecore/core/config"
	"github.com/bluecore/bluecore/core/identity"
	"github.com/bluecore/bluecore/core/profile"
	"github.com/bluecore/bluecore/core/state"
	"github.com/bluecore/bluecore/core/storage"
	"github.com/bluecore/bluecore/interfaces"
	"github.com/bluecore/bluecore/pkg/logging"
)

// Adapter represents the radio adapter core.
type Adapter struct {
	coreAdapter *core.Adapter
}

// NewAdapter creates a new adapter instance from a loaded configuration,
// a platform radio and a durable store.
func NewAdapter(cfg *config.File, radio state.Radio, store storage.Store, logger logging.Logger) (interfaces.Adapter, error) {
	coreAdapter, err := core.NewAdapter(cfg, radio, store, logger)
	if err != nil {
		return nil, err
	}
	return &Adapter{coreAdapter: coreAdapter}, nil
}

// NewAdapterFromFiles loads configuration from a YAML file and persists
// state under dataDir.
func NewAdapterFromFiles(configPath, dataDir string, radio state.Radio, logger logging.Logger) (interfaces.Adapter, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewFileStore(dataDir)
	if err != nil {
		return nil, err
	}
	return NewAdapter(cfg, radio, store, logger)
}

// RegisterProfile binds a module factory to a configured profile name.
func (a *Adapter) RegisterProfile(name string, factory profile.Factory) error {
	return a.coreAdapter.RegisterProfile(name, factory)
}

// Start begins processing requests.
func (a *Adapter) Start() {
	a.coreAdapter.Start()
}

// Enable asynchronously requests bring-up.
func (a *Adapter) Enable(quiet bool) error {
	return a.coreAdapter.Enable(quiet)
}

// Disable asynchronously requests shutdown toward Off.
func (a *Adapter) Disable() error {
	return a.coreAdapter.Disable()
}

// State returns the current adapter power state.
func (a *Adapter) State() state.State {
	return a.coreAdapter.State()
}

// Subscribe registers an observer for state change notifications.
func (a *Adapter) Subscribe(obs state.Observer) {
	a.coreAdapter.Subscribe(obs)
}

// Unsubscribe removes a previously registered observer.
func (a *Adapter) Unsubscribe(obs state.Observer) {
	a.coreAdapter.Unsubscribe(obs)
}

// ObfuscateAddress maps a device address to its privacy-preserving
// identifier under the current salt.
func (a *Adapter) ObfuscateAddress(addr identity.Address) []byte {
	return a.coreAdapter.ObfuscateAddress(addr)
}

// SetProfileEnabled overrides a profile's enabled flag at runtime.
func (a *Adapter) SetProfileEnabled(name string, enabled bool) error {
	return a.coreAdapter.SetProfileEnabled(name, enabled)
}

// FactoryReset regenerates the salt and clears runtime overrides.
func (a *Adapter) FactoryReset() error {
	return a.coreAdapter.FactoryReset()
}

// Close stops the adapter and flushes mutable state.
func (a *Adapter) Close() error {
	return a.coreAdapter.Close()
}

package core

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/bluecore/bluecore/core/config"
	"github.com/bluecore/bluecore/core/identity"
	"github.com/bluecore/bluecore/core/profile"
	"github.com/bluecore/bluecore/core/state"
	"github.com/bluecore/bluecore/core/storage"
	"github.com/bluecore/bluecore/pkg/logging"
)

// ErrThrottled is returned when enable/disable requests arrive faster
// than the configured toggle limit allows.
var ErrThrottled = errors.New("too many enable/disable requests")

// Adapter is the top-level coordinator: it owns the power state machine,
// the profile lifecycle orchestrator, the obfuscation salt store and the
// factory reset path.
type Adapter struct {
	logger    logging.Logger
	cfg       *config.File
	overrides *config.OverrideSet
	registry  *profile.Registry
	orch      *profile.Orchestrator
	salts     *identity.SaltStore
	reset     *identity.ResetCoordinator
	machine   *state.Machine
	store     storage.Store
	limiter   *rate.Limiter

	mu        sync.Mutex
	observers []state.Observer
}

// NewAdapter wires the core together. The radio and storage collaborators
// are supplied by the platform layer. Call Start before issuing requests
// and Close on the way out.
func NewAdapter(cfg *config.File, radio state.Radio, store storage.Store, logger logging.Logger) (*Adapter, error) {
	if cfg == nil || len(cfg.Profiles) == 0 {
		return nil, fmt.Errorf("adapter must be initialized with at least one profile")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	overrides := config.NewOverrideSet()
	persisted, err := store.ReadConfig()
	switch {
	case err == nil:
		overrides.Load(persisted)
	case errors.Is(err, storage.ErrNotFound):
		// First boot, nothing to layer on.
	default:
		logger.Warn("Failed to load configuration overrides, starting clean", "error", err)
	}

	salts := identity.NewSaltStore(store, logger)
	if err := salts.Load(); err != nil {
		if !errors.Is(err, identity.ErrSaltPersistence) {
			return nil, fmt.Errorf("failed to initialize salt store: %w", err)
		}
		// The in-memory salt works; the commit will be retried on Close.
		logger.Warn("Salt not committed to storage yet", "error", err)
	}

	registry := profile.NewRegistry(cfg, overrides, logger)
	orch := profile.NewOrchestrator(registry, logger)

	a := &Adapter{
		logger:    logger.With("component", "adapter"),
		cfg:       cfg,
		overrides: overrides,
		registry:  registry,
		orch:      orch,
		salts:     salts,
		store:     store,
		limiter:   rate.NewLimiter(rate.Limit(cfg.Toggle.RequestsPerSecond), cfg.Toggle.Burst),
	}
	a.reset = identity.NewResetCoordinator(salts, overrides, logger)
	a.machine = state.NewMachine(radio, orch, a.dispatchStateChange, logger)
	return a, nil
}

// RegisterProfile binds a module factory to a configured profile name.
// All factories must be registered before the adapter is enabled.
func (a *Adapter) RegisterProfile(name string, factory profile.Factory) error {
	return a.registry.Register(name, factory)
}

// Start begins processing enable/disable requests.
func (a *Adapter) Start() {
	a.machine.Start()
}

// Enable asynchronously requests bring-up. With quiet set the adapter
// rests at BleOn; otherwise it continues to On. The outcome is reported
// through observer notifications only.
func (a *Adapter) Enable(quiet bool) error {
	if !a.limiter.Allow() {
		a.logger.Warn("Enable rejected by toggle limiter")
		return ErrThrottled
	}
	return a.machine.Enable(quiet)
}

// Disable asynchronously requests shutdown toward Off.
func (a *Adapter) Disable() error {
	if !a.limiter.Allow() {
		a.logger.Warn("Disable rejected by toggle limiter")
		return ErrThrottled
	}
	return a.machine.Disable()
}

// State returns the current adapter power state.
func (a *Adapter) State() state.State {
	return a.machine.State()
}

// Subscribe registers an observer for state change notifications.
func (a *Adapter) Subscribe(obs state.Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, obs)
}

// Unsubscribe removes a previously registered observer.
func (a *Adapter) Unsubscribe(obs state.Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, o := range a.observers {
		if o == obs {
			a.observers = append(a.observers[:i], a.observers[i+1:]...)
			return
		}
	}
}

func (a *Adapter) dispatchStateChange(prev, next state.State) {
	a.mu.Lock()
	observers := make([]state.Observer, len(a.observers))
	copy(observers, a.observers)
	a.mu.Unlock()
	for _, o := range observers {
		o.OnAdapterStateChange(prev, next)
	}
}

// ObfuscateAddress maps a device address to its privacy-preserving
// identifier under the current salt.
func (a *Adapter) ObfuscateAddress(addr identity.Address) []byte {
	return a.salts.Obfuscate(addr)
}

// SetProfileEnabled overrides whether a profile participates in future
// batches. Takes effect on the next enable cycle.
func (a *Adapter) SetProfileEnabled(name string, enabled bool) error {
	if _, ok := a.registry.Descriptor(name); !ok {
		return fmt.Errorf("unknown profile '%s'", name)
	}
	a.overrides.SetProfileEnabled(name, enabled)
	return nil
}

// FactoryReset regenerates the obfuscation salt and clears runtime
// configuration overrides. Valid in any power state; the power state is
// untouched.
func (a *Adapter) FactoryReset() error {
	return a.reset.FactoryReset()
}

// Close stops the state machine and flushes the salt and the override
// set to durable storage. Only this clean-shutdown flush makes an
// earlier factory reset visible to the next boot.
func (a *Adapter) Close() error {
	a.machine.Close()
	var errs []error
	if err := a.salts.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := a.store.WriteConfig(a.overrides.Snapshot()); err != nil {
		errs = append(errs, fmt.Errorf("failed to persist overrides: %w", err))
	}
	return errors.Join(errs...)
}

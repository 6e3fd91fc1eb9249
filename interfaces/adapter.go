package interfaces

import (
	"github.com/bluecore/bluecore/core/identity"
	"github.com/bluecore/bluecore/core/profile"
	"github.com/bluecore/bluecore/core/state"
)

// Adapter defines the public interface for the radio adapter core.
type Adapter interface {
	// RegisterProfile binds a module factory to a configured profile name.
	RegisterProfile(name string, factory profile.Factory) error
	// Start begins processing requests.
	Start()
	// Enable asynchronously requests bring-up; quiet rests at BleOn.
	Enable(quiet bool) error
	// Disable asynchronously requests shutdown toward Off.
	Disable() error
	// State returns the current adapter power state.
	State() state.State
	// Subscribe registers an observer for state change notifications.
	Subscribe(obs state.Observer)
	// Unsubscribe removes a previously registered observer.
	Unsubscribe(obs state.Observer)
	// ObfuscateAddress maps a device address to its privacy-preserving
	// identifier under the current salt.
	ObfuscateAddress(addr identity.Address) []byte
	// SetProfileEnabled overrides a profile's enabled flag at runtime.
	SetProfileEnabled(name string, enabled bool) error
	// FactoryReset regenerates the salt and clears runtime overrides.
	FactoryReset() error
	// Close stops the adapter and flushes mutable state.
	Close() error
}

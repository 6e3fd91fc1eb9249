package identity

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bluecore/bluecore/core/storage"
	"github.com/bluecore/bluecore/pkg/logging"
	"github.com/bluecore/bluecore/pkg/securerandom"
)

// SaltSize is the length of the obfuscation salt in bytes.
const SaltSize = 32

// ErrSaltPersistence marks failures to commit the salt to durable storage.
// The in-memory salt stays valid when this is returned; obfuscation keeps
// working on the new value.
var ErrSaltPersistence = errors.New("salt persistence failed")

// Salt is the fixed-length secret mixed into address obfuscation.
// It is never logged and never leaves the process.
type Salt [SaltSize]byte

// SaltStore owns the obfuscation salt. It keeps two tiers of state: the
// in-memory salt that obfuscation reads, and the committed salt on durable
// storage that the next boot reconstructs. Regenerate swaps the in-memory
// value only; Flush commits it. A process restart without an intervening
// Flush observes the committed salt, not the transient in-memory one.
type SaltStore struct {
	store  storage.Store
	logger logging.Logger

	mu      sync.RWMutex
	current Salt
	dirty   bool
}

// NewSaltStore returns a store backed by the given durable storage.
// Call Load before first use.
func NewSaltStore(store storage.Store, logger logging.Logger) *SaltStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &SaltStore{
		store:  store,
		logger: logger.With("component", "saltstore"),
	}
}

// Load reads the committed salt, or generates and commits a fresh one on
// first boot. If the first-boot commit fails the in-memory salt is still
// usable; the error is reported as ErrSaltPersistence.
func (s *SaltStore) Load() error {
	buf, err := s.store.ReadSalt()
	switch {
	case err == nil:
		if len(buf) != SaltSize {
			return fmt.Errorf("committed salt has length %d, want %d", len(buf), SaltSize)
		}
		s.mu.Lock()
		copy(s.current[:], buf)
		s.dirty = false
		s.mu.Unlock()
		return nil

	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("No committed salt found, generating a fresh one")
		if _, err := s.Regenerate(); err != nil {
			return err
		}
		if err := s.Flush(); err != nil {
			s.logger.Warn("First-boot salt commit failed, continuing with in-memory salt", "error", err)
			return err
		}
		return nil

	default:
		return fmt.Errorf("failed to load salt: %w", err)
	}
}

// Current returns the in-memory salt.
func (s *SaltStore) Current() Salt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Regenerate atomically replaces the in-memory salt with a fresh
// cryptographically random value and marks it for a later Flush. It never
// touches durable storage, so obfuscation changes immediately while the
// committed salt stays whatever the last Flush wrote.
func (s *SaltStore) Regenerate() (Salt, error) {
	var next Salt
	if err := securerandom.Bytes(next[:]); err != nil {
		return Salt{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	s.mu.Lock()
	s.current = next
	s.dirty = true
	s.mu.Unlock()
	s.logger.Info("Obfuscation salt regenerated")
	return next, nil
}

// Flush commits the in-memory salt to durable storage if it has changed
// since the last commit. Called on clean shutdown.
func (s *SaltStore) Flush() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	salt := s.current
	s.mu.Unlock()

	if err := s.store.WriteSalt(salt[:]); err != nil {
		s.logger.Error("Failed to commit salt", "error", err)
		return fmt.Errorf("%w: %v", ErrSaltPersistence, err)
	}

	// Only clear dirty if no regeneration raced the write.
	s.mu.Lock()
	if s.current == salt {
		s.dirty = false
	}
	s.mu.Unlock()
	return nil
}

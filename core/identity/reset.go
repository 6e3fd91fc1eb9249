package identity

import (
	"github.com/bluecore/bluecore/core/config"
	"github.com/bluecore/bluecore/pkg/logging"
)

// ResetCoordinator performs a factory reset of the adapter's mutable
// configuration: the obfuscation salt is regenerated and every runtime
// override is dropped. It is valid in any adapter power state and never
// changes that state.
type ResetCoordinator struct {
	salts     *SaltStore
	overrides *config.OverrideSet
	logger    logging.Logger
}

// NewResetCoordinator wires the reset path to the salt store and the
// override set it clears.
func NewResetCoordinator(salts *SaltStore, overrides *config.OverrideSet, logger logging.Logger) *ResetCoordinator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ResetCoordinator{
		salts:     salts,
		overrides: overrides,
		logger:    logger.With("component", "factoryreset"),
	}
}

// FactoryReset regenerates the salt unconditionally and clears the
// override set. Two consecutive calls each produce a fresh salt.
func (r *ResetCoordinator) FactoryReset() error {
	if _, err := r.salts.Regenerate(); err != nil {
		return err
	}
	r.overrides.Clear()
	r.logger.Info("Factory reset complete: salt regenerated, overrides cleared")
	return nil
}

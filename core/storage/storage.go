//go:generate mockgen -package=mocks -destination=../../mocks/mock_storage.go github.com/bluecore/bluecore/core/storage Store

package storage

import (
	"errors"

	"github.com/bluecore/bluecore/core/config"
)

// ErrNotFound is returned when a stored value does not exist yet,
// e.g. on the very first boot before a salt has been committed.
var ErrNotFound = errors.New("storage: not found")

// Store is the durable storage collaborator. The salt is an opaque
// fixed-length secret blob; overrides are the runtime configuration
// layered over the static profile set.
type Store interface {
	ReadSalt() ([]byte, error)
	WriteSalt(salt []byte) error
	ReadConfig() (*config.Overrides, error)
	WriteConfig(overrides *config.Overrides) error
}

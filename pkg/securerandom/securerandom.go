package securerandom

import (
	"crypto/rand"
	"fmt"
)

// GetRandomBytes returns n cryptographically secure random bytes.
func GetRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// MustGetRandomBytes is like GetRandomBytes but panics on error.
func MustGetRandomBytes(n int) []byte {
	b, err := GetRandomBytes(n)
	if err != nil {
		panic(fmt.Sprintf("securerandom.MustGetRandomBytes: %v", err))
	}
	return b
}

// Bytes fills the given slice with random bytes from a cryptographically secure source.
// If the crypto/rand source fails, it returns an error instead of falling back to
// an insecure source.
func Bytes(b []byte) error {
	_, err := rand.Read(b)
	if err != nil {
		return fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return nil
}

package identity

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Obfuscate derives the privacy-preserving identifier for an address
// under the given salt. It is a keyed one-way function: deterministic for
// a fixed salt, and changing the salt changes the output for every
// address with overwhelming probability.
func Obfuscate(salt Salt, addr Address) []byte {
	mac := hmac.New(sha256.New, salt[:])
	mac.Write(addr[:])
	return mac.Sum(nil)
}

// Obfuscate derives the identifier for an address under the store's
// current in-memory salt.
func (s *SaltStore) Obfuscate(addr Address) []byte {
	return Obfuscate(s.Current(), addr)
}

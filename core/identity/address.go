package identity

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressSize is the length of a hardware device address in bytes.
const AddressSize = 6

// Address is a 6-byte hardware device address.
type Address [AddressSize]byte

// ParseAddress parses a colon-separated hex address such as
// "00:11:22:33:44:55". Parsing is case-insensitive.
func ParseAddress(s string) (Address, error) {
	var addr Address
	parts := strings.Split(s, ":")
	if len(parts) != AddressSize {
		return addr, fmt.Errorf("invalid address '%s': expected %d octets", s, AddressSize)
	}
	for i, part := range parts {
		b, err := hex.DecodeString(part)
		if err != nil || len(b) != 1 {
			return addr, fmt.Errorf("invalid address octet '%s' in '%s'", part, s)
		}
		addr[i] = b[0]
	}
	return addr, nil
}

// String renders the address in canonical upper-case colon form.
func (a Address) String() string {
	parts := make([]string, AddressSize)
	for i, b := range a {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ":")
}

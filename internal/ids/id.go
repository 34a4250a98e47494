// Package ids provides the 128-bit identifier type shared by games,
// patches and profile references throughout the launcher.
package ids

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// ID is a 128-bit identifier. Equality is bitwise, as required by the
// data model: two IDs are equal iff every byte matches.
type ID uuid.UUID

// Nil is the zero identifier, used to mean "unset".
var Nil ID

// New generates a fresh random identifier.
func New() ID {
	return ID(uuid.New())
}

// Parse reads an identifier from its canonical hyphenated form.
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, err
	}
	return ID(u), nil
}

// ParseHex reads an identifier from a bare 32-character hex string with
// no separators, the form used in filesystem paths (<user_config>/games/<id-hex>).
func ParseHex(s string) (ID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Nil, err
	}
	var id ID
	if len(b) != len(id) {
		return Nil, errHexLength
	}
	copy(id[:], b)
	return id, nil
}

// Hex renders the identifier as a bare 32-character lowercase hex string
// suitable for use as a filesystem path component.
func (id ID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String renders the canonical hyphenated form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is unset (all-zero bytes).
func (id ID) IsZero() bool {
	return id == Nil
}

// Equal reports bitwise equality. Provided for readability at call
// sites that compare identifiers explicitly rather than via ==.
func (id ID) Equal(other ID) bool {
	return id == other
}

var errHexLength = &hexLengthError{}

type hexLengthError struct{}

func (*hexLengthError) Error() string { return "ids: hex string is not 16 bytes" }

// Package invitecode generates the random codes used for organization and
// invitation join links.
package invitecode

import (
	"crypto/rand"
	"encoding/hex"
)

// codeBytes yields 12 hex characters, matching the code length emailed to
// invitees.
const codeBytes = 6

// New returns a fresh random invite code. Uniqueness is enforced by the
// unique index on the collection the code is stored in, not here.
func New() string {
	b := make([]byte, codeBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic("invitecode: " + err.Error())
	}
	return hex.EncodeToString(b)
}

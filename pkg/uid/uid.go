// Package uid provides collision-resistant 64-bit identifiers for entities and assets.
package uid

import (
	"fmt"
	"math/rand/v2"
)

// ID is a 64-bit unique identifier. The zero value is Invalid.
type ID uint64

// Invalid is the reserved "no identifier" sentinel.
const Invalid ID = 0

// Generate returns a new non-zero identifier drawn from the process-wide
// random source. Collisions are not checked against earlier identifiers.
func Generate() ID {
	for {
		if v := rand.Uint64(); v != 0 {
			return ID(v)
		}
	}
}

// IsValid reports whether id is not the Invalid sentinel.
func (id ID) IsValid() bool {
	return id != Invalid
}

// String returns the identifier as 16 hex digits.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

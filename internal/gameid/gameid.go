// internal/gameid/gameid.go
package gameid

import (
	"crypto/rand"
	"fmt"
)

// alphabet is Crockford's base32: no ambiguous i/l/o/u characters, so IDs
// survive being read aloud or typed from a screenshot.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of generated game IDs. 12 characters of base32 is 60 bits of
// entropy, comfortably collision-free at this service's scale while staying
// short enough to share.
const Length = 12

// RandSource allows deterministic ID generation in tests.
type RandSource interface {
	Intn(n int) int
}

// Generator produces short game identifiers.
type Generator struct {
	randSource RandSource
}

// NewGenerator builds a generator. A nil randSource uses crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate returns a new random game ID.
func (g *Generator) Generate() string {
	buf := make([]byte, Length)
	if g.randSource != nil {
		for i := range buf {
			buf[i] = alphabet[g.randSource.Intn(len(alphabet))]
		}
		return string(buf)
	}
	if _, err := rand.Read(buf); err != nil {
		panic("gameid: failed to read random bytes: " + err.Error())
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}

// Generate returns a new random game ID using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Validate checks that id has the expected length and alphabet.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i := 0; i < len(id); i++ {
		valid := false
		for j := 0; j < len(alphabet); j++ {
			if id[i] == alphabet[j] {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

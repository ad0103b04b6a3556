// Package gameid generates sortable round identifiers: a UUIDv7 encoded as
// 26 characters of lowercase Crockford base32.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Length of an encoded identifier
const Length = 26

// Crockford's base32 alphabet, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies randomness; *math/rand/v2.Rand satisfies it
type RandSource interface {
	IntN(n int) int
}

// Generator creates round identifiers
type Generator struct {
	randSource RandSource
	now        func() time.Time
}

// NewGenerator creates a generator. A nil randSource uses crypto/rand and a
// nil now uses time.Now.
func NewGenerator(randSource RandSource, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{randSource: randSource, now: now}
}

// Generate creates an identifier from the wall clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new identifier
func (g *Generator) Generate() string {
	return encode(g.uuidV7())
}

func (g *Generator) uuidV7() [16]byte {
	var id [16]byte

	// 48-bit big-endian millisecond timestamp
	ms := g.now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < len(id); i++ {
			id[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: reading random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10
	return id
}

// encode writes the 128 bits as 26 five-bit groups, with two zero bits of
// padding at the front.
func encode(id [16]byte) string {
	var sb strings.Builder
	sb.Grow(Length)

	acc, nbits := uint32(0), uint(2)
	for _, b := range id {
		acc = acc<<8 | uint32(b)
		nbits += 8
		for nbits >= 5 {
			nbits -= 5
			sb.WriteByte(alphabet[(acc>>nbits)&0x1f])
		}
		acc &= 1<<nbits - 1
	}
	return sb.String()
}

// Timestamp extracts the millisecond timestamp from an identifier
func Timestamp(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}

	// The first 10 characters carry 2 padding bits then the 48 timestamp bits.
	var ms int64
	for i := 0; i < 10; i++ {
		ms = ms<<5 | int64(strings.IndexByte(alphabet, id[i]))
	}
	return time.UnixMilli(ms), nil
}

// Validate checks that id is 26 base32 characters with a leading 0-7
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

// Package random provides seed generation helpers.
//
// NewSeed uses crypto/rand to produce a high-entropy seed for runs that do
// not ask for a fixed one. Derive produces stable child seeds from a master
// seed, so independent random sources can be reproduced from one number.
package random

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Derive returns a deterministic child seed for label under master using
// HMAC-SHA256. Labels should be stable strings such as "sweep:g6:m4:o1".
func Derive(master int64, label string) int64 {
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, uint64(master))
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(label))
	sum := m.Sum(nil)
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

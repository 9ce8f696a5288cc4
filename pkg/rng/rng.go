// Package rng creates the random generators used by a single render.
//
// Every render owns exactly one generator. The palette, the placement sampler and
// the star builder all draw from it in a fixed order, so a seed reproduces the whole
// scene. Renders never use the package-level math/rand source; Fresh takes its
// seed from crypto/rand instead.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// MaxSeed is the largest seed accepted at the configuration boundary.
const MaxSeed = 10_000_000

// New returns a deterministic generator for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Fresh returns a generator seeded from process entropy, together with the seed it
// used so the render can still be reproduced later.
func Fresh() (*rand.Rand, uint64) {
	var b [8]byte
	_, _ = crand.Read(b[:]) // never fails on supported platforms
	seed := binary.LittleEndian.Uint64(b[:]) % (MaxSeed + 1)
	return New(seed), seed
}

// Uniform draws from [lo, hi). When lo == hi it returns lo without consuming a draw.
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

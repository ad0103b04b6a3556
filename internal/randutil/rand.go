package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. A seed of 0
// means "no seed requested" and draws one from the wall clock instead, so
// CLI flags can default to 0.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent generator for the n-th sub-stream of seed,
// used by the simulator to give every game its own reproducible RNG.
func Derive(seed int64, n int) *rand.Rand {
	return New(seed + int64(n)*int64(goldenRatio64>>1))
}

// splitmix64 finalizer
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

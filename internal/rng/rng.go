// Package rng is the deterministic xorshift32 stream used for every
// stochastic decision in level generation and spawning, so a run can be
// reproduced from its logged seed.
package rng

// DefaultSeed replaces a zero seed; zero is a fixed point of xorshift.
const DefaultSeed uint32 = 0x12345678

// golden is the 32-bit golden-ratio constant used to spread chunk indices.
const golden uint32 = 0x9e3779b9

// NextU32 advances an xorshift32 state and returns the new value, which is
// also the new state.
func NextU32(state uint32) (uint32, uint32) {
	x := state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x, x
}

// Mix derives the sub-seed for the chunk at index.
func Mix(seed uint32, index int) uint32 {
	return seed ^ (uint32(index+1) * golden)
}

// FromInt64 folds a 64-bit platform seed into a 32-bit one.
func FromInt64(seed int64) uint32 {
	u := uint64(seed)
	return uint32(u) ^ uint32(u>>32)
}

// Rand is an xorshift32 stream. The zero value is not usable; call New.
type Rand struct {
	s uint32
}

// New returns a stream seeded with seed (DefaultSeed when seed is zero).
func New(seed uint32) *Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Rand{s: seed}
}

// State returns the current internal state.
func (r *Rand) State() uint32 {
	return r.s
}

// Uint32 returns the next raw value.
func (r *Rand) Uint32() uint32 {
	var v uint32
	v, r.s = NextU32(r.s)
	return v
}

// Float returns a value in [0, 1).
func (r *Rand) Float() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Intn returns floor(Float()*n), a value in [0, n). It returns 0 for n <= 0
// without consuming the stream.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float() * float64(n))
}

// Chance returns true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float() < p
}

// Range returns a value in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}

// Shuffle permutes n elements with a Fisher-Yates walk driven by this stream.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}

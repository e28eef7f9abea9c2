package engine

import "math/rand"

// countingSource counts every value drawn from the underlying source so that
// Position reflects source steps, not calls (Intn may draw more than once).
type countingSource struct {
	src rand.Source64
	n   int64
}

func (c *countingSource) Int63() int64 {
	c.n++
	return c.src.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.n++
	return c.src.Uint64()
}

func (c *countingSource) Seed(seed int64) {
	c.n = 0
	c.src.Seed(seed)
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Not safe for concurrent use: one RNG per sampling run, drawn sequentially.
type RNG struct {
	seed int64
	cs   *countingSource
	src  *rand.Rand
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	cs := &countingSource{src: rand.NewSource(seed).(rand.Source64)}
	return &RNG{
		seed: seed,
		cs:   cs,
		src:  rand.New(cs),
	}
}

// Intn returns a uniform integer in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	return r.src.Intn(n)
}

// Between returns a uniform integer in [lo, hi], both inclusive.
func (r *RNG) Between(lo, hi int) int {
	return lo + r.src.Intn(hi-lo+1)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of source steps consumed since creation.
func (r *RNG) Position() int64 {
	return r.cs.n
}

// RestoreRNG creates an RNG and advances it to the given position.
// The result continues exactly where an RNG that consumed position steps would.
func RestoreRNG(seed int64, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.cs.Int63()
	}
	return rng
}

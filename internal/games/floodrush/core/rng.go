package core

// RNG is the entropy source used for piece generation.
// *math/rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// defaultSeed replaces a zero seed, which would lock xorshift at zero.
const defaultSeed = 88172645463325252

// XorShiftRNG is a deterministic pseudo-random number generator (xorshift64).
type XorShiftRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *XorShiftRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = defaultSeed
	}
	return &XorShiftRNG{state: s}
}

// Next returns the next random uint64.
func (r *XorShiftRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *XorShiftRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n). It returns 0 when n <= 0.
func (r *XorShiftRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Package mt implements the MT19937 Mersenne Twister generator.
//
// The output is bit-for-bit identical to the reference C implementation
// (init_genrand / genrand_int32), so a seed shared between two players
// always produces the same tile pattern regardless of platform.
package mt

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// MT is a Mersenne Twister state. It is not safe for concurrent use.
type MT struct {
	seed  int64
	state [n]uint32
	index int
}

// New creates a generator seeded with the low 32 bits of seed.
// Negative seeds wrap the same way a 32-bit unsigned conversion does.
func New(seed int64) *MT {
	g := &MT{}
	g.Seed(seed)
	return g
}

// Seed resets the generator state (init_genrand).
func (g *MT) Seed(seed int64) {
	g.seed = seed
	g.state[0] = uint32(seed)
	for i := 1; i < n; i++ {
		prev := g.state[i-1]
		g.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	g.index = n
}

// Initial returns the seed the generator was created with.
func (g *MT) Initial() int64 {
	return g.seed
}

// twist regenerates the whole state block.
func (g *MT) twist() {
	for k := 0; k < n; k++ {
		y := (g.state[k] & upperMask) | (g.state[(k+1)%n] & lowerMask)
		next := g.state[(k+m)%n] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		g.state[k] = next
	}
	g.index = 0
}

// Uint32 returns the next tempered 32-bit output (genrand_int32).
func (g *MT) Uint32() uint32 {
	if g.index >= n {
		g.twist()
	}

	y := g.state[g.index]
	g.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns a number in [0, 1) with 32-bit resolution,
// the same value the reference random() produces.
func (g *MT) Float64() float64 {
	return float64(g.Uint32()) * (1.0 / 4294967296.0)
}

// Uint64 joins two consecutive outputs, high word first.
// It lets *MT act as a math/rand/v2 Source.
func (g *MT) Uint64() uint64 {
	hi := uint64(g.Uint32())
	lo := uint64(g.Uint32())
	return hi<<32 | lo
}

// Intn returns an integer in [0, k) using floor(Float64()*k).
// Returns 0 when k <= 0.
func (g *MT) Intn(k int) int {
	if k <= 0 {
		return 0
	}
	return int(g.Float64() * float64(k))
}

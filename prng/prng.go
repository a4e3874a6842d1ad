package prng

// Seed is the state every generator starts from.
const Seed = 12345

// LCG is a linear congruential generator using the constants of the
// classic C library rand(). The sequence is fully determined by the seed.
type LCG struct {
	state uint32
}

// New returns a generator in its initial state.
func New() *LCG {
	return &LCG{state: Seed}
}

// Next advances the generator and returns the new state.
func (g *LCG) Next() uint32 {
	g.state = g.state*1103515245 + 12345
	return g.state
}

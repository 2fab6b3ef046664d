package naming

import (
	"math/rand/v2"
	"sync"
)

// Random is the source of every draw the generator makes.
type Random interface {
	// Pick returns an index in [0, n).
	Pick(n int) int
	// Prob returns true with probability p.
	Prob(p float64) bool
}

type globalRandom struct{}

func (globalRandom) Pick(n int) int {
	return rand.IntN(n)
}

func (globalRandom) Prob(p float64) bool {
	return rand.Float64() < p
}

// SeededRandom is a reproducible Random safe for concurrent use.
type SeededRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSeededRandom(seed uint64) *SeededRandom {
	return &SeededRandom{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *SeededRandom) Pick(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

func (r *SeededRandom) Prob(p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64() < p
}

// Package random supplies the randomness used for game IDs and the random
// player strategy.
package random

import (
	"math/rand/v2"
	"sync"
)

// Random is the source of random choices
type Random interface {
	// Intn returns an int in [0, n), or 0 when n <= 0
	Intn(n int) int

	// String returns length characters drawn from alphabet
	String(length int, alphabet string) string
}

// Source is a Random safe for concurrent use
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Source seeded from the runtime's secure generator
func New() *Source {
	return &Source{rng: rand.New(rand.NewChaCha8(seed()))}
}

// NewSeeded returns a reproducible Source
func NewSeeded(s uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func seed() [32]byte {
	var b [32]byte
	for i := 0; i < len(b); i += 8 {
		v := rand.Uint64()
		for j := 0; j < 8; j++ {
			b[i+j] = byte(v >> (8 * j))
		}
	}
	return b
}

func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

func (s *Source) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[s.rng.IntN(len(alphabet))]
	}
	return string(out)
}

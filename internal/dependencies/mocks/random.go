package mocks

import (
	"github.com/mcoot/fourinarow/internal/dependencies/random"
)

var _ random.Random = (*MockRandom)(nil)

// MockRandom replays queued values. An exhausted queue yields 0 and "".
type MockRandom struct {
	ints    []int
	strings []string
}

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn pops the next queued int, wrapped into [0, n)
func (r *MockRandom) Intn(n int) int {
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return ((v % n) + n) % n
}

func (r *MockRandom) String(length int, alphabet string) string {
	if len(r.strings) == 0 {
		return ""
	}
	v := r.strings[0]
	r.strings = r.strings[1:]
	return v
}

func (r *MockRandom) QueueIntn(values ...int) {
	r.ints = append(r.ints, values...)
}

func (r *MockRandom) QueueString(values ...string) {
	r.strings = append(r.strings, values...)
}

// Pending reports how many queued values have not been consumed
func (r *MockRandom) Pending() (ints, strings int) {
	return len(r.ints), len(r.strings)
}

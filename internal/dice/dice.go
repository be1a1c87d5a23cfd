package dice

import (
	"math/rand"
	"sync"
	"time"
)

// Roller is the single source of randomness for the game: target picks,
// riddle and hint templates, and vote tie-breaks all roll through it.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/portal/internal/dice Roller
type Roller interface {
	// Roll returns a value in [1, sides]
	Roll(sides int) int
}

// DefaultRoller provides dice rolling functionality
type DefaultRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *DefaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &DefaultRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random roll with the specified number of sides
func (r *DefaultRoller) Roll(sides int) int {
	if sides < 1 {
		return 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// Pick returns a uniformly chosen index in [0, n). It returns -1 when n is 0.
func Pick(r Roller, n int) int {
	if n <= 0 {
		return -1
	}
	if n == 1 {
		return 0
	}
	idx := r.Roll(n) - 1
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

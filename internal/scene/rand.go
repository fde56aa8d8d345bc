package scene

import (
	"math/rand"
	"time"
)

// Rand is the random source used for sampling and jitter. *math/rand.Rand satisfies it.
// Implementations need not be safe for concurrent use; the Manager owns its source.
type Rand interface {
	Float32() float32
}

// NewRand returns a source seeded with seed. A zero seed means "seed from the clock",
// which is what the interactive binary uses.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

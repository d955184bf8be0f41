package world

import "math/rand"

// Rand is the random stream a generation run draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns the default stream for a seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randInt draws from [0, n), returning 0 without a draw when n <= 0.
func (d *Dungeon) randInt(n int) int {
	if n <= 0 {
		return 0
	}
	return d.rng.Intn(n)
}

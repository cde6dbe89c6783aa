package gamedata

import "math/rand"

// Roll returns a uniform value in [0, n). A non-positive n yields 0, so
// formulas whose random span truncates to zero collapse to their base value.
func Roll(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}

// RollPercent returns a uniform roll in 1..100.
func RollPercent(rng *rand.Rand) int {
	return rng.Intn(100) + 1
}

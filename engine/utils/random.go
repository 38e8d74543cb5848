package utils

import (
	"math/rand"
)

// RandomInt rand int in [min, max)
func RandomInt(r *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}
	return min + r.Intn(max-min)
}

// RandomFloat64 rand float64 in [min, max)
func RandomFloat64(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

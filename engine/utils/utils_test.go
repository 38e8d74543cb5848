package utils

import (
	"math/rand"
	"testing"

	. "github.com/go-playground/assert/v2"
)

func TestCatchPanic(t *testing.T) {
	Equal(t, CatchPanic(func() {}), nil)
	Equal(t, CatchPanic(func() { panic("boom") }), "boom")

	Equal(t, RunPanicless(func() {}), true)
	Equal(t, RunPanicless(func() { panic("boom") }), false)
}

func TestRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := RandomInt(r, -2, 3)
		Equal(t, v >= -2 && v < 3, true)
		f := RandomFloat64(r, 0.5, 1.5)
		Equal(t, f >= 0.5 && f < 1.5, true)
	}
	Equal(t, RandomInt(r, 4, 4), 4)
}

package algo

import (
	"math/rand"
	"testing"

	. "github.com/go-playground/assert/v2"
)

type _WeightItem struct {
	icon   string
	weight float32
}

func (w _WeightItem) Weight() float32 {
	return w.weight
}

func TestRandomWeight(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	items := []IWeight{
		_WeightItem{icon: "△", weight: 1},
		_WeightItem{icon: "○", weight: 0},
		_WeightItem{icon: "❤︎", weight: 9},
	}

	counts := map[string]int{}
	for _, item := range RandomWeight(r, items, 10000) {
		counts[item.(_WeightItem).icon]++
	}
	Equal(t, counts["○"], 0)
	Equal(t, counts["△"]+counts["❤︎"], 10000)
	Equal(t, counts["❤︎"] > 8500, true)
	Equal(t, counts["△"] > 500, true)
}

func TestRandomWeightOnceEmpty(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	Equal(t, RandomWeightOnce(r, nil) == nil, true)
	Equal(t, RandomWeightOnce(r, []IWeight{_WeightItem{weight: 0}}) == nil, true)

	only := _WeightItem{icon: "★", weight: 0.01}
	Equal(t, RandomWeightOnce(r, []IWeight{only}), only)
}

func TestMixArray(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	items := []IWeight{_WeightItem{icon: "a"}, _WeightItem{icon: "b"}, _WeightItem{icon: "c"}}
	mixed := MixArray(r, items)
	Equal(t, len(mixed), 3)
	seen := map[string]bool{}
	for _, item := range mixed {
		seen[item.(_WeightItem).icon] = true
	}
	Equal(t, len(seen), 3)
}

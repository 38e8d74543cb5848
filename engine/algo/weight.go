package algo

import (
	"math/rand"
	"sort"
)

// IWeight weight interface
type IWeight interface {
	Weight() float32
}

type _SortByWeightBox []_WeightBox

func (a _SortByWeightBox) Len() int           { return len(a) }
func (a _SortByWeightBox) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a _SortByWeightBox) Less(i, j int) bool { return a[i].weight < a[j].weight }

type _WeightBox struct {
	orignal IWeight
	weight  float32
}

func boxesOf(items []IWeight) (_SortByWeightBox, float32) {
	boxes := make(_SortByWeightBox, 0, len(items))
	curWeight := float32(0)
	for _, item := range items {
		if item.Weight() <= 0 {
			continue
		}
		curWeight += item.Weight()
		boxes = append(boxes, _WeightBox{
			orignal: item,
			weight:  curWeight,
		})
	}
	sort.Sort(boxes)
	return boxes, curWeight
}

// RandomWeightOnce 根据权重随机一次，没有正权重的元素时返回 nil
func RandomWeightOnce(r *rand.Rand, items []IWeight) IWeight {
	res := RandomWeight(r, items, 1)
	if len(res) < 1 {
		return nil
	}
	return res[0]
}

// RandomWeight 根据权重随机 total 次，可以重复
func RandomWeight(r *rand.Rand, items []IWeight, total int) []IWeight {
	boxes, curWeight := boxesOf(items)
	if len(boxes) == 0 {
		return nil
	}

	result := make([]IWeight, 0, total)
	for i := 0; i < total; i++ {
		w := r.Float32() * curWeight
		idx := sort.Search(len(boxes), func(j int) bool { return w < boxes[j].weight })
		if idx == len(boxes) {
			idx = len(boxes) - 1
		}
		result = append(result, boxes[idx].orignal)
	}
	return result
}

// MixArray 打乱数组
func MixArray(r *rand.Rand, items []IWeight) []IWeight {
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items
}

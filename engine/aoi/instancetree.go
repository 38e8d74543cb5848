package aoi

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tutumagi/scene/engine/coord"
)

// cellKey 索引只关心平面坐标
type cellKey struct {
	x int
	y int
}

func keyOf(c coord.Cell) cellKey {
	return cellKey{x: c.X, y: c.Y}
}

// bucket 一个格子里的实体，保持插入顺序
type bucket struct {
	entities []Entityer
}

func (b *bucket) add(entity Entityer) {
	b.entities = append(b.entities, entity)
}

func (b *bucket) del(entity Entityer) bool {
	for idx, e := range b.entities {
		if e == entity {
			copy(b.entities[idx:], b.entities[idx+1:])
			b.entities[len(b.entities)-1] = nil
			b.entities = b.entities[:len(b.entities)-1]
			return true
		}
	}
	return false
}

// InstanceTree 基于格子桶的空间索引，不持有实体
//	每个实体记录插入时的格子，移除时不依赖实体当前的位置
type InstanceTree struct {
	cells   map[cellKey]*bucket
	entries map[Entityer]cellKey
}

// NewInstanceTree ctor
func NewInstanceTree() *InstanceTree {
	return &InstanceTree{
		cells:   make(map[cellKey]*bucket),
		entries: make(map[Entityer]cellKey),
	}
}

// Insert imp. 同一个实体重复插入会先移除旧的记录
func (t *InstanceTree) Insert(entity Entityer) {
	if _, ok := t.entries[entity]; ok {
		t.Remove(entity)
	}
	key := keyOf(entity.AoiCell())
	b, ok := t.cells[key]
	if !ok {
		b = &bucket{}
		t.cells[key] = b
	}
	b.add(entity)
	t.entries[entity] = key
}

// Remove imp.
func (t *InstanceTree) Remove(entity Entityer) bool {
	key, ok := t.entries[entity]
	if !ok {
		return false
	}
	delete(t.entries, entity)

	b := t.cells[key]
	if b == nil {
		return false
	}
	removed := b.del(entity)
	if len(b.entities) == 0 {
		delete(t.cells, key)
	}
	return removed
}

// Update imp.
func (t *InstanceTree) Update(entity Entityer) bool {
	if !t.Remove(entity) {
		return false
	}
	t.Insert(entity)
	return true
}

// Query imp.
//	半径为负数时按 0 处理
//	窗口格子数比已占用的格子多时，直接遍历已占用的格子
func (t *InstanceTree) Query(cell coord.Cell, rx int, ry int) []Entityer {
	if rx < 0 {
		rx = 0
	}
	if ry < 0 {
		ry = 0
	}

	if rx == 0 && ry == 0 {
		b := t.cells[keyOf(cell)]
		if b == nil {
			return nil
		}
		result := make([]Entityer, len(b.entities))
		copy(result, b.entities)
		return result
	}

	minX, maxX := saturatingSub(cell.X, rx), saturatingAdd(cell.X, rx)
	minY, maxY := saturatingSub(cell.Y, ry), saturatingAdd(cell.Y, ry)

	var keys []cellKey
	if t.windowExceeds(rx, ry) {
		for key := range t.cells {
			if key.x >= minX && key.x <= maxX && key.y >= minY && key.y <= maxY {
				keys = append(keys, key)
			}
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].y != keys[j].y {
				return keys[i].y < keys[j].y
			}
			return keys[i].x < keys[j].x
		})
	} else {
		// 边界可能是 MaxInt，不能用 <= 判断结束
		for y := minY; ; y++ {
			for x := minX; ; x++ {
				key := cellKey{x: x, y: y}
				if _, ok := t.cells[key]; ok {
					keys = append(keys, key)
				}
				if x == maxX {
					break
				}
			}
			if y == maxY {
				break
			}
		}
	}

	var result []Entityer
	for _, key := range keys {
		result = append(result, t.cells[key].entities...)
	}
	return result
}

// windowExceeds 窗口的格子数是否比已占用的格子多
//	先比较半径，避免乘法溢出
func (t *InstanceTree) windowExceeds(rx int, ry int) bool {
	n := len(t.cells)
	if rx >= n || ry >= n {
		return true
	}
	return (2*rx+1)*(2*ry+1) > n
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func saturatingSub(a, b int) int {
	if a < math.MinInt+b {
		return math.MinInt
	}
	return a - b
}

// Contains imp.
func (t *InstanceTree) Contains(entity Entityer) bool {
	_, ok := t.entries[entity]
	return ok
}

// Count of indexed entities
func (t *InstanceTree) Count() int {
	return len(t.entries)
}

// Clear imp.
func (t *InstanceTree) Clear() {
	t.cells = make(map[cellKey]*bucket)
	t.entries = make(map[Entityer]cellKey)
}

// Dump the cells
func (t *InstanceTree) Dump() string {
	keys := make([]cellKey, 0, len(t.cells))
	for key := range t.cells {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y < keys[j].y
		}
		return keys[i].x < keys[j].x
	})

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("<InstanceTree> count:%d cells:%d\n", len(t.entries), len(t.cells)))
	for _, key := range keys {
		ids := make([]string, 0, len(t.cells[key].entities))
		for _, e := range t.cells[key].entities {
			ids = append(ids, e.AoiID())
		}
		sb.WriteString(fmt.Sprintf("[%d,%d] %s\n", key.x, key.y, strings.Join(ids, " ")))
	}
	return sb.String()
}

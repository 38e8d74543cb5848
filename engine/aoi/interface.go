package aoi

import "github.com/tutumagi/scene/engine/coord"

// Systemer 空间索引系统
type Systemer interface {
	Insert(entity Entityer)
	// Remove 按照插入时记录的格子移除，实体已经移动过也能正确移除
	Remove(entity Entityer) bool
	// Update 实体位置变化后调用，等价于 Remove + Insert
	Update(entity Entityer) bool

	// Query 查询 cell 周围 [x-rx, x+rx] × [y-ry, y+ry] 范围内的实体
	Query(cell coord.Cell, rx int, ry int) []Entityer

	Contains(entity Entityer) bool
	Count() int
	Clear()

	// Dump 当前所有节点信息
	Dump() string
}

// Entityer 索引里的实体
type Entityer interface {
	AoiID() string
	// 实体当前所在的格子
	AoiCell() coord.Cell
}

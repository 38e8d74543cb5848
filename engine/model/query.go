package model

import (
	"github.com/tutumagi/scene/engine/coord"
)

// 查询时保留的字段
const (
	QueryFieldID       = "id"
	QueryFieldLoc      = "loc"
	QueryFieldLocation = "location"
)

// InstanceQuerier 按字段查询实例
//	默认实现是线性扫描，以后可以换成二级索引而不影响调用方
type InstanceQuerier interface {
	Query(layer *Layer, field string, value string) ([]*Instance, error)
}

type linearQuerier struct{}

// Query O(n) 扫描
//	loc/location 按 "x,y" 比较平面坐标，格式错误返回 ErrMalformedQuery
//	id 比较实例 id，其他字段按属性的文本形式比较
func (linearQuerier) Query(layer *Layer, field string, value string) ([]*Instance, error) {
	var matches []*Instance

	switch field {
	case QueryFieldLoc, QueryFieldLocation:
		pt, err := coord.ParsePoint(value)
		if err != nil {
			return nil, err
		}
		for _, inst := range layer.instances {
			if inst.pendingDelete {
				continue
			}
			if inst.Cell().SameXY(pt) {
				matches = append(matches, inst)
			}
		}
	case QueryFieldID:
		for _, inst := range layer.instances {
			if !inst.pendingDelete && inst.id == value {
				matches = append(matches, inst)
			}
		}
	default:
		for _, inst := range layer.instances {
			if !inst.pendingDelete && inst.attrs.Match(field, value) {
				matches = append(matches, inst)
			}
		}
	}
	return matches, nil
}

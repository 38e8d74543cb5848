package model

import (
	"fmt"

	"github.com/tutumagi/scene/engine/coord"
	e "github.com/tutumagi/scene/errors"
)

// Location 某个层上的精确坐标
//	只引用层，不持有，层删除后引用会被清空
type Location struct {
	layer *Layer
	exact coord.Exact
}

// NewLocation ctor
func NewLocation(layer *Layer, exact coord.Exact) Location {
	return Location{layer: layer, exact: exact}
}

func (l Location) String() string {
	if l.layer == nil {
		return fmt.Sprintf("<Location>(nil %s)", l.exact)
	}
	return fmt.Sprintf("<Location>(%s %s)", l.layer.id, l.exact)
}

// Layer 所在的层，层删除后为 nil
func (l Location) Layer() *Layer {
	return l.layer
}

// IsValid 是否还在某个层上
func (l Location) IsValid() bool {
	return l.layer != nil && !l.layer.destroyed
}

// ExactLayerCoordinates 层的精确坐标
func (l Location) ExactLayerCoordinates() coord.Exact {
	return l.exact
}

// LayerCoordinates 层的格子坐标
func (l Location) LayerCoordinates() coord.Cell {
	return l.exact.Cell()
}

// MapCoordinates 地图坐标
func (l Location) MapCoordinates() (coord.Exact, error) {
	if !l.IsValid() {
		return coord.Exact{}, e.ErrDetached
	}
	return l.layer.grid.ToMapCoordinates(l.exact), nil
}

// ExactLayerCoordinatesIn 转换到另一个层的精确坐标
func (l Location) ExactLayerCoordinatesIn(other *Layer) (coord.Exact, error) {
	if other == nil || other == l.layer {
		return l.exact, nil
	}
	mapc, err := l.MapCoordinates()
	if err != nil {
		return coord.Exact{}, err
	}
	return other.grid.ToExactLayerCoordinates(mapc), nil
}

// LayerCoordinatesIn 转换到另一个层的格子坐标
func (l Location) LayerCoordinatesIn(other *Layer) (coord.Cell, error) {
	if other == nil || other == l.layer {
		return l.exact.Cell(), nil
	}
	mapc, err := l.MapCoordinates()
	if err != nil {
		return coord.Cell{}, err
	}
	return other.grid.ToLayerCoordinates(mapc), nil
}

package grid

import (
	"fmt"
	"math"

	"github.com/tutumagi/scene/engine/coord"
	e "github.com/tutumagi/scene/errors"
)

// CellGrid 定义层的坐标语义，负责层坐标与地图坐标之间的转换
type CellGrid interface {
	// Type 网格类型，"square" 或者 "hexagonal"
	Type() string
	// ToMapCoordinates 层坐标转换到地图坐标
	ToMapCoordinates(layer coord.Exact) coord.Exact
	// ToExactLayerCoordinates 地图坐标转换到层的精确坐标
	ToExactLayerCoordinates(mapc coord.Exact) coord.Exact
	// ToLayerCoordinates 地图坐标转换到层的格子坐标
	ToLayerCoordinates(mapc coord.Exact) coord.Cell
	// CellCorners 格子在地图坐标下的多边形顶点
	CellCorners(c coord.Cell) []coord.Exact
	// IsAccessible 两个格子是否相邻
	IsAccessible(from coord.Cell, to coord.Cell) bool

	Clone() CellGrid
}

// Transform is the layer to map affine part every grid shares
type Transform struct {
	XScale   float64
	YScale   float64
	XShift   float64
	YShift   float64
	Rotation float64 // 角度

	sin float64
	cos float64
}

// NewTransform validates scales and caches the rotation
func NewTransform(xscale, yscale, xshift, yshift, rotation float64) (Transform, error) {
	if xscale <= 0 || yscale <= 0 {
		return Transform{}, fmt.Errorf("scale %.2f,%.2f: %w", xscale, yscale, e.ErrInvalidGrid)
	}
	rad := rotation * math.Pi / 180
	return Transform{
		XScale:   xscale,
		YScale:   yscale,
		XShift:   xshift,
		YShift:   yshift,
		Rotation: rotation,
		sin:      math.Sin(rad),
		cos:      math.Cos(rad),
	}, nil
}

// IdentityTransform scale 1, no shift, no rotation
func IdentityTransform() Transform {
	t, _ := NewTransform(1, 1, 0, 0, 0)
	return t
}

func (t Transform) apply(v coord.Exact) coord.Exact {
	sx := v.X * t.XScale
	sy := v.Y * t.YScale
	return coord.Exact{
		X: sx*t.cos - sy*t.sin + t.XShift,
		Y: sx*t.sin + sy*t.cos + t.YShift,
		Z: v.Z,
	}
}

func (t Transform) invert(v coord.Exact) coord.Exact {
	tx := v.X - t.XShift
	ty := v.Y - t.YShift
	rx := tx*t.cos + ty*t.sin
	ry := -tx*t.sin + ty*t.cos
	return coord.Exact{
		X: rx / t.XScale,
		Y: ry / t.YScale,
		Z: v.Z,
	}
}

// Equal compares scale, shift and rotation
func (t Transform) Equal(o Transform) bool {
	return t.XScale == o.XScale && t.YScale == o.YScale &&
		t.XShift == o.XShift && t.YShift == o.YShift && t.Rotation == o.Rotation
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

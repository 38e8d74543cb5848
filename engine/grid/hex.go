package grid

import (
	"math"

	"github.com/tutumagi/scene/engine/coord"
)

// 六边形网格行之间的间距
var hexVerticalMultip = math.Sqrt(3) / 2

// 六边形外接圆半径（两条平行边之间的宽度为 1）
var hexRadius = 1 / math.Sqrt(3)

// HexGrid 六边形网格，奇数行向右偏移半个格子
type HexGrid struct {
	Transform
}

// NewHexGrid with transform
func NewHexGrid(t Transform) *HexGrid {
	return &HexGrid{Transform: t}
}

// Type imp.
func (g *HexGrid) Type() string {
	return "hexagonal"
}

func isOdd(v int) bool {
	return v%2 != 0
}

func rowOffset(row int) float64 {
	if isOdd(row) {
		return 0.5
	}
	return 0
}

// 层坐标 -> 未变换的六边形平面坐标
func (g *HexGrid) toHexPlane(layer coord.Exact) coord.Exact {
	row := coord.Round(layer.Y)
	return coord.Exact{
		X: layer.X + rowOffset(row),
		Y: layer.Y * hexVerticalMultip,
		Z: layer.Z,
	}
}

// ToMapCoordinates imp.
func (g *HexGrid) ToMapCoordinates(layer coord.Exact) coord.Exact {
	return g.apply(g.toHexPlane(layer))
}

// ToExactLayerCoordinates imp.
func (g *HexGrid) ToExactLayerCoordinates(mapc coord.Exact) coord.Exact {
	h := g.invert(mapc)
	y := h.Y / hexVerticalMultip
	row := coord.Round(y)
	return coord.Exact{
		X: h.X - rowOffset(row),
		Y: y,
		Z: h.Z,
	}
}

// ToLayerCoordinates 取距离最近的六边形中心
func (g *HexGrid) ToLayerCoordinates(mapc coord.Exact) coord.Cell {
	h := g.invert(mapc)
	guess := g.ToExactLayerCoordinates(mapc).Cell()

	best := guess
	bestDist := math.MaxFloat64
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c := coord.Cell{X: guess.X + dx, Y: guess.Y + dy, Z: guess.Z}
			center := g.toHexPlane(c.Exact())
			ddx := center.X - h.X
			ddy := center.Y - h.Y
			dist := ddx*ddx + ddy*ddy
			if dist < bestDist {
				bestDist = dist
				best = c
			}
		}
	}
	return best
}

// CellCorners imp.
func (g *HexGrid) CellCorners(c coord.Cell) []coord.Exact {
	center := g.toHexPlane(c.Exact())
	corners := make([]coord.Exact, 0, 6)
	for i := 0; i < 6; i++ {
		rad := (30 + 60*float64(i)) * math.Pi / 180
		corners = append(corners, g.apply(coord.Exact{
			X: center.X + hexRadius*math.Cos(rad),
			Y: center.Y + hexRadius*math.Sin(rad),
			Z: center.Z,
		}))
	}
	return corners
}

// IsAccessible 六方向相邻
func (g *HexGrid) IsAccessible(from coord.Cell, to coord.Cell) bool {
	dy := to.Y - from.Y
	dx := to.X - from.X
	switch dy {
	case 0:
		return abs(dx) <= 1
	case 1, -1:
		if isOdd(from.Y) {
			return dx == 0 || dx == 1
		}
		return dx == 0 || dx == -1
	}
	return false
}

// Clone imp.
func (g *HexGrid) Clone() CellGrid {
	return &HexGrid{Transform: g.Transform}
}

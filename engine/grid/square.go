package grid

import "github.com/tutumagi/scene/engine/coord"

// SquareGrid 正方形网格
type SquareGrid struct {
	Transform
}

// NewSquareGrid with transform
func NewSquareGrid(t Transform) *SquareGrid {
	return &SquareGrid{Transform: t}
}

// NewUnitSquareGrid scale 1 square grid, layer coordinates equal map coordinates
func NewUnitSquareGrid() *SquareGrid {
	return NewSquareGrid(IdentityTransform())
}

// Type imp.
func (g *SquareGrid) Type() string {
	return "square"
}

// ToMapCoordinates imp.
func (g *SquareGrid) ToMapCoordinates(layer coord.Exact) coord.Exact {
	return g.apply(layer)
}

// ToExactLayerCoordinates imp.
func (g *SquareGrid) ToExactLayerCoordinates(mapc coord.Exact) coord.Exact {
	return g.invert(mapc)
}

// ToLayerCoordinates imp.
func (g *SquareGrid) ToLayerCoordinates(mapc coord.Exact) coord.Cell {
	return g.invert(mapc).Cell()
}

// CellCorners imp.
func (g *SquareGrid) CellCorners(c coord.Cell) []coord.Exact {
	x := float64(c.X)
	y := float64(c.Y)
	z := float64(c.Z)
	return []coord.Exact{
		g.apply(coord.Exact{X: x - 0.5, Y: y - 0.5, Z: z}),
		g.apply(coord.Exact{X: x + 0.5, Y: y - 0.5, Z: z}),
		g.apply(coord.Exact{X: x + 0.5, Y: y + 0.5, Z: z}),
		g.apply(coord.Exact{X: x - 0.5, Y: y + 0.5, Z: z}),
	}
}

// IsAccessible 八方向相邻
func (g *SquareGrid) IsAccessible(from coord.Cell, to coord.Cell) bool {
	dx := abs(from.X - to.X)
	dy := abs(from.Y - to.Y)
	return dx <= 1 && dy <= 1
}

// Clone imp.
func (g *SquareGrid) Clone() CellGrid {
	return &SquareGrid{Transform: g.Transform}
}

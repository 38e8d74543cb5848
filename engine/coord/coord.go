package coord

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	e "github.com/tutumagi/scene/errors"
)

// Cell 整数格子坐标，用于索引
type Cell struct {
	X int
	Y int
	Z int
}

// Exact 精确坐标（格子内的小数坐标）
type Exact struct {
	X float64
	Y float64
	Z float64
}

// Rect axis aligned bounding box in cell coordinates, both ends inclusive
type Rect struct {
	Min Cell
	Max Cell
}

func (c Cell) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// Equal compares all three axes
func (c Cell) Equal(o Cell) bool {
	return c.X == o.X && c.Y == o.Y && c.Z == o.Z
}

// SameXY compares only the plane axes
func (c Cell) SameXY(o Cell) bool {
	return c.X == o.X && c.Y == o.Y
}

// Add returns c+o
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Exact converts the cell to its centre
func (c Cell) Exact() Exact {
	return Exact{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)}
}

func (v Exact) String() string {
	return fmt.Sprintf("%.2f,%.2f,%.2f", v.X, v.Y, v.Z)
}

// Cell 取整到最近的格子，x.5 向正方向取整
func (v Exact) Cell() Cell {
	return Cell{X: Round(v.X), Y: Round(v.Y), Z: Round(v.Z)}
}

// Add returns v+o
func (v Exact) Add(o Exact) Exact {
	return Exact{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3
func Round(f float64) int {
	return int(math.Floor(f + 0.5))
}

// Extend grows the rect to contain c
func (r *Rect) Extend(c Cell) {
	if c.X < r.Min.X {
		r.Min.X = c.X
	}
	if c.X > r.Max.X {
		r.Max.X = c.X
	}
	if c.Y < r.Min.Y {
		r.Min.Y = c.Y
	}
	if c.Y > r.Max.Y {
		r.Max.Y = c.Y
	}
	if c.Z < r.Min.Z {
		r.Min.Z = c.Z
	}
	if c.Z > r.Max.Z {
		r.Max.Z = c.Z
	}
}

// Contains reports whether c lies in the rect on the x,y plane
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// ParsePoint parses "x,y" or "x,y,z"
func ParsePoint(s string) (Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return Cell{}, fmt.Errorf("%q: %w", s, e.ErrMalformedQuery)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Cell{}, fmt.Errorf("%q: %w", s, e.ErrMalformedQuery)
		}
		vals[i] = v
	}
	return Cell{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

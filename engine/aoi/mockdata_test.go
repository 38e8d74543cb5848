package aoi

import (
	"fmt"

	"github.com/tutumagi/scene/engine/coord"
)

type EntityMock struct {
	id   string
	cell coord.Cell
}

func newEntityMock(id string, x, y int) *EntityMock {
	return &EntityMock{id: id, cell: coord.Cell{X: x, Y: y}}
}

func (e *EntityMock) AoiID() string {
	return e.id
}

func (e *EntityMock) AoiCell() coord.Cell {
	return e.cell
}

func (e *EntityMock) String() string {
	return fmt.Sprintf("<EntityMock %s %s>", e.id, e.cell)
}

func ids(entities []Entityer) []string {
	r := make([]string, 0, len(entities))
	for _, e := range entities {
		r = append(r, e.AoiID())
	}
	return r
}

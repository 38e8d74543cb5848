package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tutumagi/scene/engine/coord"
	"github.com/tutumagi/scene/engine/grid"
)

func newTestLayer(t *testing.T) (*Map, *Layer) {
	t.Helper()
	m := NewMap("m", nil)
	layer, err := m.CreateLayer("ground", grid.NewUnitSquareGrid())
	require.NoError(t, err)
	return m, layer
}

func newTestObject(id string, blocking bool) *Object {
	o := NewObject(id, "test", nil)
	o.SetBlocking(blocking)
	return o
}

func mustCreate(t *testing.T, layer *Layer, obj *Object, x, y int, id string) *Instance {
	t.Helper()
	inst, err := layer.CreateInstance(obj, coord.Cell{X: x, Y: y}, id)
	require.NoError(t, err)
	return inst
}

func instanceIDs(insts []*Instance) []string {
	r := make([]string, 0, len(insts))
	for _, inst := range insts {
		r = append(r, inst.ID())
	}
	return r
}

func layerIDs(layers []*Layer) []string {
	r := make([]string, 0, len(layers))
	for _, layer := range layers {
		r = append(r, layer.ID())
	}
	return r
}

// moveRight 每次 update 向右移动一格
func moveRight() Updater {
	return UpdaterFunc(func(inst *Instance, nowMs int64) ChangeMask {
		exact := inst.Location().ExactLayerCoordinates()
		exact.X++
		inst.SetExactCoordinates(exact)
		return NoChanges
	})
}

func newScaledLayer(t *testing.T, m *Map, id string, scale float64) *Layer {
	t.Helper()
	tr, err := grid.NewTransform(scale, scale, 0, 0, 0)
	require.NoError(t, err)
	layer, err := m.CreateLayer(id, grid.NewSquareGrid(tr))
	require.NoError(t, err)
	return layer
}

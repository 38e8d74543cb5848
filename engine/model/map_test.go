package model

import (
	"testing"

	. "github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutumagi/scene/engine/attr"
	"github.com/tutumagi/scene/engine/coord"
	"github.com/tutumagi/scene/engine/grid"
	e "github.com/tutumagi/scene/errors"
	"github.com/tutumagi/scene/metrics"
)

func TestMapCreateDeleteLayer(t *testing.T) {
	m := NewMap("m", nil)
	ground, err := m.CreateLayer("ground", grid.NewUnitSquareGrid())
	require.NoError(t, err)
	Equal(t, ground.Map() == m, true)

	_, err = m.CreateLayer("ground", grid.NewUnitSquareGrid())
	assert.ErrorIs(t, err, e.ErrDuplicateID)
	_, err = m.CreateLayer("nogrid", nil)
	assert.ErrorIs(t, err, e.ErrInvalidGrid)

	hex, err := m.CreateLayer("hex", grid.NewHexGrid(grid.IdentityTransform()))
	require.NoError(t, err)
	Equal(t, layerIDs(m.Layers()), []string{"ground", "hex"})
	Equal(t, m.Layer("hex") == hex, true)

	var events []string
	m.AddChangeListener(MapListenerFuncs{
		Delete: func(_ *Map, layer *Layer) {
			// 删除前层仍然完整
			events = append(events, "layer:"+layer.ID())
			Equal(t, layer.IsDestroyed(), false)
		},
	})
	ground.AddChangeListener(LayerListenerFuncs{
		Delete: func(_ *Layer, inst *Instance) { events = append(events, "inst:"+inst.ID()) },
	})
	mustCreate(t, ground, newTestObject("tree", false), 0, 0, "t1")
	mustCreate(t, ground, newTestObject("tree", false), 1, 0, "t2")

	require.NoError(t, m.DeleteLayer(ground))
	Equal(t, events, []string{"layer:ground", "inst:t1", "inst:t2"})
	Equal(t, layerIDs(m.Layers()), []string{"hex"})
	Equal(t, ground.Map() == nil, true)
	Equal(t, ground.ListenerCount(), 0)

	other := NewMap("other", nil)
	foreign, err := other.CreateLayer("f", grid.NewUnitSquareGrid())
	require.NoError(t, err)
	assert.ErrorIs(t, m.DeleteLayer(foreign), e.ErrLayerNotFound)
	assert.ErrorIs(t, m.DeleteLayer(nil), e.ErrLayerNotFound)
}

func TestMapTick(t *testing.T) {
	m := NewMap("m", nil)
	a := newScaledLayer(t, m, "a", 1)
	b := newScaledLayer(t, m, "b", 1)
	mover := mustCreate(t, a, newTestObject("cart", false), 0, 0, "cart")
	mustCreate(t, b, newTestObject("rock", false), 0, 0, "rock")

	var notified [][]string
	m.AddChangeListener(MapListenerFuncs{
		Changed: func(_ *Map, changed []*Layer) { notified = append(notified, layerIDs(changed)) },
	})

	// 层和实例的创建
	changed, layers := m.Tick(100)
	Equal(t, changed, true)
	Equal(t, layerIDs(layers), []string{"a", "b"})

	changed, layers = m.Tick(200)
	Equal(t, changed, false)
	Equal(t, len(layers), 0)
	Equal(t, m.IsChanged(), false)

	mover.SetUpdater(moveRight())
	changed, layers = m.Tick(300)
	Equal(t, changed, true)
	Equal(t, layerIDs(layers), []string{"a"})
	Equal(t, layerIDs(m.ChangedLayers()), []string{"a"})
	Equal(t, notified, [][]string{{"a", "b"}, {"a"}})

	// 层的创建算作变化，但是不在列表中
	mover.SetUpdater(nil)
	_, err := m.CreateLayer("c", grid.NewUnitSquareGrid())
	require.NoError(t, err)
	changed, layers = m.Tick(400)
	Equal(t, changed, true)
	Equal(t, len(layers), 0)
	changed, _ = m.Tick(500)
	Equal(t, changed, false)
}

func TestMapTickTimeMultiplier(t *testing.T) {
	m := NewMap("m", nil)
	layer := newScaledLayer(t, m, "a", 1)
	inst := mustCreate(t, layer, newTestObject("cart", false), 0, 0, "cart")

	m.Tick(1000)
	Equal(t, inst.LastUpdate(), int64(1000))

	require.NoError(t, m.SetTimeMultiplier(2))
	Equal(t, m.TimeMultiplier(), 2.0)
	m.Tick(1500)
	Equal(t, inst.LastUpdate(), int64(2000))

	assert.ErrorIs(t, m.SetTimeMultiplier(-1), e.ErrInvalidMultiplier)
}

func TestMapDeleteLayerDuringTick(t *testing.T) {
	m := NewMap("m", nil)
	a := newScaledLayer(t, m, "a", 1)
	b := newScaledLayer(t, m, "b", 1)
	inst := mustCreate(t, a, newTestObject("cart", false), 0, 0, "cart")
	m.Tick(0)

	inst.SetUpdater(UpdaterFunc(func(*Instance, int64) ChangeMask {
		require.NoError(t, m.DeleteLayer(b))
		require.NoError(t, m.DeleteLayer(a))
		return ChangeAction
	}))

	changed, layers := m.Tick(10)
	Equal(t, changed, true)
	// b 在同一帧中仍然被 tick，删除在 fan-out 之后执行
	Equal(t, layerIDs(layers), []string{"a"})
	Equal(t, a.IsDestroyed(), true)
	Equal(t, b.IsDestroyed(), true)
	Equal(t, m.LayerCount(), 0)
	Equal(t, inst.IsDetached(), true)

	changed, _ = m.Tick(20)
	Equal(t, changed, true)
	changed, _ = m.Tick(30)
	Equal(t, changed, false)
}

func TestMapMatchingCoordinates(t *testing.T) {
	m := NewMap("m", nil)
	fine := newScaledLayer(t, m, "fine", 1)
	coarse := newScaledLayer(t, m, "coarse", 2)
	twin := newScaledLayer(t, m, "twin", 1)

	cells, err := m.MatchingCoordinates(coord.Cell{}, coarse, fine)
	require.NoError(t, err)
	Equal(t, cells, []coord.Cell{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}})

	cells, err = m.MatchingCoordinates(coord.Cell{}, fine, coarse)
	require.NoError(t, err)
	Equal(t, cells, []coord.Cell{{X: 0, Y: 0}})

	// 没有格子中心落在其中时，返回中心点所在的格子
	cells, err = m.MatchingCoordinates(coord.Cell{X: 1, Y: 1}, fine, coarse)
	require.NoError(t, err)
	Equal(t, cells, []coord.Cell{{X: 1, Y: 1}})

	for _, c := range []coord.Cell{{X: 0, Y: 0}, {X: 3, Y: -2}, {X: -7, Y: 11}} {
		there, err := m.MatchingCoordinates(c, fine, twin)
		require.NoError(t, err)
		Equal(t, len(there), 1)
		back, err := m.MatchingCoordinates(there[0], twin, fine)
		require.NoError(t, err)
		Equal(t, back, []coord.Cell{c})
	}

	other := NewMap("other", nil)
	foreign := newScaledLayer(t, other, "foreign", 1)
	_, err = m.MatchingCoordinates(coord.Cell{}, fine, foreign)
	assert.ErrorIs(t, err, e.ErrLayerNotFound)
}

func TestMapQueryLayersAndDatasets(t *testing.T) {
	m := NewMap("m", nil)
	a := newScaledLayer(t, m, "a", 1)
	newScaledLayer(t, m, "b", 1)
	a.Attrs().Set("kind", attr.String("terrain"))

	Equal(t, layerIDs(m.QueryLayers("kind", "terrain")), []string{"a"})
	Equal(t, layerIDs(m.QueryLayers("id", "b")), []string{"b"})
	Equal(t, len(m.QueryLayers("kind", "water")), 0)

	base := NewDataset("base")
	nature := NewDataset("nature")
	extra := NewDataset("extra")
	tree, err := nature.CreateObject("tree", nil)
	require.NoError(t, err)
	nature.AddDataset(base)
	extra.AddDataset(base)
	m.AddDataset(nature)
	m.AddDataset(extra)
	m.AddDataset(nature)

	Equal(t, len(m.Datasets()), 2)
	var ids []string
	for _, ds := range m.DatasetsRec() {
		ids = append(ids, ds.ID())
	}
	Equal(t, ids, []string{"nature", "base", "extra"})
	Equal(t, m.Object("tree", "nature") == tree, true)
	Equal(t, m.Object("tree", "") == tree, true)
	Equal(t, m.Object("tree", "base") == nil, true)
}

func TestMapDestroy(t *testing.T) {
	m := NewMap("m", nil)
	a := newScaledLayer(t, m, "a", 1)
	inst := mustCreate(t, a, newTestObject("tree", false), 0, 0, "")

	m.Destroy()
	Equal(t, m.IsDestroyed(), true)
	Equal(t, a.IsDestroyed(), true)
	Equal(t, inst.IsDetached(), true)
	_, err := m.CreateLayer("b", grid.NewUnitSquareGrid())
	assert.ErrorIs(t, err, e.ErrMapNotFound)
	changed, _ := m.Tick(10)
	Equal(t, changed, false)
}

func TestMapReporter(t *testing.T) {
	r := metrics.NewPrometheusReporter("scene")
	m := NewMap("m", nil, WithReporter(r))
	layer := newScaledLayer(t, m, "a", 1)
	mover := mustCreate(t, layer, newTestObject("cart", false), 0, 0, "cart")
	mover.SetUpdater(moveRight())
	mustCreate(t, layer, newTestObject("rock", false), 0, 0, "rock")

	m.Tick(10)
	m.Tick(20)

	n, err := testutil.GatherAndCount(r.Registry(), "scene_tick_duration_seconds")
	assert.NoError(t, err)
	Equal(t, n, 1)
	n, err = testutil.GatherAndCount(r.Registry(), "scene_layers")
	assert.NoError(t, err)
	Equal(t, n, 1)
	n, err = testutil.GatherAndCount(r.Registry(), "scene_instances")
	assert.NoError(t, err)
	Equal(t, n, 1)
	n, err = testutil.GatherAndCount(r.Registry(), "scene_changed_instances_total")
	assert.NoError(t, err)
	Equal(t, n, 1)
}

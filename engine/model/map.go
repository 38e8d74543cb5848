package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutumagi/scene/engine/attr"
	"github.com/tutumagi/scene/engine/coord"
	"github.com/tutumagi/scene/engine/grid"
	"github.com/tutumagi/scene/engine/timeprovider"
	e "github.com/tutumagi/scene/errors"
	"github.com/tutumagi/scene/logger"
	"github.com/tutumagi/scene/metrics"
)

// Option 创建 Map/Model 时的可选项
type Option func(*options)

type options struct {
	reporter metrics.Reporter
}

// WithReporter 指标上报，默认不上报
func WithReporter(r metrics.Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{reporter: metrics.NewNoopReporter()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Map 一组共享同一个地图坐标系的层
type Map struct {
	id    string
	model *Model
	tp    *timeprovider.TimeProvider
	attrs attr.Map

	layers []*Layer
	byID   map[string]*Layer

	datasets []*Dataset

	listeners subscriptions

	// 上一次 tick 之后有层被创建或删除
	changed       bool
	changedLayers []*Layer

	dispatching    int
	pendingDeletes []*Layer
	pendingDestroy bool

	reporter  metrics.Reporter
	destroyed bool
}

// NewMap 创建独立的地图，master 为 nil 时地图自己驱动时间
func NewMap(id string, master *timeprovider.TimeProvider, opts ...Option) *Map {
	o := newOptions(opts)
	if id == "" {
		id = uuid.New().String()
	}
	return &Map{
		id:       id,
		tp:       timeprovider.New(master),
		attrs:    attr.NewMap(),
		byID:     make(map[string]*Layer),
		reporter: o.reporter,
	}
}

func (m *Map) String() string {
	return fmt.Sprintf("<Map>(ID:%s layers:%d)", m.id, len(m.layers))
}

// ID of the map
func (m *Map) ID() string {
	return m.id
}

// Model 所属的模型，独立创建的地图为 nil
func (m *Map) Model() *Model {
	return m.model
}

// Attrs 地图的属性
func (m *Map) Attrs() attr.Map {
	return m.attrs
}

// IsDestroyed 地图已经被销毁
func (m *Map) IsDestroyed() bool {
	return m.destroyed
}

/****************** 层 *****************/

// CreateLayer 创建层，id 为空时自动生成
func (m *Map) CreateLayer(id string, g grid.CellGrid) (*Layer, error) {
	if m.destroyed {
		return nil, fmt.Errorf("create layer on %s: %w", m.id, e.ErrMapNotFound)
	}
	if g == nil {
		return nil, e.ErrInvalidGrid
	}
	if id == "" {
		id = uuid.New().String()
	} else if _, ok := m.byID[id]; ok {
		return nil, fmt.Errorf("layer %s on map %s: %w", id, m.id, e.ErrDuplicateID)
	}

	layer := newLayer(id, m, g)
	m.layers = append(m.layers, layer)
	m.byID[id] = layer
	m.changed = true
	m.reporter.ReportLayers(m.id, len(m.layers))
	logger.Debugf("Map::CreateLayer map=%s layer=%s grid=%s", m.id, id, g.Type())

	m.beginDispatch()
	m.listeners.fanout(func(listener interface{}) {
		listener.(MapListener).OnLayerCreate(m, layer)
	})
	m.endDispatch()

	return layer, nil
}

// DeleteLayer 删除层以及层上的所有实例
//	层不属于该地图时返回 ErrLayerNotFound
//	在 tick 或者监听回调中调用时，删除会延迟到 fan-out 结束后执行
func (m *Map) DeleteLayer(layer *Layer) error {
	if layer == nil || layer.m != m || layer.destroyed {
		return e.ErrLayerNotFound
	}
	if layer.dispatching > 0 {
		layer.pendingDestroy = true
		return nil
	}
	if m.dispatching > 0 {
		for _, l := range m.pendingDeletes {
			if l == layer {
				return nil
			}
		}
		m.pendingDeletes = append(m.pendingDeletes, layer)
		return nil
	}
	m.deleteLayer(layer)
	return nil
}

func (m *Map) deleteLayer(layer *Layer) {
	m.dispatching++
	m.listeners.fanout(func(listener interface{}) {
		listener.(MapListener).OnLayerDelete(m, layer)
	})

	for idx, l := range m.layers {
		if l == layer {
			copy(m.layers[idx:], m.layers[idx+1:])
			m.layers[len(m.layers)-1] = nil
			m.layers = m.layers[:len(m.layers)-1]
			break
		}
	}
	delete(m.byID, layer.id)
	m.reporter.ReportInstances(m.id, layer.id, 0)
	layer.destroy()
	m.changed = true
	m.dispatching--

	m.reporter.ReportLayers(m.id, len(m.layers))
	logger.Debugf("Map::DeleteLayer map=%s layer=%s", m.id, layer.id)
	m.settle()
}

// DeleteLayers 删除所有层
func (m *Map) DeleteLayers() {
	for _, layer := range m.Layers() {
		if err := m.DeleteLayer(layer); err != nil {
			logger.Warn("delete layer failed", zap.String("map", m.id), zap.String("layer", layer.id), zap.Error(err))
		}
	}
}

// Layers 层列表的拷贝，按创建顺序
func (m *Map) Layers() []*Layer {
	r := make([]*Layer, len(m.layers))
	copy(r, m.layers)
	return r
}

// Layer by id, nil if absent
func (m *Map) Layer(id string) *Layer {
	return m.byID[id]
}

// LayerCount 层数量
func (m *Map) LayerCount() int {
	return len(m.layers)
}

// QueryLayers 按 id 或者属性查询层
func (m *Map) QueryLayers(field string, value string) []*Layer {
	var matches []*Layer
	for _, layer := range m.layers {
		if field == QueryFieldID {
			if layer.id == value {
				matches = append(matches, layer)
			}
			continue
		}
		if layer.attrs.Match(field, value) {
			matches = append(matches, layer)
		}
	}
	return matches
}

/****************** dataset *****************/

// AddDataset 引用 dataset，重复添加会被忽略
func (m *Map) AddDataset(ds *Dataset) {
	if ds == nil {
		return
	}
	for _, d := range m.datasets {
		if d == ds {
			return
		}
	}
	m.datasets = append(m.datasets, ds)
}

// Datasets 直接引用的 dataset
func (m *Map) Datasets() []*Dataset {
	r := make([]*Dataset, len(m.datasets))
	copy(r, m.datasets)
	return r
}

// DatasetsRec 递归展开所有引用的 dataset，去重，深度优先
func (m *Map) DatasetsRec() []*Dataset {
	var (
		r    []*Dataset
		seen = make(map[*Dataset]bool)
		walk func(ds *Dataset)
	)
	walk = func(ds *Dataset) {
		if seen[ds] {
			return
		}
		seen[ds] = true
		r = append(r, ds)
		for _, sub := range ds.datasets {
			walk(sub)
		}
	}
	for _, ds := range m.datasets {
		walk(ds)
	}
	return r
}

// Object 在所有 dataset 中查找模板
func (m *Map) Object(id string, namespace string) *Object {
	for _, ds := range m.DatasetsRec() {
		if namespace != "" && ds.id != namespace {
			continue
		}
		if o := ds.Object(id); o != nil {
			return o
		}
	}
	return nil
}

/****************** tick *****************/

// Tick 推进时间并 tick 所有层，返回是否有变化以及变化的层
//	层的创建和删除也算变化，但是不在返回的列表中
func (m *Map) Tick(realNowMs int64) (bool, []*Layer) {
	if m.destroyed {
		return false, nil
	}
	start := time.Now()
	now := m.tp.Advance(realNowMs)

	m.beginDispatch()

	var changed []*Layer
	for _, layer := range m.layers {
		if layer.destroyed || layer.m != m {
			continue
		}
		if ok, _ := layer.Tick(now); ok {
			changed = append(changed, layer)
		}
	}
	m.changedLayers = changed

	if len(changed) > 0 {
		m.listeners.fanout(func(listener interface{}) {
			listener.(MapListener).OnMapChanged(m, changed)
		})
	}

	retval := m.changed || len(changed) > 0
	m.changed = false

	m.endDispatch()
	m.reporter.ReportTick(m.id, time.Since(start), len(changed))
	return retval, changed
}

// ChangedLayers 上一次 tick 变化的层
func (m *Map) ChangedLayers() []*Layer {
	r := make([]*Layer, len(m.changedLayers))
	copy(r, m.changedLayers)
	return r
}

// IsChanged 上一次 tick 是否有层变化
func (m *Map) IsChanged() bool {
	return len(m.changedLayers) > 0
}

/****************** 时间 *****************/

// TimeProvider 地图的时间
func (m *Map) TimeProvider() *timeprovider.TimeProvider {
	return m.tp
}

// SetTimeMultiplier 设置地图的时间倍率
func (m *Map) SetTimeMultiplier(multiplier float64) error {
	return m.tp.SetMultiplier(multiplier)
}

// TimeMultiplier 地图的时间倍率
func (m *Map) TimeMultiplier() float64 {
	return m.tp.Multiplier()
}

/****************** 坐标 *****************/

// MatchingCoordinates from 层上的一个格子对应 to 层上的哪些格子
//	返回中心点落在该格子内的所有格子，按行优先排序，至少包含中心点所在的格子
func (m *Map) MatchingCoordinates(cell coord.Cell, from *Layer, to *Layer) ([]coord.Cell, error) {
	if from == nil || from.m != m || to == nil || to.m != m {
		return nil, e.ErrLayerNotFound
	}
	if from == to {
		return []coord.Cell{cell}, nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range from.grid.CellCorners(cell) {
		p := to.grid.ToExactLayerCoordinates(corner)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	var matches []coord.Cell
	for y := int(math.Floor(minY)) - 1; y <= int(math.Ceil(maxY))+1; y++ {
		for x := int(math.Floor(minX)) - 1; x <= int(math.Ceil(maxX))+1; x++ {
			candidate := coord.Cell{X: x, Y: y, Z: cell.Z}
			back := from.grid.ToLayerCoordinates(to.grid.ToMapCoordinates(candidate.Exact()))
			if back.SameXY(cell) {
				matches = append(matches, candidate)
			}
		}
	}

	if len(matches) == 0 {
		centre := to.grid.ToLayerCoordinates(from.grid.ToMapCoordinates(cell.Exact()))
		centre.Z = cell.Z
		matches = append(matches, centre)
	}
	return matches, nil
}

/****************** 监听 *****************/

// AddChangeListener 添加监听，返回的凭证用于取消
func (m *Map) AddChangeListener(listener MapListener) *Subscription {
	return m.listeners.add(listener)
}

// RemoveChangeListener 取消监听
func (m *Map) RemoveChangeListener(sub *Subscription) error {
	if sub == nil || sub.owner != &m.listeners {
		return e.ErrListenerNotFound
	}
	return sub.Cancel()
}

// ListenerCount 当前监听数量
func (m *Map) ListenerCount() int {
	return m.listeners.count()
}

func (m *Map) beginDispatch() {
	m.dispatching++
}

func (m *Map) endDispatch() {
	m.dispatching--
	m.settle()
}

func (m *Map) settle() {
	if m.dispatching > 0 {
		return
	}
	for m.dispatching == 0 && len(m.pendingDeletes) > 0 {
		layer := m.pendingDeletes[0]
		m.pendingDeletes = m.pendingDeletes[1:]
		if err := m.DeleteLayer(layer); err != nil {
			logger.Debugf("Map::settle skip layer=%s err=%v", layer.id, err)
		}
	}
	if m.pendingDestroy {
		m.pendingDestroy = false
		m.destroy()
	}
}

// Destroy 删除所有层，然后清空地图
//	在 tick 或者监听回调中调用时延迟执行
//	属于 Model 的地图同时从 Model 中移除
func (m *Map) Destroy() {
	if md := m.model; md != nil {
		if err := md.DeleteMap(m); err != nil {
			logger.Warn("destroy map failed", zap.String("map", m.id), zap.Error(err))
		}
		return
	}
	m.destroy()
}

func (m *Map) destroy() {
	if m.destroyed {
		return
	}
	if m.dispatching > 0 {
		m.pendingDestroy = true
		return
	}
	m.DeleteLayers()
	m.listeners.clear()
	m.datasets = nil
	m.changedLayers = nil
	m.destroyed = true
	m.reporter.ReportLayers(m.id, 0)
	logger.Debugf("Map::Destroy id=%s", m.id)
}

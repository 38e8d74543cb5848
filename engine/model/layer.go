package model

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutumagi/scene/engine/aoi"
	"github.com/tutumagi/scene/engine/attr"
	"github.com/tutumagi/scene/engine/coord"
	"github.com/tutumagi/scene/engine/grid"
	e "github.com/tutumagi/scene/errors"
	"github.com/tutumagi/scene/logger"
)

// PathingStrategy 层上移动的方式
type PathingStrategy int8

// 移动方式
const (
	CellEdgesOnly PathingStrategy = iota
	CellEdgesAndDiagonals
	FreeInCellMovement
)

// Layer 地图上的一个网格平面，持有其上的所有实例以及空间索引
type Layer struct {
	id    string
	m     *Map
	grid  grid.CellGrid
	attrs attr.Map

	instances []*Instance
	byID      map[string]*Instance

	tree    aoi.Systemer
	querier InstanceQuerier

	visible bool
	pathing PathingStrategy

	// 上一次 tick 之后是否有变化（包括创建和删除）
	changed          bool
	changedInstances []*Instance

	listeners subscriptions

	// 大于 0 时处于 tick 或者 fan-out 中，此时的删除会延迟执行
	dispatching    int
	pendingDeletes []*Instance
	pendingDestroy bool

	destroyed bool
}

func newLayer(id string, m *Map, g grid.CellGrid) *Layer {
	return &Layer{
		id:      id,
		m:       m,
		grid:    g,
		attrs:   attr.NewMap(),
		byID:    make(map[string]*Instance),
		tree:    aoi.NewInstanceTree(),
		querier: linearQuerier{},
		visible: true,
		pathing: CellEdgesOnly,
	}
}

func (l *Layer) String() string {
	if l == nil {
		return "nil"
	}
	return fmt.Sprintf("<Layer>(ID:%s grid:%s count:%d)", l.id, l.grid.Type(), len(l.instances))
}

/****************** Getter/Setter *****************/

// ID of the layer
func (l *Layer) ID() string {
	return l.id
}

// Map 所属的地图，删除后为 nil
func (l *Layer) Map() *Map {
	return l.m
}

// Grid 层的网格定义
func (l *Layer) Grid() grid.CellGrid {
	return l.grid
}

// Attrs 层的属性，可以直接修改
func (l *Layer) Attrs() attr.Map {
	return l.attrs
}

// IsDestroyed 层已经被删除
func (l *Layer) IsDestroyed() bool {
	return l.destroyed
}

// SetInstancesVisible 设置实例是否可见
func (l *Layer) SetInstancesVisible(visible bool) {
	l.visible = visible
}

// ToggleInstancesVisible 切换实例是否可见
func (l *Layer) ToggleInstancesVisible() {
	l.visible = !l.visible
}

// AreInstancesVisible 实例是否可见
func (l *Layer) AreInstancesVisible() bool {
	return l.visible
}

// SetPathingStrategy 设置移动方式
func (l *Layer) SetPathingStrategy(s PathingStrategy) {
	l.pathing = s
}

// PathingStrategy 移动方式
func (l *Layer) PathingStrategy() PathingStrategy {
	return l.pathing
}

// SetQuerier 替换字段查询的实现，nil 恢复线性扫描
func (l *Layer) SetQuerier(q InstanceQuerier) {
	if q == nil {
		q = linearQuerier{}
	}
	l.querier = q
}

// AOIDump dump the spatial index
func (l *Layer) AOIDump() string {
	return l.tree.Dump()
}

/****************** 实例相关 *****************/

// CreateInstance 在格子坐标上创建实例
func (l *Layer) CreateInstance(object *Object, cell coord.Cell, id string) (*Instance, error) {
	return l.CreateInstanceExact(object, cell.Exact(), id)
}

// CreateInstanceExact 在精确坐标上创建实例，id 为空时自动生成
//	返回的实例仍然由层持有
func (l *Layer) CreateInstanceExact(object *Object, exact coord.Exact, id string) (*Instance, error) {
	if l.destroyed {
		return nil, fmt.Errorf("create instance on %s: %w", l.id, e.ErrLayerNotFound)
	}
	if object == nil {
		return nil, e.ErrNilObject
	}
	if id == "" {
		id = uuid.New().String()
	} else if _, ok := l.byID[id]; ok {
		return nil, fmt.Errorf("instance %s on layer %s: %w", id, l.id, e.ErrDuplicateID)
	}

	inst := newInstance(object, NewLocation(l, exact), id)
	l.instances = append(l.instances, inst)
	l.byID[id] = inst
	l.tree.Insert(inst)
	l.changed = true

	l.beginDispatch()
	l.listeners.fanout(func(listener interface{}) {
		listener.(LayerListener).OnInstanceCreate(l, inst)
	})
	l.endDispatch()

	l.reportInstances()
	return inst, nil
}

// DeleteInstance 删除实例
//	实例不属于该层时返回 ErrInstanceNotFound
//	在 tick 或者监听回调中调用时，删除会延迟到 fan-out 结束后执行
func (l *Layer) DeleteInstance(inst *Instance) error {
	if inst == nil || inst.location.layer != l || l.destroyed {
		return e.ErrInstanceNotFound
	}
	if inst.pendingDelete {
		return nil
	}
	if l.dispatching > 0 {
		inst.pendingDelete = true
		l.pendingDeletes = append(l.pendingDeletes, inst)
		return nil
	}
	l.deleteInstance(inst)
	return nil
}

func (l *Layer) deleteInstance(inst *Instance) {
	l.beginDispatch()
	l.listeners.fanout(func(listener interface{}) {
		listener.(LayerListener).OnInstanceDelete(l, inst)
	})
	l.dispatching--

	l.tree.Remove(inst)
	for idx, it := range l.instances {
		if it == inst {
			copy(l.instances[idx:], l.instances[idx+1:])
			l.instances[len(l.instances)-1] = nil
			l.instances = l.instances[:len(l.instances)-1]
			break
		}
	}
	delete(l.byID, inst.id)
	inst.detach()
	l.changed = true

	l.reportInstances()
	// 回调中产生的删除
	l.settle()
}

// MoveInstance 移动实例并同步空间索引
func (l *Layer) MoveInstance(inst *Instance, exact coord.Exact) error {
	if inst == nil || inst.location.layer != l || inst.pendingDelete {
		return e.ErrInstanceNotFound
	}
	inst.SetExactCoordinates(exact)
	l.tree.Update(inst)
	return nil
}

// Instances 实例列表的拷贝
func (l *Layer) Instances() []*Instance {
	r := make([]*Instance, len(l.instances))
	copy(r, l.instances)
	return r
}

// Instance by id, nil if absent
func (l *Layer) Instance(id string) *Instance {
	return l.byID[id]
}

// HasInstances 是否有实例
func (l *Layer) HasInstances() bool {
	return len(l.instances) > 0
}

// InstanceCount 实例数量
func (l *Layer) InstanceCount() int {
	return len(l.instances)
}

// QueryInstances 按字段查询实例，字段含义见 InstanceQuerier
func (l *Layer) QueryInstances(field string, value string) ([]*Instance, error) {
	return l.querier.Query(l, field, value)
}

// InstancesAt 空间查询 cell 附近的实例
func (l *Layer) InstancesAt(cell coord.Cell, rx int, ry int) []*Instance {
	found := l.tree.Query(cell, rx, ry)
	r := make([]*Instance, 0, len(found))
	for _, f := range found {
		// 等待删除的实例已经不可见
		if inst := f.(*Instance); !inst.pendingDelete {
			r = append(r, inst)
		}
	}
	return r
}

// HasBlockingInstanceAt 格子上是否有阻挡的实例
func (l *Layer) HasBlockingInstanceAt(cell coord.Cell) bool {
	for _, f := range l.tree.Query(cell, 0, 0) {
		inst := f.(*Instance)
		if !inst.pendingDelete && inst.IsBlocking() && inst.Cell().Equal(cell) {
			return true
		}
	}
	return false
}

// BoundingBox 所有实例在 ref 层坐标下的包围盒，ref 为 nil 时使用自己
//	没有实例时返回 ErrEmptyLayer
func (l *Layer) BoundingBox(ref *Layer) (coord.Rect, error) {
	if ref == nil {
		ref = l
	}
	var (
		rect  coord.Rect
		found bool
	)
	for _, inst := range l.instances {
		if inst.pendingDelete {
			continue
		}
		c, err := inst.location.LayerCoordinatesIn(ref)
		if err != nil {
			return coord.Rect{}, err
		}
		if !found {
			rect = coord.Rect{Min: c, Max: c}
			found = true
			continue
		}
		rect.Extend(c)
	}
	if !found {
		return coord.Rect{}, fmt.Errorf("bounding box of %s: %w", l.id, e.ErrEmptyLayer)
	}
	return rect, nil
}

/****************** tick *****************/

// Tick 更新所有实例，返回这一帧是否有变化以及变化的实例
//	变化标记是边沿触发的，返回后就被清空
func (l *Layer) Tick(nowMs int64) (bool, []*Instance) {
	if l.destroyed {
		return false, nil
	}
	l.beginDispatch()

	var changed []*Instance
	snapshot := l.instances
	for _, inst := range snapshot {
		if inst.pendingDelete || inst.location.layer != l {
			continue
		}
		mask := inst.Update(nowMs)
		if mask == NoChanges {
			continue
		}
		if mask.Has(ChangeLocation) {
			l.tree.Update(inst)
		}
		changed = append(changed, inst)
		l.changed = true
	}
	l.changedInstances = changed

	if len(changed) > 0 {
		l.listeners.fanout(func(listener interface{}) {
			listener.(LayerListener).OnLayerChanged(l, changed)
		})
		if l.m != nil {
			l.m.reporter.ReportChangedInstances(l.m.id, l.id, len(changed))
		}
	}

	retval := l.changed
	l.changed = false

	// 延迟的删除会把 changed 标记到下一帧
	l.endDispatch()
	return retval, changed
}

// ChangedInstances 上一次 tick 变化的实例
func (l *Layer) ChangedInstances() []*Instance {
	r := make([]*Instance, len(l.changedInstances))
	copy(r, l.changedInstances)
	return r
}

// IsChanged 上一次 tick 是否有实例变化
func (l *Layer) IsChanged() bool {
	return len(l.changedInstances) > 0
}

/****************** 监听 *****************/

// AddChangeListener 添加监听，返回的凭证用于取消
func (l *Layer) AddChangeListener(listener LayerListener) *Subscription {
	return l.listeners.add(listener)
}

// RemoveChangeListener 取消监听
func (l *Layer) RemoveChangeListener(sub *Subscription) error {
	if sub == nil || sub.owner != &l.listeners {
		return e.ErrListenerNotFound
	}
	return sub.Cancel()
}

// ListenerCount 当前监听数量
func (l *Layer) ListenerCount() int {
	return l.listeners.count()
}

func (l *Layer) beginDispatch() {
	l.dispatching++
}

func (l *Layer) endDispatch() {
	l.dispatching--
	l.settle()
}

// settle 最外层的 fan-out 结束后执行延迟的删除
func (l *Layer) settle() {
	if l.dispatching > 0 {
		return
	}
	l.drain()

	if l.pendingDestroy && l.m != nil {
		l.pendingDestroy = false
		if err := l.m.DeleteLayer(l); err != nil {
			logger.Warn("deferred layer delete failed", zap.String("layer", l.id), zap.Error(err))
		}
	}
}

func (l *Layer) drain() {
	for l.dispatching == 0 && len(l.pendingDeletes) > 0 {
		inst := l.pendingDeletes[0]
		l.pendingDeletes = l.pendingDeletes[1:]
		if inst.location.layer != l {
			continue
		}
		l.deleteInstance(inst)
	}
}

// destroy 删除所有实例，然后清空层，按 实例 -> 层 的顺序
func (l *Layer) destroy() {
	l.dispatching++
	for _, inst := range l.instances {
		in := inst
		l.listeners.fanout(func(listener interface{}) {
			listener.(LayerListener).OnInstanceDelete(l, in)
		})
	}
	l.dispatching--

	for _, inst := range l.instances {
		inst.detach()
	}
	l.tree.Clear()
	l.instances = nil
	l.byID = make(map[string]*Instance)
	l.pendingDeletes = nil
	l.changedInstances = nil
	l.listeners.clear()
	l.m = nil
	l.destroyed = true

	logger.Debugf("Layer::destroy id=%s", l.id)
}

func (l *Layer) reportInstances() {
	if l.m != nil {
		l.m.reporter.ReportInstances(l.m.id, l.id, len(l.instances))
	}
}

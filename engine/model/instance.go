package model

import (
	"fmt"

	"github.com/tutumagi/scene/engine/attr"
	"github.com/tutumagi/scene/engine/coord"
)

// ChangeMask 实例在一次 tick 中发生的变化
type ChangeMask uint32

// NoChanges 没有任何变化
const NoChanges ChangeMask = 0

// 变化类型
const (
	ChangeLocation ChangeMask = 1 << iota
	ChangeRotation
	ChangeSpeed
	ChangeAction
	ChangeAnimation
	ChangeTimeMultiplier
	ChangeAttributes
)

// Has any of the bits
func (m ChangeMask) Has(bits ChangeMask) bool {
	return m&bits != 0
}

// Updater 实例自己的更新逻辑（移动，动画等），返回这一帧产生的变化
type Updater interface {
	Update(instance *Instance, nowMs int64) ChangeMask
}

// UpdaterFunc adapter
type UpdaterFunc func(instance *Instance, nowMs int64) ChangeMask

// Update imp.
func (f UpdaterFunc) Update(instance *Instance, nowMs int64) ChangeMask {
	return f(instance, nowMs)
}

// Instance 层上的实例，只能通过 Layer.CreateInstance 创建，由层持有
type Instance struct {
	id       string
	object   *Object
	location Location

	attrs      attr.Map
	rotation   int
	action     string
	speed      float64
	multiplier float64

	updater Updater
	pending ChangeMask

	lastUpdate int64

	// 在 tick 中被删除，等待 fan-out 结束后真正删除
	pendingDelete bool
}

func newInstance(object *Object, location Location, id string) *Instance {
	return &Instance{
		id:       id,
		object:   object,
		location: location,
		attrs:    object.Defaults(),

		multiplier: 1,
	}
}

func (i *Instance) String() string {
	return fmt.Sprintf("<Instance>(id:%s object:%s loc:%s)", i.id, i.object.id, i.location.exact)
}

/****************** aoi.Entityer *****************/

// AoiID imp.
func (i *Instance) AoiID() string {
	return i.id
}

// AoiCell imp.
func (i *Instance) AoiCell() coord.Cell {
	return i.location.LayerCoordinates()
}

/****************** Getter *****************/

// ID of the instance
func (i *Instance) ID() string {
	return i.id
}

// Object 模板
func (i *Instance) Object() *Object {
	return i.object
}

// Layer 所属的层，删除后为 nil
func (i *Instance) Layer() *Layer {
	return i.location.layer
}

// IsDetached 已经从层中删除
func (i *Instance) IsDetached() bool {
	return i.location.layer == nil
}

// Location 当前位置的拷贝
func (i *Instance) Location() Location {
	return i.location
}

// Cell 当前的格子坐标
func (i *Instance) Cell() coord.Cell {
	return i.location.LayerCoordinates()
}

// IsBlocking 模板是否阻挡
func (i *Instance) IsBlocking() bool {
	return i.object.IsBlocking()
}

// Rotation in degrees [0, 360)
func (i *Instance) Rotation() int {
	return i.rotation
}

// Action current action name
func (i *Instance) Action() string {
	return i.action
}

// Speed 移动速度，单位是格子每秒
func (i *Instance) Speed() float64 {
	return i.speed
}

// TimeMultiplier 实例自己的时间倍率
func (i *Instance) TimeMultiplier() float64 {
	return i.multiplier
}

// LastUpdate 上一次 Update 的时间
func (i *Instance) LastUpdate() int64 {
	return i.lastUpdate
}

// Attr value and presence
func (i *Instance) Attr(key string) (attr.Value, bool) {
	return i.attrs.Get(key)
}

// Attrs 属性的拷贝
func (i *Instance) Attrs() attr.Map {
	return i.attrs.Copy()
}

/****************** Mutator *****************/

// SetAttr 设置属性，标记 ChangeAttributes
func (i *Instance) SetAttr(key string, v attr.Value) {
	old, ok := i.attrs.Get(key)
	if ok && old.Equal(v) {
		return
	}
	if !ok && !v.IsValid() {
		return
	}
	i.attrs.Set(key, v)
	i.pending |= ChangeAttributes
}

// SetRotation 设置朝向
func (i *Instance) SetRotation(degrees int) {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	if degrees == i.rotation {
		return
	}
	i.rotation = degrees
	i.pending |= ChangeRotation
}

// SetAction 设置当前动作
func (i *Instance) SetAction(action string) {
	if action == i.action {
		return
	}
	i.action = action
	i.pending |= ChangeAction
}

// SetSpeed 设置移动速度
func (i *Instance) SetSpeed(speed float64) {
	if speed == i.speed {
		return
	}
	i.speed = speed
	i.pending |= ChangeSpeed
}

// SetTimeMultiplier 设置实例的时间倍率，负数会被忽略
func (i *Instance) SetTimeMultiplier(multiplier float64) {
	if multiplier < 0 || multiplier == i.multiplier {
		return
	}
	i.multiplier = multiplier
	i.pending |= ChangeTimeMultiplier
}

// MarkChanged 外部逻辑（比如动画推进）标记的变化
func (i *Instance) MarkChanged(mask ChangeMask) {
	i.pending |= mask
}

// SetUpdater 设置更新逻辑
func (i *Instance) SetUpdater(u Updater) {
	i.updater = u
}

// SetExactCoordinates 直接修改位置
//	不会同步空间索引，下一次 Layer.Tick 才会重新索引；需要立即同步请使用 Layer.MoveInstance
func (i *Instance) SetExactCoordinates(exact coord.Exact) {
	if i.location.exact == exact {
		return
	}
	i.location.exact = exact
	i.pending |= ChangeLocation
}

// Update 每帧调用，返回这一帧的变化并清空
func (i *Instance) Update(nowMs int64) ChangeMask {
	if i.IsDetached() {
		return NoChanges
	}
	mask := NoChanges
	if i.updater != nil {
		mask |= i.updater.Update(i, nowMs)
	}
	mask |= i.pending
	i.pending = NoChanges
	i.lastUpdate = nowMs
	return mask
}

func (i *Instance) detach() {
	i.location.layer = nil
	i.pending = NoChanges
	i.pendingDelete = false
}

package model

import (
	"github.com/tutumagi/scene/engine/utils"
	e "github.com/tutumagi/scene/errors"
)

// LayerListener 层的变化监听
type LayerListener interface {
	// OnLayerChanged 一次 tick 中有实例发生变化，changed 只读
	OnLayerChanged(layer *Layer, changed []*Instance)
	// OnInstanceCreate 实例创建后
	OnInstanceCreate(layer *Layer, instance *Instance)
	// OnInstanceDelete 实例删除前，此时还可以读取实例的状态
	OnInstanceDelete(layer *Layer, instance *Instance)
}

// MapListener 地图的变化监听
type MapListener interface {
	// OnMapChanged 一次 tick 中有层发生变化，不包含层的创建和删除
	OnMapChanged(m *Map, changed []*Layer)
	// OnLayerCreate 层创建后
	OnLayerCreate(m *Map, layer *Layer)
	// OnLayerDelete 层删除前
	OnLayerDelete(m *Map, layer *Layer)
}

// LayerListenerFuncs 用函数实现 LayerListener，nil 的函数会被忽略
type LayerListenerFuncs struct {
	Changed func(layer *Layer, changed []*Instance)
	Create  func(layer *Layer, instance *Instance)
	Delete  func(layer *Layer, instance *Instance)
}

// OnLayerChanged imp.
func (f LayerListenerFuncs) OnLayerChanged(layer *Layer, changed []*Instance) {
	if f.Changed != nil {
		f.Changed(layer, changed)
	}
}

// OnInstanceCreate imp.
func (f LayerListenerFuncs) OnInstanceCreate(layer *Layer, instance *Instance) {
	if f.Create != nil {
		f.Create(layer, instance)
	}
}

// OnInstanceDelete imp.
func (f LayerListenerFuncs) OnInstanceDelete(layer *Layer, instance *Instance) {
	if f.Delete != nil {
		f.Delete(layer, instance)
	}
}

// MapListenerFuncs 用函数实现 MapListener，nil 的函数会被忽略
type MapListenerFuncs struct {
	Changed func(m *Map, changed []*Layer)
	Create  func(m *Map, layer *Layer)
	Delete  func(m *Map, layer *Layer)
}

// OnMapChanged imp.
func (f MapListenerFuncs) OnMapChanged(m *Map, changed []*Layer) {
	if f.Changed != nil {
		f.Changed(m, changed)
	}
}

// OnLayerCreate imp.
func (f MapListenerFuncs) OnLayerCreate(m *Map, layer *Layer) {
	if f.Create != nil {
		f.Create(m, layer)
	}
}

// OnLayerDelete imp.
func (f MapListenerFuncs) OnLayerDelete(m *Map, layer *Layer) {
	if f.Delete != nil {
		f.Delete(m, layer)
	}
}

// Subscription 监听的注册凭证，和监听者本身的生命周期无关
type Subscription struct {
	owner    *subscriptions
	listener interface{}
	canceled bool
}

// Cancel 取消监听，重复取消返回 ErrListenerNotFound
func (s *Subscription) Cancel() error {
	if s == nil || s.owner == nil {
		return e.ErrListenerNotFound
	}
	return s.owner.remove(s)
}

// Active 是否还在监听
func (s *Subscription) Active() bool {
	return s != nil && !s.canceled
}

// subscriptions 注册顺序的监听列表
//	修改时总是生成新的 slice，fan-out 遍历的是修改前的快照
type subscriptions struct {
	list []*Subscription
}

func (ss *subscriptions) add(listener interface{}) *Subscription {
	s := &Subscription{owner: ss, listener: listener}
	list := make([]*Subscription, len(ss.list), len(ss.list)+1)
	copy(list, ss.list)
	ss.list = append(list, s)
	return s
}

func (ss *subscriptions) remove(s *Subscription) error {
	for idx, sub := range ss.list {
		if sub != s {
			continue
		}
		list := make([]*Subscription, 0, len(ss.list)-1)
		list = append(list, ss.list[:idx]...)
		list = append(list, ss.list[idx+1:]...)
		ss.list = list
		s.canceled = true
		return nil
	}
	return e.ErrListenerNotFound
}

func (ss *subscriptions) clear() {
	for _, s := range ss.list {
		s.canceled = true
	}
	ss.list = nil
}

func (ss *subscriptions) count() int {
	return len(ss.list)
}

// fanout 按注册顺序回调
//	回调中取消的监听者不会再被调用，回调中新增的监听者从下一次事件开始生效
//	单个监听者 panic 不会中断其他监听者
func (ss *subscriptions) fanout(call func(listener interface{})) {
	snapshot := ss.list
	for _, s := range snapshot {
		if s.canceled {
			continue
		}
		listener := s.listener
		utils.CatchPanic(func() {
			call(listener)
		})
	}
}

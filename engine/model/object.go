package model

import (
	"fmt"

	"github.com/tutumagi/scene/engine/attr"
	e "github.com/tutumagi/scene/errors"
)

// Object 实例共享的模板，定义是否阻挡以及默认属性
//	没有设置的字段从 parent 继承
type Object struct {
	id        string
	namespace string
	parent    *Object

	blocking    bool
	blockingSet bool
	static      bool
	staticSet   bool

	defaults attr.Map
}

// NewObject ctor, parent 可以为 nil
func NewObject(id string, namespace string, parent *Object) *Object {
	return &Object{
		id:        id,
		namespace: namespace,
		parent:    parent,
		defaults:  attr.NewMap(),
	}
}

func (o *Object) String() string {
	return fmt.Sprintf("<Object>(%s:%s blocking:%v)", o.namespace, o.id, o.IsBlocking())
}

// ID of the object
func (o *Object) ID() string {
	return o.id
}

// Namespace of the object
func (o *Object) Namespace() string {
	return o.namespace
}

// Parent the inherited object
func (o *Object) Parent() *Object {
	return o.parent
}

// SetBlocking 设置是否阻挡
func (o *Object) SetBlocking(blocking bool) {
	o.blocking = blocking
	o.blockingSet = true
}

// IsBlocking 是否阻挡
func (o *Object) IsBlocking() bool {
	if o.blockingSet {
		return o.blocking
	}
	if o.parent != nil {
		return o.parent.IsBlocking()
	}
	return false
}

// SetStatic 设置是否静态
func (o *Object) SetStatic(static bool) {
	o.static = static
	o.staticSet = true
}

// IsStatic 是否静态
func (o *Object) IsStatic() bool {
	if o.staticSet {
		return o.static
	}
	if o.parent != nil {
		return o.parent.IsStatic()
	}
	return false
}

// SetDefault 设置默认属性
func (o *Object) SetDefault(key string, v attr.Value) {
	o.defaults.Set(key, v)
}

// Defaults 默认属性，自己的覆盖 parent 的
func (o *Object) Defaults() attr.Map {
	var r attr.Map
	if o.parent != nil {
		r = o.parent.Defaults()
	} else {
		r = attr.NewMap()
	}
	for k, v := range o.defaults {
		r[k] = v
	}
	return r
}

// Dataset 一组模板，可以引用其他 Dataset
type Dataset struct {
	id string

	objects  map[string]*Object
	order    []*Object
	datasets []*Dataset
}

// NewDataset ctor
func NewDataset(id string) *Dataset {
	return &Dataset{
		id:      id,
		objects: make(map[string]*Object),
	}
}

func (d *Dataset) String() string {
	return fmt.Sprintf("<Dataset>(%s objects:%d)", d.id, len(d.order))
}

// ID of the dataset
func (d *Dataset) ID() string {
	return d.id
}

// CreateObject 创建模板，namespace 为 dataset 的 id
func (d *Dataset) CreateObject(id string, parent *Object) (*Object, error) {
	if _, ok := d.objects[id]; ok {
		return nil, fmt.Errorf("object %s in dataset %s: %w", id, d.id, e.ErrDuplicateID)
	}
	o := NewObject(id, d.id, parent)
	d.objects[id] = o
	d.order = append(d.order, o)
	return o, nil
}

// Object by id, nil if absent
func (d *Dataset) Object(id string) *Object {
	return d.objects[id]
}

// Objects in creation order
func (d *Dataset) Objects() []*Object {
	r := make([]*Object, len(d.order))
	copy(r, d.order)
	return r
}

// AddDataset 引用其他 dataset，不持有
func (d *Dataset) AddDataset(other *Dataset) {
	if other == nil || other == d {
		return
	}
	for _, ds := range d.datasets {
		if ds == other {
			return
		}
	}
	d.datasets = append(d.datasets, other)
}

// Datasets directly referenced
func (d *Dataset) Datasets() []*Dataset {
	r := make([]*Dataset, len(d.datasets))
	copy(r, d.datasets)
	return r
}

package model

import (
	"fmt"

	"github.com/tutumagi/scene/engine/timeprovider"
	e "github.com/tutumagi/scene/errors"
	"github.com/tutumagi/scene/logger"
	"github.com/tutumagi/scene/metrics"
)

// Model 持有所有地图以及主时钟
//	整个模型是单线程的，所有调用都应该在同一个 goroutine 中
type Model struct {
	tp *timeprovider.TimeProvider

	maps []*Map
	byID map[string]*Map

	reporter metrics.Reporter

	ticking        bool
	pendingDeletes []*Map
}

// NewModel ctor
func NewModel(opts ...Option) *Model {
	o := newOptions(opts)
	return &Model{
		tp:       timeprovider.New(nil),
		byID:     make(map[string]*Map),
		reporter: o.reporter,
	}
}

// TimeProvider 主时钟
func (md *Model) TimeProvider() *timeprovider.TimeProvider {
	return md.tp
}

// SetTimeMultiplier 整个模型的时间倍率
func (md *Model) SetTimeMultiplier(multiplier float64) error {
	return md.tp.SetMultiplier(multiplier)
}

// TimeMultiplier 整个模型的时间倍率
func (md *Model) TimeMultiplier() float64 {
	return md.tp.Multiplier()
}

// CreateMap 创建地图，地图的时间跟随主时钟
func (md *Model) CreateMap(id string) (*Map, error) {
	if id != "" {
		if _, ok := md.byID[id]; ok {
			return nil, fmt.Errorf("map %s: %w", id, e.ErrDuplicateID)
		}
	}
	m := NewMap(id, md.tp, WithReporter(md.reporter))
	m.model = md
	md.maps = append(md.maps, m)
	md.byID[m.id] = m
	logger.Debugf("Model::CreateMap id=%s", m.id)
	return m, nil
}

// DeleteMap 销毁地图，tick 中调用时延迟到 tick 结束
func (md *Model) DeleteMap(m *Map) error {
	if m == nil || m.model != md || md.byID[m.id] != m {
		return e.ErrMapNotFound
	}
	if md.ticking {
		for _, pm := range md.pendingDeletes {
			if pm == m {
				return nil
			}
		}
		md.pendingDeletes = append(md.pendingDeletes, m)
		return nil
	}

	for idx, it := range md.maps {
		if it == m {
			md.maps = append(md.maps[:idx:idx], md.maps[idx+1:]...)
			break
		}
	}
	delete(md.byID, m.id)
	m.model = nil
	m.destroy()
	logger.Debugf("Model::DeleteMap id=%s", m.id)
	return nil
}

// Map by id, nil if absent
func (md *Model) Map(id string) *Map {
	return md.byID[id]
}

// Maps 地图列表的拷贝，按创建顺序
func (md *Model) Maps() []*Map {
	r := make([]*Map, len(md.maps))
	copy(r, md.maps)
	return r
}

// MapCount 地图数量
func (md *Model) MapCount() int {
	return len(md.maps)
}

// Tick 推进主时钟并 tick 所有地图，返回是否有地图发生变化
func (md *Model) Tick(realNowMs int64) bool {
	md.tp.Advance(realNowMs)

	md.ticking = true
	changed := false
	for _, m := range md.maps {
		if m.model != md {
			continue
		}
		if ok, _ := m.Tick(realNowMs); ok {
			changed = true
		}
	}
	md.ticking = false

	for len(md.pendingDeletes) > 0 {
		m := md.pendingDeletes[0]
		md.pendingDeletes = md.pendingDeletes[1:]
		if err := md.DeleteMap(m); err != nil {
			logger.Debugf("Model::Tick skip map=%s err=%v", m.id, err)
		}
	}

	return changed
}

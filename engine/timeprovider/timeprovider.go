package timeprovider

import (
	"fmt"

	e "github.com/tutumagi/scene/errors"
)

// TimeProvider 可以缩放的游戏时间
//	根节点由外部驱动真实时间，子节点跟随 master 的游戏时间，再乘以自己的倍率
type TimeProvider struct {
	master *TimeProvider

	multiplier float64

	// 倍率变化时的游戏时间
	timeStatic float64
	// 倍率变化时的 master 时间
	timeDynamic int64

	// 根节点的真实时间，单位毫秒
	realTime int64
}

// New ctor, master 可以为 nil
func New(master *TimeProvider) *TimeProvider {
	tp := &TimeProvider{
		master:     master,
		multiplier: 1.0,
	}
	tp.timeDynamic = tp.masterTime()
	tp.timeStatic = float64(tp.timeDynamic)
	return tp
}

func (tp *TimeProvider) String() string {
	return fmt.Sprintf("<TimeProvider> multiplier:%.2f game:%d", tp.multiplier, tp.GameTime())
}

func (tp *TimeProvider) masterTime() int64 {
	if tp.master != nil {
		return tp.master.GameTime()
	}
	return tp.realTime
}

// Advance 驱动根节点的真实时间，返回游戏时间
//	子节点调用时只返回当前游戏时间
//	时间倒退时忽略
func (tp *TimeProvider) Advance(realMs int64) int64 {
	if tp.master == nil && realMs > tp.realTime {
		tp.realTime = realMs
	}
	return tp.GameTime()
}

// GameTime 当前游戏时间，单位毫秒
func (tp *TimeProvider) GameTime() int64 {
	return int64(tp.timeStatic + float64(tp.masterTime()-tp.timeDynamic)*tp.multiplier)
}

// SetMultiplier 修改倍率，游戏时间保持连续
func (tp *TimeProvider) SetMultiplier(multiplier float64) error {
	if multiplier < 0 {
		return fmt.Errorf("%.2f: %w", multiplier, e.ErrInvalidMultiplier)
	}
	tp.timeStatic = tp.timeStatic + float64(tp.masterTime()-tp.timeDynamic)*tp.multiplier
	tp.timeDynamic = tp.masterTime()
	tp.multiplier = multiplier
	return nil
}

// Multiplier 自己的倍率
func (tp *TimeProvider) Multiplier() float64 {
	return tp.multiplier
}

// TotalMultiplier 包含 master 在内的总倍率
func (tp *TimeProvider) TotalMultiplier() float64 {
	if tp.master != nil {
		return tp.master.TotalMultiplier() * tp.multiplier
	}
	return tp.multiplier
}

// ScaledDelta 把真实的时间差换算成游戏时间差
func (tp *TimeProvider) ScaledDelta(realDeltaMs int64) int64 {
	return int64(float64(realDeltaMs) * tp.TotalMultiplier())
}

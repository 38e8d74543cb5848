package fsm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tutumagi/scene/engine/model"
	e "github.com/tutumagi/scene/errors"
	"github.com/tutumagi/scene/logger"
)

// ErrStateReject 状态机错误
var ErrStateReject = e.NewError(fmt.Errorf("状态机切换错误"), "FSM-001")

// ErrStateNoAction 没有action
var ErrStateNoAction = e.NewError(fmt.Errorf("该状态没有Action错误"), "FSM-002")

const (
	// Default 默认状态，也表示停留在当前状态
	Default StateType = ""
)

// StateType 状态类型，同时也是实例的动作名
type StateType string

// Action 进入某一个状态时触发的操作
type Action interface {
	// Enter 进入状态，返回需要继续切换的状态
	Enter(inst *model.Instance, nowMs int64) StateType
	// Tick 帧循环，返回需要切换的状态以及这一帧的变化
	Tick(inst *model.Instance, nowMs int64) (StateType, model.ChangeMask)
}

// State 这是一个状态，进入该状态时会触发Action操作
type State struct {
	Action Action
	// 可以切换的状态列表
	States map[StateType]struct{}
}

// NewState 新建一个状态
func NewState(act Action, states ...StateType) State {
	s := State{
		Action: act,
		States: map[StateType]struct{}{},
	}
	for _, state := range states {
		s.States[state] = struct{}{}
	}
	return s
}

// States 状态类型对应状态结构
type States map[StateType]State

// StateMachine 实例的动作状态机，可以直接作为实例的 Updater
//	每次状态变化都会写入 Instance.Action
type StateMachine struct {
	Prev   StateType // 上一个状态
	Cur    StateType // 当前状态
	States States    // 所有的状态

	StateChange func(inst *model.Instance, curState StateType)
}

// getNextState 获取下一个状态
func (s *StateMachine) getNextState(next StateType) (StateType, error) {
	if state, ok := s.States[s.Cur]; ok && state.States != nil {
		if _, ok := state.States[next]; ok {
			return next, nil
		}
	}
	return Default, ErrStateReject
}

// EnterState 切换到 stateTyp，Enter 返回新的状态时继续切换
func (s *StateMachine) EnterState(stateTyp StateType, inst *model.Instance, nowMs int64) error {
	for {
		nextStateTyp, err := s.getNextState(stateTyp)
		if err != nil {
			return fmt.Errorf("%s -> %s: %w", s.Cur, stateTyp, err)
		}

		state, ok := s.States[nextStateTyp]
		if !ok || state.Action == nil {
			logger.Error("must imp action", zap.String("state", string(nextStateTyp)))
			return ErrStateNoAction
		}

		s.Prev = s.Cur
		s.Cur = nextStateTyp
		inst.SetAction(string(s.Cur))

		if s.Prev != s.Cur && s.StateChange != nil {
			s.StateChange(inst, s.Cur)
		}
		nextNextStateTyp := state.Action.Enter(inst, nowMs)

		if nextNextStateTyp == s.Cur || nextNextStateTyp == Default {
			return nil
		}

		stateTyp = nextNextStateTyp
	}
}

// Update 帧循环，实现 model.Updater
func (s *StateMachine) Update(inst *model.Instance, nowMs int64) model.ChangeMask {
	stat, ok := s.States[s.Cur]
	if !ok || stat.Action == nil {
		return model.NoChanges
	}
	next, mask := stat.Action.Tick(inst, nowMs)
	if next == Default || next == s.Cur {
		return mask
	}
	if err := s.EnterState(next, inst, nowMs); err != nil {
		logger.Warn("state change rejected", zap.String("instance", inst.ID()), zap.Error(err))
	}
	return mask
}

package state

import (
	"context"
	"fmt"
	"sort"

	"github.com/looplab/fsm"

	"github.com/langchou/garagebook/internal/models"
)

// 事件常量
const (
	EventStart    = "start"
	EventComplete = "complete"
	EventCancel   = "cancel"
	EventMiss     = "miss"
)

// Events 所有合法事件
var Events = []string{EventStart, EventComplete, EventCancel, EventMiss}

// IsKnownEvent 是否为已定义事件
func IsKnownEvent(event string) bool {
	for _, e := range Events {
		if e == event {
			return true
		}
	}
	return false
}

// Machine 维修预约状态机，每次流转时按数据库中的当前状态创建
type Machine struct {
	fsm *fsm.FSM
}

// NewMachine 创建状态机
func NewMachine(initialState string) *Machine {
	if initialState == "" {
		initialState = models.StatusScheduled
	}

	return &Machine{
		fsm: fsm.NewFSM(
			initialState,
			fsm.Events{
				// 从 scheduled 状态
				{Name: EventStart, Src: []string{models.StatusScheduled}, Dst: models.StatusInProgress},
				{Name: EventMiss, Src: []string{models.StatusScheduled}, Dst: models.StatusMissed},

				// 从 in_progress 状态
				{Name: EventComplete, Src: []string{models.StatusInProgress}, Dst: models.StatusCompleted},

				// 开始前或进行中都可以取消
				{Name: EventCancel, Src: []string{models.StatusScheduled, models.StatusInProgress}, Dst: models.StatusCancelled},
			},
			fsm.Callbacks{},
		),
	}
}

// Trigger 触发事件，返回新状态
func (m *Machine) Trigger(ctx context.Context, event string) (string, error) {
	if err := m.fsm.Event(ctx, event); err != nil {
		return m.fsm.Current(), fmt.Errorf("trigger event %s: %w", event, err)
	}
	return m.fsm.Current(), nil
}

// AvailableEvents 当前状态下可触发的事件，按名称排序
func (m *Machine) AvailableEvents() []string {
	events := m.fsm.AvailableTransitions()
	sort.Strings(events)
	return events
}

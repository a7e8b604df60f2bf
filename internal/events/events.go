package events

import (
	"context"
	"time"
)

// 事件类型
const (
	GarageCreated = "garage.created"
	GarageUpdated = "garage.updated"
	GarageDeleted = "garage.deleted"

	CarCreated = "car.created"
	CarUpdated = "car.updated"
	CarDeleted = "car.deleted"

	MaintenanceCreated      = "maintenance.created"
	MaintenanceUpdated      = "maintenance.updated"
	MaintenanceDeleted      = "maintenance.deleted"
	MaintenanceTransitioned = "maintenance.transitioned"
)

// Event 领域事件
type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// New 创建事件，Key 用于 Kafka 分区
func New(eventType, key string, data interface{}) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher 事件发布者，发布失败只记录日志，不影响业务
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Multi 将事件依次发布到多个 Publisher
type Multi []Publisher

// Publish 实现 Publisher
func (m Multi) Publish(ctx context.Context, event Event) {
	for _, p := range m {
		p.Publish(ctx, event)
	}
}

// Nop 丢弃所有事件
type Nop struct{}

// Publish 实现 Publisher
func (Nop) Publish(context.Context, Event) {}

// Broadcaster WebSocket Hub 的广播能力
type Broadcaster interface {
	BroadcastMessage(msgType string, data interface{})
}

// HubPublisher 把事件广播给所有 WebSocket 客户端
type HubPublisher struct {
	hub Broadcaster
}

// NewHubPublisher 创建 HubPublisher
func NewHubPublisher(hub Broadcaster) *HubPublisher {
	return &HubPublisher{hub: hub}
}

// Publish 实现 Publisher
func (p *HubPublisher) Publish(_ context.Context, event Event) {
	p.hub.BroadcastMessage(event.Type, event)
}

// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event.
type Type string

// Battle event types.
const (
	BattleStarted      Type = "battle_started"
	BattleEnded        Type = "battle_ended"
	ShipDestroyed      Type = "ship_destroyed"
	ShipRammed         Type = "ship_rammed"
	ProjectileFired    Type = "projectile_fired"
	ProjectileHit      Type = "projectile_hit"
	ProjectileExpired  Type = "projectile_expired"
	BeamFired          Type = "beam_fired"
	ProjectileShotDown Type = "projectile_shot_down"
)

// Event is the base interface for all events.
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events.
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type.
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source.
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events.
type Handler func(Event)

// Bus manages event subscriptions and dispatching.
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers. A nil bus drops
// events, so library users that don't care about them pass nothing.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// ShipEvent carries ship-related battle events.
type ShipEvent struct {
	BaseEvent
	ShipID uint64
	TeamID int
	Tick   uint64
}

// NewShipEvent creates a new ship event.
func NewShipEvent(eventType Type, source interface{}, shipID uint64, teamID int, tick uint64) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID: shipID,
		TeamID: teamID,
		Tick:   tick,
	}
}

// ProjectileEvent carries projectile lifecycle events.
type ProjectileEvent struct {
	BaseEvent
	ProjectileID uint64
	OwnerID      uint64
	TeamID       int
	Tick         uint64
}

// NewProjectileEvent creates a new projectile event.
func NewProjectileEvent(eventType Type, source interface{}, projectileID, ownerID uint64, teamID int, tick uint64) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ProjectileID: projectileID,
		OwnerID:      ownerID,
		TeamID:       teamID,
		Tick:         tick,
	}
}

// BattleEvent carries battle start/end notifications.
type BattleEvent struct {
	BaseEvent
	Winner int
	Tick   uint64
}

// NewBattleEvent creates a new battle event.
func NewBattleEvent(eventType Type, source interface{}, winner int, tick uint64) *BattleEvent {
	return &BattleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Winner: winner,
		Tick:   tick,
	}
}

// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// BattleState is a point-in-time snapshot of the battle for hosts
// (renderers, replays, training harnesses). It copies scalar state only;
// nothing in it aliases engine-owned objects.
type BattleState struct {
	Tick        uint64
	Over        bool
	Winner      int
	Ships       []ShipState
	Projectiles []ProjectileState
	Beams       []BeamTrace
}

// ShipState is a snapshot of one ship's externally visible state.
type ShipState struct {
	ID       uint64
	Name     string
	TeamID   int
	Position physics.Vec
	Velocity physics.Vec
	Heading  float64
	HP       float64
	MaxHP    float64
	Shields  float64
	Fuel     float64
	Energy   float64
	Ammo     float64
	Alive    bool
	Derelict bool
}

// ProjectileState is a snapshot of one live projectile.
type ProjectileState struct {
	ID       uint64
	TeamID   int
	Position physics.Vec
	Velocity physics.Vec
	Status   string
}

// Snapshot captures the current battle state. Destroyed ships are
// included (for reporting); retired projectiles are not.
func (b *Battle) Snapshot() BattleState {
	state := BattleState{
		Tick:   b.tick,
		Over:   b.over,
		Winner: b.winner,
		Beams:  append([]BeamTrace(nil), b.Beams...),
	}

	for _, s := range b.ships {
		state.Ships = append(state.Ships, ShipState{
			ID:       s.ID(),
			Name:     s.Name,
			TeamID:   s.TeamID,
			Position: s.Position,
			Velocity: s.Velocity,
			Heading:  s.Heading,
			HP:       s.HP,
			MaxHP:    s.Stats.MaxHP,
			Shields:  s.Shields,
			Fuel:     s.Fuel,
			Energy:   s.Energy,
			Ammo:     s.Ammo,
			Alive:    s.Alive,
			Derelict: s.Derelict,
		})
	}

	for _, p := range b.projectiles.Projectiles() {
		state.Projectiles = append(state.Projectiles, ProjectileState{
			ID:       p.ID(),
			TeamID:   p.TeamID,
			Position: p.Position,
			Velocity: p.Velocity,
			Status:   p.Status.String(),
		})
	}

	return state
}

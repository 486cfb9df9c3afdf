// pkg/entity/ship.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-shipforge/pkg/component"
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// defaultRadius is used when a design supplies no collision radius.
const defaultRadius = 20.0

// Ship is a mutable combat entity assembled from components. The builder
// layer supplies the component graph; the combat core derives everything
// else. Controllers express intent through the Throttle/DesiredHeading/
// Ramming fields and the Pending attack queue; the engine applies them
// in its fixed tick order.
type Ship struct {
	ecs.BasicEntity

	Name   string
	TeamID int

	Position physics.Vec
	Velocity physics.Vec
	// Heading is in degrees.
	Heading float64
	Radius  float64

	Components []*component.Component
	Stats      ShipStats
	Mounts     []*WeaponMount

	HP      float64
	Shields float64
	Fuel    float64
	Energy  float64
	Ammo    float64

	Alive    bool
	Derelict bool

	// Controller intent, rewritten every tick by the AI collaborator.
	Throttle       float64
	DesiredHeading float64
	CurrentTarget  *Ship
	Ramming        bool

	// Pending holds attacks queued this tick; the engine drains it.
	Pending []Attack
}

// NewShip assembles a ship from a component pool at the given spawn
// transform. Pools start full and the derelict flag reflects the pool's
// validation result. A non-positive radius falls back to the default.
func NewShip(name string, teamID int, pos physics.Vec, heading, radius float64, comps []*component.Component) *Ship {
	if radius <= 0 {
		radius = defaultRadius
	}

	s := &Ship{
		BasicEntity:    ecs.NewBasic(),
		Name:           name,
		TeamID:         teamID,
		Position:       pos,
		Heading:        heading,
		DesiredHeading: heading,
		Radius:         radius,
		Components:     comps,
		Alive:          true,
	}
	s.RefreshStats()

	s.HP = s.Stats.MaxHP
	s.Shields = s.Stats.MaxShields
	s.Fuel = s.Stats.Fuel.Capacity
	s.Energy = s.Stats.Energy.Capacity
	s.Ammo = s.Stats.Ammo.Capacity

	for _, c := range comps {
		for _, w := range c.WeaponSpecs() {
			s.Mounts = append(s.Mounts, &WeaponMount{
				Component: c,
				Kind:      w.Kind,
				Spec:      w.Spec,
			})
		}
	}
	return s
}

// RefreshStats rederives composite stats and the derelict flag from the
// current component pool.
func (s *Ship) RefreshStats() {
	s.Stats = ComputeStats(s.Components)
	s.Derelict = s.Stats.Derelict()
}

// Body returns the ship's bounding circle for the broad phase.
func (s *Ship) Body() physics.Circle {
	return physics.Circle{Center: s.Position, Radius: s.Radius}
}

// ApplyMovement integrates one tick of kinematics from the controller's
// intent: bounded turn toward the desired heading, throttle-scaled
// acceleration along the hull axis, speed clamp, then position. Derelict
// ships drift ballistically. A drained fuel pool disables thrust but not
// steering.
func (s *Ship) ApplyMovement(dt float64) {
	if !s.Alive {
		return
	}

	if !s.Derelict {
		s.Heading = physics.TurnToward(s.Heading, s.DesiredHeading, s.Stats.TurnSpeed*dt)

		if s.Throttle > 0 && s.hasThrustFuel() {
			accel := physics.FromHeading(s.Heading, s.Stats.Acceleration*s.Throttle)
			s.Velocity = s.Velocity.Add(accel.Scale(dt)).ClampLength(s.Stats.MaxSpeed)
		}
	}

	s.tickResources(dt)
	s.Position = s.Position.Add(s.Velocity.Scale(dt))
}

// hasThrustFuel reports whether propulsion can draw fuel this tick. A
// ship designed without fuel storage thrusts freely.
func (s *Ship) hasThrustFuel() bool {
	return s.Stats.Fuel.Capacity <= 0 || s.Fuel > 0
}

// tickResources applies generation and continuous consumption for one
// tick. Pools clamp at [0, capacity]; running dry is not an error, the
// dependent systems just stop working.
func (s *Ship) tickResources(dt float64) {
	s.Energy += s.Stats.Energy.Generation * dt
	if s.Energy > s.Stats.Energy.Capacity {
		s.Energy = s.Stats.Energy.Capacity
	}

	s.Fuel = drain(s.Fuel, s.Stats.Fuel.Rate*dt)
	s.Energy = drain(s.Energy, s.Stats.Energy.Rate*dt)
	s.Ammo = drain(s.Ammo, s.Stats.Ammo.Rate*dt)
}

func drain(pool, amount float64) float64 {
	pool -= amount
	if pool < 0 {
		return 0
	}
	return pool
}

// TickMounts advances weapon reloads by one tick.
func (s *Ship) TickMounts(dt float64) {
	for _, m := range s.Mounts {
		m.CooldownLeft -= dt
		if m.CooldownLeft < 0 {
			m.CooldownLeft = 0
		}
	}
}

// TryFire fires a mount at the target if it is reloaded and the
// activation costs can be paid, queueing the attack on Pending. It
// returns the queued attack, or nil when the shot did not happen.
func (s *Ship) TryFire(m *WeaponMount, target *Ship) *Attack {
	if !s.Alive || m == nil || m.Spec == nil || !m.Ready() {
		return nil
	}
	if !s.payActivation(m.Spec) {
		return nil
	}

	dir := physics.FromHeading(s.Heading, 1)
	if target != nil {
		dir = target.Position.Sub(s.Position).Normalize()
	}

	m.CooldownLeft = m.Spec.Reload
	m.Shots++

	attack := Attack{
		Type:      attackTypeFor(m.Kind),
		Origin:    s.Position,
		Direction: dir,
		Range:     m.Spec.MaxRange,
		Damage:    m.Spec.Damage,
		Target:    target,
		Mount:     m,
		Spec:      m.Spec,
	}
	s.Pending = append(s.Pending, attack)
	return &s.Pending[len(s.Pending)-1]
}

// payActivation verifies and deducts a weapon's per-activation resource
// costs. Verification happens before any deduction so a failed shot
// leaves the pools untouched.
func (s *Ship) payActivation(spec *component.WeaponSpec) bool {
	for res, cost := range spec.Costs {
		if cost > 0 && s.poolOf(res) < cost {
			return false
		}
	}
	for res, cost := range spec.Costs {
		s.ConsumeResource(res, cost)
	}
	return true
}

// ConsumeResource deducts amount from the named pool. It returns false,
// deducting nothing, when the pool cannot cover a nonzero amount; the
// requested action simply did not occur.
func (s *Ship) ConsumeResource(res component.Resource, amount float64) bool {
	if amount <= 0 {
		return true
	}
	pool := s.poolPtr(res)
	if pool == nil || *pool < amount {
		return false
	}
	*pool -= amount
	return true
}

func (s *Ship) poolOf(res component.Resource) float64 {
	if p := s.poolPtr(res); p != nil {
		return *p
	}
	return 0
}

func (s *Ship) poolPtr(res component.Resource) *float64 {
	switch res {
	case component.Fuel:
		return &s.Fuel
	case component.Energy:
		return &s.Energy
	case component.Ammo:
		return &s.Ammo
	default:
		return nil
	}
}

// TakeDamage applies damage to shields first, then the component HP
// pool. It returns true when the ship is destroyed; the hulk stays in
// the battle's ship list for reporting.
func (s *Ship) TakeDamage(amount float64) bool {
	if amount <= 0 || !s.Alive {
		return !s.Alive
	}

	if s.Shields > 0 {
		if s.Shields >= amount {
			s.Shields -= amount
			return false
		}
		amount -= s.Shields
		s.Shields = 0
	}

	s.HP -= amount
	if s.HP <= 0 {
		s.Alive = false
	}
	return !s.Alive
}

// RegenerateShields restores shields at the aggregated regeneration rate.
func (s *Ship) RegenerateShields(dt float64) {
	if !s.Alive || s.Shields >= s.Stats.MaxShields {
		return
	}
	s.Shields += s.Stats.ShieldRegen * dt
	if s.Shields > s.Stats.MaxShields {
		s.Shields = s.Stats.MaxShields
	}
}

// Effective reports whether the ship counts toward its team's survival:
// alive and not derelict.
func (s *Ship) Effective() bool {
	return s.Alive && !s.Derelict
}

// pkg/entity/projectile.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-shipforge/pkg/component"
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// ProjectileKind distinguishes straight-line shots from guided seekers.
type ProjectileKind int

const (
	Ballistic ProjectileKind = iota
	Guided
)

// ProjectileStatus is the projectile's lifecycle state. Active is the
// only non-terminal state.
type ProjectileStatus int

const (
	StatusActive ProjectileStatus = iota
	StatusHit
	StatusMiss
	StatusDestroyed
)

// String returns the status name for logs and snapshots.
func (s ProjectileStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusHit:
		return "hit"
	case StatusMiss:
		return "miss"
	case StatusDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Projectile is a transient combat entity spawned by a weapon attack and
// retired on collision, range exhaustion, or endurance expiry.
type Projectile struct {
	ecs.BasicEntity

	Owner  *Ship
	TeamID int

	Position physics.Vec
	Velocity physics.Vec

	Damage    float64
	MaxRange  float64
	Endurance float64
	Radius    float64

	Kind ProjectileKind

	// Guidance parameters, guided projectiles only.
	TurnRate float64
	MaxSpeed float64

	// HP lets point defense destroy guided projectiles in flight.
	HP float64

	Target           *Ship
	TargetProjectile *Projectile

	// Mount back-references the firing weapon for hit-rate bookkeeping.
	Mount *WeaponMount
	Spec  *component.WeaponSpec

	Status           ProjectileStatus
	DistanceTraveled float64
}

// Body returns the projectile's bounding circle for the broad phase.
func (p *Projectile) Body() physics.Circle {
	return physics.Circle{Center: p.Position, Radius: p.Radius}
}

// Active reports whether the projectile is still in flight.
func (p *Projectile) Active() bool {
	return p.Status == StatusActive
}

// TakeDamage reduces the projectile's HP pool and reports whether the
// projectile was destroyed by it.
func (p *Projectile) TakeDamage(amount float64) bool {
	if amount <= 0 || !p.Active() {
		return false
	}
	p.HP -= amount
	if p.HP <= 0 {
		p.Status = StatusDestroyed
		return true
	}
	return false
}

// ImpactDamage evaluates the damage dealt on a hit, applying the source
// weapon's range-dependent formula when one is defined.
func (p *Projectile) ImpactDamage() float64 {
	if p.Spec != nil && p.Spec.MaxRange > 0 {
		return p.Spec.DamageAt(p.DistanceTraveled)
	}
	return p.Damage
}

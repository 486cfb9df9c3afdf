// pkg/engine/projectiles.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-shipforge/pkg/entity"
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// hitSlack widens ship collision spheres so near-grazing shots connect.
const hitSlack = 5.0

// queryPadding widens broad-phase queries beyond the projectile's
// per-tick travel so targets moving into the path are still candidates.
const queryPadding = 100.0

// LeadSolver computes an intercept aim point for a guided projectile
// chasing a moving target. When nil, guidance falls back to direct
// pursuit of the target's current position.
type LeadSolver func(p *entity.Projectile, target *entity.Ship) physics.Vec

// HitHandler observes projectile-vs-ship impacts; the battle engine uses
// it to publish events and account destroyed ships.
type HitHandler func(p *entity.Projectile, target *entity.Ship, damage float64, destroyed bool)

// ProjectileManager exclusively owns the live projectile list: spawning
// from attack descriptors, per-tick motion and guidance, and collision
// resolution against the broad-phase grid.
type ProjectileManager struct {
	projectiles []*entity.Projectile

	lead  LeadSolver
	onHit HitHandler
}

// NewProjectileManager creates an empty manager. Both the lead solver
// and the hit handler may be nil.
func NewProjectileManager(lead LeadSolver, onHit HitHandler) *ProjectileManager {
	return &ProjectileManager{lead: lead, onHit: onHit}
}

// Projectiles exposes the live list for rendering and grid population.
func (pm *ProjectileManager) Projectiles() []*entity.Projectile {
	return pm.projectiles
}

// Spawn builds a projectile from a queued attack and takes ownership of
// it. Missile attacks become guided projectiles; anything else flies
// ballistically.
func (pm *ProjectileManager) Spawn(owner *entity.Ship, a entity.Attack) *entity.Projectile {
	if a.Spec == nil {
		return nil // malformed descriptor, skip silently
	}

	p := &entity.Projectile{
		BasicEntity: ecs.NewBasic(),
		Owner:       owner,
		TeamID:      owner.TeamID,
		Position:    a.Origin,
		Velocity:    a.Direction.Normalize().Scale(a.Spec.ProjectileSpeed),
		Damage:      a.Damage,
		MaxRange:    a.Range,
		Endurance:   a.Spec.Endurance,
		Radius:      a.Spec.ProjectileRadius,
		Mount:       a.Mount,
		Spec:        a.Spec,
		Status:      entity.StatusActive,
	}
	if a.Type == entity.AttackMissile {
		p.Kind = entity.Guided
		p.TurnRate = a.Spec.TurnRate
		p.MaxSpeed = a.Spec.MaxSpeed
		p.HP = a.Spec.HitPoints
		p.Target = a.Target
		p.TargetProjectile = a.TargetProjectile
	}
	if p.Endurance <= 0 {
		// Designs without an explicit endurance fly until range runs out.
		p.Endurance = p.MaxRange/maxf(p.Velocity.Length(), 1) + 1
	}

	pm.projectiles = append(pm.projectiles, p)
	return p
}

// Advance steps every active projectile by one tick: endurance, guidance,
// motion, then collision against grid candidates. At most one collision
// is registered per projectile per tick, taking the first candidate in
// the grid's deterministic query order.
func (pm *ProjectileManager) Advance(dt float64, grid *physics.SpatialGrid) {
	for _, p := range pm.projectiles {
		if !p.Active() {
			continue
		}

		p.Endurance -= dt
		if p.Endurance <= 0 {
			p.Status = entity.StatusMiss
			continue
		}

		if p.Kind == entity.Guided {
			pm.steer(p, dt)
		}

		oldPos := p.Position
		displacement := p.Velocity.Scale(dt)
		p.Position = p.Position.Add(displacement)
		p.DistanceTraveled += displacement.Length()

		if pm.collide(p, oldPos, displacement, dt, grid) {
			continue
		}

		if p.DistanceTraveled >= p.MaxRange {
			p.Status = entity.StatusMiss
		}
	}
}

// steer applies one tick of bounded guidance toward the intercept point.
func (pm *ProjectileManager) steer(p *entity.Projectile, dt float64) {
	target := p.Target
	if target == nil || !target.Alive {
		return // fly on, unguided
	}

	aim := target.Position
	if pm.lead != nil {
		aim = pm.lead(p, target)
	}

	speed := p.Velocity.Length()
	if speed == 0 {
		speed = p.MaxSpeed
	}
	if p.MaxSpeed > 0 && speed > p.MaxSpeed {
		speed = p.MaxSpeed
	}

	desired := aim.Sub(p.Position).Heading()
	heading := physics.TurnToward(p.Velocity.Heading(), desired, p.TurnRate*dt)
	p.Velocity = physics.FromHeading(heading, speed)
}

// collide resolves this tick's collisions for one projectile and reports
// whether it hit anything.
func (pm *ProjectileManager) collide(p *entity.Projectile, oldPos, displacement physics.Vec, dt float64, grid *physics.SpatialGrid) bool {
	if p.Kind == entity.Guided && pm.intercept(p) {
		return true
	}
	if grid == nil {
		return false
	}

	queryRadius := displacement.Length() + queryPadding
	for _, candidate := range grid.QueryRadius(oldPos, queryRadius) {
		ship, ok := candidate.(*entity.Ship)
		if !ok || !ship.Alive || ship.TeamID == p.TeamID {
			continue
		}

		if !sweptShipHit(p, ship, oldPos, displacement, dt) {
			continue
		}

		damage := p.ImpactDamage()
		destroyed := ship.TakeDamage(damage)
		if p.Mount != nil {
			p.Mount.RecordHit()
		}
		p.Status = entity.StatusHit

		if pm.onHit != nil {
			pm.onHit(p, ship, damage, destroyed)
		}
		return true
	}
	return false
}

// sweptShipHit runs the continuous collision test between a projectile's
// tick motion and a ship's. Both movers are reduced to their relative
// motion; a zero relative displacement degrades to a static distance
// check.
func sweptShipHit(p *entity.Projectile, ship *entity.Ship, oldPos, displacement physics.Vec, dt float64) bool {
	shipDisplacement := ship.Velocity.Scale(dt)
	shipStart := ship.Position.Sub(shipDisplacement)

	d0 := oldPos.Sub(shipStart)
	dv := displacement.Sub(shipDisplacement)

	hitRadius := ship.Radius + hitSlack
	if dv.LengthSquared() == 0 {
		return d0.Length() < hitRadius
	}
	return physics.SweptDistance(d0, dv) < hitRadius
}

// intercept tests a seeker against its designated hostile projectile
// with a simple radius-sum check. A connect damages the target's HP pool
// and retires the seeker.
func (pm *ProjectileManager) intercept(p *entity.Projectile) bool {
	tp := p.TargetProjectile
	if tp == nil || !tp.Active() {
		return false
	}
	if p.Position.Distance(tp.Position) >= p.Radius+tp.Radius {
		return false
	}

	tp.TakeDamage(p.ImpactDamage())
	if p.Mount != nil {
		p.Mount.RecordHit()
	}
	p.Status = entity.StatusHit
	return true
}

// Sweep drops projectiles that reached a terminal state, keeping the
// live list compact between ticks.
func (pm *ProjectileManager) Sweep() {
	alive := pm.projectiles[:0]
	for _, p := range pm.projectiles {
		if p.Active() {
			alive = append(alive, p)
		}
	}
	pm.projectiles = alive
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

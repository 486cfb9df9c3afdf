// pkg/engine/projectiles_test.go
package engine

import (
	"testing"

	"github.com/opd-ai/go-shipforge/pkg/component"
	"github.com/opd-ai/go-shipforge/pkg/entity"
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// combatPool builds a minimal operational component pool.
func combatPool(hp float64) []*component.Component {
	return []*component.Component{
		{Name: "hull", Mass: 90, MaxHP: hp - 20, Active: true, Abilities: []component.Ability{
			{Kind: component.CommandAndControl},
		}},
		{Name: "drive", Mass: 10, MaxHP: 20, Active: true, Abilities: []component.Ability{
			{Kind: component.CombatPropulsion, Value: 50},
			{Kind: component.ManeuveringThruster, Value: 5},
		}},
	}
}

func combatShip(name string, team int, pos physics.Vec, hp float64) *entity.Ship {
	return entity.NewShip(name, team, pos, 0, 20, combatPool(hp))
}

func gridWith(ships ...*entity.Ship) *physics.SpatialGrid {
	g := physics.NewSpatialGrid(500)
	for _, s := range ships {
		g.Insert(s)
	}
	return g
}

func spawnShot(pm *ProjectileManager, owner *entity.Ship, spec *component.WeaponSpec, dir physics.Vec) *entity.Projectile {
	return pm.Spawn(owner, entity.Attack{
		Type:      entity.AttackProjectile,
		Origin:    owner.Position,
		Direction: dir,
		Range:     spec.MaxRange,
		Damage:    spec.Damage,
		Spec:      spec,
	})
}

func TestProjectileManager_SweptDetectionCatchesTunneling(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	target := combatShip("target", 1, physics.Vec{X: 100}, 100)

	spec := &component.WeaponSpec{
		Damage: 30, Reload: 1, MaxRange: 50000,
		ProjectileSpeed: 20000, ProjectileRadius: 2, Endurance: 10,
	}

	pm := NewProjectileManager(nil, nil)
	p := spawnShot(pm, shooter, spec, physics.Vec{X: 1})

	// One tick moves the projectile 20,000 units, far past the target; a
	// discrete point sample would never see the overlap.
	pm.Advance(1.0, gridWith(shooter, target))

	if p.Status != entity.StatusHit {
		t.Fatalf("projectile status = %v, expected hit", p.Status)
	}
	if target.HP >= target.Stats.MaxHP {
		t.Error("target took no damage from the tunneling shot")
	}
}

func TestProjectileManager_ZeroRelativeVelocityFallsBackToStatic(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	target := combatShip("target", 1, physics.Vec{X: 15}, 100)

	spec := &component.WeaponSpec{
		Damage: 10, MaxRange: 1000, ProjectileSpeed: 0, Endurance: 10,
	}

	pm := NewProjectileManager(nil, nil)
	p := spawnShot(pm, shooter, spec, physics.Vec{X: 1})

	// Stationary projectile inside ship_radius + 5 of a stationary ship.
	pm.Advance(0.1, gridWith(shooter, target))

	if p.Status != entity.StatusHit {
		t.Errorf("projectile status = %v, expected static-check hit", p.Status)
	}
}

func TestProjectileManager_EnduranceExpiryIsMiss(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	spec := &component.WeaponSpec{
		Damage: 10, MaxRange: 100000, ProjectileSpeed: 100, Endurance: 0.5,
	}

	pm := NewProjectileManager(nil, nil)
	p := spawnShot(pm, shooter, spec, physics.Vec{X: 1})

	pm.Advance(0.4, gridWith(shooter))
	if p.Status != entity.StatusActive {
		t.Fatalf("projectile expired early: %v", p.Status)
	}

	pm.Advance(0.2, gridWith(shooter))
	if p.Status != entity.StatusMiss {
		t.Errorf("projectile status = %v, expected miss on endurance expiry", p.Status)
	}
}

func TestProjectileManager_RangeExhaustionIsMiss(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	spec := &component.WeaponSpec{
		Damage: 10, MaxRange: 50, ProjectileSpeed: 100, Endurance: 10,
	}

	pm := NewProjectileManager(nil, nil)
	p := spawnShot(pm, shooter, spec, physics.Vec{X: 1})

	pm.Advance(1.0, gridWith(shooter))

	if p.Status != entity.StatusMiss {
		t.Errorf("projectile status = %v, expected miss past max range", p.Status)
	}
}

func TestProjectileManager_GuidedTurnIsBounded(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	// Target is directly abeam: a full correction would be 90 degrees.
	target := combatShip("target", 1, physics.Vec{X: 0, Y: 5000}, 100)

	spec := &component.WeaponSpec{
		Damage: 10, MaxRange: 100000, ProjectileSpeed: 100, Endurance: 100,
		TurnRate: 30, MaxSpeed: 100, HitPoints: 5,
	}

	pm := NewProjectileManager(nil, nil)
	p := pm.Spawn(shooter, entity.Attack{
		Type:      entity.AttackMissile,
		Origin:    shooter.Position,
		Direction: physics.Vec{X: 1},
		Range:     spec.MaxRange,
		Damage:    spec.Damage,
		Target:    target,
		Spec:      spec,
	})

	pm.Advance(1.0, gridWith(shooter, target))

	heading := p.Velocity.Heading()
	if heading < 29.999 || heading > 30.001 {
		t.Errorf("guided heading = %v, expected clamp at 30 degrees per second", heading)
	}
	if p.Velocity.Length() > spec.MaxSpeed+1e-9 {
		t.Errorf("guided speed %v exceeds max %v", p.Velocity.Length(), spec.MaxSpeed)
	}
}

func TestProjectileManager_GuidedWithLeadSolver(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	target := combatShip("target", 1, physics.Vec{X: 1000, Y: 0}, 100)

	called := false
	lead := func(p *entity.Projectile, s *entity.Ship) physics.Vec {
		called = true
		return s.Position.Add(s.Velocity.Scale(2)) // crude two-second lead
	}

	spec := &component.WeaponSpec{
		Damage: 10, MaxRange: 100000, ProjectileSpeed: 100, Endurance: 100,
		TurnRate: 180, MaxSpeed: 100, HitPoints: 5,
	}

	pm := NewProjectileManager(lead, nil)
	pm.Spawn(shooter, entity.Attack{
		Type:      entity.AttackMissile,
		Origin:    shooter.Position,
		Direction: physics.Vec{X: 1},
		Range:     spec.MaxRange,
		Damage:    spec.Damage,
		Target:    target,
		Spec:      spec,
	})

	pm.Advance(0.1, gridWith(shooter, target))

	if !called {
		t.Error("lead solver was not consulted for a guided projectile")
	}
}

func TestProjectileManager_Interception(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	enemy := combatShip("enemy", 1, physics.Vec{X: 2000}, 100)

	// Incoming guided missile with a small HP pool.
	missileSpec := &component.WeaponSpec{
		Damage: 50, MaxRange: 100000, ProjectileSpeed: 0, Endurance: 100,
		TurnRate: 10, MaxSpeed: 50, HitPoints: 8, ProjectileRadius: 4,
	}
	pm := NewProjectileManager(nil, nil)
	incoming := pm.Spawn(enemy, entity.Attack{
		Type: entity.AttackMissile, Origin: physics.Vec{X: 1010},
		Direction: physics.Vec{X: -1}, Range: missileSpec.MaxRange,
		Damage: missileSpec.Damage, Spec: missileSpec,
	})

	// Point-defense seeker designated against the incoming missile,
	// spawned overlapping it so the radius-sum test connects. The
	// engagement sits well clear of both hulls.
	pdSpec := &component.WeaponSpec{
		Damage: 10, MaxRange: 5000, ProjectileSpeed: 0, Endurance: 100,
		TurnRate: 90, MaxSpeed: 200, HitPoints: 1, ProjectileRadius: 8,
	}
	pd := pm.Spawn(shooter, entity.Attack{
		Type: entity.AttackMissile, Origin: physics.Vec{X: 1002},
		Direction: physics.Vec{X: 1}, Range: pdSpec.MaxRange,
		Damage: pdSpec.Damage, Spec: pdSpec,
	})
	pd.TargetProjectile = incoming

	pm.Advance(0.1, gridWith(shooter, enemy))

	if pd.Status != entity.StatusHit {
		t.Errorf("interceptor status = %v, expected hit", pd.Status)
	}
	if incoming.Status != entity.StatusDestroyed {
		t.Errorf("incoming missile status = %v, expected destroyed at 8 HP under 10 damage", incoming.Status)
	}
}

func TestProjectileManager_OneCollisionPerTickIsDeterministic(t *testing.T) {
	run := func() string {
		shooter := combatShip("shooter", 0, physics.Vec{}, 100)
		near := combatShip("near", 1, physics.Vec{X: 100}, 100)
		far := combatShip("far", 1, physics.Vec{X: 140}, 100)

		spec := &component.WeaponSpec{
			Damage: 30, MaxRange: 10000, ProjectileSpeed: 1000, Endurance: 10,
		}
		pm := NewProjectileManager(nil, nil)
		p := spawnShot(pm, shooter, spec, physics.Vec{X: 1})

		pm.Advance(1.0, gridWith(shooter, near, far))

		if p.Status != entity.StatusHit {
			t.Fatalf("projectile passed through both targets: %v", p.Status)
		}
		hurt := 0
		name := ""
		for _, s := range []*entity.Ship{near, far} {
			if s.HP < s.Stats.MaxHP {
				hurt++
				name = s.Name
			}
		}
		if hurt != 1 {
			t.Fatalf("projectile damaged %d ships, expected exactly 1", hurt)
		}
		return name
	}

	first := run()
	for i := 0; i < 3; i++ {
		if got := run(); got != first {
			t.Fatalf("victim changed between identical runs: %q then %q", first, got)
		}
	}
}

func TestProjectileManager_IgnoresFriendlies(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	friendly := combatShip("friendly", 0, physics.Vec{X: 100}, 100)

	spec := &component.WeaponSpec{
		Damage: 30, MaxRange: 10000, ProjectileSpeed: 1000, Endurance: 10,
	}
	pm := NewProjectileManager(nil, nil)
	p := spawnShot(pm, shooter, spec, physics.Vec{X: 1})

	pm.Advance(1.0, gridWith(shooter, friendly))

	if friendly.HP < friendly.Stats.MaxHP {
		t.Error("friendly ship took damage")
	}
	if p.Status == entity.StatusHit {
		t.Error("projectile registered a hit on its own team")
	}
}

func TestProjectileManager_SweepDropsTerminalProjectiles(t *testing.T) {
	shooter := combatShip("shooter", 0, physics.Vec{}, 100)
	spec := &component.WeaponSpec{
		Damage: 10, MaxRange: 50, ProjectileSpeed: 100, Endurance: 10,
	}

	pm := NewProjectileManager(nil, nil)
	spawnShot(pm, shooter, spec, physics.Vec{X: 1})
	pm.Advance(1.0, gridWith(shooter)) // runs out of range

	pm.Sweep()

	if len(pm.Projectiles()) != 0 {
		t.Errorf("sweep left %d terminal projectiles", len(pm.Projectiles()))
	}
}

// pkg/engine/battle_test.go
package engine

import (
	"testing"

	"github.com/opd-ai/go-shipforge/pkg/component"
	"github.com/opd-ai/go-shipforge/pkg/entity"
	"github.com/opd-ai/go-shipforge/pkg/event"
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// beamPool is combatPool plus a single beam mount.
func beamPool(hp float64, spec *component.WeaponSpec) []*component.Component {
	pool := combatPool(hp)
	pool = append(pool, &component.Component{
		Name: "laser", Mass: 5, MaxHP: 10, Active: true,
		Abilities: []component.Ability{
			{Kind: component.BeamWeapon, Weapon: spec},
		},
	})
	return pool
}

func queueBeam(s *entity.Ship, target *entity.Ship, spec *component.WeaponSpec, dir physics.Vec) {
	s.Pending = append(s.Pending, entity.Attack{
		Type:      entity.AttackBeam,
		Origin:    s.Position,
		Direction: dir,
		Range:     spec.MaxRange,
		Damage:    spec.Damage,
		Target:    target,
		Spec:      spec,
	})
}

func TestBattle_BeamCenterHit(t *testing.T) {
	spec := &component.WeaponSpec{
		Damage: 50, Reload: 1, MaxRange: 900, Accuracy: 1, FalloffStart: 1,
	}
	attacker := combatShip("attacker", 0, physics.Vec{}, 100)
	target := combatShip("target", 1, physics.Vec{X: 500}, 1000)

	b := NewBattle([]*entity.Ship{attacker, target}, Options{TickDuration: 0.1})
	queueBeam(attacker, target, spec, physics.Vec{X: 1})
	b.Update()

	if got := target.HP; got != 950 {
		t.Errorf("target HP = %v, expected 950 after one 50-damage beam", got)
	}
	if len(b.Beams) != 1 {
		t.Fatalf("recorded %d beam traces, expected 1", len(b.Beams))
	}
	// The trace is shortened to the impact point on the hull surface.
	if end := b.Beams[0].End.X; end < 479 || end > 481 {
		t.Errorf("beam trace end X = %v, expected the hit point near 480", end)
	}
}

func TestBattle_BeamGeometryMiss(t *testing.T) {
	spec := &component.WeaponSpec{
		Damage: 50, Reload: 1, MaxRange: 900, Accuracy: 1, FalloffStart: 1,
	}
	attacker := combatShip("attacker", 0, physics.Vec{}, 100)
	target := combatShip("target", 1, physics.Vec{X: 500}, 1000)

	b := NewBattle([]*entity.Ship{attacker, target}, Options{TickDuration: 0.1})
	// Aimed 21 units past the edge of a 20-unit-radius hull: the ray never
	// enters the sphere, so perfect accuracy still cannot connect.
	queueBeam(attacker, target, spec, physics.Vec{X: 500, Y: 41}.Normalize())
	b.Update()

	if target.HP != target.Stats.MaxHP {
		t.Errorf("target HP = %v, geometry miss must deal no damage", target.HP)
	}
	if len(b.Beams) != 1 {
		t.Fatalf("recorded %d beam traces, expected 1 full-length trace", len(b.Beams))
	}
	if length := b.Beams[0].End.Sub(b.Beams[0].Start).Length(); length < 899 || length > 901 {
		t.Errorf("miss trace length = %v, expected full range 900", length)
	}
}

func TestBattle_BeamBeyondMaxRange(t *testing.T) {
	spec := &component.WeaponSpec{
		Damage: 50, Reload: 1, MaxRange: 900, Accuracy: 1, FalloffStart: 1,
	}
	attacker := combatShip("attacker", 0, physics.Vec{}, 100)
	target := combatShip("target", 1, physics.Vec{X: 2000}, 1000)

	b := NewBattle([]*entity.Ship{attacker, target}, Options{TickDuration: 0.1})
	queueBeam(attacker, target, spec, physics.Vec{X: 1})
	b.Update()

	if target.HP != target.Stats.MaxHP {
		t.Errorf("target HP = %v, a beam cannot reach past its max range", target.HP)
	}
}

func TestBattle_RammingLowerHPShipDies(t *testing.T) {
	rammer := combatShip("rammer", 0, physics.Vec{}, 50)
	target := combatShip("target", 1, physics.Vec{X: 30}, 100)
	rammer.Ramming = true
	rammer.CurrentTarget = target

	b := NewBattle([]*entity.Ship{rammer, target}, Options{TickDuration: 0.1})
	b.Update()

	if rammer.Alive {
		t.Error("rammer survived a ram it entered with lower HP")
	}
	if target.HP != 75 {
		t.Errorf("target HP = %v, expected 75 (half the rammer's 50 HP as damage)", target.HP)
	}
	if !b.Over() || b.Winner() != 1 {
		t.Errorf("over=%v winner=%v, expected the surviving team 1", b.Over(), b.Winner())
	}
}

func TestBattle_RammingEqualHPMutualDestruction(t *testing.T) {
	rammer := combatShip("rammer", 0, physics.Vec{}, 100)
	target := combatShip("target", 1, physics.Vec{X: 30}, 100)
	rammer.Ramming = true
	rammer.CurrentTarget = target

	b := NewBattle([]*entity.Ship{rammer, target}, Options{TickDuration: 0.1})
	b.Update()

	if rammer.Alive || target.Alive {
		t.Errorf("rammer alive=%v target alive=%v, an exact HP tie destroys both",
			rammer.Alive, target.Alive)
	}
	if !b.Over() || b.Winner() != -1 {
		t.Errorf("over=%v winner=%v, expected a draw", b.Over(), b.Winner())
	}
}

func TestBattle_RammingRequiresContact(t *testing.T) {
	rammer := combatShip("rammer", 0, physics.Vec{}, 50)
	target := combatShip("target", 1, physics.Vec{X: 300}, 100)
	rammer.Ramming = true
	rammer.CurrentTarget = target

	b := NewBattle([]*entity.Ship{rammer, target}, Options{TickDuration: 0.1})
	b.Update()

	if !rammer.Alive || target.HP != target.Stats.MaxHP {
		t.Error("ramming resolved without hull contact")
	}
}

// fireController locks onto a fixed target and fires every reloaded mount.
type fireController struct {
	target *entity.Ship
}

func (c *fireController) Update(s *entity.Ship, ctx *TickContext) {
	s.CurrentTarget = c.target
	for _, m := range s.Mounts {
		s.TryFire(m, c.target)
	}
}

func TestBattle_DuelDamageAccounting(t *testing.T) {
	spec := &component.WeaponSpec{
		Damage: 50, Reload: 1, MaxRange: 900, Accuracy: 1, FalloffStart: 1,
	}
	attacker := entity.NewShip("attacker", 0, physics.Vec{}, 0, 20, beamPool(100, spec))
	target := combatShip("target", 1, physics.Vec{X: 500}, 1000)

	b := NewBattle([]*entity.Ship{attacker, target}, Options{TickDuration: 0.5})
	b.SetController(attacker, &fireController{target: target})

	// 0.5s ticks against a 1s reload: shot N lands on tick 2N-1.
	for i := 0; i < 10; i++ {
		b.Update()
	}
	if target.HP != 750 {
		t.Errorf("target HP after 10 ticks = %v, expected 750 (5 shots at 50)", target.HP)
	}

	for !b.Over() && b.Tick() < 200 {
		b.Update()
	}
	if !b.Over() {
		t.Fatal("duel never ended")
	}
	if b.Tick() != 39 {
		t.Errorf("battle ended on tick %d, expected tick 39 (the 20th shot)", b.Tick())
	}
	if target.Alive || target.HP > 0 {
		t.Errorf("target alive=%v HP=%v, expected destruction at exactly 0", target.Alive, target.HP)
	}
	if b.Winner() != 0 {
		t.Errorf("winner = %d, expected team 0", b.Winner())
	}
}

func TestBattle_DerelictShipsDoNotCount(t *testing.T) {
	fighter := combatShip("fighter", 0, physics.Vec{}, 100)
	// Hull with no command and control: alive but combat-ineffective.
	hulk := entity.NewShip("hulk", 1, physics.Vec{X: 400}, 0, 20, []*component.Component{
		{Name: "hull", Mass: 100, MaxHP: 100, Active: true, Abilities: []component.Ability{
			{Kind: component.CombatPropulsion, Value: 50},
			{Kind: component.ManeuveringThruster, Value: 5},
		}},
	})

	b := NewBattle([]*entity.Ship{fighter, hulk}, Options{TickDuration: 0.1})
	b.Update()

	if !hulk.Alive {
		t.Fatal("hulk should still be alive, just derelict")
	}
	if !b.Over() || b.Winner() != 0 {
		t.Errorf("over=%v winner=%v, a team of derelicts has already lost", b.Over(), b.Winner())
	}
}

func TestBattle_UpdateIsNoOpWhenOver(t *testing.T) {
	rammer := combatShip("rammer", 0, physics.Vec{}, 100)
	target := combatShip("target", 1, physics.Vec{X: 30}, 100)
	rammer.Ramming = true
	rammer.CurrentTarget = target

	b := NewBattle([]*entity.Ship{rammer, target}, Options{TickDuration: 0.1})
	b.Update()
	if !b.Over() {
		t.Fatal("mutual ram should end the battle")
	}

	tick := b.Tick()
	b.Update()
	if b.Tick() != tick {
		t.Errorf("tick advanced to %d after the battle ended", b.Tick())
	}
}

func TestBattle_SameSeedReplaysIdentically(t *testing.T) {
	run := func() uint64 {
		spec := &component.WeaponSpec{
			Damage: 50, Reload: 1, MaxRange: 900, Accuracy: 0.5, FalloffStart: 1,
		}
		attacker := entity.NewShip("attacker", 0, physics.Vec{}, 0, 20, beamPool(100, spec))
		target := combatShip("target", 1, physics.Vec{X: 500}, 1000)

		b := NewBattle([]*entity.Ship{attacker, target}, Options{
			TickDuration: 0.5,
			Seed:         42,
		})
		b.SetController(attacker, &fireController{target: target})

		for !b.Over() && b.Tick() < 10000 {
			b.Update()
		}
		return b.Tick()
	}

	first := run()
	if second := run(); second != first {
		t.Errorf("same seed ended on ticks %d and %d", first, second)
	}
}

func TestBattle_PublishesLifecycleEvents(t *testing.T) {
	bus := event.NewBus()
	var destroyed, ended int
	bus.Subscribe(event.ShipDestroyed, func(e event.Event) { destroyed++ })
	bus.Subscribe(event.BattleEnded, func(e event.Event) { ended++ })

	rammer := combatShip("rammer", 0, physics.Vec{}, 50)
	target := combatShip("target", 1, physics.Vec{X: 30}, 100)
	rammer.Ramming = true
	rammer.CurrentTarget = target

	b := NewBattle([]*entity.Ship{rammer, target}, Options{TickDuration: 0.1, Bus: bus})
	b.Update()

	if destroyed != 1 {
		t.Errorf("ship_destroyed published %d times, expected 1", destroyed)
	}
	if ended != 1 {
		t.Errorf("battle_ended published %d times, expected 1", ended)
	}
}

func TestBattle_SnapshotCopiesState(t *testing.T) {
	a := combatShip("a", 0, physics.Vec{}, 100)
	c := combatShip("b", 1, physics.Vec{X: 500}, 100)

	b := NewBattle([]*entity.Ship{a, c}, Options{TickDuration: 0.1})
	b.Update()

	snap := b.Snapshot()
	if snap.Tick != 1 {
		t.Errorf("snapshot tick = %d, expected 1", snap.Tick)
	}
	if len(snap.Ships) != 2 {
		t.Fatalf("snapshot holds %d ships, expected 2", len(snap.Ships))
	}
	for _, ss := range snap.Ships {
		if ss.MaxHP != 100 || !ss.Alive {
			t.Errorf("ship %q snapshot: maxHP=%v alive=%v", ss.Name, ss.MaxHP, ss.Alive)
		}
	}
}

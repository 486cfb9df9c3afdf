// pkg/engine/battle.go
package engine

import (
	"context"
	"math/rand/v2"

	"github.com/opd-ai/go-shipforge/pkg/entity"
	"github.com/opd-ai/go-shipforge/pkg/event"
	"github.com/opd-ai/go-shipforge/pkg/logging"
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// ramOverkill is added on top of a rammed-out ship's own HP so the kill
// is unambiguous in reports.
const ramOverkill = 9999.0

// defaultCellSize matches the broad-phase cell to typical weapon ranges.
const defaultCellSize = 500.0

// Controller is the external AI layer: it rewrites a ship's intent
// fields and queues attacks before the engine applies movement. The core
// never decides what a ship wants, only what physically happens.
type Controller interface {
	Update(s *entity.Ship, ctx *TickContext)
}

// TickContext is the read surface a controller gets each tick.
type TickContext struct {
	Tick         uint64
	TickDuration float64
	Ships        []*entity.Ship
	Projectiles  []*entity.Projectile
	Grid         *physics.SpatialGrid
}

// BeamTrace is one tick's beam visualization record. Traces are valid
// only for the tick that produced them.
type BeamTrace struct {
	Start physics.Vec
	End   physics.Vec
	Color string
}

// Options configures a battle. Zero values pick safe defaults.
type Options struct {
	// TickDuration in seconds; defaults to 1/60.
	TickDuration float64
	// CellSize for the broad-phase grid; defaults to defaultCellSize.
	CellSize float64
	// Seed drives the hit-chance rolls; battles with the same seed,
	// ships and controllers replay identically.
	Seed uint64
	// Lead optionally solves missile intercept points.
	Lead LeadSolver
	// Controller drives every ship. Per-ship controllers can be set
	// with SetController after construction.
	Controller Controller
	Logger     *logging.Logger
	Bus        *event.Bus
}

// Battle is the top-level orchestrator: it owns the ship list and tick
// counter, drives the external controllers, resolves weapons fire and
// ramming, and decides when the battle is over. Everything runs
// single-threaded inside Update; no state escapes mid-tick.
type Battle struct {
	ships       []*entity.Ship
	controllers map[uint64]Controller

	tick         uint64
	tickDuration float64

	grid        *physics.SpatialGrid
	projectiles *ProjectileManager

	// Beams holds this tick's beam visualization records.
	Beams []BeamTrace

	over   bool
	winner int

	defaultController Controller
	rng               *rand.Rand
	bus               *event.Bus
	log               *logging.Logger
	ctx               context.Context
}

// NewBattle creates a battle over the given ships. Ships keep their
// assigned teams; the battle ends when a team has no ship that is both
// alive and non-derelict.
func NewBattle(ships []*entity.Ship, opts Options) *Battle {
	if opts.TickDuration <= 0 {
		opts.TickDuration = 1.0 / 60.0
	}
	if opts.CellSize <= 0 {
		opts.CellSize = defaultCellSize
	}

	b := &Battle{
		ships:             ships,
		controllers:       make(map[uint64]Controller),
		tickDuration:      opts.TickDuration,
		grid:              physics.NewSpatialGrid(opts.CellSize),
		winner:            -1,
		defaultController: opts.Controller,
		rng:               rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		bus:               opts.Bus,
		log:               opts.Logger,
		ctx:               context.Background(),
	}
	b.projectiles = NewProjectileManager(opts.Lead, b.handleProjectileHit)

	b.bus.Publish(event.NewBattleEvent(event.BattleStarted, b, -1, 0))
	return b
}

// SetContext replaces the logging context, letting hosts tag all battle
// logs with a battle ID.
func (b *Battle) SetContext(ctx context.Context) {
	b.ctx = ctx
}

// SetController assigns a controller to one ship, overriding the
// battle-wide default.
func (b *Battle) SetController(s *entity.Ship, c Controller) {
	b.controllers[s.ID()] = c
}

// Ships exposes the owned ship list (including destroyed hulks, which
// stay for reporting).
func (b *Battle) Ships() []*entity.Ship {
	return b.ships
}

// Projectiles exposes the live projectile list for rendering.
func (b *Battle) Projectiles() []*entity.Projectile {
	return b.projectiles.Projectiles()
}

// Tick returns the number of completed ticks.
func (b *Battle) Tick() uint64 {
	return b.tick
}

// Over reports whether the battle has ended.
func (b *Battle) Over() bool {
	return b.over
}

// Winner returns the surviving team's id, or -1 when neither or both
// sides qualify. Meaningful once Over is true.
func (b *Battle) Winner() int {
	return b.winner
}

// Update advances the battle by one fixed tick. The stage order is a
// contract: grid rebuild, controller intent, movement, attack
// resolution, ramming, projectile advancement, battle-over check. Later
// stages read state the earlier ones produced. Once the battle is over,
// Update is a no-op.
func (b *Battle) Update() {
	if b.over {
		return
	}

	b.tick++
	b.Beams = b.Beams[:0]

	b.rebuildGrid()
	b.runControllers()
	b.applyMovement()
	b.resolveAttacks()
	b.resolveRamming()
	b.projectiles.Advance(b.tickDuration, b.grid)
	b.projectiles.Sweep()
	b.checkBattleOver()
}

// rebuildGrid repopulates the broad phase from the currently alive
// entity set. The grid never holds stale or dead entries after this.
func (b *Battle) rebuildGrid() {
	b.grid.Clear()
	for _, s := range b.ships {
		if s.Alive {
			b.grid.Insert(s)
		}
	}
	for _, p := range b.projectiles.Projectiles() {
		if p.Active() {
			b.grid.Insert(p)
		}
	}
}

// runControllers lets the external AI layer rewrite each alive ship's
// intent.
func (b *Battle) runControllers() {
	ctx := &TickContext{
		Tick:         b.tick,
		TickDuration: b.tickDuration,
		Ships:        b.ships,
		Projectiles:  b.projectiles.Projectiles(),
		Grid:         b.grid,
	}
	for _, s := range b.ships {
		if !s.Alive {
			continue
		}
		if c := b.controllerFor(s); c != nil {
			c.Update(s, ctx)
		}
	}
}

func (b *Battle) controllerFor(s *entity.Ship) Controller {
	if c, ok := b.controllers[s.ID()]; ok {
		return c
	}
	return b.defaultController
}

// applyMovement integrates ship kinematics and per-tick housekeeping.
func (b *Battle) applyMovement() {
	for _, s := range b.ships {
		if !s.Alive {
			continue
		}
		s.ApplyMovement(b.tickDuration)
		s.RegenerateShields(b.tickDuration)
		s.TickMounts(b.tickDuration)
	}
}

// resolveAttacks drains every alive ship's queued attacks: beams resolve
// immediately by ray cast, projectile and missile attacks are handed to
// the projectile manager.
func (b *Battle) resolveAttacks() {
	for _, s := range b.ships {
		if !s.Alive || len(s.Pending) == 0 {
			if s.Pending != nil {
				s.Pending = s.Pending[:0]
			}
			continue
		}

		for i := range s.Pending {
			a := s.Pending[i]
			switch a.Type {
			case entity.AttackBeam:
				b.resolveBeam(s, a)
			case entity.AttackProjectile, entity.AttackMissile:
				if p := b.projectiles.Spawn(s, a); p != nil {
					b.bus.Publish(event.NewProjectileEvent(
						event.ProjectileFired, p, p.ID(), s.ID(), s.TeamID, b.tick))
				}
			}
		}
		s.Pending = s.Pending[:0]
	}
}

// resolveBeam ray-casts a beam attack against its declared target. The
// trace runs to max range on a miss and is shortened to the hit point on
// a connect. Attacks against missing or dead targets are skipped: no
// beam, no damage.
func (b *Battle) resolveBeam(shooter *entity.Ship, a entity.Attack) {
	target := a.Target
	if target == nil || !target.Alive || a.Spec == nil {
		return
	}

	dir := a.Direction.Normalize()
	if dir.LengthSquared() == 0 {
		return
	}

	trace := BeamTrace{Start: a.Origin, End: a.Origin.Add(dir.Scale(a.Range))}

	dist, ok := physics.RaySphere(a.Origin, dir, target.Body(), a.Range)
	if ok {
		chance := a.Spec.HitChanceAt(dist) * shooter.Stats.AttackModifier * target.Stats.DefenseModifier
		if chance > 1 {
			chance = 1
		}
		if chance > 0 && b.rng.Float64() < chance {
			trace.End = a.Origin.Add(dir.Scale(dist))
			damage := a.Spec.DamageAt(dist)
			destroyed := target.TakeDamage(damage)
			if a.Mount != nil {
				a.Mount.RecordHit()
			}
			b.log.Debug(b.ctx, "beam hit",
				"shooter", shooter.Name, "target", target.Name,
				"distance", dist, "damage", damage)
			if destroyed {
				b.reportDestroyed(target)
			}
		}
	}

	b.Beams = append(b.Beams, trace)
	b.bus.Publish(event.NewShipEvent(event.BeamFired, shooter, shooter.ID(), shooter.TeamID, b.tick))
}

// resolveRamming applies mutual collision damage for ships on a ramming
// run that reached their target. The ship with strictly lower HP dies
// outright; the survivor takes half the dead ship's pre-ram HP. An exact
// HP tie destroys both.
func (b *Battle) resolveRamming() {
	for _, s := range b.ships {
		if !s.Alive || !s.Ramming {
			continue
		}
		target := s.CurrentTarget
		if target == nil || !target.Alive || target == s {
			continue
		}
		if s.Position.Distance(target.Position) >= s.Radius+target.Radius {
			continue
		}

		b.ram(s, target)
	}
}

func (b *Battle) ram(s, target *entity.Ship) {
	sHP, tHP := s.HP, target.HP

	switch {
	case sHP < tHP:
		s.TakeDamage(sHP + ramOverkill)
		target.TakeDamage(sHP / 2)
	case tHP < sHP:
		target.TakeDamage(tHP + ramOverkill)
		s.TakeDamage(tHP / 2)
	default:
		s.TakeDamage(sHP + ramOverkill)
		target.TakeDamage(tHP + ramOverkill)
	}

	b.log.Debug(b.ctx, "ramming impact",
		"rammer", s.Name, "target", target.Name,
		"rammer_hp", sHP, "target_hp", tHP)
	b.bus.Publish(event.NewShipEvent(event.ShipRammed, s, s.ID(), s.TeamID, b.tick))

	if !s.Alive {
		b.reportDestroyed(s)
	}
	if !target.Alive {
		b.reportDestroyed(target)
	}
}

// handleProjectileHit is the projectile manager's impact callback.
func (b *Battle) handleProjectileHit(p *entity.Projectile, target *entity.Ship, damage float64, destroyed bool) {
	b.log.Debug(b.ctx, "projectile hit",
		"target", target.Name, "damage", damage, "status", p.Status.String())
	b.bus.Publish(event.NewProjectileEvent(
		event.ProjectileHit, p, p.ID(), ownerID(p), p.TeamID, b.tick))
	if destroyed {
		b.reportDestroyed(target)
	}
}

func ownerID(p *entity.Projectile) uint64 {
	if p.Owner == nil {
		return 0
	}
	return p.Owner.ID()
}

func (b *Battle) reportDestroyed(s *entity.Ship) {
	b.log.Info(b.ctx, "ship destroyed", "ship", s.Name, "team", s.TeamID, "tick", b.tick)
	b.bus.Publish(event.NewShipEvent(event.ShipDestroyed, s, s.ID(), s.TeamID, b.tick))
}

// checkBattleOver ends the battle when a team has no effective ships
// left. A ship counts only while alive and non-derelict. The winner is
// the single remaining effective team, or -1 when none or several
// remain.
func (b *Battle) checkBattleOver() {
	effective := make(map[int]int)
	teams := make(map[int]bool)
	for _, s := range b.ships {
		teams[s.TeamID] = true
		if s.Effective() {
			effective[s.TeamID]++
		}
	}

	eliminated := false
	for team := range teams {
		if effective[team] == 0 {
			eliminated = true
			break
		}
	}
	if !eliminated {
		return
	}

	b.over = true
	b.winner = -1
	if len(effective) == 1 {
		for team := range effective {
			b.winner = team
		}
	}

	b.log.Info(b.ctx, "battle over", "winner", b.winner, "tick", b.tick)
	b.bus.Publish(event.NewBattleEvent(event.BattleEnded, b, b.winner, b.tick))
}

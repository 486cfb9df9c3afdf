// pkg/entity/attack.go
package entity

import (
	"github.com/opd-ai/go-shipforge/pkg/component"
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// AttackType selects how the engine resolves a fired attack.
type AttackType int

const (
	// AttackBeam resolves instantly via a ray cast.
	AttackBeam AttackType = iota
	// AttackProjectile spawns an unguided projectile.
	AttackProjectile
	// AttackMissile spawns a guided projectile.
	AttackMissile
)

// Attack is the descriptor a controller queues on a ship when a weapon
// fires. The engine drains these once per tick; descriptors with a dead
// or missing target where one is required are silently skipped.
type Attack struct {
	Type      AttackType
	Origin    physics.Vec
	Direction physics.Vec
	Range     float64
	Damage    float64

	// Target is required for beams and used for missile guidance.
	Target *Ship

	// TargetProjectile designates a hostile projectile for interception
	// by a seeker (point defense).
	TargetProjectile *Projectile

	// Mount is the firing weapon, credited with hits for bookkeeping.
	Mount *WeaponMount

	Spec *component.WeaponSpec
}

// WeaponMount is one weapon ability installed on a ship, tracking reload
// state and the shots/hits tally the hit-rate reporting reads.
type WeaponMount struct {
	Component *component.Component
	Kind      component.AbilityKind
	Spec      *component.WeaponSpec

	CooldownLeft float64
	Shots        int
	Hits         int
}

// Ready reports whether the mount has finished reloading.
func (m *WeaponMount) Ready() bool {
	return m.CooldownLeft <= 0
}

// RecordHit credits a landed shot to the mount.
func (m *WeaponMount) RecordHit() {
	m.Hits++
}

// HitRate returns the fraction of fired shots that landed.
func (m *WeaponMount) HitRate() float64 {
	if m.Shots == 0 {
		return 0
	}
	return float64(m.Hits) / float64(m.Shots)
}

// attackTypeFor maps a weapon ability kind to its attack type.
func attackTypeFor(kind component.AbilityKind) AttackType {
	switch kind {
	case component.BeamWeapon:
		return AttackBeam
	case component.SeekerWeapon:
		return AttackMissile
	default:
		return AttackProjectile
	}
}

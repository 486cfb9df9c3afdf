// pkg/entity/stats.go
package entity

import (
	"math"

	"github.com/opd-ai/go-shipforge/pkg/component"
)

// Stat derivation constants. These values are load-bearing: existing ship
// designs are balanced against them, so they must not change.
const (
	speedFactor  = 25.0
	thrustFactor = 2500.0
	turnFactor   = 25000.0
)

// ResourceBudget is the derived consumption picture for one resource.
type ResourceBudget struct {
	Capacity float64

	// Rate sums continuous consumption over currently active components.
	Rate float64

	// PotentialRate is the same sum ignoring active state, for projection.
	PotentialRate float64

	// UsageRate adds each weapon's activation cost spread over its reload
	// to the potential continuous rate.
	UsageRate float64

	Generation float64

	// Endurance is seconds until the pool empties at Rate; +Inf when the
	// drain is zero or negative.
	Endurance float64
}

// ShipStats is the composite physical/combat profile derived from a
// ship's component pool.
type ShipStats struct {
	Mass         float64
	Thrust       float64
	MaxSpeed     float64
	Acceleration float64
	TurnSpeed    float64

	MaxHP       float64
	MaxShields  float64
	ShieldRegen float64
	DPS         float64

	Fuel   ResourceBudget
	Energy ResourceBudget
	Ammo   ResourceBudget

	// EnergyNetRate is generation minus continuous consumption; energy
	// endurance keys on it instead of the gross rate.
	EnergyNetRate float64

	// EnergyRecharge is seconds from empty to full on generation alone.
	EnergyRecharge float64

	CrewCapacity float64
	CrewRequired float64
	HasCommand   bool

	AttackModifier  float64
	DefenseModifier float64
}

// Derelict reports whether the pool fails the operational requirements:
// a command seat, working propulsion, and enough crew berths.
func (st ShipStats) Derelict() bool {
	if !st.HasCommand || st.Thrust <= 0 {
		return true
	}
	return st.CrewRequired > 0 && st.CrewCapacity < st.CrewRequired
}

// ComputeStats derives composite stats from a component pool. The
// reduction is pure; callers cache the result and recompute only when
// the pool changes.
func ComputeStats(comps []*component.Component) ShipStats {
	totals := component.Aggregate(comps)
	activeTotals := component.Aggregate(activeOnly(comps))

	st := ShipStats{
		Thrust:          totals.Value(component.CombatPropulsion),
		MaxShields:      totals.Value(component.ShieldProjection),
		ShieldRegen:     totals.Value(component.ShieldRegeneration),
		CrewCapacity:    totals.Value(component.CrewCapacity),
		CrewRequired:    totals.Value(component.CrewRequired),
		HasCommand:      totals.Has(component.CommandAndControl),
		AttackModifier:  totals.Modifier(component.ToHitAttack),
		DefenseModifier: totals.Modifier(component.ToHitDefense),
	}

	var weapons []component.WeaponAbility
	for _, c := range comps {
		st.Mass += c.Mass
		st.MaxHP += c.MaxHP
		weapons = append(weapons, c.WeaponSpecs()...)
	}

	if st.Mass > 0 {
		st.MaxSpeed = st.Thrust * speedFactor / st.Mass
		st.Acceleration = st.Thrust * thrustFactor / (st.Mass * st.Mass)
		st.TurnSpeed = totals.Value(component.ManeuveringThruster) * turnFactor / math.Pow(st.Mass, 1.5)
	}

	for _, w := range weapons {
		st.DPS += w.Spec.DPS()
	}

	st.Fuel = budgetFor(component.Fuel, totals, activeTotals, weapons)
	st.Energy = budgetFor(component.Energy, totals, activeTotals, weapons)
	st.Ammo = budgetFor(component.Ammo, totals, activeTotals, weapons)

	st.EnergyNetRate = st.Energy.Generation - st.Energy.Rate
	if st.EnergyNetRate < 0 {
		st.Energy.Endurance = st.Energy.Capacity / -st.EnergyNetRate
	} else {
		st.Energy.Endurance = math.Inf(1)
	}
	if st.Energy.Generation > 0 {
		st.EnergyRecharge = st.Energy.Capacity / st.Energy.Generation
	} else {
		st.EnergyRecharge = math.Inf(1)
	}

	return st
}

// budgetFor assembles one resource's consumption picture.
func budgetFor(res component.Resource, totals, activeTotals component.Totals, weapons []component.WeaponAbility) ResourceBudget {
	b := ResourceBudget{
		Capacity:      totals.ResourceValue(component.ResourceStorage, res),
		Rate:          activeTotals.ConsumptionRate(res, component.Continuous),
		PotentialRate: totals.ConsumptionRate(res, component.Continuous),
		Generation:    totals.ResourceValue(component.ResourceGeneration, res),
	}

	b.UsageRate = b.PotentialRate
	for _, w := range weapons {
		if cost := w.Spec.CostOf(res); cost > 0 && w.Spec.Reload > 0 {
			b.UsageRate += cost / w.Spec.Reload
		}
	}

	if b.Rate > 0 {
		b.Endurance = b.Capacity / b.Rate
	} else {
		b.Endurance = math.Inf(1)
	}
	return b
}

func activeOnly(comps []*component.Component) []*component.Component {
	out := make([]*component.Component, 0, len(comps))
	for _, c := range comps {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}

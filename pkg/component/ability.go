// pkg/component/ability.go
package component

// AbilityKind identifies one composable capability a component can carry.
// Kinds are a closed enum rather than open subclassing: every ability
// exposes one primary scalar (or boolean presence for markers) plus
// kind-specific parameters, which keeps aggregation a pure data reduction.
type AbilityKind int

const (
	CombatPropulsion AbilityKind = iota
	ManeuveringThruster
	ShieldProjection
	ShieldRegeneration
	ResourceStorage
	ResourceGeneration
	ResourceConsumption
	ProjectileWeapon
	BeamWeapon
	SeekerWeapon
	ToHitAttack
	ToHitDefense
	CrewCapacity
	CrewRequired
	CommandAndControl
	LifeSupport
)

// String returns the kind's canonical name.
func (k AbilityKind) String() string {
	switch k {
	case CombatPropulsion:
		return "CombatPropulsion"
	case ManeuveringThruster:
		return "ManeuveringThruster"
	case ShieldProjection:
		return "ShieldProjection"
	case ShieldRegeneration:
		return "ShieldRegeneration"
	case ResourceStorage:
		return "ResourceStorage"
	case ResourceGeneration:
		return "ResourceGeneration"
	case ResourceConsumption:
		return "ResourceConsumption"
	case ProjectileWeapon:
		return "ProjectileWeapon"
	case BeamWeapon:
		return "BeamWeapon"
	case SeekerWeapon:
		return "SeekerWeapon"
	case ToHitAttack:
		return "ToHitAttack"
	case ToHitDefense:
		return "ToHitDefense"
	case CrewCapacity:
		return "CrewCapacity"
	case CrewRequired:
		return "CrewRequired"
	case CommandAndControl:
		return "CommandAndControl"
	case LifeSupport:
		return "LifeSupport"
	default:
		return "Unknown"
	}
}

// IsMarker reports whether the kind carries no numeric value and
// aggregates by boolean presence.
func (k AbilityKind) IsMarker() bool {
	return k == CommandAndControl || k == LifeSupport
}

// IsWeapon reports whether the kind fires attacks.
func (k AbilityKind) IsWeapon() bool {
	return k == ProjectileWeapon || k == BeamWeapon || k == SeekerWeapon
}

// IsModifier reports whether the kind combines multiplicatively across
// stack groups instead of by summation.
func (k AbilityKind) IsModifier() bool {
	return k == ToHitAttack || k == ToHitDefense
}

// Resource identifies a consumable pool on a ship.
type Resource int

const (
	ResourceNone Resource = iota
	Fuel
	Energy
	Ammo
)

// String returns the resource's canonical name.
func (r Resource) String() string {
	switch r {
	case Fuel:
		return "fuel"
	case Energy:
		return "energy"
	case Ammo:
		return "ammo"
	default:
		return "none"
	}
}

// Trigger describes when a ResourceConsumption ability draws from its pool.
type Trigger int

const (
	// Continuous consumption drains every second the component is active.
	Continuous Trigger = iota
	// PerActivation consumption is charged each time the component fires.
	PerActivation
)

// Ability is one capability instance attached to a component. The Kind
// selects which fields are meaningful; unused fields stay zero.
type Ability struct {
	Kind AbilityKind

	// Value is the primary scalar: thrust, turn rate, capacity, rate, or
	// modifier factor. Markers ignore it.
	Value float64

	// Resource qualifies storage/generation/consumption abilities.
	Resource Resource

	// Trigger qualifies ResourceConsumption abilities.
	Trigger Trigger

	// StackGroup marks redundant installations: abilities of the same
	// kind sharing a group contribute only their maximum. Empty means
	// the ability stacks under its owning component's own group.
	StackGroup string

	// Weapon holds firing parameters for weapon kinds.
	Weapon *WeaponSpec
}

// PrimaryValue returns the scalar the aggregator reduces over. Markers
// report 1 so boolean-OR reduction can share the numeric path.
func (a Ability) PrimaryValue() float64 {
	if a.Kind.IsMarker() {
		return 1
	}
	return a.Value
}

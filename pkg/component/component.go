// pkg/component/component.go
package component

// Component is a part mounted on a ship: base stats plus the ability
// instances that give it behavior. Stats arrive here already scaled by
// the builder's size modifiers; this core consumes the scaled values and
// never re-applies modifiers itself.
type Component struct {
	Name  string
	Layer string

	Mass  float64
	MaxHP float64
	Cost  float64

	// Scale records the size modifier the builder applied, kept for
	// reporting only.
	Scale float64

	// Active gates continuous resource consumption; an offline component
	// still counts toward mass, HP and potential rates.
	Active bool

	Abilities []Ability
}

// HasAbility reports whether any ability of the given kind is present.
func (c *Component) HasAbility(kind AbilityKind) bool {
	for i := range c.Abilities {
		if c.Abilities[i].Kind == kind {
			return true
		}
	}
	return false
}

// WeaponSpecs returns the specs of every weapon ability on the component,
// paired with its kind.
func (c *Component) WeaponSpecs() []WeaponAbility {
	var out []WeaponAbility
	for i := range c.Abilities {
		a := &c.Abilities[i]
		if a.Kind.IsWeapon() && a.Weapon != nil {
			out = append(out, WeaponAbility{Kind: a.Kind, Spec: a.Weapon})
		}
	}
	return out
}

// WeaponAbility pairs a weapon spec with the kind of ability carrying it.
type WeaponAbility struct {
	Kind AbilityKind
	Spec *WeaponSpec
}

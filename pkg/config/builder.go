// pkg/config/builder.go
package config

import (
	"fmt"

	"github.com/opd-ai/go-shipforge/pkg/component"
	"github.com/opd-ai/go-shipforge/pkg/entity"
	"github.com/opd-ai/go-shipforge/pkg/physics"
	"github.com/opd-ai/go-shipforge/pkg/validation"
)

// abilityKinds maps config names to ability kinds.
var abilityKinds = map[string]component.AbilityKind{
	"CombatPropulsion":    component.CombatPropulsion,
	"ManeuveringThruster": component.ManeuveringThruster,
	"ShieldProjection":    component.ShieldProjection,
	"ShieldRegeneration":  component.ShieldRegeneration,
	"ResourceStorage":     component.ResourceStorage,
	"ResourceGeneration":  component.ResourceGeneration,
	"ResourceConsumption": component.ResourceConsumption,
	"ProjectileWeapon":    component.ProjectileWeapon,
	"BeamWeapon":          component.BeamWeapon,
	"SeekerWeapon":        component.SeekerWeapon,
	"ToHitAttack":         component.ToHitAttack,
	"ToHitDefense":        component.ToHitDefense,
	"CrewCapacity":        component.CrewCapacity,
	"CrewRequired":        component.CrewRequired,
	"CommandAndControl":   component.CommandAndControl,
	"LifeSupport":         component.LifeSupport,
}

// ParseAbilityKind resolves a config kind name.
func ParseAbilityKind(name string) (component.AbilityKind, error) {
	kind, ok := abilityKinds[name]
	if !ok {
		return 0, fmt.Errorf("unknown ability kind %q", name)
	}
	return kind, nil
}

// ParseResource resolves a config resource name; empty means none.
func ParseResource(name string) (component.Resource, error) {
	switch name {
	case "":
		return component.ResourceNone, nil
	case "fuel":
		return component.Fuel, nil
	case "energy":
		return component.Energy, nil
	case "ammo":
		return component.Ammo, nil
	default:
		return 0, fmt.Errorf("unknown resource %q", name)
	}
}

// ParseTrigger resolves a consumption trigger name; empty means continuous.
func ParseTrigger(name string) (component.Trigger, error) {
	switch name {
	case "", "continuous":
		return component.Continuous, nil
	case "perActivation":
		return component.PerActivation, nil
	default:
		return 0, fmt.Errorf("unknown trigger %q", name)
	}
}

// Build assembles the scenario's ships. Team index becomes the team ID.
// Every design passes validation before any ship is created, so a bad
// scenario fails whole rather than spawning a partial battle.
func Build(cfg *BattleConfig) ([]*entity.Ship, error) {
	if len(cfg.Teams) < 2 {
		return nil, fmt.Errorf("scenario needs at least 2 teams, got %d", len(cfg.Teams))
	}

	var ships []*entity.Ship
	for teamID, team := range cfg.Teams {
		if len(team.Ships) == 0 {
			return nil, fmt.Errorf("team %q has no ships", team.Name)
		}
		for _, sc := range team.Ships {
			built, err := buildShips(teamID, sc)
			if err != nil {
				return nil, fmt.Errorf("team %q ship %q: %w", team.Name, sc.Name, err)
			}
			ships = append(ships, built...)
		}
	}
	return ships, nil
}

func buildShips(teamID int, sc ShipConfig) ([]*entity.Ship, error) {
	name, err := validation.ValidateShipName(sc.Name)
	if err != nil {
		return nil, err
	}

	count := sc.Count
	if count <= 0 {
		count = 1
	}

	var ships []*entity.Ship
	for i := 0; i < count; i++ {
		// Each copy needs its own component pool; HP and active state
		// are per-ship.
		comps, err := buildComponents(sc.Components)
		if err != nil {
			return nil, err
		}
		if err := validation.ValidateDesign(comps); err != nil {
			return nil, err
		}

		shipName := name
		if count > 1 {
			shipName = fmt.Sprintf("%s-%d", name, i+1)
		}
		// Copies spawn in a loose column abeam of the lead ship.
		pos := physics.Vec{X: sc.X, Y: sc.Y + float64(i)*80}
		ships = append(ships, entity.NewShip(shipName, teamID, pos, sc.Heading, sc.Radius, comps))
	}
	return ships, nil
}

func buildComponents(configs []ComponentConfig) ([]*component.Component, error) {
	var comps []*component.Component
	for _, cc := range configs {
		c, err := buildComponent(cc)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", cc.Name, err)
		}
		comps = append(comps, c)
	}
	return comps, nil
}

func buildComponent(cc ComponentConfig) (*component.Component, error) {
	scale := cc.Scale
	if scale <= 0 {
		scale = 1
	}
	c := &component.Component{
		Name:   cc.Name,
		Layer:  cc.Layer,
		Mass:   cc.Mass,
		MaxHP:  cc.MaxHP,
		Cost:   cc.Cost,
		Scale:  scale,
		Active: !cc.Disabled,
	}

	for _, ac := range cc.Abilities {
		a, err := buildAbility(ac)
		if err != nil {
			return nil, err
		}
		c.Abilities = append(c.Abilities, a)
	}
	return c, nil
}

func buildAbility(ac AbilityConfig) (component.Ability, error) {
	kind, err := ParseAbilityKind(ac.Kind)
	if err != nil {
		return component.Ability{}, err
	}
	res, err := ParseResource(ac.Resource)
	if err != nil {
		return component.Ability{}, err
	}
	trigger, err := ParseTrigger(ac.Trigger)
	if err != nil {
		return component.Ability{}, err
	}

	a := component.Ability{
		Kind:       kind,
		Value:      ac.Value,
		Resource:   res,
		Trigger:    trigger,
		StackGroup: ac.StackGroup,
	}
	if ac.Weapon != nil {
		spec, err := buildWeapon(ac.Weapon)
		if err != nil {
			return component.Ability{}, err
		}
		a.Weapon = spec
	}
	if kind.IsWeapon() && a.Weapon == nil {
		return component.Ability{}, fmt.Errorf("%s ability needs a weapon block", kind)
	}
	return a, nil
}

func buildWeapon(wc *WeaponConfig) (*component.WeaponSpec, error) {
	spec := &component.WeaponSpec{
		Name:             wc.Name,
		Damage:           wc.Damage,
		Reload:           wc.Reload,
		MaxRange:         wc.MaxRange,
		Accuracy:         wc.Accuracy,
		FalloffStart:     wc.FalloffStart,
		ProjectileSpeed:  wc.ProjectileSpeed,
		ProjectileRadius: wc.ProjectileRadius,
		Endurance:        wc.Endurance,
		TurnRate:         wc.TurnRate,
		MaxSpeed:         wc.MaxSpeed,
		HitPoints:        wc.HitPoints,
	}
	if len(wc.Costs) > 0 {
		spec.Costs = make(map[component.Resource]float64, len(wc.Costs))
		for name, cost := range wc.Costs {
			res, err := ParseResource(name)
			if err != nil {
				return nil, err
			}
			if res == component.ResourceNone {
				return nil, fmt.Errorf("weapon cost needs a named resource")
			}
			spec.Costs[res] = cost
		}
	}
	return spec, nil
}

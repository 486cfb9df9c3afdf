// Package validation checks ship designs before they enter a battle. The
// combat core assumes well-formed component pools; this package is where
// malformed input from config files or design tools gets rejected.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-shipforge/pkg/component"
)

// Design limits.
const (
	MaxShipNameLen  = 48
	MaxComponents   = 256
	MaxAbilityValue = 1e9
)

// ValidateShipName validates and trims a ship name.
func ValidateShipName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("ship name cannot be empty")
	}
	if len(name) > MaxShipNameLen {
		return "", fmt.Errorf("ship name too long: %d characters (max %d)", len(name), MaxShipNameLen)
	}
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("ship name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("ship name cannot be only whitespace")
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("ship name contains control characters")
		}
	}
	return trimmed, nil
}

// ValidateDesign checks a complete component pool. It rejects pools the
// stats calculator cannot produce meaningful numbers for; it does not
// judge whether the design is combat-effective.
func ValidateDesign(comps []*component.Component) error {
	if len(comps) == 0 {
		return fmt.Errorf("design has no components")
	}
	if len(comps) > MaxComponents {
		return fmt.Errorf("design has %d components (max %d)", len(comps), MaxComponents)
	}

	totalMass := 0.0
	for i, c := range comps {
		if c == nil {
			return fmt.Errorf("component %d is nil", i)
		}
		if err := validateComponent(c); err != nil {
			return fmt.Errorf("component %d (%s): %w", i, c.Name, err)
		}
		totalMass += c.Mass
	}
	if totalMass <= 0 {
		return fmt.Errorf("design has no mass")
	}
	return nil
}

func validateComponent(c *component.Component) error {
	if c.Mass < 0 {
		return fmt.Errorf("negative mass %v", c.Mass)
	}
	if c.MaxHP < 0 {
		return fmt.Errorf("negative max HP %v", c.MaxHP)
	}
	for i, a := range c.Abilities {
		if err := validateAbility(a); err != nil {
			return fmt.Errorf("ability %d (%s): %w", i, a.Kind, err)
		}
	}
	return nil
}

func validateAbility(a component.Ability) error {
	if a.Value < 0 || a.Value > MaxAbilityValue {
		return fmt.Errorf("value %v out of range [0, %v]", a.Value, float64(MaxAbilityValue))
	}
	if a.Kind.IsWeapon() {
		if a.Weapon == nil {
			return fmt.Errorf("weapon ability without a weapon spec")
		}
		return validateWeapon(a.Weapon)
	}
	return nil
}

func validateWeapon(w *component.WeaponSpec) error {
	if w.Damage < 0 {
		return fmt.Errorf("negative damage %v", w.Damage)
	}
	if w.MaxRange <= 0 {
		return fmt.Errorf("max range must be positive, got %v", w.MaxRange)
	}
	if w.Reload <= 0 {
		return fmt.Errorf("reload must be positive, got %v", w.Reload)
	}
	if w.Accuracy < 0 || w.Accuracy > 1 {
		return fmt.Errorf("accuracy %v outside [0, 1]", w.Accuracy)
	}
	if w.FalloffStart < 0 || w.FalloffStart > 1 {
		return fmt.Errorf("falloff start %v outside [0, 1]", w.FalloffStart)
	}
	for res, cost := range w.Costs {
		if cost < 0 {
			return fmt.Errorf("negative %s cost %v", res, cost)
		}
	}
	return nil
}

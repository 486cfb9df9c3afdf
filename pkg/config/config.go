// Package config loads battle scenarios from JSON and assembles them
// into engine-ready ships. Files describe teams, ship designs and
// component loadouts; the builder converts them through the validation
// layer into entity values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// BattleConfig is the root of a scenario file.
type BattleConfig struct {
	// TickRate is the simulation rate in ticks per second.
	TickRate int     `json:"tickRate"`
	CellSize float64 `json:"cellSize"`
	Seed     uint64  `json:"seed"`
	// MaxTicks caps a runaway battle; 0 means no cap.
	MaxTicks uint64       `json:"maxTicks"`
	Teams    []TeamConfig `json:"teams"`
}

// TickDuration returns the tick length in seconds, defaulting to 60 Hz.
func (c *BattleConfig) TickDuration() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// TeamConfig describes one side of the battle.
type TeamConfig struct {
	Name  string       `json:"name"`
	Color string       `json:"color"`
	Ships []ShipConfig `json:"ships"`
}

// ShipConfig describes one ship: spawn transform plus component loadout.
type ShipConfig struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Radius  float64 `json:"radius"`
	// Count spawns this many copies; 0 or 1 spawns one.
	Count      int               `json:"count,omitempty"`
	Components []ComponentConfig `json:"components"`
}

// ComponentConfig describes one mounted component.
type ComponentConfig struct {
	Name  string  `json:"name"`
	Layer string  `json:"layer,omitempty"`
	Mass  float64 `json:"mass"`
	MaxHP float64 `json:"maxHP"`
	Cost  float64 `json:"cost,omitempty"`
	Scale float64 `json:"scale,omitempty"`
	// Disabled components carry mass and HP but consume nothing.
	Disabled  bool            `json:"disabled,omitempty"`
	Abilities []AbilityConfig `json:"abilities"`
}

// AbilityConfig describes one ability with kind-dependent fields.
type AbilityConfig struct {
	Kind       string        `json:"kind"`
	Value      float64       `json:"value,omitempty"`
	Resource   string        `json:"resource,omitempty"`
	Trigger    string        `json:"trigger,omitempty"`
	StackGroup string        `json:"stackGroup,omitempty"`
	Weapon     *WeaponConfig `json:"weapon,omitempty"`
}

// WeaponConfig describes a weapon ability's firing parameters.
type WeaponConfig struct {
	Name             string             `json:"name,omitempty"`
	Damage           float64            `json:"damage"`
	Reload           float64            `json:"reload"`
	MaxRange         float64            `json:"maxRange"`
	Accuracy         float64            `json:"accuracy"`
	FalloffStart     float64            `json:"falloffStart,omitempty"`
	ProjectileSpeed  float64            `json:"projectileSpeed,omitempty"`
	ProjectileRadius float64            `json:"projectileRadius,omitempty"`
	Endurance        float64            `json:"endurance,omitempty"`
	TurnRate         float64            `json:"turnRate,omitempty"`
	MaxSpeed         float64            `json:"maxSpeed,omitempty"`
	HitPoints        float64            `json:"hitPoints,omitempty"`
	Costs            map[string]float64 `json:"costs,omitempty"`
}

// LoadConfig loads a scenario from a file.
func LoadConfig(path string) (*BattleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config BattleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a scenario to a file.
func SaveConfig(config *BattleConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a two-team skirmish: a beam frigate against a
// missile frigate, both fully operational.
func DefaultConfig() *BattleConfig {
	return &BattleConfig{
		TickRate: 60,
		CellSize: 500,
		Seed:     1,
		MaxTicks: 36000,
		Teams: []TeamConfig{
			{
				Name:  "Vanguard",
				Color: "#4060FF",
				Ships: []ShipConfig{
					{
						Name: "Lance", X: -1500, Y: 0, Heading: 0, Radius: 20,
						Components: defaultBeamFrigate(),
					},
				},
			},
			{
				Name:  "Reavers",
				Color: "#FF6040",
				Ships: []ShipConfig{
					{
						Name: "Talon", X: 1500, Y: 0, Heading: 180, Radius: 20,
						Components: defaultMissileFrigate(),
					},
				},
			},
		},
	}
}

func defaultBeamFrigate() []ComponentConfig {
	return []ComponentConfig{
		{
			Name: "bridge", Layer: "core", Mass: 20, MaxHP: 60,
			Abilities: []AbilityConfig{
				{Kind: "CommandAndControl"},
				{Kind: "LifeSupport"},
				{Kind: "CrewCapacity", Value: 10},
			},
		},
		{
			Name: "crew quarters", Layer: "core", Mass: 15, MaxHP: 40,
			Abilities: []AbilityConfig{
				{Kind: "CrewRequired", Value: 6},
			},
		},
		{
			Name: "fusion drive", Layer: "engineering", Mass: 40, MaxHP: 80,
			Abilities: []AbilityConfig{
				{Kind: "CombatPropulsion", Value: 120},
				{Kind: "ManeuveringThruster", Value: 30},
				{Kind: "ResourceConsumption", Value: 2, Resource: "fuel", Trigger: "continuous"},
			},
		},
		{
			Name: "fuel tank", Layer: "engineering", Mass: 25, MaxHP: 30,
			Abilities: []AbilityConfig{
				{Kind: "ResourceStorage", Value: 600, Resource: "fuel"},
			},
		},
		{
			Name: "reactor", Layer: "engineering", Mass: 30, MaxHP: 50,
			Abilities: []AbilityConfig{
				{Kind: "ResourceStorage", Value: 200, Resource: "energy"},
				{Kind: "ResourceGeneration", Value: 8, Resource: "energy"},
			},
		},
		{
			Name: "shield generator", Layer: "defense", Mass: 20, MaxHP: 40,
			Abilities: []AbilityConfig{
				{Kind: "ShieldProjection", Value: 150},
				{Kind: "ShieldRegeneration", Value: 4},
				{Kind: "ResourceConsumption", Value: 3, Resource: "energy", Trigger: "continuous"},
			},
		},
		{
			Name: "laser battery", Layer: "weapons", Mass: 25, MaxHP: 40,
			Abilities: []AbilityConfig{
				{Kind: "BeamWeapon", Weapon: &WeaponConfig{
					Name: "pulse laser", Damage: 18, Reload: 1.5, MaxRange: 900,
					Accuracy: 0.85, FalloffStart: 0.6,
					Costs: map[string]float64{"energy": 5},
				}},
			},
		},
	}
}

func defaultMissileFrigate() []ComponentConfig {
	return []ComponentConfig{
		{
			Name: "bridge", Layer: "core", Mass: 20, MaxHP: 60,
			Abilities: []AbilityConfig{
				{Kind: "CommandAndControl"},
				{Kind: "LifeSupport"},
				{Kind: "CrewCapacity", Value: 10},
			},
		},
		{
			Name: "crew quarters", Layer: "core", Mass: 15, MaxHP: 40,
			Abilities: []AbilityConfig{
				{Kind: "CrewRequired", Value: 6},
			},
		},
		{
			Name: "fusion drive", Layer: "engineering", Mass: 40, MaxHP: 80,
			Abilities: []AbilityConfig{
				{Kind: "CombatPropulsion", Value: 140},
				{Kind: "ManeuveringThruster", Value: 25},
				{Kind: "ResourceConsumption", Value: 2, Resource: "fuel", Trigger: "continuous"},
			},
		},
		{
			Name: "fuel tank", Layer: "engineering", Mass: 25, MaxHP: 30,
			Abilities: []AbilityConfig{
				{Kind: "ResourceStorage", Value: 600, Resource: "fuel"},
			},
		},
		{
			Name: "magazine", Layer: "weapons", Mass: 20, MaxHP: 30,
			Abilities: []AbilityConfig{
				{Kind: "ResourceStorage", Value: 24, Resource: "ammo"},
			},
		},
		{
			Name: "missile rack", Layer: "weapons", Mass: 30, MaxHP: 40,
			Abilities: []AbilityConfig{
				{Kind: "SeekerWeapon", Weapon: &WeaponConfig{
					Name: "hunter missile", Damage: 45, Reload: 4, MaxRange: 2500,
					Accuracy: 1, ProjectileSpeed: 300, ProjectileRadius: 3,
					Endurance: 12, TurnRate: 90, MaxSpeed: 400, HitPoints: 5,
					Costs: map[string]float64{"ammo": 1},
				}},
			},
		},
	}
}

// Package ai provides stock ship controllers. The engine treats
// controllers as an external collaborator; these are reference
// implementations for scenario runs and a template for real opponents.
package ai

import (
	"github.com/opd-ai/go-shipforge/pkg/engine"
	"github.com/opd-ai/go-shipforge/pkg/entity"
)

// Simple is a direct-approach gunnery controller: it locks the nearest
// effective enemy, closes to weapons range and fires everything that has
// reloaded. With Kamikaze set it instead runs its hull into the target.
type Simple struct {
	// Standoff is the fraction of the longest weapon range to hold at;
	// zero picks a default.
	Standoff float64

	// Kamikaze turns the controller into a ramming run.
	Kamikaze bool
}

const defaultStandoff = 0.7

// Update implements engine.Controller.
func (c *Simple) Update(s *entity.Ship, ctx *engine.TickContext) {
	if !s.Alive || s.Derelict {
		return
	}

	target := c.nearestEnemy(s, ctx.Ships)
	s.CurrentTarget = target
	if target == nil {
		s.Throttle = 0
		s.Ramming = false
		return
	}

	offset := target.Position.Sub(s.Position)
	dist := offset.Length()
	s.DesiredHeading = offset.Heading()

	if c.Kamikaze {
		s.Ramming = true
		s.Throttle = 1
		return
	}

	reach := c.longestRange(s)
	hold := c.Standoff
	if hold <= 0 || hold > 1 {
		hold = defaultStandoff
	}

	if reach <= 0 {
		// Nothing to shoot with; close anyway so the battle resolves.
		s.Throttle = 1
	} else if dist > reach*hold {
		s.Throttle = 1
	} else {
		s.Throttle = 0
	}

	for _, m := range s.Mounts {
		if m.Spec != nil && dist <= m.Spec.MaxRange {
			s.TryFire(m, target)
		}
	}
}

// nearestEnemy picks the closest enemy ship still worth shooting at.
// Derelicts are ignored; they are already out of the fight.
func (c *Simple) nearestEnemy(s *entity.Ship, ships []*entity.Ship) *entity.Ship {
	var best *entity.Ship
	bestDist := 0.0
	for _, other := range ships {
		if other == s || other.TeamID == s.TeamID || !other.Effective() {
			continue
		}
		d := s.Position.Distance(other.Position)
		if best == nil || d < bestDist {
			best = other
			bestDist = d
		}
	}
	return best
}

func (c *Simple) longestRange(s *entity.Ship) float64 {
	reach := 0.0
	for _, m := range s.Mounts {
		if m.Spec != nil && m.Spec.MaxRange > reach {
			reach = m.Spec.MaxRange
		}
	}
	return reach
}

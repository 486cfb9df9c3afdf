// pkg/component/weapon.go
package component

// WeaponSpec holds the firing parameters of a weapon ability. All
// distances are in world units, times in seconds.
type WeaponSpec struct {
	Name string

	Damage   float64
	Reload   float64
	MaxRange float64

	// Accuracy is the base hit chance in [0, 1], held flat out to
	// FalloffStart*MaxRange and falling linearly to zero at MaxRange.
	Accuracy     float64
	FalloffStart float64

	// Projectile parameters (projectile and seeker weapons).
	ProjectileSpeed  float64
	ProjectileRadius float64
	Endurance        float64

	// Seeker-only guidance and survivability.
	TurnRate  float64
	MaxSpeed  float64
	HitPoints float64

	// Costs charges these pools once per activation.
	Costs map[Resource]float64
}

// falloffKnee returns the distance where accuracy and damage start
// degrading.
func (w *WeaponSpec) falloffKnee() float64 {
	knee := w.FalloffStart
	if knee <= 0 || knee > 1 {
		knee = 1
	}
	return knee * w.MaxRange
}

// HitChanceAt evaluates the weapon's chance to hit at the given distance:
// flat at Accuracy inside the falloff knee, linear to zero at MaxRange,
// zero beyond.
func (w *WeaponSpec) HitChanceAt(dist float64) float64 {
	if dist < 0 || w.MaxRange <= 0 || dist > w.MaxRange {
		return 0
	}
	knee := w.falloffKnee()
	if dist <= knee {
		return w.Accuracy
	}
	span := w.MaxRange - knee
	if span <= 0 {
		return w.Accuracy
	}
	return w.Accuracy * (1 - (dist-knee)/span)
}

// DamageAt evaluates range-dependent damage with the same knee as the
// accuracy curve. Inside the knee the weapon deals full damage.
func (w *WeaponSpec) DamageAt(dist float64) float64 {
	if dist < 0 || w.MaxRange <= 0 || dist > w.MaxRange {
		return 0
	}
	knee := w.falloffKnee()
	if dist <= knee {
		return w.Damage
	}
	span := w.MaxRange - knee
	if span <= 0 {
		return w.Damage
	}
	return w.Damage * (1 - (dist-knee)/span)
}

// DPS returns sustained damage per second, guarding a zero reload.
func (w *WeaponSpec) DPS() float64 {
	if w.Reload <= 0 {
		return 0
	}
	return w.Damage / w.Reload
}

// CostOf returns the per-activation charge against the given pool.
func (w *WeaponSpec) CostOf(res Resource) float64 {
	if w.Costs == nil {
		return 0
	}
	return w.Costs[res]
}

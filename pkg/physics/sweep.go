// pkg/physics/sweep.go
package physics

import "math"

// Circle represents a circular collision shape.
type Circle struct {
	Center Vec
	Radius float64
}

// Overlaps checks whether two circles intersect.
func (c Circle) Overlaps(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// ClosestApproach solves for the time of closest approach between two
// bodies given their relative position d0 and relative displacement dv
// over one tick. The result is normalized to the tick interval and
// clamped to [0, 1]. A zero relative displacement yields t = 0, which
// degrades the swept test to a static one.
func ClosestApproach(d0, dv Vec) float64 {
	denom := dv.Dot(dv)
	if denom == 0 {
		return 0
	}
	t := -d0.Dot(dv) / denom
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// SweptDistance returns the minimum separation reached between two bodies
// over a tick: d0 is the relative position at tick start and dv the
// relative displacement accumulated during the tick. Continuous detection
// here is what keeps fast projectiles from tunneling through targets that
// a per-tick point sample would step over.
func SweptDistance(d0, dv Vec) float64 {
	t := ClosestApproach(d0, dv)
	return d0.Add(dv.Scale(t)).Length()
}

// RaySphere intersects the ray origin + dir*t against a sphere and
// returns the distance along the ray of the nearest intersection within
// [0, maxRange]. dir must be a unit vector. ok is false when the ray
// misses, the sphere lies behind the origin, or the hit is out of range.
func RaySphere(origin, dir Vec, sphere Circle, maxRange float64) (float64, bool) {
	oc := origin.Sub(sphere.Center)
	// Quadratic a*t^2 + b*t + c with a == 1 for unit dir.
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius

	disc := b*b - 4*c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	for _, t := range [2]float64{(-b - sqrtDisc) / 2, (-b + sqrtDisc) / 2} {
		if t >= 0 && t <= maxRange {
			return t, true
		}
	}
	return 0, false
}

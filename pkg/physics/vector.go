// pkg/physics/vector.go
package physics

import "math"

// Vec represents a 2D vector with x and y components.
type Vec struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors.
func (v Vec) Add(other Vec) Vec {
	return Vec{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors.
func (v Vec) Sub(other Vec) Vec {
	return Vec{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value.
func (v Vec) Scale(factor float64) Vec {
	return Vec{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector.
func (v Vec) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons).
func (v Vec) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to the zero vector.
func (v Vec) Normalize() Vec {
	length := v.Length()
	if length == 0 {
		return Vec{}
	}
	return Vec{X: v.X / length, Y: v.Y / length}
}

// Distance returns the distance between two points.
func (v Vec) Distance(other Vec) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors.
func (v Vec) Dot(other Vec) float64 {
	return v.X*other.X + v.Y*other.Y
}

// ClampLength returns the vector with its magnitude capped at max.
func (v Vec) ClampLength(max float64) Vec {
	if max >= 0 && v.LengthSquared() > max*max {
		return v.Normalize().Scale(max)
	}
	return v
}

// Rotate returns the vector rotated by the given angle in degrees.
func (v Vec) Rotate(degrees float64) Vec {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Heading returns the direction of the vector in degrees.
// Ship headings are kept in degrees throughout the simulation.
func (v Vec) Heading() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// FromHeading creates a vector from a heading in degrees and a magnitude.
func FromHeading(degrees, magnitude float64) Vec {
	rad := degrees * math.Pi / 180
	return Vec{
		X: magnitude * math.Cos(rad),
		Y: magnitude * math.Sin(rad),
	}
}

// TurnToward returns the heading reached by turning from current toward
// target (both degrees), moving at most maxDelta degrees along the
// shorter arc.
func TurnToward(current, target, maxDelta float64) float64 {
	diff := math.Mod(target-current, 360)
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	if diff > maxDelta {
		diff = maxDelta
	} else if diff < -maxDelta {
		diff = -maxDelta
	}
	return current + diff
}

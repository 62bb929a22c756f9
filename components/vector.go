package components

import "math"

// Vector3 is a point or direction in world space. Y is up; the player stands
// at the origin.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Horizontal is the distance from the vertical axis through the origin
func (v Vector3) Horizontal() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalized returns a unit vector, or the zero vector for a zero input
func (v Vector3) Normalized() Vector3 {
	l := v.Length()
	if l == 0 {
		return Vector3{}
	}
	return v.Scale(1 / l)
}

package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Cross returns the z component of the 3D cross product of v and other.
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// UV is a texture coordinate. U runs left to right, V bottom to top unless
// flipped by the owner.
type UV struct {
	U, V float64
}

// FlipV returns the coordinate with V mirrored (v -> 1-v).
func (uv UV) FlipV() UV {
	return UV{uv.U, 1 - uv.V}
}

// Float32 returns the coordinate narrowed for mesh buffers.
func (uv UV) Float32() [2]float32 {
	return [2]float32{float32(uv.U), float32(uv.V)}
}

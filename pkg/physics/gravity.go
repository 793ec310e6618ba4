package physics

import "github.com/go-gl/mathgl/mgl64"

// G is the gravitational constant in m^3 kg^-1 s^-2.
const G = 6.6743e-11

// Acceleration returns the gravitational acceleration exerted on b by
// other, or false for a degenerate zero-distance pair. Positions are in
// simulation units; the force law runs in meters.
func Acceleration(b, other *Body) (mgl64.Vec3, bool) {
	delta := other.Pos.Sub(b.Pos)
	dist := delta.Len()
	if dist == 0 {
		return mgl64.Vec3{}, false
	}
	dir := delta.Mul(1 / dist)
	distM := dist * 1000
	force := G * b.Mass * other.Mass / (distM * distM)
	return dir.Mul(force / b.Mass), true
}

// CheckCollision returns the velocity damping factor for b against other:
// -0.2 when the spheres overlap (the full velocity vector is reversed and
// cut to 20%), 1.0 otherwise. Stateless, evaluated per pair direction
// every frame.
func CheckCollision(b, other *Body) float64 {
	if b.Radius+other.Radius > other.Pos.Sub(b.Pos).Len() {
		return -0.2
	}
	return 1.0
}

package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMesh stands in for a GPU mesh so physics tests run without a GL
// context.
type stubMesh struct {
	updates  int
	released int
}

func (m *stubMesh) Update([]float32) { m.updates++ }
func (m *stubMesh) Draw()            {}
func (m *stubMesh) Release()         { m.released++ }

func stubFactory(made *[]*stubMesh) MeshFactory {
	return func([]float32) Mesh {
		m := &stubMesh{}
		if made != nil {
			*made = append(*made, m)
		}
		return m
	}
}

func newEarth(factory MeshFactory) *Body {
	return NewBody(mgl64.Vec3{}, mgl64.Vec3{}, 5.97219e24, 5515, factory)
}

func newMoon(factory MeshFactory) *Body {
	return NewBody(mgl64.Vec3{3844, 0, 0}, mgl64.Vec3{0, 0, 228}, 7.34767309e22, 3344, factory)
}

func closedFormRadius(mass, density float64) float64 {
	return math.Cbrt(3*mass/(4*math.Pi*density)) / 1e5
}

func TestRadiusClosedForm(t *testing.T) {
	moon := newMoon(stubFactory(nil))
	assert.InEpsilon(t, closedFormRadius(7.34767309e22, 3344), moon.Radius, 1e-12)

	earth := newEarth(stubFactory(nil))
	// the derived radius of an Earth-mass, Earth-density sphere lands on
	// Earth's real radius scaled by 1e5
	assert.InEpsilon(t, 63.71, earth.Radius, 1e-3)
}

func TestRadiusMonotonicity(t *testing.T) {
	b := NewBody(mgl64.Vec3{}, mgl64.Vec3{}, 1e20, 3344, stubFactory(nil))
	r0 := b.Radius

	b.Mass *= 10
	b.UpdateRadius()
	assert.Greater(t, b.Radius, r0, "radius must grow with mass at fixed density")

	b.Density *= 10
	b.UpdateRadius()
	heavier := closedFormRadius(b.Mass, b.Density)
	assert.InEpsilon(t, heavier, b.Radius, 1e-12)
	assert.Less(t, b.Radius, closedFormRadius(b.Mass, b.Density/10),
		"radius must shrink with density at fixed mass")
}

func TestAccelerateScaling(t *testing.T) {
	b := NewBody(mgl64.Vec3{}, mgl64.Vec3{}, 1e20, 3344, stubFactory(nil))
	b.Accelerate(mgl64.Vec3{96, 0, 0}, 2.0)
	assert.InDelta(t, 2.0, b.Vel.X(), 1e-12)
	assert.Zero(t, b.Vel.Y())
	assert.Zero(t, b.Vel.Z())
}

func TestUpdatePosScaling(t *testing.T) {
	b := NewBody(mgl64.Vec3{}, mgl64.Vec3{94, 0, 0}, 1e20, 3344, stubFactory(nil))
	b.UpdatePos(0.5)
	assert.InDelta(t, 0.5, b.Pos.X(), 1e-12)
}

func TestUpdatePosRefreshesRadius(t *testing.T) {
	b := NewBody(mgl64.Vec3{}, mgl64.Vec3{}, 1e20, 3344, stubFactory(nil))
	b.Mass *= 8
	b.UpdatePos(1.0)
	assert.InEpsilon(t, closedFormRadius(b.Mass, b.Density), b.Radius, 1e-12)
}

func TestCheckCollisionBothDirections(t *testing.T) {
	factory := stubFactory(nil)
	a := newEarth(factory)
	b := newEarth(factory)
	b.Pos = mgl64.Vec3{50, 0, 0} // well inside the summed radii (~127)

	assert.Equal(t, -0.2, CheckCollision(a, b))
	assert.Equal(t, -0.2, CheckCollision(b, a))

	b.Pos = mgl64.Vec3{5000, 0, 0}
	assert.Equal(t, 1.0, CheckCollision(a, b))
	assert.Equal(t, 1.0, CheckCollision(b, a))
}

func TestStepPausedLeavesBodiesUntouched(t *testing.T) {
	factory := stubFactory(nil)
	a := NewBody(mgl64.Vec3{}, mgl64.Vec3{}, 5.97219e24, 5515, factory)
	b := NewBody(mgl64.Vec3{3844, 0, 0}, mgl64.Vec3{}, 7.34767309e22, 3344, factory)

	Step([]*Body{a, b}, 1.0, true)

	assert.Equal(t, mgl64.Vec3{}, a.Pos)
	assert.Equal(t, mgl64.Vec3{}, a.Vel)
	assert.Equal(t, mgl64.Vec3{3844, 0, 0}, b.Pos)
	assert.Equal(t, mgl64.Vec3{}, b.Vel)
}

func TestStepSkipsZeroDistancePairs(t *testing.T) {
	factory := stubFactory(nil)
	a := NewBody(mgl64.Vec3{100, 0, 0}, mgl64.Vec3{}, 1e20, 3344, factory)
	b := NewBody(mgl64.Vec3{100, 0, 0}, mgl64.Vec3{}, 1e20, 3344, factory)

	Step([]*Body{a, b}, 1.0, false)

	assert.False(t, math.IsNaN(a.Vel.X()))
	assert.Equal(t, mgl64.Vec3{}, a.Vel)
	assert.Equal(t, mgl64.Vec3{}, b.Vel)
}

func TestStepExcludesInitializingBodies(t *testing.T) {
	factory := stubFactory(nil)
	earth := newEarth(factory)
	pending := NewBody(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{}, 1e20, 3344, factory)
	pending.Initializing = true

	Step([]*Body{earth, pending}, 1.0, false)

	assert.Equal(t, mgl64.Vec3{}, earth.Vel, "pending body must not attract")
	assert.Equal(t, mgl64.Vec3{}, pending.Vel, "pending body must not be attracted")
	// the pending body's sphere is refreshed every frame while placing
	assert.Greater(t, pending.Mesh.(*stubMesh).updates, 0)
}

func TestEarthMoonFirstFrame(t *testing.T) {
	factory := stubFactory(nil)
	moon := newMoon(factory)
	moon.HasTrail = true
	earth := newEarth(factory)

	Step([]*Body{moon, earth}, 1.0, false)

	// the moon attracts Earth: Earth picks up a small +X velocity of
	// G*mMoon/d^2 scaled by the /96 coupling, and its position follows
	distM := 3844.0 * 1000
	expected := G * 7.34767309e22 / (distM * distM) / 96
	assert.Greater(t, earth.Vel.X(), 0.0)
	assert.InEpsilon(t, expected, earth.Vel.X(), 1e-4)
	assert.Greater(t, earth.Pos.X(), 0.0)

	// the moon keeps its tangential velocity and advances along +Z
	assert.InDelta(t, 228.0, moon.Vel.Z(), 1e-9)
	assert.InDelta(t, 228.0/94, moon.Pos.Z(), 1e-9)
	// and is pulled toward Earth along -X
	assert.Less(t, moon.Vel.X(), 0.0)
}

func TestTrailBoundAndThrottle(t *testing.T) {
	var made []*stubMesh
	b := NewBody(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 7.34767309e22, 3344, stubFactory(&made))
	b.HasTrail = true

	for i := 1; i <= 160; i++ {
		b.UpdatePos(1.0)
		require.LessOrEqual(t, len(b.Trail), 30)
		if i%5 != 0 {
			continue
		}
		// an entry is appended only on every 5th simulation frame
		want := i / 5
		if want > 30 {
			want = 30
		}
		assert.Len(t, b.Trail, want, "frame %d", i)
	}

	// 160 frames: one body mesh plus 32 trail spheres, the first two of
	// which were evicted and released exactly once
	require.Len(t, made, 33)
	assert.Equal(t, 1, made[1].released)
	assert.Equal(t, 1, made[2].released)
	assert.Equal(t, 0, made[3].released)
}

func TestReleaseFreesEverythingOnce(t *testing.T) {
	var made []*stubMesh
	b := NewBody(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 7.34767309e22, 3344, stubFactory(&made))
	b.HasTrail = true
	for i := 0; i < 25; i++ {
		b.UpdatePos(1.0)
	}

	b.Release()
	b.Release() // second call must not double-free the body mesh

	for i, m := range made {
		assert.Equal(t, 1, m.released, "mesh %d", i)
	}
	assert.Nil(t, b.Trail)
}

func TestCollisionDampingAppliedPerDirection(t *testing.T) {
	factory := stubFactory(nil)
	a := newEarth(factory)
	a.Vel = mgl64.Vec3{10, 0, 0}
	b := newEarth(factory)
	b.Pos = mgl64.Vec3{50, 0, 0}
	b.Vel = mgl64.Vec3{-10, 0, 0}

	Step([]*Body{a, b}, 1.0, true)

	// paused gates acceleration and integration but not damping: each
	// body's velocity is reversed and cut to 20% by its own pass
	assert.InDelta(t, -2.0, a.Vel.X(), 1e-9)
	assert.InDelta(t, 2.0, b.Vel.X(), 1e-9)
}

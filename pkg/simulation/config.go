package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"gravity-sim-3d/pkg/physics"
)

// --- Scenario configuration ---

type EnvironmentConfig struct {
	Name      string       `json:"name"`
	Bodies    []BodyConfig `json:"bodies"`
	AutoOrbit bool         `json:"auto_orbit,omitempty"`
}

type BodyConfig struct {
	Mass    float64    `json:"mass"`
	Density float64    `json:"density"`
	Pos     [3]float64 `json:"pos"`
	Vel     [3]float64 `json:"vel"`
	Color   string     `json:"color"`
	Trail   bool       `json:"trail,omitempty"`
}

// SetOrbitalVelocities gives every zero-velocity satellite a circular
// XZ-plane orbit around the first body. The speed folds in the /94 and
// /96 integration couplings so the orbit closes under this integrator:
// per frame the velocity gains a/96 and the position moves v/94, which
// balances at v = sqrt(a*r*94/96).
func SetOrbitalVelocities(bodies []BodyConfig) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		if bodies[i].Vel != [3]float64{} {
			continue
		}
		dx := bodies[i].Pos[0] - central.Pos[0]
		dz := bodies[i].Pos[2] - central.Pos[2]
		r := math.Hypot(dx, dz)
		if r == 0 {
			continue
		}
		rm := r * 1000
		a := physics.G * central.Mass / (rm * rm)
		v := math.Sqrt(a * r * 94.0 / 96.0)
		bodies[i].Vel[0] = -dz / r * v
		bodies[i].Vel[2] = dx / r * v
	}
}

// LoadConfig reads a scenario file and builds the simulator, uploading
// each body's sphere through factory.
func LoadConfig(path string, factory physics.MeshFactory) (*Simulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var env EnvironmentConfig
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	if env.AutoOrbit {
		SetOrbitalVelocities(env.Bodies)
	}

	return NewSimulator(env, factory), nil
}

// parseColor turns "#rrggbb" into an RGBA uniform value; malformed input
// falls back to the default body color.
func parseColor(hex string) mgl32.Vec4 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mgl32.Vec4{200.0 / 255, 200.0 / 255, 1, 1}
	}
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), 1}
}

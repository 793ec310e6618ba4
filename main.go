package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"gravity-sim-3d/pkg/camera"
	"gravity-sim-3d/pkg/geometry"
	"gravity-sim-3d/pkg/physics"
	"gravity-sim-3d/pkg/render"
	"gravity-sim-3d/pkg/simulation"
)

const (
	windowWidth  = 800
	windowHeight = 600

	gridSize      = 10000.0
	gridDivisions = 50
)

var (
	gridColor  = mgl32.Vec4{1, 1, 1, 0.25}
	trailColor = mgl32.Vec3{1, 0, 0}
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// nudgeEvent is one arrow press (or key repeat) during placement.
type nudgeEvent struct {
	dir   simulation.Nudge
	shift bool
}

// frameEvents collects the edge-triggered input recorded by callbacks
// since the previous frame. The loop drains it in a fixed order at the
// top of each frame, before sampling held keys.
type frameEvents struct {
	speedKeys    []int
	nudges       []nudgeEvent
	placePress   bool
	placeRelease bool
	lookX, lookY float64
	scroll       float64
}

type app struct {
	window *glfw.Window
	prog   *render.Program
	sim    *simulation.Simulator
	cam    *camera.Camera
	grid   *render.Mesh

	events frameEvents

	lastX, lastY float64
	firstMouse   bool

	lastFrame float64
	deltaTime float64

	running bool
}

func main() {
	envName := flag.String("env", "earthmoon", "scenario name under pkg/assets")
	flag.Parse()

	window, err := render.InitWindow(windowWidth, windowHeight, "Gravity Simulator 3D Grid")
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer glfw.Terminate()

	prog, err := render.NewProgram()
	if err != nil {
		log.Fatalf("shader build failed: %v", err)
	}
	defer prog.Release()

	configPath := filepath.Join("pkg", "assets", *envName+".json")
	sim, err := simulation.LoadConfig(configPath, func(verts []float32) physics.Mesh {
		return render.NewTriangleMesh(verts)
	})
	if err != nil {
		log.Fatalf("loading scenario: %v", err)
	}
	defer sim.Release()

	printControls(sim)

	a := &app{
		window:     window,
		prog:       prog,
		sim:        sim,
		cam:        camera.New(mgl32.Vec3{0, 1000, 5000}),
		firstMouse: true,
		running:    true,
	}
	a.installCallbacks()

	prog.Use()
	prog.SetProjection(mgl32.Perspective(
		mgl32.DegToRad(45), float32(windowWidth)/float32(windowHeight), 0.1, 750000))

	a.grid = render.NewLineMesh(nil)
	defer a.grid.Release()

	a.lastFrame = glfw.GetTime()
	for !window.ShouldClose() && a.running {
		a.frame()
	}
}

// frame runs one loop iteration: timing, edge events, held keys, view
// update, grid regeneration, physics step and draws, then present.
func (a *app) frame() {
	now := glfw.GetTime()
	a.deltaTime = now - a.lastFrame
	a.lastFrame = now

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	a.processEvents()
	a.processHeldKeys()

	a.prog.Use()
	a.prog.SetView(a.cam.View())

	// the grid reads the positions from before this frame's step
	a.drawGrid()
	a.sim.Step()
	a.drawBodies()

	a.window.SwapBuffers()
	glfw.PollEvents()
}

func (a *app) installCallbacks() {
	a.window.SetKeyCallback(a.onKey)
	a.window.SetMouseButtonCallback(a.onMouseButton)
	a.window.SetCursorPosCallback(a.onCursor)
	a.window.SetScrollCallback(a.onScroll)
	a.window.SetFramebufferSizeCallback(a.onResize)
	a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
}

// processEvents drains the edge-triggered input in a fixed order: speed
// keys, placement begin, nudges, placement launch, look, dolly.
func (a *app) processEvents() {
	ev := a.events
	a.events = frameEvents{}

	for _, digit := range ev.speedKeys {
		if a.sim.SetSpeedKey(digit) {
			log.Printf("simulation speed: %.1fx", a.sim.Speed)
		}
	}
	if ev.placePress {
		a.sim.BeginPlacement()
	}
	for _, n := range ev.nudges {
		a.sim.NudgePending(n.dir, n.shift)
	}
	if ev.placeRelease {
		a.sim.LaunchPending()
	}
	if ev.lookX != 0 || ev.lookY != 0 {
		a.cam.Rotate(ev.lookX, ev.lookY)
	}
	if ev.scroll != 0 {
		a.cam.Dolly(a.deltaTime, ev.scroll)
	}
}

// processHeldKeys samples continuous key state: camera movement, boost,
// pause, quit and pending-body growth.
func (a *app) processHeldKeys() {
	boost := a.window.GetKey(glfw.KeyX) == glfw.Press
	dt := a.deltaTime

	if a.window.GetKey(glfw.KeyW) == glfw.Press {
		a.cam.MoveForward(dt, boost, 1)
	}
	if a.window.GetKey(glfw.KeyS) == glfw.Press {
		a.cam.MoveForward(dt, boost, -1)
	}
	if a.window.GetKey(glfw.KeyA) == glfw.Press {
		a.cam.MoveRight(dt, boost, -1)
	}
	if a.window.GetKey(glfw.KeyD) == glfw.Press {
		a.cam.MoveRight(dt, boost, 1)
	}
	if a.window.GetKey(glfw.KeySpace) == glfw.Press {
		a.cam.MoveUp(dt, boost, 1)
	}
	if a.window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		a.cam.MoveUp(dt, boost, -1)
	}

	a.sim.Paused = a.window.GetKey(glfw.KeyK) == glfw.Press

	if a.window.GetKey(glfw.KeyQ) == glfw.Press {
		a.running = false
	}

	if a.sim.Pending() != nil && a.window.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		a.sim.GrowPending(dt)
	}
}

// drawGrid rebuilds the displaced lattice from the current body states and
// draws it as semi-transparent lines.
func (a *app) drawGrid() {
	wells := make([]geometry.Well, 0, len(a.sim.Bodies))
	for _, b := range a.sim.Bodies {
		wells = append(wells, geometry.Well{Pos: b.Pos, Mass: b.Mass})
	}
	a.grid.Update(geometry.GridVertices(gridSize, gridDivisions, wells))

	a.prog.SetColor(gridColor)
	a.prog.SetModel(mgl32.Ident4())
	a.grid.Draw()
}

func (a *app) drawBodies() {
	for _, b := range a.sim.Bodies {
		a.prog.SetColor(b.Color)
		a.prog.SetModel(translate(b))
		b.Mesh.Draw()
		if b.HasTrail {
			a.drawTrail(b)
		}
	}
}

// drawTrail renders the history spheres at their recorded positions with
// an age-proportional alpha, oldest faintest.
func (a *app) drawTrail(b *physics.Body) {
	for i, entry := range b.Trail {
		alpha := float32(i+1) / float32(len(b.Trail))
		a.prog.SetColor(mgl32.Vec4{trailColor.X(), trailColor.Y(), trailColor.Z(), alpha})
		a.prog.SetModel(mgl32.Translate3D(
			float32(entry.Pos.X()), float32(entry.Pos.Y()), float32(entry.Pos.Z())))
		entry.Mesh.Draw()
	}
}

func translate(b *physics.Body) mgl32.Mat4 {
	return mgl32.Translate3D(float32(b.Pos.X()), float32(b.Pos.Y()), float32(b.Pos.Z()))
}

// --- Input callbacks ---

func (a *app) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		switch key {
		case glfw.Key0, glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4:
			a.events.speedKeys = append(a.events.speedKeys, int(key-glfw.Key0))
		}
	}
	if action == glfw.Press || action == glfw.Repeat {
		shift := mods&glfw.ModShift != 0
		switch key {
		case glfw.KeyUp:
			a.events.nudges = append(a.events.nudges, nudgeEvent{simulation.NudgeUp, shift})
		case glfw.KeyDown:
			a.events.nudges = append(a.events.nudges, nudgeEvent{simulation.NudgeDown, shift})
		case glfw.KeyLeft:
			a.events.nudges = append(a.events.nudges, nudgeEvent{simulation.NudgeLeft, shift})
		case glfw.KeyRight:
			a.events.nudges = append(a.events.nudges, nudgeEvent{simulation.NudgeRight, shift})
		}
	}
}

func (a *app) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		a.events.placePress = true
	case glfw.Release:
		a.events.placeRelease = true
	}
}

func (a *app) onCursor(_ *glfw.Window, xpos, ypos float64) {
	if a.firstMouse {
		a.lastX, a.lastY = xpos, ypos
		a.firstMouse = false
		return
	}
	a.events.lookX += xpos - a.lastX
	a.events.lookY += a.lastY - ypos // window Y grows downward
	a.lastX, a.lastY = xpos, ypos
}

func (a *app) onScroll(_ *glfw.Window, _, yoff float64) {
	a.events.scroll += yoff
}

func (a *app) onResize(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func printControls(sim *simulation.Simulator) {
	fmt.Println("===== SIMULATION SPEED CONTROLS =====")
	fmt.Println("Press 0: Normal speed (1.0x)")
	fmt.Println("Press 1: Slow motion (0.5x)")
	fmt.Println("Press 2: Fast (2.0x)")
	fmt.Println("Press 3: Faster (5.0x)")
	fmt.Println("Press 4: Super fast (10.0x)")
	fmt.Println("===== CAMERA CONTROLS =====")
	fmt.Println("WASD: Move camera, Mouse: Look around")
	fmt.Println("Space/Left Shift: Up/Down, Hold X: 5x camera speed")
	fmt.Println("Scroll: Dolly along view direction")
	fmt.Println("===== SIMULATION =====")
	fmt.Println("Hold K: Pause, Q: Quit")
	fmt.Println("LMB: Place a body (hold RMB to grow it, arrows to move it), release to launch")
	fmt.Println("=====================================")
	log.Printf("scenario %q: %d bodies", sim.Name, len(sim.Bodies))
	for i, b := range sim.Bodies {
		log.Printf("body %d: mass %.4e kg, radius %.2f", i, b.Mass, b.Radius)
	}
}

package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	margin       = 60
	maxTelemetry = 300
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // background
	ColAccent  = rl.NewColor(180, 180, 180, 255) // telemetry, bodies without a color
	ColSelect  = rl.NewColor(255, 255, 255, 255) // title
	ColText    = rl.NewColor(140, 140, 140, 255) // readouts
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // key hints
	ColGrid    = rl.NewColor(30, 30, 30, 255)    // arena walls
)

// App owns the window state and steps the simulator once per frame.
type App struct {
	Sim       *sim.Simulator
	Build     viz.Builder
	Title     string
	Bodies    []physics.Body
	Snaps     []physics.Snapshot
	Tick      int
	Running   bool
	Telemetry []float64
	View      viz.Viewport
	Err       error
}

func NewApp(s *sim.Simulator, build viz.Builder, title string) (*App, error) {
	a := &App{
		Sim:       s,
		Build:     build,
		Title:     title,
		Running:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		View:      viz.NewViewport(s.World(), screenWidth, screenHeight, margin),
	}
	if err := a.Reset(); err != nil {
		return nil, err
	}
	return a, nil
}

func initWindow(tickRate int) {
	rl.InitWindow(screenWidth, screenHeight, "bounce")
	// one simulation step per frame, so the frame cap is the tick rate
	rl.SetTargetFPS(int32(tickRate))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulator, build viz.Builder, title string) error {
	app, err := NewApp(s, build, title)
	if err != nil {
		return err
	}

	initWindow(s.World().TickRate)
	defer rl.CloseWindow()

	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update reads the keyboard and advances the simulation. It returns false
// when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.Reset(); err != nil {
			a.Err = err
			return false
		}
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.TogglePolicy()
	}

	if a.Running || rl.IsKeyPressed(rl.KeyN) {
		a.Step()
	}
	return true
}

func (a *App) Step() {
	a.Tick++
	a.Snaps = a.Sim.Step(a.Tick, a.Bodies)

	a.Telemetry = append(a.Telemetry, metrics.Kinetic(a.Snaps))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Reset() error {
	bodies, err := a.Build()
	if err != nil {
		return err
	}
	a.Bodies = bodies
	a.Snaps = physics.Snapshots(bodies)
	a.Tick = 0
	a.Telemetry = a.Telemetry[:0]
	return nil
}

func (a *App) TogglePolicy() {
	if a.Sim.Policy() == sim.PolicySnapshot {
		a.Sim.SetPolicy(sim.PolicySequential)
	} else {
		a.Sim.SetPolicy(sim.PolicySnapshot)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.DrawArena()
	a.DrawHUD()
	a.DrawTelemetry()

	rl.EndDrawing()
}

func (a *App) DrawArena() {
	v := a.View
	rl.DrawRectangleLinesEx(
		rl.NewRectangle(float32(v.OffsetX), float32(v.OffsetY), float32(v.Width), float32(v.Height)),
		2, ColGrid,
	)

	for _, b := range a.Snaps {
		x, y := v.Project(b.Center)
		r := float32(b.HitBox.Width / 2 * v.Scale)
		if r < 1 {
			r = 1
		}
		rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), r, bodyColor(b.Color))
	}
}

func (a *App) DrawHUD() {
	rl.DrawText(a.Title, 30, 20, 24, ColSelect)

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(status, screenWidth-150, 20, 20, ColText)

	info := fmt.Sprintf("tick %d  bodies %d  policy %s", a.Tick, len(a.Snaps), a.Sim.Policy())
	rl.DrawText(info, 30, screenHeight-30, 14, ColText)
	rl.DrawText("[SPACE] PAUSE  [N] STEP  [R] RESET  [P] POLICY  [Q] QUIT", 620, screenHeight-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), screenWidth-150, 50, 14, ColTextDim)
}

// DrawTelemetry plots kinetic energy along the right edge.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	x, y, w, h := float32(screenWidth-230), float32(120), float32(200), float32(60)
	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, e := range a.Telemetry {
		lo = min(lo, e)
		hi = max(hi, e)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, e := range a.Telemetry {
		px := x + float32(i)/float32(len(a.Telemetry)-1)*w
		py := y + h - float32((e-lo)/span)*h
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)

	last := a.Telemetry[len(a.Telemetry)-1]
	rl.DrawText(fmt.Sprintf("KE: %.2e", last), int32(x), int32(y+h+8), 14, ColText)
}

func bodyColor(hex string) rl.Color {
	r, g, b, ok := viz.ParseHexColor(hex)
	if !ok {
		return ColAccent
	}
	return rl.NewColor(r, g, b, 255)
}

// Package game wires the simulation core to its collaborators: the
// influence source, the renderer, the UI panel and telemetry.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/swarm"
	"github.com/pthm-cable/drift/telemetry"
	"github.com/pthm-cable/drift/ui"
)

// InfluenceSource supplies one influence observation per tick. The mouse
// source stands in for a hand tracker in graphical mode; headless runs use
// a scripted source.
type InfluenceSource interface {
	Sample() swarm.Sample
}

// Options configures a game instance.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
}

// Game holds the complete application state.
type Game struct {
	sim    *swarm.Simulation
	source InfluenceSource

	cam   *renderer.OrbitCamera
	cloud *renderer.PointCloud
	panel *ui.Panel
	hud   *ui.HUD

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	logStats       bool
	pointSize      float32
	paused         bool
	stepsPerUpdate int
}

// NewGame builds a game from the loaded config and options.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	initialShape, err := swarm.ParseShape(cfg.Swarm.Shape)
	if err != nil {
		return nil, err
	}

	sim, err := swarm.NewSimulation(
		paramsFromConfig(cfg),
		paletteFromConfig(cfg),
		geometryFromConfig(cfg),
		initialShape,
		float32(cfg.Influence.SentinelDistance),
		opts.Seed,
	)
	if err != nil {
		return nil, fmt.Errorf("building simulation: %w", err)
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		sim.Close()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		sim.Close()
		return nil, err
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		sim:            sim,
		collector:      telemetry.NewCollector(statsWindow, float64(cfg.Screen.TargetFPS), cfg.Telemetry.SettledRMS, cfg.Telemetry.SettledSpeed),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:         output,
		logStats:       opts.LogStats,
		pointSize:      float32(cfg.Swarm.PointSize),
		stepsPerUpdate: stepsPerUpdate,
	}

	if opts.Headless {
		g.source = NewScriptedInfluence()
	} else {
		g.cam = renderer.NewOrbitCamera()
		g.cloud = renderer.NewPointCloud()
		g.panel = ui.NewPanel(sim.Count())
		g.hud = ui.NewHUD()
		g.source = &MouseInfluence{cam: g.cam}
	}

	return g, nil
}

// Update runs input handling and one or more simulation steps.
func (g *Game) Update() {
	g.handleInput()
	g.cam.Update()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs simulation steps without any raylib dependency.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step runs a single simulation tick plus its telemetry.
func (g *Game) step() {
	g.perf.StartTick()

	sample := g.source.Sample()
	g.perf.Phase(telemetry.PhaseObserve)

	info := g.sim.Step(sample)
	g.perf.Phase(telemetry.PhaseStep)

	tick := g.sim.Tick()
	if info.Impulse {
		g.collector.RecordImpulse()
		logImpulse(tick)
	}

	if g.collector.ShouldFlush(tick) {
		k := g.sim.Kinetics()
		ws := g.collector.Flush(tick, g.sim.Count(), string(g.sim.CurrentShape()), k.Speeds, k.DisplacementRMS)
		if g.logStats {
			ws.Log()
			g.perf.Log(tick)
		}
		if err := g.output.WriteTelemetry(ws); err != nil {
			slog.Error("telemetry write failed", "error", err)
		}
		if err := g.output.WritePerf(g.perf.Snapshot(tick)); err != nil {
			slog.Error("perf write failed", "error", err)
		}
	}
	g.perf.Phase(telemetry.PhaseStats)
	g.perf.EndTick()
}

// Draw renders the frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 6, G: 8, B: 14, A: 255})

	cam := g.cam.Camera()
	rl.BeginMode3D(cam)

	positions, colors := g.sim.Frame()
	g.cloud.Draw(positions, colors, g.pointSize)

	origin, mode := g.sim.Influence()
	g.cloud.DrawInfluence(origin, mode, g.sim.Params().InteractionRadius)

	rl.EndMode3D()

	_, imode := g.sim.Influence()
	g.hud.Draw(g.sim.Tick(), g.sim.Count(), g.sim.CurrentShape(), imode, g.paused)
	g.drawPanel()

	rl.EndDrawing()
}

// drawPanel renders the tunables panel and applies any edits.
func (g *Game) drawPanel() {
	state := ui.State{
		Params:    g.sim.Params(),
		Shape:     g.sim.CurrentShape(),
		PointSize: g.pointSize,
	}

	state, changed := g.panel.Draw(state)
	if !changed {
		return
	}

	g.pointSize = state.PointSize
	if state.Shape != g.sim.CurrentShape() {
		g.selectShape(state.Shape)
	}
	if state.Params != g.sim.Params() {
		if err := g.sim.SetParams(state.Params); err != nil {
			slog.Error("applying tunables failed", "error", err)
		}
	}
}

// selectShape swaps the target silhouette and records the event.
func (g *Game) selectShape(sh swarm.Shape) {
	if sh == g.sim.CurrentShape() {
		return
	}
	if err := g.sim.SelectShape(sh); err != nil {
		slog.Error("shape switch failed", "shape", sh, "error", err)
		return
	}
	g.collector.RecordShapeSwitch()
	logShapeSwitch(g.sim.Tick(), sh)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.sim.Tick()
}

// Unload releases the worker pool and output files.
func (g *Game) Unload() {
	g.sim.Close()
	if err := g.output.Close(); err != nil {
		slog.Error("closing output failed", "error", err)
	}
}

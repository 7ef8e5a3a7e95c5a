// Package gui runs the simulation in a native window through raylib.
package gui

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/sim"
)

const fontSize = 16

func init() {
	// raylib calls must come from the main OS thread.
	runtime.LockOSThread()
}

// Window is a raylib-backed sim.Backend. Only one may be open at a time.
type Window struct {
	trailWidth float32
	fontSize   int32
	targetFPS  int
	drawing    bool
}

// Open creates the window described by cfg.
func Open(cfg *config.Config) (*Window, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	if !rl.IsWindowReady() {
		return nil, errors.New("gui: window initialization failed")
	}
	rl.SetExitKey(0)

	return &Window{
		trailWidth: float32(cfg.TrailWidth),
		fontSize:   fontSize,
	}, nil
}

func (w *Window) Close() {
	if w.drawing {
		rl.EndDrawing()
		w.drawing = false
	}
	rl.CloseWindow()
}

// Tick sets the target rate; raylib waits out the remainder of the frame
// inside Present.
func (w *Window) Tick(fps int) {
	if fps != w.targetFPS {
		rl.SetTargetFPS(int32(fps))
		w.targetFPS = fps
	}
}

func (w *Window) FPS() float64 { return float64(rl.GetFPS()) }

func (w *Window) QuitRequested() bool { return rl.WindowShouldClose() }

// Run opens a window for cfg and simulates until it is closed.
func Run(ctx context.Context, cfg *config.Config) error {
	bodies, err := cfg.Build()
	if err != nil {
		return err
	}

	win, err := Open(cfg)
	if err != nil {
		return err
	}
	defer win.Close()

	loop, err := sim.NewLoop(cfg.SimConfig(), bodies, cfg.Projection(), win, win)
	if err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return loop.Run(ctx, win, win)
}

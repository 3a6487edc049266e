package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	xterm "golang.org/x/term"

	"github.com/taigrr/softrast/internal/config"
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/render"
)

// Axis indexes into orientation.axes and the torque array.
const (
	pitch = iota
	yaw
	roll
)

// spin is one axis of the model's orientation. Each frame rate is added to
// angle and then eased toward zero by a critically damped spring, so a push
// coasts to a stop without swinging back.
type spin struct {
	angle  float64
	rate   float64
	spring harmonica.Spring
	// Velocity of rate itself, carried between spring updates.
	rateVel float64
}

func newSpin(fps int) spin {
	return spin{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (s *spin) advance() {
	s.angle += s.rate
	s.rate, s.rateVel = s.spring.Update(s.rate, s.rateVel, 0)
}

type orientation struct {
	axes [3]spin
	fps  int
}

func newOrientation(fps int) *orientation {
	o := &orientation{fps: fps}
	o.reset()
	return o
}

func (o *orientation) reset() {
	for i := range o.axes {
		o.axes[i] = newSpin(o.fps)
	}
}

func (o *orientation) advance() {
	for i := range o.axes {
		o.axes[i].advance()
	}
}

// push adds d to each axis rate.
func (o *orientation) push(d [3]float64) {
	for i := range o.axes {
		o.axes[i].rate += d[i]
	}
}

// matrix applies roll first, then yaw, then pitch.
func (o *orientation) matrix() math3d.Mat4 {
	return math3d.RotateX(o.axes[pitch].angle).
		Mul(math3d.RotateY(o.axes[yaw].angle)).
		Mul(math3d.RotateZ(o.axes[roll].angle))
}

const (
	torqueStrength = 3.0
	// Held keys arrive as repeats with no release event, so torque fades
	// on its own.
	torqueFade = 0.9
)

// torqueKeys maps key names to the axis they turn and the direction.
var torqueKeys = []struct {
	names []string
	axis  int
	sign  float64
}{
	{[]string{"w", "up"}, pitch, -1},
	{[]string{"s", "down"}, pitch, 1},
	{[]string{"a", "left"}, yaw, -1},
	{[]string{"d", "right"}, yaw, 1},
	{[]string{"q"}, roll, -1},
	{[]string{"e"}, roll, 1},
}

// viewerState is shared between the event goroutine and the render loop.
type viewerState struct {
	mu        sync.Mutex
	rotation  *orientation
	torque    [3]float64
	wireframe bool
	cols      int
	rows      int
	resized   bool
}

func newViewerState(fps, cols, rows int) *viewerState {
	return &viewerState{rotation: newOrientation(fps), cols: cols, rows: rows}
}

// handleKey applies a key press. match reports whether the key is one of
// the given names. It returns true when the viewer should quit.
func (s *viewerState) handleKey(match func(...string) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range torqueKeys {
		if match(k.names...) {
			s.torque[k.axis] = k.sign * torqueStrength
			return false
		}
	}

	switch {
	case match("escape", "ctrl+c"):
		return true
	case match("space"):
		var kick [3]float64
		for i := range kick {
			kick[i] = (rand.Float64() - 0.5) * 1.5
		}
		s.rotation.push(kick)
	case match("r"):
		s.rotation.reset()
		s.torque = [3]float64{}
	case match("x"):
		s.wireframe = !s.wireframe
	}
	return false
}

func (s *viewerState) resize(cols, rows int) {
	s.mu.Lock()
	s.cols, s.rows, s.resized = cols, rows, true
	s.mu.Unlock()
}

// step advances the springs by one frame of dt seconds and returns the
// model transform for that frame and the wireframe toggle.
func (s *viewerState) step(dt float64) (math3d.Mat4, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d [3]float64
	for i, t := range s.torque {
		d[i] = t * dt
		s.torque[i] = t * torqueFade
	}
	s.rotation.push(d)
	s.rotation.advance()
	return s.rotation.matrix(), s.wireframe
}

// fitTransform keeps a unit-radius model inside a w×h canvas with square
// pixels: the orthographic mapping stretches [-1, 1] over both axes, so the
// longer one is compressed to match.
func fitTransform(w, h int) math3d.Mat4 {
	if w <= 0 || h <= 0 {
		return math3d.Identity()
	}
	m := float64(min(w, h))
	// Rotated corners of the normalized box reach sqrt(3); stay inside.
	const margin = 0.577
	return math3d.Scale(math3d.V3(margin*m/float64(w), margin*m/float64(h), margin))
}

func runViewer(cfg config.Config, mesh *models.Mesh) error {
	if !xterm.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("-view needs an interactive terminal")
	}

	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	state := newViewerState(cfg.FPS, cols, rows)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				state.resize(ev.Width, ev.Height)
			case uv.KeyPressEvent:
				if state.handleKey(ev.MatchString) {
					cancel()
					return
				}
			}
		}
	}()

	termRenderer := render.NewTerminalRenderer(term, cols, rows)
	canvas := render.NewCanvas(termRenderer.CanvasSize())
	rasterizer := render.NewRasterizer(canvas)
	frame := mesh.Clone()

	light := cfg.LightDir()
	base := cfg.BaseColor()
	bg := cfg.BackgroundColor()

	targetDuration := time.Second / time.Duration(cfg.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		state.mu.Lock()
		if state.resized {
			cols, rows = state.cols, state.rows
			state.resized = false
			term.Erase()
			term.Resize(cols, rows)
			termRenderer = render.NewTerminalRenderer(term, cols, rows)
			canvas = render.NewCanvas(termRenderer.CanvasSize())
			rasterizer = render.NewRasterizer(canvas)
		}
		state.mu.Unlock()

		rotation, wireframe := state.step(dt)

		copy(frame.Vertices, mesh.Vertices)
		frame.Transform(fitTransform(canvas.Width(), canvas.Height()).Mul(rotation))

		canvas.Clear(bg)
		rasterizer.ClearDepth()
		rasterizer.ResetStats()
		if wireframe {
			rasterizer.DrawMeshWireframe(frame, render.RGB(0, 255, 128))
		} else {
			rasterizer.DrawMesh(frame, light, base)
		}

		termRenderer.Render(canvas)
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

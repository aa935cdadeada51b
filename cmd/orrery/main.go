// orrery - a solar system simulator for your terminal.
// Procedurally shaded planets orbit a pulsating star, rendered with a
// software rasterizer onto half-block terminal cells.
//
// Controls:
//
//	W/A/S/D     - Slide the view forward/left/back/right
//	Q/E         - Slide the view up/down
//	Left/Right  - Orbit around the look-at point
//	Up/Down     - Tilt the view
//	1/2         - Zoom in/out
//	B           - Toggle the fixed overview
//	P           - Save a screenshot (PNG)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/noise"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

var (
	targetFPS = flag.Int("fps", 30, "Target FPS")
	bgColor   = flag.String("bg", "4,4,12", "Background color (R,G,B)")
	seed      = flag.Int64("seed", noise.DefaultSeed, "Noise and starfield seed")
	craftPath = flag.String("craft", "", "Path to a .glb craft model")
	showAxes  = flag.Bool("axes", false, "Draw the world axes at the origin")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orrery - terminal solar system simulator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orrery [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D     - Slide the view\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Slide up/down\n")
		fmt.Fprintf(os.Stderr, "  Left/Right  - Orbit\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Tilt\n")
		fmt.Fprintf(os.Stderr, "  1/2         - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  B           - Toggle overview\n")
		fmt.Fprintf(os.Stderr, "  P           - Save a screenshot\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// motionAxis smooths one navigation channel: impulses raise the
// velocity, a critically damped spring bleeds it back to zero.
type motionAxis struct {
	Velocity float64
	spring   harmonica.Spring
	accel    float64
}

func newMotionAxis(fps int) motionAxis {
	return motionAxis{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (a *motionAxis) Impulse(v float64) {
	a.Velocity += v
}

func (a *motionAxis) Update() float64 {
	v := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return v
}

// navState is the set of smoothed navigation channels. The camera is
// only ever touched from apply, on the frame loop; the event
// goroutine queues toggles and resizes here under the same mutex.
type navState struct {
	mu sync.Mutex

	orbitYaw   motionAxis
	orbitPitch motionAxis
	tilt       motionAxis
	zoom       motionAxis
	forward    motionAxis
	strafe     motionAxis
	lift       motionAxis

	toggleOverview bool
	aspect         float64
}

func newNavState(fps int) *navState {
	return &navState{
		orbitYaw:   newMotionAxis(fps),
		orbitPitch: newMotionAxis(fps),
		tilt:       newMotionAxis(fps),
		zoom:       newMotionAxis(fps),
		forward:    newMotionAxis(fps),
		strafe:     newMotionAxis(fps),
		lift:       newMotionAxis(fps),
	}
}

// apply advances every axis one frame and feeds the result into the
// camera. The camera itself ignores all of it while the overview is
// active.
func (n *navState) apply(cam *render.Camera) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.toggleOverview {
		cam.ToggleFixedOverview()
		n.toggleOverview = false
	}
	if n.aspect > 0 {
		cam.SetAspect(n.aspect)
		n.aspect = 0
	}

	cam.Orbit(n.orbitYaw.Update(), n.orbitPitch.Update())
	cam.RotatePitch(n.tilt.Update())
	cam.Zoom(n.zoom.Update())

	cam.MoveForward(n.forward.Update())
	cam.Strafe(n.strafe.Update(), 0)
	cam.MoveUp(n.lift.Update())
}

func (n *navState) impulse(axis *motionAxis, v float64) {
	n.mu.Lock()
	axis.Impulse(v)
	n.mu.Unlock()
}

// requestToggle queues an overview toggle for the next apply.
func (n *navState) requestToggle() {
	n.mu.Lock()
	n.toggleOverview = !n.toggleOverview
	n.mu.Unlock()
}

// requestAspect queues an aspect-ratio change for the next apply.
func (n *navState) requestAspect(aspect float64) {
	n.mu.Lock()
	n.aspect = aspect
	n.mu.Unlock()
}

func run() error {
	var bgR, bgG, bgB uint8 = 4, 4, 12
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Half blocks double the vertical resolution.
	fb := render.NewFramebuffer(width, height*2)
	fb.SetBackground(render.RGB(bgR, bgG, bgB))

	cam := render.NewCamera(
		math3d.V3(0, 5, 30),
		math3d.Zero3(),
		float64(fb.Width)/float64(fb.Height),
	)

	sim := scene.NewSolarSystem(*seed)
	if *craftPath != "" {
		mesh, tex, err := models.LoadGLBWithTexture(*craftPath)
		if err != nil {
			return fmt.Errorf("load craft: %w", err)
		}
		sim.Craft = mesh
		sim.CraftTexture = tex
		if sim.CraftTexture == nil {
			// Hull panels for models that ship without a texture.
			sim.CraftTexture = render.NewCheckerTexture(64, 8,
				render.RGB(200, 200, 200), render.RGB(120, 120, 120))
		}
	}

	uniforms := render.NewUniforms(noise.NewSimplex(*seed))

	nav := newNavState(*targetFPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	var resizeMu sync.Mutex
	var screenshot atomic.Bool

	const (
		moveSpeed  = 0.5
		orbitSpeed = 0.05
		tiltSpeed  = 0.05
		zoomSpeed  = 1.0
	)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				resizeMu.Lock()
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				nfb := render.NewFramebuffer(width, height*2)
				nfb.SetBackground(render.RGB(bgR, bgG, bgB))
				fb = nfb
				nav.requestAspect(float64(nfb.Width) / float64(nfb.Height))
				resizeMu.Unlock()

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w"):
					nav.impulse(&nav.forward, moveSpeed)
				case ev.MatchString("s"):
					nav.impulse(&nav.forward, -moveSpeed)
				case ev.MatchString("a"):
					nav.impulse(&nav.strafe, -moveSpeed)
				case ev.MatchString("d"):
					nav.impulse(&nav.strafe, moveSpeed)
				case ev.MatchString("q"):
					nav.impulse(&nav.lift, moveSpeed)
				case ev.MatchString("e"):
					nav.impulse(&nav.lift, -moveSpeed)
				case ev.MatchString("left"):
					nav.impulse(&nav.orbitYaw, -orbitSpeed)
				case ev.MatchString("right"):
					nav.impulse(&nav.orbitYaw, orbitSpeed)
				case ev.MatchString("up"):
					nav.impulse(&nav.tilt, tiltSpeed)
				case ev.MatchString("down"):
					nav.impulse(&nav.tilt, -tiltSpeed)
				case ev.MatchString("1"):
					nav.impulse(&nav.zoom, zoomSpeed)
				case ev.MatchString("2"):
					nav.impulse(&nav.zoom, -zoomSpeed)
				case ev.MatchString("b"):
					nav.requestToggle()
				case ev.MatchString("p"):
					screenshot.Store(true)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		frameStart := time.Now()

		nav.apply(cam)
		sim.Update()

		// Park the craft just ahead of the camera.
		sim.CraftPos = cam.Eye.Add(cam.Forward().Scale(3)).Add(math3d.V3(0, -0.5, 0))

		resizeMu.Lock()
		frame := fb
		w, h := width, height
		resizeMu.Unlock()

		frame.Clear()
		uniforms.SetFrame(
			cam.ViewMatrix(),
			cam.ProjectionMatrix(),
			math3d.Viewport(float64(frame.Width), float64(frame.Height)),
			sim.Time(),
		)
		sim.Render(frame, uniforms, cam)

		if *showAxes {
			uniforms.SetModel(math3d.Identity())
			frame.DrawAxes(4, uniforms)
		}

		if screenshot.Swap(false) {
			name := fmt.Sprintf("orrery-%d.png", time.Now().Unix())
			if err := frame.SavePNG(name); err != nil {
				cleanup()
				return fmt.Errorf("save screenshot: %w", err)
			}
		}

		frame.Draw(term, uv.Rect(0, 0, w, h))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

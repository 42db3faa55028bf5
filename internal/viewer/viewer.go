// Package viewer runs the interactive planet viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/capture"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/planet"
)

// Viewer owns the window, renderer and scene.
type Viewer struct {
	cfg        *config.Config
	running    bool
	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	camera     *camera.OrbitCamera
	shots      *capture.Screenshots
	system     *planet.System
	clock      *Clock
	frame      uint64
	screenshot bool // Capture after the next render
	log        *zap.Logger
}

// New opens the window and builds the configured planets.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		shots:  capture.NewScreenshots(cfg.Data.ScreenshotDir, "orrery"),
		log:    logger.Named("viewer"),
	}

	system, err := BuildScene(cfg)
	if err != nil {
		return nil, err
	}
	v.system = system
	b := system.Bounds()
	v.camera.FitToBounds(b.Min, b.Max)

	// Window before renderer: GL needs a current context.
	v.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.Size()
	v.renderer, err = renderer.New(width, height)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.log.Info("viewer initialized", zap.Int("planets", len(system.Bodies)))
	return v, nil
}

// BuildScene resolves textures through the configured search paths and builds
// the planets. With no planets configured it builds the Earth scene.
func BuildScene(cfg *config.Config) (*planet.System, error) {
	log := logger.Named("viewer")

	files := assets.NewManager()
	for _, dir := range cfg.Data.SearchPaths {
		if err := files.AddDir(dir); err != nil {
			log.Warn("skipping search path", zap.String("path", dir), zap.Error(err))
		}
	}

	asm := planet.NewAssembler(texture.NewLoader(files))
	if len(cfg.Scene.Planets) == 0 {
		log.Info("no planets configured, building Earth")
		return asm.CreateEarth()
	}
	return asm.BuildSystem(cfg.Scene)
}

// Run loops until the window is closed or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true
	v.clock = NewClock(window.Ticks(), v.cfg.Scene.TimeScale)

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")
	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		fs := scene.FrameStamp{Frame: v.frame, SimulationTime: v.clock.Seconds(window.Ticks())}
		scene.Update(v.system.Root, fs)

		proj := v.camera.ProjectionMatrix(v.renderer.Aspect())
		v.renderer.Render(v.system.Root, v.camera.ViewMatrix(), proj)
		if v.screenshot {
			v.saveScreenshot()
		}
		v.window.SwapBuffers()
		v.frame++

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("sim_time", fs.SimulationTime))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := v.window.Size()
			v.renderer.Resize(width, height)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.K_ESCAPE:
				v.running = false
				continue
			case sdl.K_F12:
				v.screenshot = true
				continue
			}
			HandleKey(event.Key, v.system.Animators())
		}
	}

	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		v.camera.HandleDrag(float32(dx), float32(dy))
	}
	if w := v.input.Wheel(); w != 0 {
		v.camera.HandleZoom(float32(w))
	}
}

func (v *Viewer) saveScreenshot() {
	v.screenshot = false
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

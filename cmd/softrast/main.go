// softrast - software rasterizer
// Draws lines, triangles and flat-shaded OBJ/glTF models into an image
// file, or spins a model in the terminal.
//
// Controls (-view):
//
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	X           - Toggle wireframe mode
//	Esc         - Quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/taigrr/softrast/internal/config"
	"github.com/taigrr/softrast/pkg/export"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/render"
)

var (
	configPath = flag.String("config", "", "Path to JSON config file")
	sceneName  = flag.String("scene", "", "Scene to draw (default mesh with a model, triangles without)")
	width      = flag.Int("width", 0, "Canvas width (default 200)")
	height     = flag.Int("height", 0, "Canvas height (default 200)")
	lightDir   = flag.String("light", "", "Light direction x,y,z (default 0,0,-1)")
	baseColor  = flag.String("color", "", "Mesh color R,G,B (default 255,255,255)")
	bgColor    = flag.String("bg", "", "Background color R,G,B (default 0,0,0)")
	strategy   = flag.String("strategy", "", "Triangle fill: barycentric or edgepair")
	scale      = flag.Int("scale", 0, "Integer upscale factor for the output image")
	output     = flag.String("o", "", "Output image (.tga, .png, .webp, .bmp; default artifact.tga)")
	fit        = flag.Bool("fit", true, "Center and scale the model to fill the canvas")
	view       = flag.Bool("view", false, "Spin the model in the terminal instead of writing a file")
	targetFPS  = flag.Int("fps", 0, "Viewer target FPS (default 30)")
	verbose    = flag.Bool("v", false, "Debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "softrast - software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: softrast [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Scenes: %s\n\n", sceneNames())
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nViewer controls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if *verbose {
		render.SetLogger(logger)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	var cfg config.Config
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}

	flags := config.Flags{
		Width:      *width,
		Height:     *height,
		Color:      *baseColor,
		Background: *bgColor,
		Strategy:   *strategy,
		Scale:      *scale,
		Output:     *output,
		FPS:        *targetFPS,
	}
	if *lightDir != "" {
		v, err := config.ParseVec3(*lightDir)
		if err != nil {
			return cfg, fmt.Errorf("-light: %w", err)
		}
		flags.Light = v
	}

	cfg.Resolve(flags)
	return cfg, cfg.Validate()
}

func run(modelPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var mesh *models.Mesh
	if modelPath != "" {
		mesh, err = models.Load(modelPath)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		fmt.Printf("Loaded: %s (%d vertices, %d triangles)\n", filepath.Base(modelPath), mesh.VertexCount(), mesh.TriangleCount())
		if *fit {
			mesh.Normalize()
		}
	}

	if *view {
		if mesh == nil {
			return fmt.Errorf("-view needs a model file")
		}
		return runViewer(cfg, mesh)
	}

	name := *sceneName
	if name == "" {
		name = "triangles"
		if mesh != nil {
			name = "mesh"
		}
	}
	sc, err := lookupScene(name, mesh != nil)
	if err != nil {
		return err
	}

	canvas := render.NewCanvas(cfg.Width, cfg.Height)
	canvas.Clear(cfg.BackgroundColor())
	rasterizer := render.NewRasterizer(canvas)
	sc.draw(rasterizer, cfg, mesh)

	slog.Debug("scene drawn", "scene", name, "stats", fmt.Sprintf("%+v", rasterizer.Stats))

	if err := export.SaveCanvas(cfg.Output, canvas, export.Options{Scale: cfg.Scale, Flip: true}); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d, scene %s)\n", cfg.Output, cfg.Width*cfg.Scale, cfg.Height*cfg.Scale, name)
	return nil
}

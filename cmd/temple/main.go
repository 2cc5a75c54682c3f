package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"temple-viewer/config"
	"temple-viewer/core"
	"temple-viewer/input"
	"temple-viewer/internal/logger"
	"temple-viewer/internal/opengl"
	"temple-viewer/overlay"
	"temple-viewer/renderer"
	"temple-viewer/scene"
	"temple-viewer/state"
)

type options struct {
	configPath string
	statePath  string
	resources  string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "temple",
		Short:         "Real-time HDR viewer for the night temple scene",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "scene configuration file (.toml, .yaml)")
	f.StringVar(&opts.statePath, "state", "", "persisted program state file (default from config)")
	f.StringVar(&opts.resources, "resources", "", "resources root (default from config)")
	f.BoolVar(&opts.debug, "debug", false, "debug logging")

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Encode(config.Default())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return cmd
}

func run(opts options) error {
	if err := logger.Init(opts.debug); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return err
	}
	defer logger.Sync()
	log := logger.Log

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			log.Fatal("config", zap.Error(err))
		}
	}
	if opts.resources != "" {
		cfg.Paths.Resources = opts.resources
	}
	if opts.statePath != "" {
		cfg.Paths.State = opts.statePath
	}
	statePath, err := config.ExpandPath(cfg.Paths.State)
	if err != nil {
		log.Fatal("state path", zap.Error(err))
	}

	win, err := core.NewWindow(core.WindowConfig{
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Title:   cfg.Window.Title,
		Samples: cfg.Window.Samples,
		VSync:   cfg.Window.VSync,
	})
	if err != nil {
		log.Fatal("window", zap.Error(err))
	}
	defer win.Destroy()

	dev, err := opengl.NewDevice()
	if err != nil {
		log.Fatal("opengl", zap.Error(err))
	}
	pipeline, err := renderer.NewPipeline(dev, cfg, win.Width, win.Height)
	if err != nil {
		log.Fatal("pipeline", zap.Error(err))
	}
	panel, err := overlay.NewPanel(dev)
	if err != nil {
		log.Fatal("overlay", zap.Error(err))
	}

	lighting, err := renderer.NewLightingState(cfg.Lighting)
	if err != nil {
		log.Fatal("lighting", zap.Error(err))
	}
	cam := scene.NewCamera(vec3(cfg.Camera.Position))
	cam.MovementSpeed = cfg.Camera.Speed
	cam.MouseSensitivity = cfg.Camera.Sensitivity
	cam.Zoom = cfg.Camera.Zoom
	if cfg.Camera.SmoothZoom {
		cam.EnableSmoothZoom()
	}
	rc := &renderer.RenderContext{
		Camera:   cam,
		Toggles:  renderer.TogglesFromConfig(cfg.Toggles),
		Lighting: lighting,
		Width:    win.Width,
		Height:   win.Height,
		Near:     cfg.Camera.Near,
		Far:      cfg.Camera.Far,
	}
	defaults := rc.Snapshot()
	if !state.Exists(statePath) {
		log.Info("no saved state, using defaults", zap.String("path", statePath))
	}
	rc.Restore(state.Load(statePath, defaults))

	assets := renderer.NewAssetLoader(dev)
	sc := assets.LoadScene(cfg.Resource)
	log.Info("scene loaded", zap.Int("objects", len(sc.Objects)), zap.Int("foliage", len(sc.Foliage)))

	frames := renderer.NewFrameOrchestrator(pipeline, sc, rc)
	frames.Clock = win.Time
	frames.Overlay = panel

	controller := input.NewController(win, cfg.Camera.BackwardLimitZ)
	controller.Menu = panel
	controller.SyncCursor(rc)
	win.SetScrollCallback(controller.OnScroll)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.configPath != "" {
		go watchConfig(ctx, opts.configPath, frames)
	}

	if err := frames.Run(win, controller); err != nil {
		log.Error("render loop", zap.Error(err))
	}

	if err := state.Save(statePath, rc.Snapshot()); err != nil {
		log.Error("state not saved", zap.Error(err))
		return err
	}
	log.Info("state saved", zap.String("path", statePath))
	return nil
}

// watchConfig hands reloaded lighting and bloom settings to the render loop.
func watchConfig(ctx context.Context, path string, frames *renderer.FrameOrchestrator) {
	err := config.Watch(ctx, path, func(cfg config.Config) {
		lighting, err := renderer.NewLightingState(cfg.Lighting)
		if err != nil {
			logger.Log.Warn("reloaded lighting rejected", zap.Error(err))
			return
		}
		frames.Enqueue(func(rc *renderer.RenderContext) {
			rc.Lighting = lighting
			frames.Pipeline.SetBloomThreshold(cfg.Render.BloomThreshold)
			frames.Pipeline.BloomIterations = cfg.Render.BloomIterations
		})
	})
	if err != nil {
		logger.Log.Warn("config watcher stopped", zap.Error(err))
	}
}

func vec3(v config.Vec3) mgl32.Vec3 { return mgl32.Vec3{v[0], v[1], v[2]} }

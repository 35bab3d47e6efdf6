// Package app hosts the editor in a realtime raylib viewport.
package app

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopoly/internal/config"
	"github.com/philipparndt/gopoly/internal/debugserver"
	"github.com/philipparndt/gopoly/internal/editor"
	"github.com/philipparndt/gopoly/internal/status"
	"github.com/philipparndt/gopoly/pkg/scene"
	"github.com/philipparndt/gopoly/pkg/stl"
)

// Options configure a viewer run
type Options struct {
	Config     config.Config
	ConfigPath string        // watched for changes when set
	Reload     config.Loader // rebuilds the config on change, defaults to the file alone
	Logger     *slog.Logger
}

type App struct {
	Camera      CameraState
	Interaction InteractionState
	UI          UIState
	Config      ConfigState

	editor *editor.Editor
	hub    *status.Hub
	log    *slog.Logger
}

// Run opens the viewer window and blocks until it is closed
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config

	app := &App{
		hub: status.NewHub(),
		log: logger,
		Config: ConfigState{
			current: cfg,
			path:    opts.ConfigPath,
			reloads: make(chan config.Config, 1),
		},
		UI: UIState{background: toColor(cfg.BackgroundColor())},
	}

	sc := scene.New(cfg.Scene.GroundSize, cfg.Scene.GridDivisions)
	app.editor = editor.New(sc, cfg.EditorOptions(), logger)
	app.editor.AddListener(app.hub.Publish)
	app.hub.Publish(app.editor.Status())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Debug.Addr != "" {
		srv := debugserver.New(app.hub, logger)
		go func() {
			if err := srv.Run(ctx, cfg.Debug.Addr); err != nil {
				logger.Error("debug server stopped", "error", err)
			}
		}()
	}

	if opts.ConfigPath != "" {
		fw, err := config.Watch(opts.ConfigPath, opts.Reload, logger, app.queueReload)
		if err != nil {
			logger.Warn("config hot reload unavailable", "error", err)
		} else {
			defer fw.Close()
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	// Esc closes the alert, not the window
	rl.SetExitKey(rl.KeyNull)

	app.initCamera()

	for !rl.WindowShouldClose() {
		app.applyReload()

		if !app.handleInput() {
			break
		}
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(app.UI.background)

		rl.BeginMode3D(app.Camera.camera)
		app.drawScene()
		rl.EndMode3D()

		app.drawUI()

		rl.EndDrawing()
	}

	return nil
}

// queueReload hands a reloaded config to the main loop, replacing any
// reload that was not yet applied
func (app *App) queueReload(cfg config.Config) {
	select {
	case app.Config.reloads <- cfg:
	default:
		select {
		case <-app.Config.reloads:
		default:
		}
		select {
		case app.Config.reloads <- cfg:
		default:
		}
	}
}

// applyReload applies a pending config on the main goroutine
func (app *App) applyReload() {
	select {
	case cfg := <-app.Config.reloads:
		app.Config.current = cfg
		app.editor.ApplyOptions(cfg.EditorOptions())
		app.UI.background = toColor(cfg.BackgroundColor())
		app.notify("Configuration reloaded")
	default:
	}
}

func writeModel(path string, model *stl.Model) error {
	if err := stl.WriteFile(path, model, false); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

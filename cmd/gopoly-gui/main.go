package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gopoly/internal/config"
	"github.com/philipparndt/gopoly/internal/debugserver"
	"github.com/philipparndt/gopoly/internal/editor"
	"github.com/philipparndt/gopoly/internal/status"
	"github.com/philipparndt/gopoly/pkg/scene"
	"github.com/philipparndt/gopoly/pkg/viewer"
	"github.com/philipparndt/gopoly/version"
	"github.com/spf13/cobra"
)

var flags config.Flags

var rootCmd = &cobra.Command{
	Use:          "gopoly-gui",
	Short:        "Draw flat polygons on a 3D ground plane in a desktop window",
	Version:      version.GetFullVersion(),
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := flags.Load(cmd.Flags())
		if err != nil {
			return err
		}
		run(cfg, flags.Loader(cmd.Flags()), config.NewLogger(cfg.Log.Level))
		return nil
	},
}

func init() {
	flags.Register(rootCmd.Flags())
}

type App struct {
	window   fyne.Window
	editor   *editor.Editor
	viewport *viewer.Viewport
	hub      *status.Hub
	log      *slog.Logger
	panel    *DebugPanel

	completeButton *widget.Button
	copyButton     *widget.Button
	resetButton    *widget.Button

	ctx          context.Context
	stopPoll     context.CancelFunc
	pollInterval time.Duration
}

// DebugPanel shows the object count and the clone flags
type DebugPanel struct {
	objects     *widget.Label
	cloneExists *widget.Label
	dragging    *widget.Label
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, reload config.Loader, logger *slog.Logger) {
	a := fyneapp.NewWithID("io.github.philipparndt.gopoly")
	w := a.NewWindow("gopoly")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appInstance := newApp(ctx, w, cfg, logger)
	appInstance.setupMainUI(cfg)
	appInstance.startBackground(cfg, reload)

	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.ShowAndRun()
}

func newApp(ctx context.Context, w fyne.Window, cfg config.Config, logger *slog.Logger) *App {
	a := &App{
		window: w,
		hub:    status.NewHub(),
		log:    logger,
		ctx:    ctx,
	}
	sc := scene.New(cfg.Scene.GroundSize, cfg.Scene.GridDivisions)
	a.editor = editor.New(sc, cfg.EditorOptions(), logger)
	a.editor.AddListener(a.hub.Publish)
	a.hub.Publish(a.editor.Status())
	return a
}

func (a *App) setupMainUI(cfg config.Config) {
	a.panel = &DebugPanel{
		objects:     widget.NewLabel(""),
		cloneExists: widget.NewLabel(""),
		dragging:    widget.NewLabel(""),
	}
	a.updatePanel(a.editor.Status())

	a.viewport = viewer.NewViewport(a.editor)
	a.viewport.SetBackground(cfg.BackgroundColor())
	a.editor.AddListener(func(status.Snapshot) {
		a.viewport.Refresh()
	})

	a.completeButton = widget.NewButton("Complete", a.action(a.editor.CompletePolygon))
	a.copyButton = widget.NewButton("Copy", a.action(a.editor.CopyPolygon))
	a.resetButton = widget.NewButton("Reset", a.action(func() error {
		a.editor.Reset()
		return nil
	}))

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click the ground to place vertices\n" +
			"• Complete fills the polygon\n" +
			"• Copy creates a duplicate that follows the pointer\n" +
			"• Click to drop the duplicate\n" +
			"• Drag to rotate, scroll to zoom",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		a.completeButton,
		a.copyButton,
		a.resetButton,
		widget.NewSeparator(),
		widget.NewLabel("Debug:"),
		a.panel.objects,
		a.panel.cloneExists,
		a.panel.dragging,
		widget.NewSeparator(),
		instructions,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(260, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		infoScroll, // left
		nil,        // right
		a.viewport, // center
	)
	a.window.SetContent(content)
}

// action wraps a button command. Pressing a button is a pointer down as
// well, so a dragged clone is dropped before the command runs.
func (a *App) action(run func() error) func() {
	return func() {
		a.editor.OnPointerDown()
		a.showError(run())
	}
}

// startBackground runs the status poller and the optional debug server and
// config watcher
func (a *App) startBackground(cfg config.Config, reload config.Loader) {
	a.startPoller(cfg.Behavior.StatusInterval.Duration)

	if cfg.Debug.Addr != "" {
		srv := debugserver.New(a.hub, a.log)
		go func() {
			if err := srv.Run(a.ctx, cfg.Debug.Addr); err != nil {
				a.log.Error("debug server stopped", "error", err)
			}
		}()
	}

	if _, err := os.Stat(flags.Path); err == nil {
		fw, err := config.Watch(flags.Path, reload, a.log, func(next config.Config) {
			fyne.Do(func() { a.applyConfig(next) })
		})
		if err != nil {
			a.log.Warn("config hot reload unavailable", "error", err)
			return
		}
		go func() {
			<-a.ctx.Done()
			fw.Close()
		}()
	}
}

// startPoller (re)starts polling the hub for the debug panel
func (a *App) startPoller(interval time.Duration) {
	if a.stopPoll != nil {
		a.stopPoll()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.stopPoll = cancel
	a.pollInterval = interval
	go status.Poll(ctx, interval, a.hub.Latest, func(s status.Snapshot) {
		fyne.Do(func() { a.updatePanel(s) })
	})
}

func (a *App) applyConfig(cfg config.Config) {
	a.editor.ApplyOptions(cfg.EditorOptions())
	a.viewport.SetBackground(cfg.BackgroundColor())
	if interval := cfg.Behavior.StatusInterval.Duration; interval != a.pollInterval {
		a.startPoller(interval)
	}
}

func (a *App) updatePanel(s status.Snapshot) {
	lines := s.Lines()
	a.panel.objects.SetText(lines[0])
	a.panel.cloneExists.SetText(lines[1])
	a.panel.dragging.SetText(lines[2])
}

// showError raises a blocking alert for a failed operation
func (a *App) showError(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, editor.ErrTooFewVertices) && !errors.Is(err, editor.ErrNoPolygon) && !errors.Is(err, editor.ErrPolygonExists) {
		a.log.Error("operation failed", "error", err)
	}
	dialog.ShowError(err, a.window)
}

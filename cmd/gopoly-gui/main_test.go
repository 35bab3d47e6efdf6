package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/gopoly/internal/config"
	"github.com/philipparndt/gopoly/internal/status"
	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	fyneApp := test.NewTempApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.Default()
	a := newApp(ctx, fyneApp.NewWindow("test"), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.setupMainUI(cfg)
	return a
}

func startDrag(t *testing.T, a *App) {
	t.Helper()
	for _, p := range []geometry.Vector3{{X: 0, Z: 0}, {X: 2, Z: 0}, {X: 2, Z: 2}} {
		a.editor.OnSurfaceClick(p)
	}
	require.NoError(t, a.editor.CompletePolygon())
	require.NoError(t, a.editor.CopyPolygon())
	require.True(t, a.editor.State().Dragging)
}

func TestCompleteButtonWhileDraggingDropsClone(t *testing.T) {
	a := newTestApp(t)
	startDrag(t, a)

	test.Tap(a.completeButton)

	st := a.editor.State()
	assert.False(t, st.Dragging)
	assert.Len(t, st.Vertices, 3)

	// ground clicks work again right away
	a.editor.OnSurfaceClick(geometry.NewVector3(5, 0, 5))
	assert.Len(t, a.editor.State().Vertices, 4)
}

func TestCopyButtonStartsNewDrag(t *testing.T) {
	a := newTestApp(t)
	startDrag(t, a)

	test.Tap(a.copyButton)
	assert.True(t, a.editor.State().Dragging, "the drop runs before the copy")
}

func TestResetButtonWhileDragging(t *testing.T) {
	a := newTestApp(t)
	startDrag(t, a)

	test.Tap(a.resetButton)
	st := a.editor.State()
	assert.False(t, st.Dragging)
	assert.Nil(t, st.Clone)
	assert.Equal(t, 2, a.editor.Status().Objects)
}

func TestFailedActionShowsDialog(t *testing.T) {
	a := newTestApp(t)

	test.Tap(a.copyButton)
	assert.NotNil(t, a.window.Canvas().Overlays().Top())
}

func TestReloadRestartsPoller(t *testing.T) {
	a := newTestApp(t)
	a.startPoller(time.Hour)

	cfg := config.Default()
	cfg.Behavior.StatusInterval = config.Duration{Duration: 20 * time.Millisecond}
	a.applyConfig(cfg)
	assert.Equal(t, 20*time.Millisecond, a.pollInterval)

	a.hub.Publish(status.Snapshot{Objects: 42})
	assert.Eventually(t, func() bool {
		return a.panel.objects.Text == "Objects: 42"
	}, 2*time.Second, 10*time.Millisecond)
}

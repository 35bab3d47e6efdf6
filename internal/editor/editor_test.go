package editor

import (
	"io"
	"log/slog"
	"testing"

	"github.com/philipparndt/gopoly/internal/status"
	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/philipparndt/gopoly/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T) *Editor {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(scene.New(20, 20), DefaultOptions(), logger)
}

func pt(x, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, 0, z)
}

func clickAll(e *Editor, points ...geometry.Vector3) {
	for _, p := range points {
		e.OnSurfaceClick(p)
	}
}

func TestSurfaceClickAddsUniqueVertices(t *testing.T) {
	e := newEditor(t)

	clickAll(e, pt(0, 0), pt(1, 0), pt(0, 0), pt(1, 0.0), pt(1, 1))

	st := e.State()
	assert.Len(t, st.Vertices, 3)
	assert.Len(t, st.Markers, 3)
	assert.Equal(t, 2+3, e.Scene().Len())
	assert.Equal(t, []geometry.Vector3{pt(0, 0), pt(1, 0), pt(1, 1)}, st.Vertices)
}

func TestSurfaceClickIgnoresHeight(t *testing.T) {
	e := newEditor(t)
	e.OnSurfaceClick(geometry.NewVector3(1, 0, 1))
	e.OnSurfaceClick(geometry.NewVector3(1, 5, 1))
	assert.Len(t, e.State().Vertices, 1)
}

func TestMarkerLook(t *testing.T) {
	e := newEditor(t)
	e.OnSurfaceClick(pt(3, 4))

	markers := e.Scene().Objects(scene.KindMarker)
	require.Len(t, markers, 1)
	assert.Equal(t, pt(3, 4), markers[0].Position)
	assert.Equal(t, 0.1, markers[0].Radius)
	assert.Equal(t, uint8(0xff), markers[0].Material.Color.R)
	assert.Equal(t, uint8(0), markers[0].Material.Color.G)
}

func TestCompletePolygonTooFewVertices(t *testing.T) {
	for n := 0; n < 3; n++ {
		e := newEditor(t)
		for i := 0; i < n; i++ {
			e.OnSurfaceClick(pt(float64(i), 0))
		}
		before := e.Scene().Len()

		err := e.CompletePolygon()
		assert.ErrorIs(t, err, ErrTooFewVertices, "vertices=%d", n)
		assert.Equal(t, "at least 3 points are required to form a polygon", err.Error())
		assert.Equal(t, before, e.Scene().Len())
		assert.Len(t, e.State().Vertices, n)
		assert.Nil(t, e.State().Polygon)
	}
}

func TestCompletePolygonSquareAnyOrder(t *testing.T) {
	orders := [][]geometry.Vector3{
		{pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2)},
		{pt(2, 2), pt(0, 0), pt(0, 2), pt(2, 0)},
		{pt(0, 2), pt(2, 0), pt(0, 0), pt(2, 2)},
	}
	want := []geometry.Vector3{pt(0, 2), pt(2, 2), pt(2, 0), pt(0, 0)}

	for _, order := range orders {
		e := newEditor(t)
		clickAll(e, order...)
		require.NoError(t, e.CompletePolygon())

		poly := e.State().Polygon
		require.NotNil(t, poly)
		assert.InDelta(t, 1, poly.Centroid.X, 1e-12)
		assert.InDelta(t, 1, poly.Centroid.Z, 1e-12)
		assert.Equal(t, want, poly.Ring)
		assert.True(t, poly.Simple)

		obj := poly.Object
		assert.Equal(t, scene.KindPolygon, obj.Kind)
		assert.Equal(t, geometry.NewVector3(1, 0.1, 1), obj.Position)
		assert.Equal(t, uint8(0xff), obj.Material.Color.G)
		assert.True(t, obj.Material.DoubleSided)
		assert.Equal(t, 2, obj.Mesh.TriangleCount())
		assert.InDelta(t, 4.0, obj.Mesh.Area(), 1e-9)

		outline := obj.Mesh.Outline
		require.Len(t, outline, 5)
		assert.Equal(t, outline[0], outline[4])
		assert.Equal(t, geometry.NewVector3(-1, 0, 1), outline[0])
	}
}

func TestCompletePolygonConcaveStillBuilds(t *testing.T) {
	e := newEditor(t)
	clickAll(e, pt(0, 0), pt(4, 0), pt(4, 4), pt(0, 4), pt(1, 2))
	require.NoError(t, e.CompletePolygon())
	assert.NotNil(t, e.State().Polygon)
}

func TestPolicyAllowAddsPolygons(t *testing.T) {
	e := newEditor(t)
	clickAll(e, pt(0, 0), pt(2, 0), pt(2, 2))
	require.NoError(t, e.CompletePolygon())
	first := e.State().Polygon
	require.NoError(t, e.CompletePolygon())

	assert.Len(t, e.Scene().Objects(scene.KindPolygon), 2)
	assert.NotSame(t, first, e.State().Polygon)
	assert.True(t, e.Scene().Contains(first.Object))
}

func TestPolicyReplace(t *testing.T) {
	e := newEditor(t)
	opts := DefaultOptions()
	opts.Policy = PolicyReplace
	e.ApplyOptions(opts)

	clickAll(e, pt(0, 0), pt(2, 0), pt(2, 2))
	require.NoError(t, e.CompletePolygon())
	first := e.State().Polygon
	e.OnSurfaceClick(pt(0, 2))
	require.NoError(t, e.CompletePolygon())

	polys := e.Scene().Objects(scene.KindPolygon)
	require.Len(t, polys, 1)
	assert.False(t, e.Scene().Contains(first.Object))
	assert.Len(t, e.State().Polygon.Ring, 4)
}

func TestPolicyReject(t *testing.T) {
	e := newEditor(t)
	opts := DefaultOptions()
	opts.Policy = PolicyReject
	e.ApplyOptions(opts)

	clickAll(e, pt(0, 0), pt(2, 0), pt(2, 2))
	require.NoError(t, e.CompletePolygon())
	assert.ErrorIs(t, e.CompletePolygon(), ErrPolygonExists)
	assert.Len(t, e.Scene().Objects(scene.KindPolygon), 1)

	e.Reset()
	clickAll(e, pt(0, 0), pt(2, 0), pt(2, 2))
	assert.NoError(t, e.CompletePolygon())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyAllow, p)

	p, err = ParsePolicy("replace")
	require.NoError(t, err)
	assert.Equal(t, PolicyReplace, p)

	_, err = ParsePolicy("merge")
	assert.Error(t, err)
}

func TestCopyWithoutPolygon(t *testing.T) {
	e := newEditor(t)
	err := e.CopyPolygon()
	assert.ErrorIs(t, err, ErrNoPolygon)
	assert.Equal(t, "no polygon to copy", err.Error())
	assert.False(t, e.State().Dragging)
	assert.Nil(t, e.State().Clone)
}

func squareEditor(t *testing.T) *Editor {
	t.Helper()
	e := newEditor(t)
	clickAll(e, pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2))
	require.NoError(t, e.CompletePolygon())
	return e
}

func TestCopyAndDrag(t *testing.T) {
	e := squareEditor(t)
	before := e.Scene().Len()

	require.NoError(t, e.CopyPolygon())
	st := e.State()
	require.NotNil(t, st.Clone)
	assert.True(t, st.Dragging)
	assert.Equal(t, before+1, e.Scene().Len())
	assert.Equal(t, scene.KindClone, st.Clone.Kind)
	assert.Equal(t, geometry.NewVector3(0, 0.1, 0), st.Clone.Position)
	assert.Equal(t, 0.7, st.Clone.Material.Opacity)
	assert.Equal(t, uint8(0xa5), st.Clone.Material.Color.G)
	assert.NotEqual(t, st.Polygon.Object.ID, st.Clone.ID)
	assert.NotSame(t, st.Polygon.Object.Mesh, st.Clone.Mesh)

	e.OnPointerMove(pt(5, -3))
	e.OnPointerMove(geometry.NewVector3(6, 7, 2))
	assert.Equal(t, geometry.NewVector3(6, 0.1, 2), e.State().Clone.Position)

	assert.True(t, e.OnPointerDown())
	assert.False(t, e.State().Dragging)
	assert.Equal(t, geometry.NewVector3(6, 0.1, 2), e.State().Clone.Position)

	// after the drop, moves no longer reposition the clone
	e.OnPointerMove(pt(-4, -4))
	assert.Equal(t, geometry.NewVector3(6, 0.1, 2), e.State().Clone.Position)
	assert.False(t, e.OnPointerDown())

	// the original polygon did not move
	assert.Equal(t, geometry.NewVector3(1, 0.1, 1), e.State().Polygon.Object.Position)
}

func TestCloneStartsAtSurfaceOffset(t *testing.T) {
	opts := DefaultOptions()
	opts.SurfaceOffset = 0.3
	opts.CloneOrigin = geometry.NewVector3(2, 5, -1)
	e := New(scene.New(20, 20), opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clickAll(e, pt(0, 0), pt(2, 0), pt(2, 2))
	require.NoError(t, e.CompletePolygon())

	require.NoError(t, e.CopyPolygon())
	st := e.State()
	assert.Equal(t, geometry.NewVector3(2, 0.3, -1), st.Clone.Position)
	assert.Equal(t, st.Polygon.Object.Position.Y, st.Clone.Position.Y)
}

func TestPointerMoveWithoutDragIsNoop(t *testing.T) {
	e := newEditor(t)
	calls := 0
	e.AddListener(func(status.Snapshot) { calls++ })

	e.OnPointerMove(pt(1, 1))
	assert.False(t, e.OnPointerDown())
	assert.Equal(t, 0, calls)
}

func TestCopyWhileDraggingKeepsOldClone(t *testing.T) {
	e := squareEditor(t)
	require.NoError(t, e.CopyPolygon())
	e.OnPointerMove(pt(5, 5))
	first := e.State().Clone

	require.NoError(t, e.CopyPolygon())
	second := e.State().Clone
	assert.NotSame(t, first, second)
	assert.True(t, e.State().Dragging)
	assert.Equal(t, geometry.NewVector3(5, 0.1, 5), first.Position)
	assert.Len(t, e.Scene().Objects(scene.KindClone), 2)

	e.OnPointerMove(pt(-2, 3))
	assert.Equal(t, geometry.NewVector3(5, 0.1, 5), first.Position)
	assert.Equal(t, geometry.NewVector3(-2, 0.1, 3), second.Position)
}

func TestClickWhileDraggingIgnored(t *testing.T) {
	e := squareEditor(t)
	require.NoError(t, e.CopyPolygon())

	e.OnSurfaceClick(pt(7, 7))
	assert.Len(t, e.State().Vertices, 4)
}

func TestPressWhileDraggingOnlyDrops(t *testing.T) {
	e := squareEditor(t)
	require.NoError(t, e.CopyPolygon())
	e.OnPointerMove(pt(3, 3))

	e.Press(pt(3, 3), true)
	assert.False(t, e.State().Dragging)
	assert.Len(t, e.State().Vertices, 4)

	e.Press(pt(3, 3), true)
	assert.Len(t, e.State().Vertices, 5)

	e.Press(pt(9, 9), false)
	assert.Len(t, e.State().Vertices, 5)
}

func TestDownThenClickOrdering(t *testing.T) {
	// toolkits that deliver the down event before the click
	e := squareEditor(t)
	require.NoError(t, e.CopyPolygon())

	consumed := e.OnPointerDown()
	if !consumed {
		e.OnSurfaceClick(pt(8, 8))
	}
	assert.True(t, consumed)
	assert.False(t, e.State().Dragging)
	assert.Len(t, e.State().Vertices, 4)
}

func TestClickThenDownOrdering(t *testing.T) {
	// toolkits that deliver the click before the down event
	e := squareEditor(t)
	require.NoError(t, e.CopyPolygon())

	e.OnSurfaceClick(pt(8, 8))
	e.OnPointerDown()
	assert.False(t, e.State().Dragging)
	assert.Len(t, e.State().Vertices, 4)
}

func TestReset(t *testing.T) {
	e := squareEditor(t)
	require.NoError(t, e.CopyPolygon())
	e.OnPointerMove(pt(4, 4))

	e.Reset()
	st := e.State()
	assert.Empty(t, st.Vertices)
	assert.Empty(t, st.Markers)
	assert.Nil(t, st.Polygon)
	assert.Nil(t, st.Clone)
	assert.False(t, st.Dragging)
	assert.Equal(t, 2, e.Scene().Len())
	assert.NotNil(t, e.Scene().Find(scene.GroundName))
	assert.NotNil(t, e.Scene().Find(scene.GridName))

	e.Reset()
	assert.Equal(t, 2, e.Scene().Len())
	assert.ErrorIs(t, e.CopyPolygon(), ErrNoPolygon)
}

func TestStatusAndListeners(t *testing.T) {
	e := newEditor(t)
	var got []status.Snapshot
	e.AddListener(func(s status.Snapshot) { got = append(got, s) })

	assert.Equal(t, status.Panel{Objects: "2", CloneExists: "No", Dragging: "No"}, e.Status().Panel())

	clickAll(e, pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2))
	require.NoError(t, e.CompletePolygon())
	require.NoError(t, e.CopyPolygon())

	require.Len(t, got, 6)
	last := got[len(got)-1]
	assert.Equal(t, 2+4+1+1, last.Objects)
	assert.Equal(t, 4, last.Vertices)
	assert.True(t, last.CloneExists)
	assert.True(t, last.Dragging)
	assert.Equal(t, status.Panel{Objects: "8", CloneExists: "Yes", Dragging: "Yes"}, last.Panel())

	require.Len(t, last.Shapes, 2)
	assert.Equal(t, "polygon", last.Shapes[0].Kind)
	assert.Equal(t, "clone", last.Shapes[1].Kind)
	assert.Equal(t, [2]float64{0, 2}, last.Shapes[0].Ring[0])
	assert.Equal(t, [2]float64{-1, 1}, last.Shapes[1].Ring[0])

	e.Reset()
	assert.Equal(t, status.Panel{Objects: "2", CloneExists: "No", Dragging: "No"}, got[len(got)-1].Panel())
}

func TestFailedOperationsDoNotNotify(t *testing.T) {
	e := newEditor(t)
	calls := 0
	e.AddListener(func(status.Snapshot) { calls++ })

	assert.Error(t, e.CompletePolygon())
	assert.Error(t, e.CopyPolygon())
	assert.Equal(t, 0, calls)
}

package scene

import (
	"image/color"
	"testing"

	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareOutline() []geometry.Vector3 {
	// descending polar angle around the center, closed
	return []geometry.Vector3{
		{X: -1, Z: 1},
		{X: 1, Z: 1},
		{X: 1, Z: -1},
		{X: -1, Z: -1},
		{X: -1, Z: 1},
	}
}

func TestNewShapeMeshSquare(t *testing.T) {
	mesh, err := NewShapeMesh(squareOutline())
	require.NoError(t, err)

	assert.False(t, mesh.Fallback)
	assert.Len(t, mesh.Vertices, 4)
	assert.Len(t, mesh.Outline, 5)
	assert.Equal(t, 2, mesh.TriangleCount())
	assert.InDelta(t, 4.0, mesh.Area(), 1e-9)
	for _, i := range mesh.Indices {
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, len(mesh.Vertices))
	}
}

func TestNewShapeMeshDegenerate(t *testing.T) {
	_, err := NewShapeMesh([]geometry.Vector3{{X: 0}, {X: 1}, {X: 0}})
	assert.ErrorIs(t, err, ErrDegenerateShape)

	_, err = NewShapeMesh(nil)
	assert.ErrorIs(t, err, ErrDegenerateShape)
}

func TestFanIndices(t *testing.T) {
	assert.Equal(t, []int{3, 0, 1, 3, 1, 2, 3, 2, 0}, fanIndices(3))
}

func TestMeshTrianglesTranslated(t *testing.T) {
	mesh, err := NewShapeMesh(squareOutline())
	require.NoError(t, err)

	offset := geometry.NewVector3(5, 0.1, 5)
	for _, tri := range mesh.Triangles(offset) {
		for _, v := range []geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			assert.InDelta(t, 0.1, v.Y, 1e-12)
			assert.InDelta(t, 5, v.X, 1.0+1e-12)
			assert.InDelta(t, 5, v.Z, 1.0+1e-12)
		}
	}
}

func TestObjectCloneIsIndependent(t *testing.T) {
	mesh, err := NewShapeMesh(squareOutline())
	require.NoError(t, err)
	green := color.RGBA{G: 255, A: 255}
	original := NewShape(KindPolygon, mesh, geometry.NewVector3(1, 0.1, 1), Material{Color: green, Opacity: 1})

	clone, err := original.Clone()
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, clone.ID)
	assert.NotSame(t, original.Mesh, clone.Mesh)
	assert.Equal(t, original.Mesh.Vertices, clone.Mesh.Vertices)

	clone.Mesh.Vertices[0] = geometry.NewVector3(42, 0, 42)
	clone.Position = geometry.NewVector3(9, 9, 9)
	assert.Equal(t, -1.0, original.Mesh.Vertices[0].X)
	assert.Equal(t, geometry.NewVector3(1, 0.1, 1), original.Position)
}

func TestMaterialOpacity(t *testing.T) {
	orange := Material{Color: color.RGBA{R: 255, G: 165, A: 255}, Opacity: 0.7}
	assert.Equal(t, uint8(178), orange.RGBA().A)
	assert.True(t, orange.Transparent())

	solid := Material{Color: color.RGBA{G: 255, A: 255}, Opacity: 1}
	assert.Equal(t, uint8(255), solid.RGBA().A)
	assert.False(t, solid.Transparent())
}

func TestSceneFixturesSurviveClear(t *testing.T) {
	s := New(20, 20)
	require.Equal(t, 2, s.Len())
	require.NotNil(t, s.Find(GroundName))
	require.NotNil(t, s.Find(GridName))

	marker := NewMarker(geometry.NewVector3(1, 0, 1), 0.1, color.RGBA{R: 255, A: 255})
	s.Add(marker)
	mesh, err := NewShapeMesh(squareOutline())
	require.NoError(t, err)
	s.Add(NewShape(KindPolygon, mesh, geometry.Vector3{}, Material{}))
	assert.Equal(t, 4, s.Len())
	assert.Len(t, s.Objects(KindMarker), 1)
	assert.Len(t, s.Triangles(), 2)

	assert.Equal(t, 2, s.Clear())
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(marker))
	assert.Equal(t, 0, s.Clear())
}

func TestSceneRemove(t *testing.T) {
	s := New(20, 20)
	marker := NewMarker(geometry.Vector3{}, 0.1, color.RGBA{})
	s.Add(marker)

	assert.True(t, s.Remove(marker))
	assert.False(t, s.Remove(marker))
	assert.Equal(t, 2, s.Len())
}

func TestScenePick(t *testing.T) {
	s := New(20, 20)

	hit, ok := s.Pick(geometry.NewRay(geometry.NewVector3(3, 10, -2), geometry.NewVector3(0, -1, 0)))
	require.True(t, ok)
	assert.InDelta(t, 3, hit.X, 1e-9)
	assert.InDelta(t, 0, hit.Y, 1e-9)
	assert.InDelta(t, -2, hit.Z, 1e-9)

	_, ok = s.Pick(geometry.NewRay(geometry.NewVector3(30, 10, 0), geometry.NewVector3(0, -1, 0)))
	assert.False(t, ok, "outside the ground")

	_, ok = s.Pick(geometry.NewRay(geometry.NewVector3(0, 10, 0), geometry.NewVector3(0, 1, 0)))
	assert.False(t, ok, "pointing away")
}

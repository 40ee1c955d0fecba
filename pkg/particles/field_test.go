package particles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/tokenviz/pkg/geometry"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

func records(ids []int, positions []geometry.Vector3) []tokens.Record {
	out := make([]tokens.Record, len(ids))
	for i := range ids {
		out[i] = tokens.Record{ID: ids[i], Text: "t", Vector: positions[i]}
	}
	return out
}

func TestBuildEmpty(t *testing.T) {
	f := NewField(5)
	assert.ErrorIs(t, f.Build(nil), tokens.ErrNoData)
	assert.Equal(t, 0, f.Len())
}

func TestBuildScalesPositions(t *testing.T) {
	f := NewField(5)
	require.NoError(t, f.Build(records([]int{1}, []geometry.Vector3{geometry.NewVector3(0.5, -1, 2)})))

	assert.Equal(t, geometry.NewVector3(5, -10, 20), f.Particle(0).Position)
	assert.Equal(t, geometry.NewVector3(5, -10, 20), f.WorldPosition(0))
}

func TestBuildHuesByIDModulo360(t *testing.T) {
	f := NewField(5)
	require.NoError(t, f.Build(records(
		[]int{10, 10, 370},
		[]geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(0, 1, 0),
		})))

	require.Equal(t, 3, f.Len())
	// equal ids always share a hue, so particle 1 matches 0 as well as 2
	assert.Equal(t, f.Particle(0).Hue, f.Particle(2).Hue)
	assert.Equal(t, f.Particle(0).Color, f.Particle(2).Color)
	assert.Equal(t, f.Particle(0).Color, f.Particle(1).Color)
	assert.InDelta(t, 10.0/360.0, f.Particle(0).Hue, 1e-12)
}

func TestHue(t *testing.T) {
	assert.Equal(t, 0.0, Hue(0))
	assert.Equal(t, 0.0, Hue(720))
	assert.InDelta(t, 359.0/360.0, Hue(359), 1e-12)
	assert.InDelta(t, 350.0/360.0, Hue(-10), 1e-12)
	assert.NotEqual(t, HueColor(10), HueColor(11))
	assert.Equal(t, uint8(255), HueColor(10).A)
}

func TestBuildReplacesAndResets(t *testing.T) {
	f := NewField(5)
	require.NoError(t, f.Build(records([]int{1, 2}, []geometry.Vector3{{}, {X: 1}})))
	f.RotateY(1)
	f.SetEmphasis(1, "hover", 1.5)

	require.NoError(t, f.Build(records([]int{3}, []geometry.Vector3{{Z: 1}})))
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, 0.0, f.Yaw())
	assert.False(t, f.Emphasized(0))
	assert.Equal(t, 3, f.Particle(0).ID)
}

func TestRotateYDoesNotMutatePositions(t *testing.T) {
	f := NewField(5)
	require.NoError(t, f.Build(records([]int{1}, []geometry.Vector3{geometry.NewVector3(1, 0, 0)})))

	f.RotateY(math.Pi / 4)
	f.RotateY(math.Pi / 4)

	assert.Equal(t, geometry.NewVector3(10, 0, 0), f.Particle(0).Position)
	assert.InDelta(t, math.Pi/2, f.Yaw(), 1e-12)

	world := f.WorldPosition(0)
	assert.InDelta(t, 0, world.X, 1e-9)
	assert.InDelta(t, 10, math.Abs(world.Z), 1e-9)
}

func TestPointSizeEmphasis(t *testing.T) {
	f := NewField(4)
	require.NoError(t, f.Build(records([]int{1, 2}, []geometry.Vector3{{}, {X: 1}})))

	assert.Equal(t, 4.0, f.PointSize(0))

	f.SetEmphasis(0, "hover", 1.5)
	assert.Equal(t, 6.0, f.PointSize(0))
	assert.Equal(t, 4.0, f.PointSize(1))

	f.SetEmphasis(0, "pin", 2)
	assert.Equal(t, 8.0, f.PointSize(0))

	f.ClearEmphasis(0, "pin")
	assert.Equal(t, 6.0, f.PointSize(0))
	f.ClearEmphasis(0, "hover")
	f.ClearEmphasis(0, "hover")
	assert.Equal(t, 4.0, f.PointSize(0))
	assert.False(t, f.Emphasized(0))

	f.SetEmphasis(7, "hover", 3)
	assert.False(t, f.Emphasized(7))
}

func TestSetPointSizeKeepsEmphasisRelative(t *testing.T) {
	f := NewField(4)
	require.NoError(t, f.Build(records([]int{1}, []geometry.Vector3{{}})))
	f.SetEmphasis(0, "hover", 1.5)

	f.SetPointSize(10)
	assert.Equal(t, 15.0, f.PointSize(0))
	f.SetPointSize(0)
	assert.Equal(t, 10.0, f.BasePointSize())
}

func TestSnapshotUsesUnscaledUnits(t *testing.T) {
	f := NewField(5)
	require.NoError(t, f.Build([]tokens.Record{
		{ID: 9906, Text: "Hello", Vector: geometry.NewVector3(0.123, -0.456, 0.789)},
		{ID: 9906, Text: "Hello", Vector: geometry.NewVector3(1, 2, 3)},
	}))
	f.RotateY(1)

	snap := f.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, Snapshot{Index: 0, ID: 9906, Text: "Hello", Position: geometry.NewVector3(0.123, -0.456, 0.789)}, snap[0])
	assert.Equal(t, 1, snap[1].Index)
}

func TestTeardown(t *testing.T) {
	f := NewField(5)
	require.NoError(t, f.Build(records([]int{1}, []geometry.Vector3{{}})))
	f.Teardown()
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Valid(0))
	assert.Empty(t, f.Snapshot())
}

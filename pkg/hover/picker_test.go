package hover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/tokenviz/pkg/camera"
	"github.com/philipparndt/tokenviz/pkg/geometry"
	"github.com/philipparndt/tokenviz/pkg/particles"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

const (
	width  = 800.0
	height = 600.0
	base   = 5.0
)

var start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*particles.Field, *Picker, camera.View) {
	t.Helper()
	f := particles.NewField(base)
	require.NoError(t, f.Build([]tokens.Record{
		{ID: 7, Text: "hello", Vector: geometry.Vector3{}},
		{ID: 8, Text: "world", Vector: geometry.NewVector3(3, 0, 0)},
		{ID: 9, Text: "", Vector: geometry.NewVector3(-3, 0, 0)},
	}))
	c := camera.New()
	c.SetAspect(width / height)
	return f, NewPicker(f), c.View()
}

func TestUpdateHoversCenterParticle(t *testing.T) {
	f, p, view := setup(t)

	p.PointerMoved(400, 300)
	require.NoError(t, p.Update(view, width, height))

	assert.Equal(t, 0, p.Hovered())
	assert.Equal(t, base*HoverScale, f.PointSize(0))
	assert.Equal(t, Annotation{Visible: true, ID: 7, Text: "hello", X: 415, Y: 285}, p.Annotation())
}

func TestUpdateMissClearsHover(t *testing.T) {
	f, p, view := setup(t)

	p.PointerMoved(400, 300)
	require.NoError(t, p.Update(view, width, height))
	p.PointerMoved(5, 5)
	require.NoError(t, p.Update(view, width, height))

	assert.Equal(t, None, p.Hovered())
	assert.False(t, p.Annotation().Visible)
	assert.Equal(t, base, f.PointSize(0))
}

func TestUpdateSwitchesHover(t *testing.T) {
	f, p, view := setup(t)

	p.PointerMoved(400, 300)
	require.NoError(t, p.Update(view, width, height))

	proj, err := view.Project(f.WorldPosition(1), width, height)
	require.NoError(t, err)
	p.PointerMoved(proj.X, proj.Y)
	require.NoError(t, p.Update(view, width, height))

	assert.Equal(t, 1, p.Hovered())
	assert.Equal(t, base, f.PointSize(0))
	assert.Equal(t, base*HoverScale, f.PointSize(1))
	assert.Equal(t, 8, p.Annotation().ID)
}

func TestPointerLeftClearsOnNextUpdate(t *testing.T) {
	f, p, view := setup(t)

	p.PointerMoved(400, 300)
	require.NoError(t, p.Update(view, width, height))
	p.PointerLeft()
	require.NoError(t, p.Update(view, width, height))

	assert.Equal(t, None, p.Hovered())
	assert.False(t, f.Emphasized(0))
}

func TestUpdateEmptyViewport(t *testing.T) {
	f, p, view := setup(t)

	p.PointerMoved(400, 300)
	require.NoError(t, p.Update(view, width, height))
	err := p.Update(view, 0, height)

	assert.ErrorIs(t, err, camera.ErrCannotProject)
	assert.Equal(t, None, p.Hovered())
	assert.Equal(t, base, f.PointSize(0))
}

func TestPinExpiresAfterDuration(t *testing.T) {
	f, p, _ := setup(t)
	clock := NewMockClock(start)

	require.True(t, p.Pin(2, clock.Now()))
	assert.Equal(t, base*PinScale, f.PointSize(2))

	clock.Advance(PinDuration - time.Millisecond)
	assert.False(t, p.Expire(clock.Now()))
	assert.Equal(t, 2, p.Pinned())

	clock.Advance(time.Millisecond)
	assert.True(t, p.Expire(clock.Now()))
	assert.Equal(t, None, p.Pinned())
	assert.Equal(t, base, f.PointSize(2))
	assert.False(t, f.Emphasized(2))
}

func TestRepinRestartsTimer(t *testing.T) {
	_, p, _ := setup(t)
	clock := NewMockClock(start)

	p.Pin(1, clock.Now())
	clock.Advance(1500 * time.Millisecond)
	p.Pin(1, clock.Now())
	clock.Advance(1500 * time.Millisecond)

	assert.False(t, p.Expire(clock.Now()))
	assert.Equal(t, 1, p.Pinned())
	assert.Equal(t, start.Add(1500*time.Millisecond+PinDuration), p.PinnedUntil())
}

func TestPinAnotherRevertsPrevious(t *testing.T) {
	f, p, _ := setup(t)

	p.Pin(0, start)
	p.Pin(1, start)

	assert.Equal(t, 1, p.Pinned())
	assert.Equal(t, base, f.PointSize(0))
	assert.Equal(t, base*PinScale, f.PointSize(1))
}

func TestPinOutOfRange(t *testing.T) {
	_, p, _ := setup(t)

	assert.False(t, p.Pin(3, start))
	assert.False(t, p.Pin(-1, start))
	assert.Equal(t, None, p.Pinned())
}

func TestPinAndHoverCombine(t *testing.T) {
	f, p, view := setup(t)

	p.PointerMoved(400, 300)
	require.NoError(t, p.Update(view, width, height))
	p.Pin(0, start)
	assert.Equal(t, base*PinScale, f.PointSize(0))

	p.Expire(start.Add(PinDuration))
	assert.Equal(t, base*HoverScale, f.PointSize(0))
}

func TestResetIsIdempotent(t *testing.T) {
	f, p, view := setup(t)

	p.PointerMoved(400, 300)
	require.NoError(t, p.Update(view, width, height))
	p.Pin(1, start)

	p.Reset()
	p.Reset()

	assert.Equal(t, None, p.Hovered())
	assert.Equal(t, None, p.Pinned())
	assert.False(t, p.Annotation().Visible)
	for i := 0; i < f.Len(); i++ {
		assert.Equal(t, base, f.PointSize(i))
	}
	_, _, ok := p.Pointer()
	assert.False(t, ok)
}

func TestMockClock(t *testing.T) {
	c := NewMockClock(start)
	c.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
	assert.False(t, SystemClock{}.Now().IsZero())
}

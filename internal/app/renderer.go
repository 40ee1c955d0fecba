package app

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/render"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

const (
	labelPadX         = 4
	labelPadY         = 2
	annotationSize    = 15
	annotationPad     = 8
	annotationTextMax = 24
)

var (
	backgroundColor      = render.Background
	annotationBackground = rl.NewColor(0, 0, 0, 204)
)

// rayTarget draws frames with raylib. Render is called by the loop tick
// between BeginDrawing and EndDrawing.
type rayTarget struct {
	font rl.Font
	last render.Frame
}

func newRayTarget(font rl.Font) *rayTarget {
	return &rayTarget{font: font}
}

// Resize does nothing; raylib owns the window size
func (t *rayTarget) Resize(width, height int) {}

// Render draws the frame and keeps it for redraw
func (t *rayTarget) Render(frame render.Frame) error {
	t.last = frame
	t.draw(frame)
	return nil
}

// redraw repeats the last frame when no tick ran
func (t *rayTarget) redraw() {
	t.draw(t.last)
}

func (t *rayTarget) draw(frame render.Frame) {
	for _, p := range frame.Points {
		center := rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
		radius := float32(p.SizePx / 2)
		rl.DrawCircleV(center, radius, rl.Fade(p.Color, 0.5))
		rl.DrawCircleV(center, radius*0.6, p.Color)
	}

	for _, l := range frame.Labels {
		t.drawLabel(l)
	}

	if frame.Annotation.Visible {
		t.drawAnnotation(frame.Annotation)
	}
}

func (t *rayTarget) drawLabel(l render.Label) {
	size := float32(l.SizePx)
	textSize := rl.MeasureTextEx(t.font, l.Text, size, 1)

	rect := rl.Rectangle{
		X:      float32(l.X) - textSize.X/2 - labelPadX,
		Y:      float32(l.Y) - textSize.Y/2 - labelPadY,
		Width:  textSize.X + 2*labelPadX,
		Height: textSize.Y + 2*labelPadY,
	}
	opacity := float32(l.Opacity)
	bg := color.RGBA{R: l.Background.R, G: l.Background.G, B: l.Background.B, A: 255}
	rl.DrawRectangleRounded(rect, 0.3, 4, rl.Fade(bg, opacity*float32(l.Background.A)/255))

	pos := rl.Vector2{X: rect.X + labelPadX, Y: rect.Y + labelPadY}
	fg := rl.Fade(rl.White, opacity)
	rl.DrawTextEx(t.font, l.Text, pos, size, 1, fg)
	if l.Bold {
		rl.DrawTextEx(t.font, l.Text, rl.Vector2{X: pos.X + 1, Y: pos.Y}, size, 1, fg)
	}
}

func (t *rayTarget) drawAnnotation(a hover.Annotation) {
	lines := []string{
		fmt.Sprintf("Token ID: %d", a.ID),
		"Text: " + tokens.DisplayText(a.Text, annotationTextMax),
	}

	var width, height float32
	for _, line := range lines {
		s := rl.MeasureTextEx(t.font, line, annotationSize, 1)
		width = max(width, s.X)
		height += s.Y
	}

	rect := rl.Rectangle{
		X:      float32(a.X),
		Y:      float32(a.Y),
		Width:  width + 2*annotationPad,
		Height: height + 2*annotationPad,
	}
	rl.DrawRectangleRounded(rect, 0.15, 4, annotationBackground)

	y := rect.Y + annotationPad
	for _, line := range lines {
		rl.DrawTextEx(t.font, line, rl.Vector2{X: rect.X + annotationPad, Y: y}, annotationSize, 1, rl.White)
		y += rl.MeasureTextEx(t.font, line, annotationSize, 1).Y
	}
}

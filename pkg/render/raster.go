package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

const (
	labelPadX = 4
	labelPadY = 2

	annotationSizePx  = 13
	annotationPad     = 6
	annotationTextMax = 24
)

var (
	annotationBackground = color.NRGBA{A: 204}
	textColor            = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Raster is a software render target drawing into an RGBA image
type Raster struct {
	img   *image.RGBA
	faces *faceCache
}

// NewRaster creates a raster target of the given size
func NewRaster(width, height int) (*Raster, error) {
	faces, err := newFaceCache()
	if err != nil {
		return nil, err
	}
	r := &Raster{faces: faces}
	r.Resize(width, height)
	return r, nil
}

// Resize reallocates the image when the size changes
func (r *Raster) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if r.img != nil && r.img.Bounds().Dx() == width && r.img.Bounds().Dy() == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Image returns the last rendered image. It is reused by the next Render.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Render draws the frame: background, points back to front, labels by z,
// then the hover annotation on top
func (r *Raster) Render(frame Frame) error {
	if frame.Width > 0 && frame.Height > 0 {
		r.Resize(frame.Width, frame.Height)
	}

	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	for _, p := range frame.Points {
		drawDisc(r.img, p.X, p.Y, p.SizePx/2, p.Color)
	}

	for _, l := range frame.Labels {
		if err := r.drawLabel(l); err != nil {
			return err
		}
	}

	if frame.Annotation.Visible {
		if err := r.drawAnnotation(frame.Annotation); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the cached font faces
func (r *Raster) Close() error {
	return r.faces.Close()
}

func (r *Raster) drawLabel(l Label) error {
	face, err := r.faces.face(l.SizePx, l.Bold)
	if err != nil {
		return err
	}

	textWidth := font.MeasureString(face, l.Text).Ceil()
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()

	w := textWidth + 2*labelPadX
	h := textHeight + 2*labelPadY
	x0 := int(math.Round(l.X)) - w/2
	y0 := int(math.Round(l.Y)) - h/2
	box := image.Rect(x0, y0, x0+w, y0+h)

	fillRect(r.img, box, l.Background, l.Opacity)

	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(withOpacity(textColor, l.Opacity)),
		Face: face,
		Dot:  fixed.P(x0+labelPadX, y0+labelPadY+metrics.Ascent.Ceil()),
	}
	d.DrawString(l.Text)
	return nil
}

func (r *Raster) drawAnnotation(a hover.Annotation) error {
	face, err := r.faces.face(annotationSizePx, false)
	if err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("Token ID: %d", a.ID),
		"Text: " + tokens.DisplayText(a.Text, annotationTextMax),
	}

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}

	x0 := int(math.Round(a.X))
	y0 := int(math.Round(a.Y))
	box := image.Rect(x0, y0, x0+width+2*annotationPad, y0+len(lines)*lineHeight+2*annotationPad)
	fillRect(r.img, box, annotationBackground, 1)

	d := &font.Drawer{Dst: r.img, Src: image.NewUniform(textColor), Face: face}
	for i, line := range lines {
		d.Dot = fixed.P(x0+annotationPad, y0+annotationPad+i*lineHeight+metrics.Ascent.Ceil())
		d.DrawString(line)
	}
	return nil
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp01(opacity)))
	return c
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.NRGBA, opacity float64) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(img, rect, image.NewUniform(withOpacity(c, opacity)), image.Point{}, draw.Over)
}

// drawDisc draws a round point with a soft rim, blending over the image
func drawDisc(img *image.RGBA, cx, cy, radius float64, c color.RGBA) {
	bounds := img.Bounds()
	radius = math.Max(radius, 0.5)

	minX := max(bounds.Min.X, int(math.Floor(cx-radius)))
	maxX := min(bounds.Max.X-1, int(math.Ceil(cx+radius)))
	minY := max(bounds.Min.Y, int(math.Floor(cy-radius)))
	maxY := min(bounds.Max.Y-1, int(math.Ceil(cy+radius)))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d := math.Sqrt(dx*dx+dy*dy) / radius
			if d > 1 {
				continue
			}
			alpha := 1.0
			if d > 0.5 {
				alpha = (1 - d) * 2
			}
			blend(img, x, y, c, alpha)
		}
	}
}

func blend(img *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	i := img.PixOffset(x, y)
	pix := img.Pix[i : i+4 : i+4]
	a := clamp01(alpha) * float64(c.A) / 255
	pix[0] = uint8(math.Round(float64(pix[0])*(1-a) + float64(c.R)*a))
	pix[1] = uint8(math.Round(float64(pix[1])*(1-a) + float64(c.G)*a))
	pix[2] = uint8(math.Round(float64(pix[2])*(1-a) + float64(c.B)*a))
	pix[3] = uint8(math.Round(float64(pix[3])*(1-a) + 255*a))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

type faceKey struct {
	size int
	bold bool
}

// faceCache holds one face per size and weight
type faceCache struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

func newFaceCache() (*faceCache, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &faceCache{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

func (c *faceCache) face(size int, bold bool) (font.Face, error) {
	size = max(size, 1)
	key := faceKey{size: size, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	src := c.regular
	if bold {
		src = c.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %dpx face: %w", size, err)
	}
	c.faces[key] = f
	return f, nil
}

func (c *faceCache) Close() error {
	for k, f := range c.faces {
		if err := f.Close(); err != nil {
			return err
		}
		delete(c.faces, k)
	}
	return nil
}

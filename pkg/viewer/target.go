package viewer

import (
	"fyne.io/fyne/v2/canvas"

	"github.com/philipparndt/tokenviz/pkg/render"
)

// rasterTarget draws frames into a raster shown by a canvas image
type rasterTarget struct {
	raster *render.Raster
	image  *canvas.Image
}

func newRasterTarget(raster *render.Raster) *rasterTarget {
	img := canvas.NewImageFromImage(raster.Image())
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleFastest
	return &rasterTarget{raster: raster, image: img}
}

func (t *rasterTarget) Resize(width, height int) {
	t.raster.Resize(width, height)
	t.image.Image = t.raster.Image()
}

func (t *rasterTarget) Render(frame render.Frame) error {
	if err := t.raster.Render(frame); err != nil {
		return err
	}
	t.image.Refresh()
	return nil
}

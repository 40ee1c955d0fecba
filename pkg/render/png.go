package render

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

// WritePNG encodes the last rendered image
func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

// SavePNG writes the last rendered image to a file
func (r *Raster) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

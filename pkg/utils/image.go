package utils

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// MaxScale is the largest scale factor accepted by Scale.
const MaxScale = 16

// Scale scales img by factor using nearest neighbour sampling, which
// keeps the pixels of the frame sharp. The factor is clamped to
// [1, MaxScale].
func Scale(img image.Image, factor int) *image.RGBA {
	factor = Clamp(1, factor, MaxScale)
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodeImage writes img to w in the format named by ext, either
// ".png" or ".bmp".
func EncodeImage(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported image format %q", ext)
}

// SaveImage saves img to filename, choosing the format from its
// extension.
func SaveImage(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := EncodeImage(file, filepath.Ext(filename), img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

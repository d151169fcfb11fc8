package transform

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/disintegration/imaging"

	// Decoders for the source formats we re-encode. JPEG, PNG and GIF come
	// from the standard library; BMP, TIFF and WebP from golang.org/x/image.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// jpegQuality is the fixed quality setting for re-encoded images.
const jpegQuality = 85

var errNotSmaller = errors.New("re-encoded image is not smaller")

// OptimizeImage decodes an image, flattens any transparency onto a white
// background and re-encodes it as JPEG at a fixed quality. The original
// bytes are returned unchanged, along with a non-nil error, if the image
// cannot be decoded or the re-encoded form is not smaller.
func OptimizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, err
	}

	// Drawing onto an opaque canvas also expands palette/indexed modes.
	bounds := img.Bounds()
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data, err
	}
	if buf.Len() >= len(data) {
		return data, errNotSmaller
	}
	return buf.Bytes(), nil
}

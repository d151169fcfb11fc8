package transform

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"
)

// noisyPNG encodes pseudo-random pixel data, which PNG compresses poorly;
// lossy JPEG re-encoding is guaranteed a large win on it.
func noisyPNG(t *testing.T, alpha bool) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			a := uint8(255)
			if alpha {
				a = uint8(rng.Intn(256))
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: a,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestOptimizeImageShrinksPNG(t *testing.T) {
	original := noisyPNG(t, false)
	optimized, err := OptimizeImage(original)
	if err != nil {
		t.Fatalf("OptimizeImage() error = %v", err)
	}
	if len(optimized) >= len(original) {
		t.Errorf("optimized size %d, want smaller than %d", len(optimized), len(original))
	}
	if _, _, err := image.Decode(bytes.NewReader(optimized)); err != nil {
		t.Errorf("optimized output does not decode: %v", err)
	}
}

func TestOptimizeImageFlattensTransparency(t *testing.T) {
	original := noisyPNG(t, true)
	optimized, err := OptimizeImage(original)
	if err != nil {
		t.Fatalf("OptimizeImage() error = %v", err)
	}
	decoded, format, err := image.Decode(bytes.NewReader(optimized))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("output format = %q, want jpeg", format)
	}
	if decoded.Bounds() != image.Rect(0, 0, 200, 200) {
		t.Errorf("dimensions changed: %v", decoded.Bounds())
	}
}

func TestOptimizeImageCorruptBytesReturnsOriginal(t *testing.T) {
	corrupt := []byte("definitely not an image")
	got, err := OptimizeImage(corrupt)
	if err == nil {
		t.Error("OptimizeImage() error = nil, want decode failure")
	}
	if !bytes.Equal(got, corrupt) {
		t.Errorf("original bytes not preserved on failure")
	}
}

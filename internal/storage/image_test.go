package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	out, err := Normalize(encodeTestPNG(t, 200, 100))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Fatalf("dimensions changed: %v", img.Bounds())
	}
}

func TestNormalizeDownscalesLargeImages(t *testing.T) {
	out, err := Normalize(encodeTestPNG(t, 2048, 1024))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if img.Bounds().Dx() != maxDimension {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), maxDimension)
	}
	if img.Bounds().Dy() != maxDimension/2 {
		t.Fatalf("height = %d, want %d", img.Bounds().Dy(), maxDimension/2)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	if _, err := Normalize([]byte("not an image")); err == nil {
		t.Fatal("expected error for non-image data")
	}
}

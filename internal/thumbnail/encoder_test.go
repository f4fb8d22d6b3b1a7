package thumbnail

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"cineangle/pkg/datauri"
)

func testImageURI(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return datauri.Encode("image/png", buf.Bytes())
}

func decodeDims(t *testing.T, uri string) (int, int) {
	t.Helper()
	mime, raw, err := datauri.Decode(uri)
	if err != nil {
		t.Fatalf("decode output uri: %v", err)
	}
	if mime != "image/jpeg" {
		t.Fatalf("thumbnail mime: got %q want image/jpeg", mime)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode output config: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestEncodeEmptyInputPassesThrough(t *testing.T) {
	out, err := Encode("", 400, 400, 70)
	if err != nil {
		t.Fatalf("Encode(\"\") error: %v", err)
	}
	if out != "" {
		t.Fatalf("Encode(\"\") = %q, want empty", out)
	}
}

func TestEncodeConstrainsByLimitingDimension(t *testing.T) {
	// Landscape: width limits. 1000x500 into 800x800 gives 800x400.
	w, h := decodeDims(t, mustEncode(t, testImageURI(t, 1000, 500), 800, 800, 80))
	if w != 800 || h != 400 {
		t.Fatalf("landscape fit: got %dx%d want 800x400", w, h)
	}

	// Portrait: height limits. 500x1000 into 400x400 gives 200x400.
	w, h = decodeDims(t, mustEncode(t, testImageURI(t, 500, 1000), 400, 400, 70))
	if w != 200 || h != 400 {
		t.Fatalf("portrait fit: got %dx%d want 200x400", w, h)
	}
}

func TestEncodeKeepsInBoundsImageSize(t *testing.T) {
	uri := testImageURI(t, 320, 200)
	w, h := decodeDims(t, mustEncode(t, uri, 400, 400, 70))
	if w != 320 || h != 200 {
		t.Fatalf("in-bounds image resized: got %dx%d want 320x200", w, h)
	}
}

func TestEncodePreservesAspectRatio(t *testing.T) {
	w, h := decodeDims(t, mustEncode(t, testImageURI(t, 1600, 900), 400, 400, 70))
	if w != 400 {
		t.Fatalf("width: got %d want 400", w)
	}
	want := 900.0 / 1600.0
	got := float64(h) / float64(w)
	if diff := got - want; diff > 0.01 || diff < -0.01 {
		t.Fatalf("aspect ratio drifted: got %.4f want %.4f", got, want)
	}
}

func TestEncodeRejectsUndecodableBytes(t *testing.T) {
	uri := datauri.Encode("image/png", []byte("definitely not an image"))
	if _, err := Encode(uri, 400, 400, 70); !errors.Is(err, ErrDecode) {
		t.Fatalf("want ErrDecode, got %v", err)
	}
}

func mustEncode(t *testing.T, uri string, maxW, maxH, quality int) string {
	t.Helper()
	out, err := Encode(uri, maxW, maxH, quality)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	return out
}

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	_ "image/gif"

	xdraw "golang.org/x/image/draw"

	"cineangle/pkg/datauri"
)

// Options are the per-image download controls: brightness and contrast in
// percent (100 is neutral, range 50-150), an output scale relative to the
// source resolution, the target format and the JPEG quality factor.
type Options struct {
	Brightness int
	Contrast   int
	Scale      float64
	Format     string
	Quality    int
}

// DefaultOptions mirrors the neutral state of the interactive controls.
func DefaultOptions() Options {
	return Options{Brightness: 100, Contrast: 100, Scale: 1, Format: "jpeg", Quality: 92}
}

// Render decodes the image carried by the data URI, applies the brightness
// and contrast adjustments, rescales and re-encodes it. The input bytes are
// the already-returned generation result; no provider round-trip happens
// here.
func Render(uri string, opts Options) ([]byte, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	_, raw, err := datauri.Decode(uri)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("export: decode image: %w", err)
	}

	adjusted := adjust(src, opts.Brightness, opts.Contrast)

	out := adjusted
	if opts.Scale != 1 {
		bounds := adjusted.Bounds()
		width := int(math.Round(float64(bounds.Dx()) * opts.Scale))
		height := int(math.Round(float64(bounds.Dy()) * opts.Scale))
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), adjusted, bounds, xdraw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	switch opts.Format {
	case "jpeg":
		err = jpeg.Encode(&buf, out, &jpeg.Options{Quality: opts.Quality})
	case "png":
		err = png.Encode(&buf, out)
	}
	if err != nil {
		return nil, fmt.Errorf("export: encode %s: %w", opts.Format, err)
	}
	return buf.Bytes(), nil
}

// Filename derives the download name for one angle, e.g.
// "cinematic-over-the-shoulder.jpeg".
func Filename(angle, format string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(angle)), "-")
	return fmt.Sprintf("cinematic-%s.%s", slug, format)
}

func validate(opts Options) error {
	if opts.Brightness < 50 || opts.Brightness > 150 {
		return fmt.Errorf("export: brightness %d out of range [50,150]", opts.Brightness)
	}
	if opts.Contrast < 50 || opts.Contrast > 150 {
		return fmt.Errorf("export: contrast %d out of range [50,150]", opts.Contrast)
	}
	if opts.Scale <= 0 || opts.Scale > 1 {
		return fmt.Errorf("export: scale %v out of range (0,1]", opts.Scale)
	}
	switch opts.Format {
	case "jpeg", "png":
	default:
		return fmt.Errorf("export: unsupported format %q", opts.Format)
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return fmt.Errorf("export: quality %d out of range [1,100]", opts.Quality)
	}
	return nil
}

// adjust applies brightness then contrast per channel, matching the canvas
// filter semantics: v' = (v*b - 0.5)*c + 0.5 on a 0..1 scale.
func adjust(src image.Image, brightness, contrast int) image.Image {
	if brightness == 100 && contrast == 100 {
		return src
	}
	b := float64(brightness) / 100
	c := float64(contrast) / 100

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			dst.SetRGBA(x, y, color.RGBA{
				R: applyChannel(r, b, c),
				G: applyChannel(g, b, c),
				B: applyChannel(bl, b, c),
				A: uint8(a >> 8),
			})
		}
	}
	return dst
}

func applyChannel(v uint32, b, c float64) uint8 {
	f := float64(v) / 65535
	f = (f*b-0.5)*c + 0.5
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return uint8(math.Round(f * 255))
}

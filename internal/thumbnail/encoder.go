package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"cineangle/pkg/datauri"
)

// ErrDecode reports source bytes that could not be decoded as an image.
var ErrDecode = errors.New("thumbnail: undecodable image")

// Encode produces a resized, recompressed JPEG copy of the image carried by
// the given data URI, returned again as a data URI. Neither output dimension
// exceeds the bounding box; aspect ratio is preserved by constraining the
// limiting dimension. An empty input passes through as empty — a failed
// generation slot has no image to thumbnail. quality is the JPEG quality
// factor in [1,100].
func Encode(uri string, maxWidth, maxHeight, quality int) (string, error) {
	if uri == "" {
		return "", nil
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return "", fmt.Errorf("thumbnail: invalid bounds %dx%d", maxWidth, maxHeight)
	}

	_, raw, err := datauri.Decode(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	var scaled image.Image = src
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
		scaled = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("thumbnail: encode: %w", err)
	}
	return datauri.Encode("image/jpeg", buf.Bytes()), nil
}

// fit computes the bounded size. The limiting dimension is scaled to its
// maximum and the other follows proportionally; images already within
// bounds keep their exact size.
func fit(width, height, maxWidth, maxHeight int) (int, int) {
	if width > height {
		if width > maxWidth {
			height = int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
			width = maxWidth
		}
	} else {
		if height > maxHeight {
			width = int(math.Round(float64(width) * float64(maxHeight) / float64(height)))
			height = maxHeight
		}
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

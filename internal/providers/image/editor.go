package image

import "context"

// SourceImage carries the uploaded photograph handed to an editor. It is
// transient per request and never persisted at full resolution.
type SourceImage struct {
	Data     []byte
	MIMEType string
}

// Editor regenerates a scene from a different camera perspective. A nil
// image with a nil error is a soft failure: the provider answered but
// produced no image for this angle. Any non-nil error is a hard failure
// the caller must not swallow.
type Editor interface {
	EditScene(ctx context.Context, src SourceImage, angleDescription string) ([]byte, string, error)
}

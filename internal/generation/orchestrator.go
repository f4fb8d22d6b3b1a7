package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cineangle/internal/angles"
	"cineangle/internal/infra"
	"cineangle/internal/providers/image"
	"cineangle/pkg/datauri"
)

// Slot is one position of the fixed six-element result set. Src holds the
// regenerated image as a data URI, or is empty when the provider produced
// no image for the angle.
type Slot struct {
	Angle string `json:"angle"`
	Src   string `json:"src,omitempty"`
}

// Orchestrator fans one source image out to the editor, once per catalog
// angle, and collects the results back into catalog order.
type Orchestrator struct {
	editor image.Editor
	logger infra.Logger
}

func NewOrchestrator(editor image.Editor, logger infra.Logger) *Orchestrator {
	return &Orchestrator{editor: editor, logger: logger}
}

// GenerateAll dispatches all six edits concurrently and waits for every
// call to settle. A hard failure on any angle fails the whole batch and no
// partial result is returned; a soft failure leaves only its slot empty.
// Slot order is catalog order regardless of completion order.
func (o *Orchestrator) GenerateAll(ctx context.Context, src image.SourceImage) ([]Slot, error) {
	requestID := uuid.NewString()
	specs := angles.Catalog()
	slots := make([]Slot, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		i, spec := i, spec
		slots[i].Angle = spec.Name
		g.Go(func() error {
			start := time.Now()
			data, mime, err := o.editor.EditScene(ctx, src, spec.Description)
			if err != nil {
				o.logger.Error().Err(err).
					Str("request_id", requestID).
					Str("angle", spec.Name).
					Msg("generation: angle failed")
				return fmt.Errorf("angle %q: %w", spec.Name, err)
			}
			if len(data) == 0 {
				o.logger.Warn().
					Str("request_id", requestID).
					Str("angle", spec.Name).
					Msg("generation: no image for angle")
				return nil
			}
			slots[i].Src = datauri.Encode(mime, data)
			o.logger.Debug().
				Str("request_id", requestID).
				Str("angle", spec.Name).
				Dur("elapsed", time.Since(start)).
				Msg("generation: angle done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}

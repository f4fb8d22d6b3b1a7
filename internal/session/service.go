package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cineangle/internal/generation"
	"cineangle/internal/history"
	"cineangle/internal/infra"
	"cineangle/internal/providers/image"
	"cineangle/internal/thumbnail"
	"cineangle/pkg/datauri"
)

// ErrNotFound reports a history id that is not present in the store.
var ErrNotFound = errors.New("session: history record not found")

// Service ties the orchestrator and the history store together: it runs a
// generation, derives the thumbnail record and appends it, and exposes the
// history operations the interactive surface needs.
type Service struct {
	orch   *generation.Orchestrator
	store  *history.Store
	cfg    *infra.Config
	logger infra.Logger
}

func NewService(orch *generation.Orchestrator, store *history.Store, cfg *infra.Config, logger infra.Logger) *Service {
	return &Service{orch: orch, store: store, cfg: cfg, logger: logger}
}

// Generate runs all six angle edits for the source image. On success the
// full-resolution slots are returned and a thumbnail record is appended to
// history; history persistence is best-effort and never fails the call. A
// hard generation failure returns the error with no partial result.
func (s *Service) Generate(ctx context.Context, src image.SourceImage) ([]generation.Slot, error) {
	slots, err := s.orch.GenerateAll(ctx, src)
	if err != nil {
		return nil, err
	}
	s.store.Append(s.buildRecord(src, slots))
	return slots, nil
}

// buildRecord shrinks the source and every populated slot into the bounded
// thumbnails history is allowed to keep. A thumbnail that cannot be built
// is omitted from the record rather than failing the append.
func (s *Service) buildRecord(src image.SourceImage, slots []generation.Slot) history.Record {
	sourceThumb, err := thumbnail.Encode(
		datauri.Encode(src.MIMEType, src.Data),
		s.cfg.SourceThumbMax, s.cfg.SourceThumbMax, s.cfg.SourceThumbQuality,
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session: source thumbnail skipped")
		sourceThumb = ""
	}

	results := make([]generation.Slot, len(slots))
	for i, slot := range slots {
		thumb, err := thumbnail.Encode(slot.Src, s.cfg.ResultThumbMax, s.cfg.ResultThumbMax, s.cfg.ResultThumbQuality)
		if err != nil {
			s.logger.Warn().Err(err).Str("angle", slot.Angle).Msg("session: result thumbnail skipped")
			thumb = ""
		}
		results[i] = generation.Slot{Angle: slot.Angle, Src: thumb}
	}

	return history.Record{
		ID:          newRecordID(),
		SourceThumb: sourceThumb,
		Results:     results,
		CreatedAt:   time.Now().UTC(),
	}
}

// History returns all stored records, most recent first.
func (s *Service) History() []history.Record {
	return s.store.Load()
}

// Restore returns the record with the given id for re-display.
func (s *Service) Restore(id string) (history.Record, error) {
	for _, rec := range s.store.Load() {
		if rec.ID == id {
			return rec, nil
		}
	}
	return history.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the record with the given id. Unknown ids are a no-op.
func (s *Service) Delete(id string) {
	s.store.Remove(id)
}

func newRecordID() string {
	return fmt.Sprintf("gen-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

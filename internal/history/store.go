package history

import (
	"sync"
	"time"

	"github.com/goccy/go-json"

	"cineangle/internal/angles"
	"cineangle/internal/generation"
	"cineangle/internal/infra"
)

// KV is the opaque string-keyed store history is persisted into. Both
// calls are fallible; the store treats every failure as non-fatal.
type KV interface {
	GetItem(key string) (string, error)
	SetItem(key, value string) error
}

// Record bundles one finished generation session: a source thumbnail, the
// six result thumbnails in catalog order, and a timestamp. Records are
// immutable once appended; the only later mutation is removal by id.
type Record struct {
	ID          string            `json:"id"`
	SourceThumb string            `json:"source_thumbnail"`
	Results     []generation.Slot `json:"result_thumbnails"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Store keeps the persisted history collection, most recent first. The
// whole collection is rewritten on every mutation; the in-memory copy
// stays authoritative for the session even when persistence fails.
type Store struct {
	kv     KV
	key    string
	logger infra.Logger

	mu      sync.Mutex
	loaded  bool
	records []Record
}

func NewStore(kv KV, key string, logger infra.Logger) *Store {
	return &Store{kv: kv, key: key, logger: logger}
}

// Load returns all records, most recent first. Missing or corrupt
// persisted state yields an empty collection; corruption is logged, never
// surfaced.
func (s *Store) Load() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Append inserts the record at the front and rewrites the collection.
func (s *Store) Append(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	if len(rec.Results) != angles.Count {
		s.logger.Warn().
			Str("id", rec.ID).
			Int("slots", len(rec.Results)).
			Msg("history: record does not carry the full slot set")
	}
	s.records = append([]Record{rec}, s.records...)
	s.persist()
}

// Remove drops the record with the given id and rewrites the collection.
// An unknown id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	kept := s.records[:0]
	removed := false
	for _, rec := range s.records {
		if rec.ID == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	if removed {
		s.persist()
	}
}

func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, err := s.kv.GetItem(s.key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("history: load failed")
		return
	}
	if raw == "" {
		return
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("history: corrupt state, starting empty")
		return
	}
	s.records = records
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.records)
	if err != nil {
		s.logger.Error().Err(err).Msg("history: marshal failed")
		return
	}
	if err := s.kv.SetItem(s.key, string(raw)); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("history: persist failed, keeping in-memory state")
	}
}

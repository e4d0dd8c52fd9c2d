package logstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"softphonix/pkg/logger"
)

// Store persists one bounded JSON array of entries, newest first.
// Load/Save swallow I/O errors: a missing or corrupt file is "no data",
// never a reason to fail a webhook.
type Store struct {
	mu     sync.Mutex
	path   string
	cap    int
	dedupe bool
}

func New(path string, cap int, dedupe bool) *Store {
	return &Store{
		path:   path,
		cap:    cap,
		dedupe: dedupe,
	}
}

func (s *Store) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Errorf("❌ logstore read %s: %v", s.path, err)
		}
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Errorf("❌ logstore parse %s: %v", s.path, err)
		return []Entry{}
	}
	return entries
}

// save rewrites the whole file via temp-file + rename so readers never see
// a half-written array. Crash between write and rename loses the batch, a
// known limitation of the whole-file strategy.
func (s *Store) save(entries []Entry) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		logger.Errorf("❌ logstore marshal %s: %v", s.path, err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		logger.Errorf("❌ logstore mkdir %s: %v", s.path, err)
		return
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		logger.Errorf("❌ logstore write %s: %v", tmp, err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		logger.Errorf("❌ logstore rename %s: %v", s.path, err)
	}
}

// Append prepends entry and truncates to the store cap.
// With dedupe enabled a prior entry with the same id is dropped first,
// otherwise a re-delivered webhook produces a second record with the same id.
func (s *Store) Append(entry Entry) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()

	if s.dedupe {
		kept := entries[:0]
		for _, e := range entries {
			if e.ID != entry.ID {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	entries = append([]Entry{entry}, entries...)
	if len(entries) > s.cap {
		entries = entries[:s.cap]
	}

	s.save(entries)
	return entries
}

// UpdateStatus patches the status of the first entry matching id.
// Returns false when no entry matched.
func (s *Store) UpdateStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Status = status
			s.save(entries)
			return true
		}
	}
	return false
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save([]Entry{})
}

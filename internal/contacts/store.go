package contacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"softphonix/pkg/logger"
)

type Contact struct {
	LastName     string `json:"lastName"`
	FirstName    string `json:"firstName"`
	Phone        string `json:"phone"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	AddedAt      string `json:"addedAt"`
}

func (c *Contact) normalize() {
	if c.FullName == "" {
		c.FullName = strings.TrimSpace(c.FirstName + " " + c.LastName)
	}
	if c.AddedAt == "" {
		c.AddedAt = time.Now().UTC().Format(time.RFC3339)
	}
}

// Store keeps the address book in one JSON file, same strategy as the log
// stores: whole-file rewrite, read errors mean "empty".
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) List() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Contact {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Errorf("❌ contacts read: %v", err)
		}
		return []Contact{}
	}
	var contacts []Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		logger.Errorf("❌ contacts parse: %v", err)
		return []Contact{}
	}
	return contacts
}

func (s *Store) save(contacts []Contact) error {
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) Add(c Contact) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.normalize()
	contacts := append(s.load(), c)
	return c, s.save(contacts)
}

// Remove deletes the first contact whose phone or full name matches key.
func (s *Store) Remove(key string) (Contact, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts := s.load()
	for i, c := range contacts {
		if c.Phone == key || c.FullName == key {
			contacts = append(contacts[:i], contacts[i+1:]...)
			return c, true, s.save(contacts)
		}
	}
	return Contact{}, false, nil
}

func (s *Store) Import(batch []Contact) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range batch {
		batch[i].normalize()
	}
	contacts := append(s.load(), batch...)
	return len(batch), s.save(contacts)
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save([]Contact{})
}

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Keys the app persists between launches.
const (
	KeyUserData            = "user_data"
	KeyUserStatus          = "user_status"
	KeyHasSelectedLanguage = "has-selected-language"
	KeyUserLanguage        = "user-language"
)

// Storage is a persistent string key-value store.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStorage keeps all keys in one JSON object on disk. Every write
// rewrites the file through a temp file and rename.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileStorage) save(values map[string]string) error {
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

// Session reads and writes the persisted app state.
type Session struct {
	store Storage
}

func NewSession(store Storage) *Session {
	return &Session{store: store}
}

func (s *Session) SaveUser(u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.store.Set(KeyUserData, string(raw))
}

// User returns nil when nobody is logged in.
func (s *Session) User() (*User, error) {
	raw, ok, err := s.store.Get(KeyUserData)
	if err != nil || !ok {
		return nil, err
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyUserData, err)
	}
	return &u, nil
}

func (s *Session) SetStatus(status string) error {
	return s.store.Set(KeyUserStatus, status)
}

func (s *Session) Status() (string, error) {
	v, _, err := s.store.Get(KeyUserStatus)
	return v, err
}

// Logout forgets the user and the approval status. The language choice is
// kept.
func (s *Session) Logout() error {
	if err := s.store.Delete(KeyUserStatus); err != nil {
		return err
	}
	return s.store.Delete(KeyUserData)
}

func (s *Session) SetLanguage(lang string) error {
	if err := s.store.Set(KeyUserLanguage, lang); err != nil {
		return err
	}
	return s.store.Set(KeyHasSelectedLanguage, "true")
}

func (s *Session) Language() (string, bool, error) {
	return s.store.Get(KeyUserLanguage)
}

func (s *Session) HasSelectedLanguage() (bool, error) {
	v, _, err := s.store.Get(KeyHasSelectedLanguage)
	return v == "true", err
}

// Package store holds the facts the hooks exchange through the installer
// host. The host exports its storage as a YAML or JSON document before a
// hook runs and re-imports it afterwards.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a store document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from a file extension, YAML by default.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Store is a schema-checked key/value document.
type Store struct {
	path   string
	format Format
	values map[string]any
	mu     sync.RWMutex
}

// New creates an empty in-memory store. Save fails until a path is set
// with SetPath.
func New() *Store {
	return &Store{format: FormatYAML, values: map[string]any{}}
}

// Load reads the document at path. A missing file yields an empty store
// bound to that path.
func Load(path string) (*Store, error) {
	s := &Store{path: path, format: FormatFor(path), values: map[string]any{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if err := s.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
	}
	return s, nil
}

// Update loads the store at path, applies modify and saves the result.
// Nothing is written when modify fails.
func Update(path string, modify func(*Store) error) error {
	s, err := Load(path)
	if err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if err := modify(s); err != nil {
		return err
	}
	return s.Save()
}

func (s *Store) decode(data []byte) error {
	var values map[string]any
	switch s.format {
	case FormatJSON:
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
	default:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return err
		}
	}
	if values != nil {
		s.values = values
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// SetPath binds the store to a file; the format follows the extension.
func (s *Store) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.format = FormatFor(path)
}

// Save writes the document atomically through a temp file and rename.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.path == "" {
		return errors.New("store has no backing file")
	}

	data, err := s.encode(s.format)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		if removeErr := os.Remove(tmpPath); removeErr != nil {
			log.Printf("Warning: failed to clean up temp file %s: %v", tmpPath, removeErr)
		}
		return fmt.Errorf("failed to save store file: %w", err)
	}
	return nil
}

// Marshal encodes the document in the given format.
func (s *Store) Marshal(format Format) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encode(format)
}

func (s *Store) encode(format Format) ([]byte, error) {
	if format == FormatJSON {
		data, err := json.MarshalIndent(s.values, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.Marshal(s.values)
}

// Insert sets key to value. Values for schema keys are checked first.
func (s *Store) Insert(key string, value any) error {
	if err := Check(key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Remove deletes key.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Value returns the raw value of key.
func (s *Store) Value(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Contains reports whether key holds a non-null value.
func (s *Store) Contains(key string) bool {
	v, ok := s.Value(key)
	return ok && v != nil
}

// Keys returns every key in sorted order, unknown keys included.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

func (s *Store) get(key string, kind Kind) (any, error) {
	f, ok := Lookup(key)
	if !ok {
		f = Field{Key: key, Kind: kind}
	}
	if f.Kind != kind {
		return nil, fmt.Errorf("%s holds a %s, not a %s", key, f.Kind, kind)
	}

	v, ok := s.Value(key)
	if !ok || v == nil {
		return nil, fmt.Errorf("%s: %w", key, ErrMissing)
	}
	return convert(f, v)
}

// String returns a string value.
func (s *Store) String(key string) (string, error) {
	v, err := s.get(key, KindString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// StringList returns a list of strings.
func (s *Store) StringList(key string) ([]string, error) {
	v, err := s.get(key, KindStringList)
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Map returns a mapping value.
func (s *Store) Map(key string) (map[string]any, error) {
	v, err := s.get(key, KindMap)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// MapList returns a list of mappings.
func (s *Store) MapList(key string) ([]map[string]any, error) {
	v, err := s.get(key, KindMapList)
	if err != nil {
		return nil, err
	}
	return v.([]map[string]any), nil
}

// IsMissing reports whether err came from an absent key.
func IsMissing(err error) bool {
	return errors.Is(err, ErrMissing)
}

// Package store persists plant records in a JSON file and owns the
// in-memory collection used during a session.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nibzard/greenthumb/internal/plant"
)

// BackupSuffix is appended to the data file path by Backup.
const BackupSuffix = ".corrupt"

// Store reads and writes the plant list as a single JSON file.
// Every save rewrites the whole file.
type Store struct {
	path string
}

// New returns a Store for the file at path. The file need not exist.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the plant list.
//
// A missing or blank file yields an empty list. A file that is not valid
// JSON, does not match the plant schema, or repeats a name yields a
// *CorruptDataError.
func (s *Store) Load() ([]plant.Plant, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []plant.Plant{}, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return Decode(s.path, data)
}

// Decode parses and validates the contents of a data file.
// path is used only for error reporting.
func Decode(path string, data []byte) ([]plant.Plant, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []plant.Plant{}, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptDataError{Path: path, Errs: []error{fmt.Errorf("invalid JSON: %w", err)}}
	}
	if errs := validateShape(doc); len(errs) > 0 {
		return nil, &CorruptDataError{Path: path, Errs: errs}
	}

	var plants []plant.Plant
	if err := json.Unmarshal(data, &plants); err != nil {
		return nil, &CorruptDataError{Path: path, Errs: []error{fmt.Errorf("decode plants: %w", err)}}
	}

	var errs []error
	seen := make(map[string]int, len(plants))
	for i := range plants {
		if err := plants[i].Validate(); err != nil {
			errs = append(errs, &FieldError{Path: fmt.Sprintf("[%d]", i), Err: err})
			continue
		}
		if first, ok := seen[plants[i].Name]; ok {
			errs = append(errs, &FieldError{
				Path: fmt.Sprintf("[%d].name", i),
				Err:  fmt.Errorf("%w: %q (first at [%d])", plant.ErrDuplicateName, plants[i].Name, first),
			})
			continue
		}
		seen[plants[i].Name] = i
	}
	if len(errs) > 0 {
		return nil, &CorruptDataError{Path: path, Errs: errs}
	}

	if plants == nil {
		plants = []plant.Plant{}
	}
	return plants, nil
}

// Encode renders plants the way Save writes them: a JSON array with
// 2-space indentation and a trailing newline.
func Encode(plants []plant.Plant) ([]byte, error) {
	if plants == nil {
		plants = []plant.Plant{}
	}
	data, err := json.MarshalIndent(plants, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal plants: %w", err)
	}
	return append(data, '\n'), nil
}

// Save overwrites the data file with plants.
func (s *Store) Save(plants []plant.Plant) error {
	data, err := Encode(plants)
	if err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	return nil
}

// Backup copies the current data file next to itself with BackupSuffix
// and returns the backup path.
func (s *Store) Backup() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read data file: %w", err)
	}
	backup := s.path + BackupSuffix
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backup, nil
}

// Package manifest persists which components have been installed into a
// project, keyed by component name and output directory.
//
// The manifest is a convenience record, not a source of truth: the project
// files are. Reads tolerate a missing or malformed document and writes repair
// a malformed one instead of failing the caller.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRepaired reports that the manifest could not be read and was recreated
// empty. The operation that hit it did not take effect and should be retried.
var ErrRepaired = errors.New("manifest was unreadable and has been recreated, try adding the component again")

// errCorrupt marks a document that exists but does not have the expected shape.
var errCorrupt = errors.New("manifest is malformed")

// Record is one installed component.
type Record struct {
	Name   string `json:"name"`
	Output string `json:"output"`
}

// Document is the on-disk manifest.
type Document struct {
	Components []Record `json:"components"`
}

// ReadError reports a manifest that exists but cannot be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read manifest %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Store reads and writes the manifest at a fixed path.
type Store struct {
	path string
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the manifest file location.
func (s *Store) Path() string {
	return s.path
}

// EnsureExists writes an empty manifest when none exists yet.
func (s *Store) EnsureExists() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat manifest: %w", err)
	}
	return s.save(newDocument())
}

// Find returns the record matching both name and output exactly. A missing or
// malformed manifest yields no match; only an unreadable file is an error.
func (s *Store) Find(name, output string) (Record, bool, error) {
	doc, err := s.load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, errCorrupt) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	if i := doc.index(name, output); i >= 0 {
		return doc.Components[i], true, nil
	}
	return Record{}, false, nil
}

// Upsert records (name, output), replacing an existing record with the same
// key in place or appending a new one.
//
// When the existing document cannot be read or parsed it is replaced by an
// empty one and the returned error wraps ErrRepaired; the record is not saved.
func (s *Store) Upsert(name, output string) error {
	doc, err := s.load()
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		doc = newDocument()
	default:
		if repairErr := s.save(newDocument()); repairErr != nil {
			return fmt.Errorf("repair manifest after %v: %w", err, repairErr)
		}
		return fmt.Errorf("%w (%v)", ErrRepaired, err)
	}

	rec := Record{Name: name, Output: output}
	if i := doc.index(name, output); i >= 0 {
		doc.Components[i] = rec
	} else {
		doc.Components = append(doc.Components, rec)
	}
	return s.save(doc)
}

// InstalledNames lists every recorded component name in document order. It is
// best effort: any read or parse problem yields an empty list.
func (s *Store) InstalledNames() []string {
	doc, err := s.load()
	if err != nil {
		return []string{}
	}
	names := make([]string, 0, len(doc.Components))
	for _, rec := range doc.Components {
		names = append(names, rec.Name)
	}
	return names
}

// Records returns a copy of every record. A missing manifest is empty.
func (s *Store) Records() ([]Record, error) {
	doc, err := s.load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, err
	}
	return append([]Record{}, doc.Components...), nil
}

func (s *Store) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, &ReadError{Path: s.path, Err: err}
	}

	var raw struct {
		Components *[]Record `json:"components"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if raw.Components == nil {
		return nil, fmt.Errorf("%w: missing components list", errCorrupt)
	}
	return &Document{Components: *raw.Components}, nil
}

// save writes the document atomically via a temp file in the same directory.
func (s *Store) save(doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure manifest dir: %w", err)
	}
	if doc.Components == nil {
		doc.Components = []Record{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp manifest: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

func (d *Document) index(name, output string) int {
	for i, rec := range d.Components {
		if rec.Name == name && rec.Output == output {
			return i
		}
	}
	return -1
}

func newDocument() *Document {
	return &Document{Components: []Record{}}
}

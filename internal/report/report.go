package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/eugenenazirov/schoolbag/internal/bag"
)

// DefaultFileName is the report written into the working directory.
const DefaultFileName = "bag_data.json"

var (
	// ErrNoReport is returned by Load when nothing has been saved yet.
	ErrNoReport = errors.New("no report has been saved")
)

// Report is the exported view of a student and their bag.
type Report struct {
	Student string       `json:"student"`
	Bag     bag.Snapshot `json:"bag"`
}

// Store persists reports.
type Store interface {
	Save(r Report) error
	Load() (Report, error)
	Location() string
}

// FileStore writes reports as indented JSON to a single file, replacing it on every save.
type FileStore struct {
	path string
}

// NewFileStore returns a store for path, or DefaultFileName when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	return &FileStore{path: path}
}

// SessionPath returns the report path for the n-th session of a multi-session
// run. The first session keeps path; later ones get "-<n>" before the extension.
func SessionPath(path string, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + strconv.Itoa(n) + ext
}

// Location returns the file path.
func (s *FileStore) Location() string {
	return s.path
}

// Save encodes r and overwrites the file.
func (s *FileStore) Save(r Report) (err error) {
	data, err := Encode(r)
	if err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", s.path, closeErr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Load reads the report back from disk.
func (s *FileStore) Load() (Report, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %s", ErrNoReport, s.path)
		}
		return Report{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return Decode(data)
}

// Encode renders r as two-space indented JSON with a trailing newline.
// Text is written as-is: '<', '>' and '&' are not escaped.
func Encode(r Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a report produced by Encode.
func Decode(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return r, nil
}

// MemoryStore keeps the last report in memory and guards access with a RWMutex.
type MemoryStore struct {
	mu     sync.RWMutex
	report *Report
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Location identifies the store in messages.
func (s *MemoryStore) Location() string {
	return "memory"
}

// Save keeps a copy of r.
func (s *MemoryStore) Save(r Report) error {
	cp := clone(r)

	s.mu.Lock()
	s.report = &cp
	s.mu.Unlock()

	return nil
}

// Load returns a defensive copy of the last saved report.
func (s *MemoryStore) Load() (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.report == nil {
		return Report{}, ErrNoReport
	}
	return clone(*s.report), nil
}

func clone(r Report) Report {
	r.Bag.Items = slices.Clone(r.Bag.Items)
	r.Bag.MissingMandatory = slices.Clone(r.Bag.MissingMandatory)
	return r
}

// Package storage persists point annotations in assets.json and mirrors
// them into an ephemeral SQLite cache for queries.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cazan/points/internal/config"
	"github.com/cazan/points/internal/point"
	"go.uber.org/zap"
)

// documentIndent is the indentation used when writing assets.json.
const documentIndent = "    "

// Store reads and writes the point annotations document.
// It holds no state besides the path; every call re-reads the file.
type Store struct {
	path   string
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a Store backed by the document at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a Store for the assets.json of the project at root.
func Open(root string, opts ...Option) *Store {
	return NewStore(config.AssetsPath(root), opts...)
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Init creates an empty document if none exists.
func (s *Store) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return &FileReadError{Path: s.path, Err: err}
	}
	return s.writeRecords(nil)
}

// LoadOne returns the points of the first image record matching imagePath.
// Backslashes in imagePath are treated as path separators.
func (s *Store) LoadOne(imagePath string) ([]point.Point, error) {
	records, err := s.readRecords(false)
	if err != nil {
		return nil, err
	}

	want := point.NormalizePath(imagePath)
	idx, found := FindRecord(records, want)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, want)
	}

	s.logger.Debug("loaded image points",
		zap.String("image", want),
		zap.Int("points", len(records[idx].Points)))
	return records[idx].Points, nil
}

// LoadAll returns every image record as a path to points mapping.
// If the document repeats a path, the later record wins.
func (s *Store) LoadAll() (map[string][]point.Point, error) {
	records, err := s.readRecords(false)
	if err != nil {
		return nil, err
	}

	all := make(map[string][]point.Point, len(records))
	for _, rec := range records {
		all[rec.Path] = rec.Points
	}

	s.logger.Debug("loaded all image points", zap.Int("images", len(all)))
	return all, nil
}

// Records returns the document's image records in file order.
func (s *Store) Records() ([]point.ImageRecord, error) {
	return s.readRecords(false)
}

// WriteOne appends an image record and rewrites the document.
// A missing document is treated as empty. Existing records for the
// same path are left in place.
func (s *Store) WriteOne(imagePath string, points []point.Point) error {
	records, err := s.readRecords(true)
	if err != nil {
		return err
	}

	records = append(records, point.ImageRecord{
		Path:   point.NormalizePath(imagePath),
		Points: points,
	})

	if err := s.writeRecords(records); err != nil {
		return err
	}

	s.logger.Debug("appended image record",
		zap.String("image", point.NormalizePath(imagePath)),
		zap.Int("points", len(points)),
		zap.Int("records", len(records)))
	return nil
}

// WriteAll replaces the document with one record per mapping entry,
// ordered by path. Keys are written verbatim so that WriteAll(LoadAll())
// reproduces the document.
func (s *Store) WriteAll(images map[string][]point.Point) error {
	paths := make([]string, 0, len(images))
	for p := range images {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	records := make([]point.ImageRecord, 0, len(paths))
	for _, p := range paths {
		records = append(records, point.ImageRecord{
			Path:   p,
			Points: images[p],
		})
	}

	if err := s.writeRecords(records); err != nil {
		return err
	}

	s.logger.Debug("rewrote document", zap.Int("records", len(records)))
	return nil
}

// readRecords reads and decodes the document. An empty or whitespace-only
// file is an empty document. If missingOK is set, a nonexistent file is
// also an empty document.
func (s *Store) readRecords(missingOK bool) ([]point.ImageRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if missingOK && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &FileReadError{Path: s.path, Err: err}
	}
	return DecodeDocument(s.path, data)
}

// writeRecords encodes records and replaces the document, creating
// parent directories as needed.
func (s *Store) writeRecords(records []point.ImageRecord) error {
	data, err := EncodeDocument(records)
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// DecodeDocument parses document bytes read from path.
// Errors are reported as *ParseError.
func DecodeDocument(path string, data []byte) ([]point.ImageRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []point.ImageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if records == nil {
		// Top-level null.
		return nil, &ParseError{Path: path, Err: errors.New("document is not a JSON array")}
	}
	return records, nil
}

// EncodeDocument renders records as an indented JSON array without a
// trailing newline.
func EncodeDocument(records []point.ImageRecord) ([]byte, error) {
	if records == nil {
		records = []point.ImageRecord{}
	}
	return json.MarshalIndent(records, "", documentIndent)
}

// FindRecord searches for the first record with the given path.
// Returns the index and true if found, -1 and false otherwise.
func FindRecord(records []point.ImageRecord, path string) (int, bool) {
	for i, rec := range records {
		if rec.Path == path {
			return i, true
		}
	}
	return -1, false
}

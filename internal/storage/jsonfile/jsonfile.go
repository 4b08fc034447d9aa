// Package jsonfile provides the default, file-backed implementation of
// the storage.Storage interface.
//
// THE ON-DISK FORMAT
// ──────────────────
// A single UTF-8 text file holding one JSON array; each element is an
// object with the keys matricola, nome, cognome and voti. The file is
// pretty-printed with 2-space indentation and non-ASCII characters are
// written literally (never \u-escaped) so accented names survive a
// round trip and the file stays pleasant to hand-edit.
//
// THE CONSISTENCY MODEL
// ─────────────────────
// Every mutation is a whole-file transaction: read the full roster,
// change one element, write the full roster back. There is no
// append-only log and no diffing. At this scale (a class register,
// tens of records) rewriting the file is simpler and plenty fast.
//
// Reading is fail-open: a missing or corrupt file yields an empty
// roster and a logged warning rather than an error, so the rest of the
// program keeps working with zero students. Writing is NOT fail-open —
// a write error means the mutation did not happen and must surface.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/acolli/registro-studenti/internal/storage"
	"github.com/acolli/registro-studenti/internal/types"
)

// Store persists the roster in a single JSON file at path.
type Store struct {
	path string
}

// New returns a Store backed by the file at path. The file does not
// need to exist yet; it is created on the first successful mutation.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads and decodes the whole roster.
//
// On a missing file or malformed content it returns an empty roster
// and logs a warning — deliberately NOT an error. This mirrors the
// registry's long-standing behavior: a broken data file must never
// prevent the program from starting, only leave it with no students.
func (s *Store) Load() []types.Student {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Warn("registry file not readable, starting with empty roster",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return []types.Student{}
	}

	var students []types.Student
	if err := json.Unmarshal(data, &students); err != nil {
		slog.Warn("registry file is not valid JSON, starting with empty roster",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return []types.Student{}
	}

	return students
}

// save serializes the full roster and replaces the file contents.
//
// The bytes are written to a temporary file in the same directory and
// then renamed over the target. Rename within one directory is atomic
// on POSIX filesystems, so a crash mid-write can never leave a
// half-written registry behind — the old contents survive intact.
func (s *Store) save(students []types.Student) error {
	// Every persisted record carries a voti key holding an array: a
	// nil slice would serialize as null, and an absent key would not
	// survive a save/load round trip.
	for i := range students {
		if students[i].Grades == nil {
			students[i].Grades = []any{}
		}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// Keep <, > and & literal. The default HTML-escaping exists for
	// embedding JSON in web pages, which this file never is, and it
	// would make hand-editing uglier.
	enc.SetEscapeHTML(false)

	if err := enc.Encode(students); err != nil {
		return fmt.Errorf("jsonfile: encode roster: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".registro-*.json")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonfile: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonfile: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonfile: replace %s: %w", s.path, err)
	}

	return nil
}

// CreateStudent appends the record to the roster and persists.
func (s *Store) CreateStudent(student types.Student) error {
	students := s.Load()
	students = append(students, student)
	return s.save(students)
}

// GetStudents returns every record in insertion order. The error
// return exists to satisfy storage.Storage; reading is fail-open so
// it is always nil here.
func (s *Store) GetStudents() ([]types.Student, error) {
	return s.Load(), nil
}

// AddGrade appends grade to the voti of the first record matching
// matricola. The file is not touched at all when nothing matches.
func (s *Store) AddGrade(matricola string, grade int) error {
	students := s.Load()

	for i := range students {
		if students[i].ID != matricola {
			continue
		}
		// First match wins; duplicates further down are untouched.
		students[i].Grades = append(students[i].Grades, grade)
		return s.save(students)
	}

	return storage.ErrStudentNotFound
}

// DeleteStudent removes the first record matching matricola, keeping
// the relative order of the remaining records.
func (s *Store) DeleteStudent(matricola string) error {
	students := s.Load()

	if len(students) == 0 {
		return storage.ErrEmptyRoster
	}

	for i := range students {
		if students[i].ID != matricola {
			continue
		}
		students = append(students[:i], students[i+1:]...)
		return s.save(students)
	}

	return storage.ErrStudentNotFound
}

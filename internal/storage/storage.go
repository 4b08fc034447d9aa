// Package storage defines the Storage interface — a contract that any
// persistence backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// The roster service should not know or care whether records live in a
// JSON file or a SQLite database. By depending only on this interface:
//
//   - Switching backends = implement the interface for the new store,
//     change one line in main.go. Zero service changes.
//
//   - Writing tests = point the service at a throwaway backend in a
//     temp directory. No fixtures shared between tests.
package storage

import (
	"errors"

	"github.com/acolli/registro-studenti/internal/types"
)

// Sentinel errors shared by every backend. Callers match them with
// errors.Is, so backends must return (or wrap) these exact values.
var (
	// ErrStudentNotFound means no record matched the given matricola.
	ErrStudentNotFound = errors.New("no student found with that matricola")

	// ErrEmptyRoster means a delete was attempted on a roster with no
	// records at all.
	ErrEmptyRoster = errors.New("no students in the registry")
)

// Storage is the persistence contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
//
// Duplicate matricola values are allowed: the file is hand-editable
// and the program has never enforced uniqueness. Every per-matricola
// operation therefore acts on the FIRST match in insertion order, so
// that both backends agree on which record is touched.
type Storage interface {
	// CreateStudent appends a new record to the roster and persists.
	// The caller is responsible for validating the record first.
	CreateStudent(s types.Student) error

	// GetStudents returns every record in insertion order.
	// Returns an empty slice (not nil) when there are no students.
	GetStudents() ([]types.Student, error)

	// AddGrade appends a grade to the first record matching matricola
	// and persists. Returns ErrStudentNotFound if nothing matches.
	// The grade has already been range-checked by the caller.
	AddGrade(matricola string, grade int) error

	// DeleteStudent removes the first record matching matricola,
	// preserving the relative order of the rest, and persists.
	// Returns ErrEmptyRoster when there are no records at all and
	// ErrStudentNotFound when none matches.
	DeleteStudent(matricola string) error
}

// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY A SECOND BACKEND?
// ─────────────────────
// The JSON file is the registry's canonical, hand-editable format and
// stays the default. SQLite is for installations that outgrow it:
// everything still lives in a single local file, but mutations touch
// one row instead of rewriting the whole roster. Selected with
// storage_driver: sqlite in the config.
//
// The voti column holds the grade list as a JSON-encoded array — the
// same representation as the flat file, so a record means the same
// thing in both backends.
//
// The blank import below registers the sqlite3 driver with
// database/sql. The driver's init() function does this automatically
// when the package is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/acolli/registro-studenti/internal/storage"
	"github.com/acolli/registro-studenti/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens (or creates) the SQLite database at path and ensures the
// studenti table exists.
//
// There is deliberately NO uniqueness constraint on matricola: the
// registry has always allowed duplicates, and per-matricola operations
// act on the first match in insertion order. rowid gives us that
// order for free — SQLite assigns it monotonically on insert.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe on every startup.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS studenti (
			matricola TEXT NOT NULL,
			nome      TEXT NOT NULL,
			cognome   TEXT NOT NULL,
			voti      TEXT NOT NULL DEFAULT '[]'
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// CreateStudent inserts a new row. Prepared statements keep the
// operator-supplied strings as pure data, never SQL syntax.
func (s *SQLite) CreateStudent(student types.Student) error {
	// nil would serialize as null; the voti column always holds an
	// array, like the voti key in the flat-file format.
	grades := student.Grades
	if grades == nil {
		grades = []any{}
	}

	voti, err := json.Marshal(grades)
	if err != nil {
		return fmt.Errorf("CreateStudent: encode voti: %w", err)
	}

	stmt, err := s.Db.Prepare(
		"INSERT INTO studenti (matricola, nome, cognome, voti) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(student.ID, student.FirstName, student.LastName, voti); err != nil {
		return fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return nil
}

// GetStudents returns every row in insertion order.
func (s *SQLite) GetStudents() ([]types.Student, error) {
	rows, err := s.Db.Query(
		"SELECT matricola, nome, cognome, voti FROM studenti ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice so an empty table lists
	// the same way as an empty JSON file.
	students := make([]types.Student, 0)

	for rows.Next() {
		var (
			student types.Student
			voti    []byte
		)
		if err := rows.Scan(&student.ID, &student.FirstName, &student.LastName, &voti); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		if err := json.Unmarshal(voti, &student.Grades); err != nil {
			return nil, fmt.Errorf("GetStudents: decode voti for %s: %w", student.ID, err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// AddGrade appends grade to the voti of the first row matching
// matricola. Read-modify-write on a single row, keyed by rowid so a
// duplicate matricola further down is never touched.
func (s *SQLite) AddGrade(matricola string, grade int) error {
	var (
		rowid int64
		raw   []byte
	)

	err := s.Db.QueryRow(
		"SELECT rowid, voti FROM studenti WHERE matricola = ? ORDER BY rowid LIMIT 1",
		matricola,
	).Scan(&rowid, &raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.ErrStudentNotFound
		}
		return fmt.Errorf("AddGrade: lookup: %w", err)
	}

	var voti []any
	if err := json.Unmarshal(raw, &voti); err != nil {
		return fmt.Errorf("AddGrade: decode voti for %s: %w", matricola, err)
	}
	voti = append(voti, grade)

	updated, err := json.Marshal(voti)
	if err != nil {
		return fmt.Errorf("AddGrade: encode voti: %w", err)
	}

	if _, err := s.Db.Exec(
		"UPDATE studenti SET voti = ? WHERE rowid = ?", updated, rowid,
	); err != nil {
		return fmt.Errorf("AddGrade: update: %w", err)
	}

	return nil
}

// DeleteStudent removes the first row matching matricola.
func (s *SQLite) DeleteStudent(matricola string) error {
	var count int
	if err := s.Db.QueryRow("SELECT COUNT(*) FROM studenti").Scan(&count); err != nil {
		return fmt.Errorf("DeleteStudent: count: %w", err)
	}
	if count == 0 {
		return storage.ErrEmptyRoster
	}

	// The subquery pins the delete to one specific row even when the
	// matricola is duplicated.
	result, err := s.Db.Exec(`
		DELETE FROM studenti WHERE rowid = (
			SELECT rowid FROM studenti WHERE matricola = ? ORDER BY rowid LIMIT 1
		)
	`, matricola)
	if err != nil {
		return fmt.Errorf("DeleteStudent: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudent: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrStudentNotFound
	}

	return nil
}
